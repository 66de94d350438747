package response

import (
	"errors"
	"math"
	"testing"

	"github.com/autoinfra/autoinfra/pkg/api"
)

func TestToFloatCoercions(t *testing.T) {
	cases := []struct {
		name string
		in   any
		def  float64
		want float64
	}{
		{"float64", 12.5, 0, 12.5},
		{"float32", float32(2), 0, 2},
		{"int", 7, 0, 7},
		{"int64", int64(9), 0, 9},
		{"numeric string", "3.25", 0, 3.25},
		{"garbage string", "abc", 1.5, 1.5},
		{"nil", nil, 4, 4},
		{"bool", true, 4, 4},
		{"NaN", math.NaN(), 2, 2},
		{"+Inf", math.Inf(1), 2, 2},
	}
	for _, tc := range cases {
		if got := ToFloat(tc.in, tc.def); got != tc.want {
			t.Errorf("%s: ToFloat = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestToFloatMapKeyPriority(t *testing.T) {
	m := map[string]any{
		"total":        99.0,
		"monthly_cost": 12.34,
	}
	if got := ToFloat(m, 0); got != 12.34 {
		t.Errorf("monthly_cost should win over total, got %v", got)
	}

	// Recursive coercion through a nested map.
	nested := map[string]any{"monthly": map[string]any{"total": "5.5"}}
	if got := ToFloat(nested, 0); got != 5.5 {
		t.Errorf("nested map coercion = %v, want 5.5", got)
	}

	if got := ToFloat(map[string]any{"unrelated": 3.0}, 7); got != 7 {
		t.Errorf("map without candidate keys = %v, want default 7", got)
	}
}

func TestNormalizeFillsEmptyCollections(t *testing.T) {
	out := NewNormalizer().Normalize(Inputs{})

	if out.Validation.Errors == nil || out.Validation.Warnings == nil || out.Validation.Suggestions == nil {
		t.Error("validation slices not filled")
	}
	if out.CostEstimation.Breakdown == nil || out.CostEstimation.OptimizationTips == nil {
		t.Error("cost collections not filled")
	}
	if out.CloudBill.BillItems == nil || out.CloudBill.CategoryBreakdown == nil ||
		out.CloudBill.Recommendations == nil || out.CloudBill.OptimizationPotential == nil {
		t.Error("bill collections not filled")
	}
	if out.CloudBill.Currency != "USD" {
		t.Errorf("currency = %q, want USD", out.CloudBill.Currency)
	}
	if out.SecurityAnalysis.Findings == nil || out.SecurityAnalysis.Compliance == nil {
		t.Error("security collections not filled")
	}
}

func TestNormalizeCostDerivesMonthlyFromBreakdown(t *testing.T) {
	out := NewNormalizer().Normalize(Inputs{
		Cost: api.CostEstimate{
			Breakdown: map[string]float64{"a": 10.25, "b": 5.0},
		},
	})

	if out.CostEstimation.MonthlyCost != 15.25 {
		t.Errorf("monthly = %v, want 15.25", out.CostEstimation.MonthlyCost)
	}
	if out.CostEstimation.EstimatedAnnual != 183.00 {
		t.Errorf("annual = %v, want 183.00", out.CostEstimation.EstimatedAnnual)
	}
}

func TestNormalizeCostKeepsExplicitValues(t *testing.T) {
	out := NewNormalizer().Normalize(Inputs{
		Cost: api.CostEstimate{
			MonthlyCost:     41.00,
			EstimatedAnnual: 492.00,
			Breakdown:       map[string]float64{"ignored": 999},
		},
	})

	if out.CostEstimation.MonthlyCost != 41.00 {
		t.Errorf("monthly = %v, want 41.00", out.CostEstimation.MonthlyCost)
	}
	if out.CostEstimation.EstimatedAnnual != 492.00 {
		t.Errorf("annual = %v, want 492.00", out.CostEstimation.EstimatedAnnual)
	}
}

func TestNormalizeSubstitutesBillOnError(t *testing.T) {
	in := api.Intent{Region: "eu-west-1"}
	out := NewNormalizer().Normalize(Inputs{
		Intent: in,
		Cost: api.CostEstimate{
			MonthlyCost:      41.00,
			FreeTierEligible: true,
			OptimizationTips: []string{"Consider Reserved Instances for 30-40% savings"},
		},
		Bill: api.CloudBill{
			EstimatedMonthlyCost: 61.41,
			BillItems:            []api.BillItem{{Service: "EC2"}},
		},
		BillErr: errors.New("boom"),
	})

	bill := out.CloudBill
	if bill.EstimatedMonthlyCost != 41.00 || bill.EstimatedMonthly != 41.00 {
		t.Errorf("substituted monthly = %v/%v, want 41.00", bill.EstimatedMonthlyCost, bill.EstimatedMonthly)
	}
	if bill.EstimatedAnnual != 492.00 {
		t.Errorf("substituted annual = %v, want 492.00", bill.EstimatedAnnual)
	}
	if len(bill.BillItems) != 0 {
		t.Errorf("substituted bill carried %d items, want none", len(bill.BillItems))
	}
	if bill.Region != "eu-west-1" {
		t.Errorf("region = %q, want eu-west-1", bill.Region)
	}
	if !bill.FreeTierEligible {
		t.Error("free tier eligibility not carried from estimate")
	}
	if len(bill.Recommendations) != 1 || bill.Recommendations[0] != "Consider Reserved Instances for 30-40% savings" {
		t.Errorf("recommendations = %v, want estimator tips", bill.Recommendations)
	}
}

func TestNormalizeBillKeepsDetailedBillWithoutError(t *testing.T) {
	out := NewNormalizer().Normalize(Inputs{
		Bill: api.CloudBill{
			EstimatedMonthlyCost: 61.41,
			EstimatedAnnual:      736.92,
			BillItems:            []api.BillItem{{Service: "EC2"}},
		},
	})

	if out.CloudBill.EstimatedMonthlyCost != 61.41 || out.CloudBill.EstimatedMonthly != 61.41 {
		t.Errorf("monthly = %v/%v, want 61.41", out.CloudBill.EstimatedMonthlyCost, out.CloudBill.EstimatedMonthly)
	}
	if len(out.CloudBill.BillItems) != 1 {
		t.Errorf("items = %d, want 1", len(out.CloudBill.BillItems))
	}
}

func TestNormalizeBillMonthlyFieldFallback(t *testing.T) {
	out := NewNormalizer().Normalize(Inputs{
		Bill: api.CloudBill{EstimatedMonthly: 12.34},
	})

	if out.CloudBill.EstimatedMonthlyCost != 12.34 {
		t.Errorf("monthly cost = %v, want fallback 12.34", out.CloudBill.EstimatedMonthlyCost)
	}
}

func TestNormalizeSecurityClampsScore(t *testing.T) {
	n := NewNormalizer()

	out := n.Normalize(Inputs{Security: api.SecurityReport{SecurityScore: 130}})
	if out.SecurityAnalysis.SecurityScore != 100 {
		t.Errorf("score = %d, want clamp to 100", out.SecurityAnalysis.SecurityScore)
	}

	out = n.Normalize(Inputs{Security: api.SecurityReport{SecurityScore: -5}})
	if out.SecurityAnalysis.SecurityScore != 0 {
		t.Errorf("score = %d, want clamp to 0", out.SecurityAnalysis.SecurityScore)
	}
}

func TestNormalizeSecurityRecomputesLevel(t *testing.T) {
	out := NewNormalizer().Normalize(Inputs{
		Security: api.SecurityReport{SecurityScore: 65},
	})
	if out.SecurityAnalysis.SecurityLevel != "Moderate" {
		t.Errorf("level = %q, want Moderate", out.SecurityAnalysis.SecurityLevel)
	}

	out = NewNormalizer().Normalize(Inputs{
		Security: api.SecurityReport{SecurityScore: 65, SecurityLevel: "Custom"},
	})
	if out.SecurityAnalysis.SecurityLevel != "Custom" {
		t.Errorf("explicit level overwritten, got %q", out.SecurityAnalysis.SecurityLevel)
	}
}
