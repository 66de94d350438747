// Package response reconciles the transformers' heterogeneous outputs
// into one structurally complete response. Every numeric field leaves
// here as a finite float and every collection is non-nil; coercion
// failures fall back to defaults, never to errors.
package response

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/autoinfra/autoinfra/pkg/api"
)

// floatKeys is the fixed priority order searched when a numeric field
// arrives as a mapping instead of a number.
var floatKeys = []string{"monthly_cost", "estimated_monthly_cost", "monthly", "total", "estimated"}

// ToFloat coerces an arbitrary value to a finite float64. Numbers and
// numeric strings convert directly; a map is searched for the first
// present candidate key and that value is coerced recursively; anything
// else, including NaN and infinities, yields the default.
func ToFloat(v any, def float64) float64 {
	switch val := v.(type) {
	case float64:
		return finite(val, def)
	case float32:
		return finite(float64(val), def)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return finite(f, def)
		}
	case map[string]any:
		for _, k := range floatKeys {
			if inner, ok := val[k]; ok {
				return ToFloat(inner, def)
			}
		}
	}
	return def
}

func finite(f, def float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// Normalizer assembles the unified response from the five transformer
// outputs plus the raw code and diagram text.
type Normalizer struct{}

// NewNormalizer creates a Normalizer.
func NewNormalizer() *Normalizer { return &Normalizer{} }

// Inputs carries everything the pipeline produced for one request.
// BillErr marks the one documented recoverable failure: when set, Bill is
// ignored and a substitute is synthesized from Cost.
type Inputs struct {
	Intent      api.Intent
	Code        string
	Diagram     string
	Explanation string
	Validation  api.ValidationResult
	Cost        api.CostEstimate
	Bill        api.CloudBill
	BillErr     error
	Security    api.SecurityReport
}

// Normalize produces the response record. Default filling only adds
// missing values; anything a transformer explicitly set is preserved.
func (n *Normalizer) Normalize(in Inputs) api.InfrastructureResponse {
	validation := in.Validation
	if validation.Errors == nil {
		validation.Errors = []string{}
	}
	if validation.Warnings == nil {
		validation.Warnings = []string{}
	}
	if validation.Suggestions == nil {
		validation.Suggestions = []string{}
	}
	if validation.ResourceCount < 0 {
		validation.ResourceCount = 0
	}

	cost := n.normalizeCost(in.Cost)

	bill := in.Bill
	if in.BillErr != nil {
		bill = n.substituteBill(in.Intent, cost, bill.EstimationDate)
	}
	bill = n.normalizeBill(bill)

	security := n.normalizeSecurity(in.Security)

	return api.InfrastructureResponse{
		Intent:           in.Intent,
		TerraformCode:    in.Code,
		Diagram:          in.Diagram,
		Explanation:      in.Explanation,
		Validation:       validation,
		CostEstimation:   cost,
		CloudBill:        bill,
		SecurityAnalysis: security,
	}
}

func (n *Normalizer) normalizeCost(cost api.CostEstimate) api.CostEstimate {
	monthly := ToFloat(cost.MonthlyCost, 0)
	if monthly == 0 && len(cost.Breakdown) > 0 {
		for _, v := range cost.Breakdown {
			monthly += ToFloat(v, 0)
		}
	}
	cost.MonthlyCost = round2(monthly)
	if cost.Breakdown == nil {
		cost.Breakdown = map[string]float64{}
	}
	if cost.OptimizationTips == nil {
		cost.OptimizationTips = []string{}
	}
	if cost.EstimatedAnnual == 0 {
		cost.EstimatedAnnual = round2(cost.MonthlyCost * 12)
	} else {
		cost.EstimatedAnnual = round2(ToFloat(cost.EstimatedAnnual, 0))
	}
	return cost
}

// substituteBill derives a structurally complete bill from the flat
// estimate: same monthly and annual figures, no items, the estimator's
// tips carried over as recommendations.
func (n *Normalizer) substituteBill(in api.Intent, cost api.CostEstimate, date string) api.CloudBill {
	return api.CloudBill{
		EstimatedMonthly:      cost.MonthlyCost,
		EstimatedMonthlyCost:  cost.MonthlyCost,
		EstimatedAnnual:       cost.EstimatedAnnual,
		FreeTierSavings:       0,
		BillItems:             []api.BillItem{},
		CategoryBreakdown:     map[string]float64{},
		Region:                in.Region,
		Currency:              "USD",
		EstimationDate:        date,
		Recommendations:       cost.OptimizationTips,
		FreeTierEligible:      cost.FreeTierEligible,
		OptimizationPotential: map[string]api.SavingsPlan{},
	}
}

func (n *Normalizer) normalizeBill(bill api.CloudBill) api.CloudBill {
	// Either monthly field may carry the figure; the explicit one wins.
	monthly := ToFloat(bill.EstimatedMonthlyCost, 0)
	if monthly == 0 {
		monthly = ToFloat(bill.EstimatedMonthly, 0)
	}
	bill.EstimatedMonthlyCost = round2(monthly)
	bill.EstimatedMonthly = round2(monthly)
	bill.EstimatedAnnual = round2(ToFloat(bill.EstimatedAnnual, 0))
	bill.FreeTierSavings = round2(ToFloat(bill.FreeTierSavings, 0))
	if bill.BillItems == nil {
		bill.BillItems = []api.BillItem{}
	}
	if bill.CategoryBreakdown == nil {
		bill.CategoryBreakdown = map[string]float64{}
	}
	if bill.Recommendations == nil {
		bill.Recommendations = []string{}
	}
	if bill.OptimizationPotential == nil {
		bill.OptimizationPotential = map[string]api.SavingsPlan{}
	}
	if bill.Currency == "" {
		bill.Currency = "USD"
	}
	return bill
}

func (n *Normalizer) normalizeSecurity(sec api.SecurityReport) api.SecurityReport {
	score := int(math.Round(ToFloat(sec.SecurityScore, 100)))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	sec.SecurityScore = score
	if sec.SecurityLevel == "" {
		sec.SecurityLevel = api.SecurityLevel(score)
	}
	if sec.Findings == nil {
		sec.Findings = []api.Finding{}
	}
	if sec.Recommendations == nil {
		sec.Recommendations = []string{}
	}
	if sec.Compliance == nil {
		sec.Compliance = map[string]bool{}
	}
	return sec
}

func round2(f float64) float64 {
	out, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return out
}
