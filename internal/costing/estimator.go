// Package costing provides the coarse monthly cost projection from the
// flat per-hour price table. The detailed bill engine supersedes these
// numbers; both are returned for backward compatibility.
package costing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/autoinfra/autoinfra/internal/pricing"
	"github.com/autoinfra/autoinfra/pkg/api"
)

const (
	hoursPerMonth = 24 * 30

	// Assumed outbound transfer per month and its free allowance.
	assumedDataGB = 100
	freeDataGB    = 10
)

// Estimator projects monthly cost from hourly rates.
type Estimator struct {
	table pricing.Table
}

// NewEstimator creates an Estimator over the given price table.
func NewEstimator(table pricing.Table) *Estimator {
	return &Estimator{table: table}
}

// Estimate returns the monthly projection for the intent. resourceCount
// comes from the validator and is informational only.
func (e *Estimator) Estimate(in api.Intent, resourceCount int) api.CostEstimate {
	breakdown := make(map[string]float64)
	monthly := decimal.Zero

	rate := e.table.Instance(in.InstanceType)
	ec2Monthly := decimal.NewFromFloat(rate.Hourly).
		Mul(decimal.NewFromInt(hoursPerMonth)).
		Mul(decimal.NewFromInt(int64(in.AppCount)))
	breakdown[fmt.Sprintf("EC2 (%s) x%d", in.InstanceType, in.AppCount)] = round2(ec2Monthly)
	monthly = monthly.Add(ec2Monthly)

	if in.LoadBalancer {
		albMonthly := decimal.NewFromFloat(e.table.ALB.Hourly).Mul(decimal.NewFromInt(hoursPerMonth))
		breakdown["Application Load Balancer (ALB)"] = round2(albMonthly)
		monthly = monthly.Add(albMonthly)
	}

	dataCost := decimal.NewFromInt(assumedDataGB - freeDataGB).
		Mul(decimal.NewFromFloat(e.table.DataTransfer.Next40TB))
	if dataCost.IsPositive() {
		breakdown[fmt.Sprintf("Data Transfer (%dGB)", assumedDataGB)] = round2(dataCost)
		monthly = monthly.Add(dataCost)
	}

	freeTier := pricing.IsMicroTier(in.InstanceType) && in.AppCount <= 2 && !in.HasDatabase()

	monthlyRounded := round2(monthly)

	return api.CostEstimate{
		MonthlyCost:      monthlyRounded,
		Breakdown:        breakdown,
		FreeTierEligible: freeTier,
		OptimizationTips: e.tips(in, monthlyRounded),
		EstimatedAnnual:  round2(decimal.NewFromFloat(monthlyRounded).Mul(decimal.NewFromInt(12))),
	}
}

// tips are advisory only; nothing here feeds back into the cost figure.
func (e *Estimator) tips(in api.Intent, monthly float64) []string {
	tips := []string{}
	if !pricing.IsMicroTier(in.InstanceType) {
		tips = append(tips, "Consider using t2/t3 micro instances for cost savings or burstable instances.")
	}
	if in.AppCount > 2 {
		tips = append(tips, "Reduce number of instances or use auto-scaling groups to scale with demand.")
	}
	if in.LoadBalancer && in.AppCount == 1 {
		tips = append(tips, "For single instance deployments consider skipping ALB to save costs.")
	}
	if monthly > 50 {
		tips = append(tips, "Consider reserved instances or savings plans to reduce monthly cost.")
	}
	return tips
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
