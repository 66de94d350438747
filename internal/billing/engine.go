// Package billing provides the detailed bill engine: an itemized monthly
// bill with free-tier detection and optimization recommendations. Its
// numbers supersede the flat estimator's, which is still returned for
// backward compatibility.
package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/autoinfra/autoinfra/internal/pricing"
	"github.com/autoinfra/autoinfra/pkg/api"
)

const (
	hoursPerMonth = 24 * 30

	// Assumed usage figures behind the bill items.
	ebsGBPerInstance = 30  // gp3 root volume per instance
	ebsFreeGB        = 30  // free allowance across the account
	assumedDataGB    = 100 // outbound transfer per month
	freeDataGB       = 10
	metricsPerHost   = 5 // CloudWatch metrics per instance
	freeMetrics      = 10
	assumedLCUs      = 1 // LCU usage for a small app
)

// Engine builds itemized bills from an Intent and the price table.
type Engine struct {
	table pricing.Table
	now   func() time.Time
}

// NewEngine creates a bill engine over the given price table.
func NewEngine(table pricing.Table) *Engine {
	return &Engine{table: table, now: time.Now}
}

// Estimate produces the detailed bill. The returned error is the one
// documented recoverable case: the caller substitutes a bill derived from
// the flat estimate and must never surface the failure to the client.
func (e *Engine) Estimate(in api.Intent, resourceCount int) (bill api.CloudBill, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("detailed bill estimation failed: %v", r)
		}
	}()

	rate := e.table.Instance(in.InstanceType)
	items := []api.BillItem{}
	total := decimal.Zero

	// Application compute, always first.
	appTotal := decimal.NewFromFloat(rate.Monthly).Mul(decimal.NewFromInt(int64(in.AppCount)))
	items = append(items, api.BillItem{
		Service:       "EC2 Instances (Application)",
		Specification: fmt.Sprintf("%dx %s", in.AppCount, in.InstanceType),
		Unit:          "per month",
		Quantity:      float64(in.AppCount),
		UnitPrice:     rate.Monthly,
		Total:         round2(appTotal),
		FreeTier:      rate.FreeTier && in.AppCount <= 2,
		Category:      api.CategoryCompute,
	})
	total = total.Add(appTotal)

	// Database compute, same per-instance rate.
	if in.HasDatabase() {
		dbTotal := decimal.NewFromFloat(rate.Monthly)
		items = append(items, api.BillItem{
			Service:       fmt.Sprintf("EC2 Instance (%s)", strings.ToUpper(in.Database)),
			Specification: fmt.Sprintf("1x %s", in.InstanceType),
			Unit:          "per month",
			Quantity:      1,
			UnitPrice:     rate.Monthly,
			Total:         round2(dbTotal),
			FreeTier:      rate.FreeTier,
			Category:      api.CategoryDatabase,
		})
		total = total.Add(dbTotal)
	}

	// Block storage: only the portion beyond the free allowance is billed,
	// and the line is only emitted once total provisioned storage exceeds
	// the allowance.
	ebsTotalGB := ebsGBPerInstance * in.InstanceCount()
	if ebsTotalGB > ebsFreeGB {
		billableGB := ebsTotalGB - ebsFreeGB
		gp3 := e.table.EBS["gp3"]
		ebsTotal := decimal.NewFromInt(int64(billableGB)).Mul(decimal.NewFromFloat(gp3))
		items = append(items, api.BillItem{
			Service:       "EBS Storage",
			Specification: fmt.Sprintf("%dGB gp3", ebsTotalGB),
			Unit:          "per GB/month",
			Quantity:      float64(billableGB),
			UnitPrice:     gp3,
			Total:         round2(ebsTotal),
			FreeTier:      billableGB == 0,
			Category:      api.CategoryStorage,
		})
		total = total.Add(ebsTotal)
	}

	// Load balancer plus assumed LCU usage.
	if in.LoadBalancer {
		lcu := decimal.NewFromInt(assumedLCUs).
			Mul(decimal.NewFromFloat(e.table.ALB.LCUHourly)).
			Mul(decimal.NewFromInt(hoursPerMonth))
		albTotal := decimal.NewFromFloat(e.table.ALB.Monthly).Add(lcu)
		items = append(items, api.BillItem{
			Service:       "Application Load Balancer",
			Specification: fmt.Sprintf("ALB + %d LCU", assumedLCUs),
			Unit:          "per month",
			Quantity:      1,
			UnitPrice:     round2(albTotal),
			Total:         round2(albTotal),
			FreeTier:      false,
			Category:      api.CategoryNetworking,
		})
		total = total.Add(albTotal)
	}

	// Outbound data transfer beyond the free allowance.
	if billableGB := assumedDataGB - freeDataGB; billableGB > 0 {
		perGB := e.table.DataTransfer.Next40TB
		dtTotal := decimal.NewFromInt(int64(billableGB)).Mul(decimal.NewFromFloat(perGB))
		items = append(items, api.BillItem{
			Service:       "Data Transfer (Outbound)",
			Specification: fmt.Sprintf("%dGB (first %dGB free)", billableGB, freeDataGB),
			Unit:          "per GB",
			Quantity:      float64(billableGB),
			UnitPrice:     perGB,
			Total:         round2(dtTotal),
			FreeTier:      false,
			Category:      api.CategoryNetworking,
		})
		total = total.Add(dtTotal)
	}

	// CloudWatch metrics beyond the free allowance.
	metrics := in.InstanceCount()*metricsPerHost - freeMetrics
	if metrics < 0 {
		metrics = 0
	}
	cwTotal := decimal.NewFromInt(int64(metrics)).Mul(decimal.NewFromFloat(e.table.CloudWatch.Metrics))
	if cwTotal.IsPositive() {
		items = append(items, api.BillItem{
			Service:       "CloudWatch Metrics",
			Specification: fmt.Sprintf("%d metrics", metrics),
			Unit:          "per metric/month",
			Quantity:      float64(metrics),
			UnitPrice:     e.table.CloudWatch.Metrics,
			Total:         round2(cwTotal),
			FreeTier:      false,
			Category:      api.CategoryMonitoring,
		})
		total = total.Add(cwTotal)
	}

	// Always-present zero-cost networking line, for transparency.
	items = append(items, api.BillItem{
		Service:       "VPC & Networking",
		Specification: "VPC, Subnets, Internet Gateway",
		Unit:          "per month",
		Quantity:      1,
		UnitPrice:     0,
		Total:         0,
		FreeTier:      true,
		Category:      api.CategoryNetworking,
	})

	// KNOWN INCONSISTENCY: savings sum the billed totals of items flagged
	// free-tier, not the amount a free allowance waived. An item whose
	// allowance fully covers usage bills zero and so counts nothing here.
	// Product owners have not confirmed the intended semantics; keep as is.
	savings := decimal.Zero
	freeTierEligible := false
	for _, item := range items {
		if item.FreeTier {
			freeTierEligible = true
			if item.Total > 0 {
				savings = savings.Add(decimal.NewFromFloat(item.Total))
			}
		}
	}

	categories := make(map[string]float64)
	for _, item := range items {
		sum := decimal.NewFromFloat(categories[item.Category]).Add(decimal.NewFromFloat(item.Total))
		categories[item.Category] = round2(sum)
	}

	monthly := round2(total)

	return api.CloudBill{
		EstimatedMonthly:      monthly,
		EstimatedMonthlyCost:  monthly,
		EstimatedAnnual:       round2(total.Mul(decimal.NewFromInt(12))),
		FreeTierSavings:       round2(savings),
		BillItems:             items,
		CategoryBreakdown:     categories,
		Region:                in.Region,
		Currency:              "USD",
		EstimationDate:        e.now().Format("2006-01-02"),
		Recommendations:       e.recommendations(in, total, items),
		FreeTierEligible:      freeTierEligible,
		OptimizationPotential: e.optimizationPotential(in, total),
	}, nil
}

// recommendations derive from the intent and the finished bill; they never
// feed back into the totals.
func (e *Engine) recommendations(in api.Intent, monthly decimal.Decimal, items []api.BillItem) []string {
	recs := []string{}
	monthlyF, _ := monthly.Float64()
	rate := e.table.Instance(in.InstanceType)

	if !pricing.IsMicroTier(in.InstanceType) {
		delta := e.table.EC2["t3.micro"].Monthly - rate.Monthly
		recs = append(recs, fmt.Sprintf(
			"Switch to t3.micro for better price/performance (save ~$%.2f/month)", delta))
	}

	if monthlyF > 50 {
		recs = append(recs, fmt.Sprintf(
			"Use Reserved Instances (1-year) to save ~$%.2f/month (35%% discount)", monthlyF*0.35))
	}

	if in.LoadBalancer && in.AppCount == 1 {
		recs = append(recs, "Consider removing load balancer for single instance (save ~$16/month)")
	}

	if in.AppCount > 2 {
		recs = append(recs, "Implement auto-scaling to reduce costs during low traffic periods")
	}

	if monthlyF > 100 {
		var compute float64
		for _, item := range items {
			if strings.Contains(item.Service, "EC2") {
				compute += item.Total
			}
		}
		recs = append(recs, fmt.Sprintf(
			"Consider Spot Instances for dev/test (save up to $%.2f/month, 70%% discount)", compute*0.7))
	}

	for _, item := range items {
		if strings.Contains(item.Service, "Data Transfer") && item.Total > 10 {
			recs = append(recs, "Optimize data transfer: Use CloudFront CDN to reduce outbound data costs")
			break
		}
	}

	return recs
}

// optimizationPotential projects hypothetical savings per pricing scheme.
// It is a side channel and never alters the bill total.
func (e *Engine) optimizationPotential(in api.Intent, monthly decimal.Decimal) map[string]api.SavingsPlan {
	potential := make(map[string]api.SavingsPlan)
	monthlyF, _ := monthly.Float64()

	if monthlyF > 50 {
		ri := monthly.Mul(decimal.NewFromFloat(0.35))
		potential["reserved_instances"] = api.SavingsPlan{
			SavingsPercentage: 35,
			MonthlySavings:    round2(ri),
			AnnualSavings:     round2(ri.Mul(decimal.NewFromInt(12))),
		}
	}

	rate := e.table.Instance(in.InstanceType)
	ec2Cost := decimal.NewFromFloat(rate.Monthly).Mul(decimal.NewFromInt(int64(in.InstanceCount())))
	spot := ec2Cost.Mul(decimal.NewFromFloat(0.70))
	potential["spot_instances"] = api.SavingsPlan{
		SavingsPercentage: 70,
		MonthlySavings:    round2(spot),
		AnnualSavings:     round2(spot.Mul(decimal.NewFromInt(12))),
		Note:              "For dev/test environments only",
	}

	return potential
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
