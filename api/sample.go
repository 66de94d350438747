package api

import (
	"github.com/autoinfra/autoinfra/pkg/api"
)

// SampleResponse is the fixture served by /debug_sample: a known-good
// payload for verifying frontend numeric handling.
func SampleResponse() api.InfrastructureResponse {
	return api.InfrastructureResponse{
		Intent: api.Intent{
			Cloud:        "aws",
			App:          "nodejs",
			Database:     "mongodb",
			Architecture: "3-tier",
			Availability: "standard",
			LoadBalancer: true,
			Security:     []string{"private_vpc", "security_groups"},
			Region:       "us-east-1",
			InstanceType: "t2.micro",
			AppCount:     2,
			DatabaseType: "ec2",
		},
		TerraformCode: `terraform {} provider "aws" {} resource "aws_instance" "app" {}`,
		Diagram:       "",
		Explanation:   "Sample explanation",
		Validation: api.ValidationResult{
			Valid:         true,
			Errors:        []string{},
			Warnings:      []string{},
			ResourceCount: 3,
			Suggestions:   []string{},
		},
		CostEstimation: api.CostEstimate{
			MonthlyCost:      12.34,
			Breakdown:        map[string]float64{"EC2": 10.0, "ALB": 2.34},
			FreeTierEligible: false,
			OptimizationTips: []string{},
			EstimatedAnnual:  148.08,
		},
		CloudBill: api.CloudBill{
			EstimatedMonthly:      12.34,
			EstimatedMonthlyCost:  12.34,
			EstimatedAnnual:       148.08,
			BillItems:             []api.BillItem{},
			CategoryBreakdown:     map[string]float64{},
			Region:                "us-east-1",
			Currency:              "USD",
			Recommendations:       []string{},
			OptimizationPotential: map[string]api.SavingsPlan{},
		},
		SecurityAnalysis: api.SecurityReport{
			SecurityScore:   85,
			SecurityLevel:   "Good",
			Findings:        []api.Finding{},
			Recommendations: []string{},
			Compliance:      map[string]bool{},
		},
	}
}
