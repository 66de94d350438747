// Package pricing holds the static AWS price tables the estimators read.
// Rates are PoC constants, not authoritative pricing. Tables are plain
// values handed to each estimator's constructor so tests and operators can
// substitute alternate rates without process-wide side effects.
package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InstanceRate prices one EC2 instance type.
type InstanceRate struct {
	Hourly   float64 `yaml:"hourly"`
	Monthly  float64 `yaml:"monthly"`
	FreeTier bool    `yaml:"free_tier"`
}

// ALBRates prices an Application Load Balancer.
type ALBRates struct {
	Hourly    float64 `yaml:"hourly"`
	Monthly   float64 `yaml:"monthly"`
	LCUHourly float64 `yaml:"lcu_hourly"`
}

// NATGatewayRates prices a NAT gateway.
type NATGatewayRates struct {
	Hourly  float64 `yaml:"hourly"`
	Monthly float64 `yaml:"monthly"`
	DataGB  float64 `yaml:"data_gb"`
}

// DataTransferRates prices outbound data transfer per GB.
type DataTransferRates struct {
	First10GB float64 `yaml:"first_10gb"`
	Next40TB  float64 `yaml:"next_40tb"`
	Next100TB float64 `yaml:"next_100tb"`
}

// CloudWatchRates prices monitoring.
type CloudWatchRates struct {
	Metrics float64 `yaml:"metrics"` // per metric/month, first 10 free
	Logs    float64 `yaml:"logs"`    // per GB ingested
}

// S3Rates prices object storage.
type S3Rates struct {
	Storage  float64 `yaml:"storage"`  // per GB/month
	Requests float64 `yaml:"requests"` // per 1000 requests
}

// Table is the full price table.
type Table struct {
	EC2          map[string]InstanceRate `yaml:"ec2"`
	EBS          map[string]float64      `yaml:"ebs"` // per GB/month by volume type
	ALB          ALBRates                `yaml:"alb"`
	NATGateway   NATGatewayRates         `yaml:"nat_gateway"`
	DataTransfer DataTransferRates       `yaml:"data_transfer"`
	CloudWatch   CloudWatchRates         `yaml:"cloudwatch"`
	S3           S3Rates                 `yaml:"s3"`
}

// DefaultInstanceType is the rate used when an intent names an instance
// type the table does not carry.
const DefaultInstanceType = "t2.micro"

// Default returns the built-in 2024 price table.
func Default() Table {
	return Table{
		EC2: map[string]InstanceRate{
			"t2.micro":  {Hourly: 0.0116, Monthly: 8.35, FreeTier: true},
			"t2.small":  {Hourly: 0.023, Monthly: 16.56, FreeTier: false},
			"t3.micro":  {Hourly: 0.0104, Monthly: 7.49, FreeTier: true},
			"t3.small":  {Hourly: 0.0208, Monthly: 14.98, FreeTier: false},
			"t3.medium": {Hourly: 0.0416, Monthly: 29.95, FreeTier: false},
		},
		EBS: map[string]float64{
			"gp3": 0.08,
			"gp2": 0.10,
		},
		ALB:          ALBRates{Hourly: 0.0225, Monthly: 16.20, LCUHourly: 0.008},
		NATGateway:   NATGatewayRates{Hourly: 0.045, Monthly: 32.40, DataGB: 0.045},
		DataTransfer: DataTransferRates{First10GB: 0.0, Next40TB: 0.09, Next100TB: 0.085},
		CloudWatch:   CloudWatchRates{Metrics: 0.30, Logs: 0.50},
		S3:           S3Rates{Storage: 0.023, Requests: 0.005},
	}
}

// Instance resolves the rate for an instance type, falling back to the
// default type for anything the table does not carry.
func (t Table) Instance(instanceType string) InstanceRate {
	if r, ok := t.EC2[instanceType]; ok {
		return r
	}
	return t.EC2[DefaultInstanceType]
}

// IsMicroTier reports whether the instance type qualifies for the
// free-tier heuristics.
func IsMicroTier(instanceType string) bool {
	return instanceType == "t2.micro" || instanceType == "t3.micro"
}

// Load reads a YAML override file and merges it over the defaults.
// Only keys present in the file replace defaults.
func Load(path string) (Table, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read pricing file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse pricing file %s: %w", path, err)
	}
	return t, nil
}
