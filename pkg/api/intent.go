// Package api defines the shared contracts exchanged between the intent
// extractor, the artifact transformers, and the HTTP layer.
package api

// Intent is the canonical structured description of desired infrastructure.
// Every transformer reads the same Intent; fields are guaranteed non-empty
// after intent.ApplyDefaults has run, so downstream code never branches on
// absence.
type Intent struct {
	Cloud        string   `json:"cloud"`         // fixed "aws" for v1
	App          string   `json:"app"`           // nodejs, golang, python, java, dotnet, php, ruby, rust, other
	Database     string   `json:"database"`      // mysql, postgresql, mongodb, redis, dynamodb, none
	Architecture string   `json:"architecture"`  // 2-tier, 3-tier, serverless
	Availability string   `json:"availability"`  // standard, high
	LoadBalancer bool     `json:"load_balancer"`
	Security     []string `json:"security"` // e.g. private_vpc, security_groups
	Region       string   `json:"region"`
	InstanceType string   `json:"instance_type"`
	AppCount     int      `json:"app_count"`
	DatabaseType string   `json:"database_type"` // ec2, rds
}

// HasDatabase reports whether the intent configures a database at all.
func (in Intent) HasDatabase() bool {
	return in.Database != "" && in.Database != "none"
}

// InstanceCount is the total compute footprint: app instances plus the
// database host when one is configured.
func (in Intent) InstanceCount() int {
	n := in.AppCount
	if in.HasDatabase() {
		n++
	}
	return n
}
