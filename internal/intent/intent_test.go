package intent

import (
	"context"
	"testing"

	"github.com/autoinfra/autoinfra/pkg/api"
)

func TestApplyDefaultsEmptyIntent(t *testing.T) {
	in := ApplyDefaults(api.Intent{})

	if in.Cloud != "aws" {
		t.Errorf("cloud = %q, want aws", in.Cloud)
	}
	if in.App != "other" {
		t.Errorf("app = %q, want other", in.App)
	}
	if in.Database != "none" {
		t.Errorf("database = %q, want none", in.Database)
	}
	if in.Architecture != "2-tier" {
		t.Errorf("architecture = %q, want 2-tier", in.Architecture)
	}
	if in.Region != "us-east-1" {
		t.Errorf("region = %q, want us-east-1", in.Region)
	}
	if in.InstanceType != "t2.micro" {
		t.Errorf("instance_type = %q, want t2.micro", in.InstanceType)
	}
	if in.AppCount != 1 {
		t.Errorf("app_count = %d, want 1", in.AppCount)
	}
	if in.DatabaseType != "ec2" {
		t.Errorf("database_type = %q, want ec2", in.DatabaseType)
	}
	if len(in.Security) != 2 {
		t.Errorf("security tags = %v, want two defaults", in.Security)
	}
}

func TestApplyDefaultsNeverOverwrites(t *testing.T) {
	in := ApplyDefaults(api.Intent{
		App:          "golang",
		Database:     "redis",
		Architecture: "serverless",
		InstanceType: "t3.medium",
		AppCount:     4,
		Security:     []string{},
	})

	if in.App != "golang" || in.Database != "redis" || in.Architecture != "serverless" {
		t.Errorf("explicit fields overwritten: %+v", in)
	}
	if in.AppCount != 4 {
		t.Errorf("app_count = %d, want 4", in.AppCount)
	}
	if len(in.Security) != 0 {
		t.Errorf("explicit empty security list replaced: %v", in.Security)
	}
}

func TestApplyDefaultsClampsAppCount(t *testing.T) {
	in := ApplyDefaults(api.Intent{AppCount: 0})
	if in.AppCount != 1 {
		t.Errorf("app_count = %d, want 1", in.AppCount)
	}
	in = ApplyDefaults(api.Intent{AppCount: -3})
	if in.AppCount != 1 {
		t.Errorf("negative app_count = %d, want 1", in.AppCount)
	}
}

func TestHeuristicNodeMongoWithLB(t *testing.T) {
	in := Heuristic("a nodejs app with mongodb behind a load balancer")

	if in.App != "nodejs" {
		t.Errorf("app = %q, want nodejs", in.App)
	}
	if in.Database != "mongodb" {
		t.Errorf("database = %q, want mongodb", in.Database)
	}
	if !in.LoadBalancer {
		t.Error("load_balancer = false, want true")
	}
	if in.Architecture != "3-tier" {
		t.Errorf("architecture = %q, want 3-tier", in.Architecture)
	}
	if in.AppCount != 2 {
		t.Errorf("app_count = %d, want 2", in.AppCount)
	}
}

func TestHeuristicDatabaseOnlyIsTwoTier(t *testing.T) {
	in := Heuristic("python with mysql")
	if in.Architecture != "2-tier" {
		t.Errorf("architecture = %q, want 2-tier", in.Architecture)
	}
	if in.LoadBalancer {
		t.Error("load_balancer = true, want false")
	}
}

func TestHeuristicNoDatabaseIsServerless(t *testing.T) {
	in := Heuristic("just a tiny static site")
	if in.Architecture != "serverless" {
		t.Errorf("architecture = %q, want serverless", in.Architecture)
	}
	if in.Database != "none" {
		t.Errorf("database = %q, want none", in.Database)
	}
}

func TestHeuristicManagedDatabase(t *testing.T) {
	in := Heuristic("java app with a managed postgres database")
	if in.Database != "postgresql" {
		t.Errorf("database = %q, want postgresql", in.Database)
	}
	if in.DatabaseType != "rds" {
		t.Errorf("database_type = %q, want rds", in.DatabaseType)
	}
}

func TestExtractWithoutKeyUsesHeuristic(t *testing.T) {
	e := NewExtractor(ExtractorOptions{})
	in := e.Extract(context.Background(), "nodejs and mongo with high availability")

	if in.App != "nodejs" || in.Database != "mongodb" {
		t.Errorf("heuristic extraction failed: %+v", in)
	}
	// Defaults must have run.
	if in.Region != "us-east-1" || in.InstanceType != "t2.micro" {
		t.Errorf("defaults missing: %+v", in)
	}
}
