package pricing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTable(t *testing.T) {
	tbl := Default()

	micro := tbl.EC2["t2.micro"]
	if micro.Hourly != 0.0116 || micro.Monthly != 8.35 || !micro.FreeTier {
		t.Errorf("t2.micro rate = %+v", micro)
	}
	if tbl.EC2["t3.medium"].FreeTier {
		t.Error("t3.medium must not be free-tier eligible")
	}
	if tbl.EBS["gp3"] != 0.08 {
		t.Errorf("gp3 rate = %v, want 0.08", tbl.EBS["gp3"])
	}
	if tbl.ALB.Monthly != 16.20 || tbl.ALB.LCUHourly != 0.008 {
		t.Errorf("ALB rates = %+v", tbl.ALB)
	}
}

func TestInstanceFallsBackToDefaultType(t *testing.T) {
	tbl := Default()

	got := tbl.Instance("m5.24xlarge")
	want := tbl.EC2[DefaultInstanceType]
	if got != want {
		t.Errorf("unknown type rate = %+v, want %+v", got, want)
	}
}

func TestIsMicroTier(t *testing.T) {
	for _, typ := range []string{"t2.micro", "t3.micro"} {
		if !IsMicroTier(typ) {
			t.Errorf("IsMicroTier(%s) = false", typ)
		}
	}
	for _, typ := range []string{"t2.small", "t3.medium", ""} {
		if IsMicroTier(typ) {
			t.Errorf("IsMicroTier(%s) = true", typ)
		}
	}
}

func TestLoadMergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	override := `
ec2:
  t2.micro:
    hourly: 0.02
    monthly: 14.40
    free_tier: false
alb:
  monthly: 20.00
  lcu_hourly: 0.01
`
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.EC2["t2.micro"].Monthly != 14.40 || tbl.EC2["t2.micro"].FreeTier {
		t.Errorf("override not applied: %+v", tbl.EC2["t2.micro"])
	}
	if tbl.ALB.Monthly != 20.00 {
		t.Errorf("ALB override not applied: %+v", tbl.ALB)
	}
	// Untouched defaults survive the merge.
	if tbl.EBS["gp3"] != 0.08 {
		t.Errorf("default EBS rate lost: %v", tbl.EBS["gp3"])
	}
	if tbl.DataTransfer.Next40TB != 0.09 {
		t.Errorf("default data transfer rate lost: %v", tbl.DataTransfer.Next40TB)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	tbl, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if tbl.EC2["t2.micro"].Monthly != 8.35 {
		t.Error("defaults not returned alongside the error")
	}
}
