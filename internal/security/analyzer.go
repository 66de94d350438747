// Package security scores the security posture of generated
// infrastructure code against a fixed rule set.
package security

import (
	"regexp"
	"strings"

	"github.com/autoinfra/autoinfra/pkg/api"
)

var (
	openCIDRRe   = regexp.MustCompile(`0\.0\.0\.0\s*/\s*0`)
	credentialRe = regexp.MustCompile(`(?i)\b(password|secret|access_key|secret_key)\b\s*=\s*["'][^"']+["']`)
)

// Penalty points per failed check. Checks are independent and cumulative;
// the score starts at 100 and floors at 0.
const (
	penaltyNoVPC        = 20
	penaltyNoSG         = 20
	penaltyOpenCIDR     = 20
	penaltyPublicDB     = 15
	penaltyCredentials  = 25
	penaltyNoTLS        = 5
	penaltyMissingLB    = 5
	penaltyNoEncryption = 10
)

// Analyzer applies the posture rule set over an intent and its code text.
type Analyzer struct{}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Analyze returns the findings, the 0-100 score, its tier label,
// remediation recommendations, and the compliance flags.
func (a *Analyzer) Analyze(in api.Intent, code string) api.SecurityReport {
	tf := strings.ToLower(code)
	findings := []api.Finding{}
	recommendations := []string{}
	compliance := make(map[string]bool)
	score := 100

	// Network isolation.
	if strings.Contains(tf, "vpc") {
		findings = append(findings, positive("Network Isolation", "VPC is configured for network isolation"))
		compliance["network_isolation"] = true
	} else {
		findings = append(findings, negative("Network Isolation", "No VPC configured - resources exposed to default network", api.SeverityHigh))
		score -= penaltyNoVPC
		compliance["network_isolation"] = false
		recommendations = append(recommendations, "Configure VPC for network isolation")
	}

	// Security groups, plus the open-CIDR check when they exist.
	if strings.Contains(tf, "security_group") {
		findings = append(findings, positive("Network Security", "Security groups are configured"))
		compliance["security_groups"] = true

		if openCIDRRe.MatchString(tf) {
			findings = append(findings, negative("Network Security", "Security group with 0.0.0.0/0 detected", api.SeverityHigh))
			score -= penaltyOpenCIDR
			recommendations = append(recommendations, "Lock down security group CIDR blocks to least privilege")
		}
	} else {
		findings = append(findings, negative("Network Security", "No security groups defined", api.SeverityHigh))
		compliance["security_groups"] = false
		score -= penaltyNoSG
		recommendations = append(recommendations, "Define security groups to restrict access")
	}

	// Database placement, only when a database is configured.
	if in.HasDatabase() {
		if strings.Contains(tf, "private") {
			findings = append(findings, positive("Database Placement", "Database placed in private subnet"))
			compliance["database_in_private_subnet"] = true
		} else {
			findings = append(findings, negative("Database Placement", "Database not placed in private subnet", api.SeverityHigh))
			compliance["database_in_private_subnet"] = false
			score -= penaltyPublicDB
			recommendations = append(recommendations, "Place databases in private subnets and restrict access")
		}
	}

	// Hardcoded credentials, checked against the original casing.
	if credentialRe.MatchString(code) {
		findings = append(findings, negative("Credentials", "Hardcoded credentials or secrets detected", api.SeverityHigh))
		recommendations = append(recommendations, "Use Secrets Manager or SSM Parameter Store for credentials")
		score -= penaltyCredentials
	} else {
		findings = append(findings, positive("Credentials", "No obvious hardcoded credentials found"))
	}

	// Load balancer presence and TLS.
	if in.LoadBalancer {
		lbFound := strings.Contains(tf, "alb") || strings.Contains(tf, "load_balancer") || strings.Contains(tf, "aws_lb")
		if lbFound {
			tls := strings.Contains(tf, "https") || strings.Contains(tf, "certificate") ||
				strings.Contains(tf, "ssl") || strings.Contains(tf, "443")
			if tls {
				findings = append(findings, positive("Load Balancer", "Load balancer with TLS/HTTPS configured"))
			} else {
				findings = append(findings, negative("Load Balancer", "Load balancer configured without TLS", api.SeverityMedium))
				recommendations = append(recommendations, "Enable TLS on the load balancer for secure traffic")
				score -= penaltyNoTLS
			}
		} else {
			findings = append(findings, negative("Load Balancer", "Load balancer expected but not found in config", api.SeverityMedium))
			score -= penaltyMissingLB
		}
	} else {
		findings = append(findings, api.Finding{
			Type:     api.FindingInfo,
			Category: "Load Balancer",
			Finding:  "No load balancer requested",
			Severity: api.SeverityInfo,
		})
	}

	// Encryption at rest.
	if !strings.Contains(tf, "encryption") && !strings.Contains(tf, "kms") && !strings.Contains(tf, "encrypted") {
		findings = append(findings, negative("Encryption", "No encryption or KMS usage detected", api.SeverityMedium))
		recommendations = append(recommendations, "Enable encryption at rest and use KMS for keys")
		score -= penaltyNoEncryption
	} else {
		findings = append(findings, positive("Encryption", "Encryption/KMS usage detected"))
	}

	if score < 0 {
		score = 0
	}

	return api.SecurityReport{
		SecurityScore:   score,
		SecurityLevel:   api.SecurityLevel(score),
		Findings:        findings,
		Recommendations: recommendations,
		Compliance:      compliance,
	}
}

func positive(category, text string) api.Finding {
	return api.Finding{Type: api.FindingPositive, Category: category, Finding: text, Severity: api.SeverityInfo}
}

func negative(category, text, severity string) api.Finding {
	return api.Finding{Type: api.FindingNegative, Category: category, Finding: text, Severity: severity}
}
