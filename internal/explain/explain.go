// Package explain builds the markdown narrative for a generated
// architecture. It consumes only the Intent.
package explain

import (
	"fmt"
	"strings"

	"github.com/autoinfra/autoinfra/pkg/api"
)

var dbLabels = map[string]string{
	"mysql":      "MySQL",
	"postgresql": "PostgreSQL",
	"mongodb":    "MongoDB",
	"redis":      "Redis",
	"dynamodb":   "DynamoDB",
	"none":       "No Database",
}

// Describe returns the architecture overview narrative.
func Describe(in api.Intent) string {
	app := strings.ToUpper(in.App)
	dbLabel, ok := dbLabels[in.Database]
	if !ok {
		dbLabel = strings.ToUpper(in.Database)
	}

	parts := []string{
		"## Architecture Overview",
		"",
		fmt.Sprintf("This infrastructure deploys a **%s application** on AWS using a **%s** architecture:", app, in.Architecture),
		"",
		"### Components:",
		fmt.Sprintf("- **Compute**: %d EC2 instance(s) in public subnets for the %s application", in.AppCount, app),
	}

	if in.LoadBalancer {
		parts = append(parts, "- **Load Balancer**: Application Load Balancer (ALB) for traffic distribution")
	}

	if in.HasDatabase() {
		parts = append(parts, fmt.Sprintf("- **Database**: %s running on EC2 in private subnet", dbLabel))
	} else {
		parts = append(parts, "- **Database**: No database configured")
	}

	parts = append(parts,
		"- **Networking**: Custom VPC with public and private subnets",
		"",
		"### Traffic Flow:",
	)

	if in.LoadBalancer {
		parts = append(parts,
			"1. Internet traffic → Application Load Balancer (ALB)",
			fmt.Sprintf("2. ALB → EC2 instances (%s app)", app),
		)
		if in.HasDatabase() {
			parts = append(parts, fmt.Sprintf("3. %s app → %s (EC2 instance in private subnet)", app, dbLabel))
		}
	} else {
		parts = append(parts, fmt.Sprintf("1. Internet traffic → EC2 instances (%s app)", app))
		if in.HasDatabase() {
			parts = append(parts, fmt.Sprintf("2. %s app → %s (EC2 instance in private subnet)", app, dbLabel))
		}
	}

	dbLimitation := "- No database configured"
	if in.HasDatabase() {
		dbLimitation = fmt.Sprintf("- Manual %s setup (not managed service)", dbLabel)
	}

	parts = append(parts,
		"",
		"### Security:",
		"- Security groups restrict access to necessary ports only",
		"- VPC provides network isolation",
		"- Database is in a private subnet for enhanced security",
		"",
		"### PoC Limitations:",
		"- Single availability zone (for cost optimization)",
		"- No auto-scaling configured",
		dbLimitation,
		"- Free-tier friendly configuration",
	)

	return strings.Join(parts, "\n")
}
