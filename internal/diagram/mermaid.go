// Package diagram renders Mermaid architecture diagrams from an Intent.
package diagram

import (
	"fmt"
	"strings"

	"github.com/autoinfra/autoinfra/pkg/api"
)

// appLabels maps runtime identifiers to display names. Unknown runtimes
// degrade to the generic label.
var appLabels = map[string]string{
	"golang": "Go App",
	"nodejs": "Node.js App",
	"python": "Python App",
	"java":   "Java App",
	"dotnet": ".NET App",
	"php":    "PHP App",
	"ruby":   "Ruby App",
	"rust":   "Rust App",
	"other":  "Application",
}

type dbInfo struct {
	Name string
	Port string
	Icon string
}

var dbConfig = map[string]dbInfo{
	"mysql":      {Name: "MySQL", Port: "3306", Icon: "MySQL"},
	"postgresql": {Name: "PostgreSQL", Port: "5432", Icon: "PostgreSQL"},
	"mongodb":    {Name: "MongoDB", Port: "27017", Icon: "MongoDB"},
	"redis":      {Name: "Redis", Port: "6379", Icon: "Redis"},
	"dynamodb":   {Name: "DynamoDB", Port: "N/A", Icon: "DynamoDB"},
}

// Renderer produces Mermaid graph markup. The topology is a deterministic
// function of architecture, load balancer flag, app count, database, and
// region; the output is never empty and stays well-formed even for an app
// count of zero.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Render returns the Mermaid diagram for the intent.
func (r *Renderer) Render(in api.Intent) string {
	appLabel, ok := appLabels[in.App]
	if !ok {
		appLabel = "Application"
	}

	db, ok := dbConfig[in.Database]
	if !ok {
		db = dbInfo{Name: strings.ToUpper(in.Database), Port: "N/A", Icon: "Database"}
	}
	hasDB := in.HasDatabase()
	threeTier := in.Architecture == "3-tier" && in.LoadBalancer

	var b strings.Builder
	b.WriteString("graph TB\n")
	b.WriteString("    subgraph Internet[\"Internet\"]\n")
	b.WriteString("        Users[\"Users\"]\n")
	b.WriteString("    end\n\n")

	fmt.Fprintf(&b, "    subgraph VPC[\"VPC: %s\"]\n", in.Region)
	b.WriteString("        subgraph PublicSubnet[\"Public Subnet 10.0.1.0/24\"]\n")
	if threeTier {
		b.WriteString("            ALB[\"Application Load Balancer\\nALB Port: 80\"]\n")
	}
	for i := 1; i <= in.AppCount; i++ {
		fmt.Fprintf(&b, "            EC2%d[\"EC2 Instance %d\\n%s\\nPort: 80\"]\n", i, i, appLabel)
	}
	b.WriteString("        end\n")

	if hasDB {
		b.WriteString("\n        subgraph PrivateSubnet[\"Private Subnet 10.0.2.0/24\"]\n")
		fmt.Fprintf(&b, "            DB[\"%s\\nEC2 Instance\\nPort: %s\"]\n", db.Icon, db.Port)
		b.WriteString("        end\n")
	}

	b.WriteString("\n        subgraph Security[\"Security Groups\"]\n")
	if threeTier {
		b.WriteString("            ALBSG[\"ALB SG Allow: 80\"]\n")
	}
	b.WriteString("            AppSG[\"App SG Allow: 80, 22\"]\n")
	if hasDB {
		fmt.Fprintf(&b, "            DBSG[\"DB SG Allow: %s, 22\"]\n", db.Port)
	}
	b.WriteString("        end\n")
	b.WriteString("    end\n\n")

	// Data-flow edges.
	if threeTier {
		b.WriteString("    Users -->|HTTP| ALB\n")
		for i := 1; i <= in.AppCount; i++ {
			fmt.Fprintf(&b, "    ALB -->|HTTP| EC2%d\n", i)
			if hasDB {
				fmt.Fprintf(&b, "    EC2%d -->|%s Port %s| DB\n", i, db.Name, db.Port)
			}
		}
	} else {
		for i := 1; i <= in.AppCount; i++ {
			fmt.Fprintf(&b, "    Users -->|HTTP| EC2%d\n", i)
			if hasDB {
				fmt.Fprintf(&b, "    EC2%d -->|%s Port %s| DB\n", i, db.Name, db.Port)
			}
		}
	}

	// Security-group associations are dashed annotations, not data flow.
	// Only the first application node carries the App SG annotation.
	b.WriteString("\n")
	if threeTier {
		b.WriteString("    ALB -.->|Protected by| ALBSG\n")
	}
	if in.AppCount > 0 {
		b.WriteString("    EC21 -.->|Protected by| AppSG\n")
	}
	if hasDB {
		b.WriteString("    DB -.->|Protected by| DBSG\n")
	}

	b.WriteString("\n    style VPC fill:#e0f2fe,stroke:#0369a1,stroke-width:3px\n")
	b.WriteString("    style PublicSubnet fill:#fef3c7,stroke:#d97706,stroke-width:2px\n")
	if hasDB {
		b.WriteString("    style PrivateSubnet fill:#fce7f3,stroke:#be185d,stroke-width:2px\n")
	}
	b.WriteString("    style Internet fill:#f3f4f6,stroke:#6b7280,stroke-width:2px\n")
	if threeTier {
		b.WriteString("    style ALB fill:#d1fae5,stroke:#059669,stroke-width:2px\n")
	}
	if hasDB {
		b.WriteString("    style DB fill:#fce7f3,stroke:#be185d,stroke-width:2px\n")
	}
	b.WriteString("    style Security fill:#ede9fe,stroke:#7c3aed,stroke-width:2px\n")
	for i := 1; i <= in.AppCount; i++ {
		fmt.Fprintf(&b, "    style EC2%d fill:#dbeafe,stroke:#2563eb,stroke-width:2px\n", i)
	}

	return b.String()
}
