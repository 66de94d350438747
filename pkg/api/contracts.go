package api

// ValidationResult is the Static Validator's report over generated code.
// Valid is true iff Errors is empty; warnings and suggestions are advisory
// and never affect validity.
type ValidationResult struct {
	Valid         bool     `json:"valid"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	ResourceCount int      `json:"resource_count"`
	Suggestions   []string `json:"suggestions"`
}

// CostEstimate is the coarse monthly projection from the flat price table.
// Superseded by CloudBill for the user-facing figure but retained for
// backward compatibility.
type CostEstimate struct {
	MonthlyCost      float64            `json:"monthly_cost"`
	Breakdown        map[string]float64 `json:"breakdown"`
	FreeTierEligible bool               `json:"free_tier_eligible"`
	OptimizationTips []string           `json:"cost_optimization_tips"`
	EstimatedAnnual  float64            `json:"estimated_annual"`
}

// BillItem is one line of the itemized bill.
type BillItem struct {
	Service       string  `json:"service"`
	Specification string  `json:"specification"`
	Unit          string  `json:"unit"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	Total         float64 `json:"total"` // quantity x unit price, rounded to cents
	FreeTier      bool    `json:"free_tier"`
	Category      string  `json:"category"` // Compute, Database, Storage, Networking, Monitoring
}

// Bill item categories.
const (
	CategoryCompute    = "Compute"
	CategoryDatabase   = "Database"
	CategoryStorage    = "Storage"
	CategoryNetworking = "Networking"
	CategoryMonitoring = "Monitoring"
)

// SavingsPlan projects hypothetical savings for one pricing scheme. It is
// a side channel: nothing in the bill total reflects it.
type SavingsPlan struct {
	SavingsPercentage int     `json:"savings_percentage"`
	MonthlySavings    float64 `json:"monthly_savings"`
	AnnualSavings     float64 `json:"annual_savings"`
	Note              string  `json:"note,omitempty"`
}

// CloudBill is the Detailed Bill Estimator's output.
type CloudBill struct {
	EstimatedMonthly      float64                `json:"estimated_monthly"`
	EstimatedMonthlyCost  float64                `json:"estimated_monthly_cost"` // explicit numeric field the frontend expects
	EstimatedAnnual       float64                `json:"estimated_annual"`
	FreeTierSavings       float64                `json:"free_tier_savings"`
	BillItems             []BillItem             `json:"bill_items"`
	CategoryBreakdown     map[string]float64     `json:"category_breakdown"`
	Region                string                 `json:"region"`
	Currency              string                 `json:"currency"`
	EstimationDate        string                 `json:"estimation_date"`
	Recommendations       []string               `json:"recommendations"`
	FreeTierEligible      bool                   `json:"free_tier_eligible"`
	OptimizationPotential map[string]SavingsPlan `json:"cost_optimization_potential"`
}

// Finding is one atomic observation from the Security Analyzer.
type Finding struct {
	Type     string `json:"type"` // positive, negative, info
	Category string `json:"category"`
	Finding  string `json:"finding"`
	Severity string `json:"severity"` // info, medium, high
}

// Finding types.
const (
	FindingPositive = "positive"
	FindingNegative = "negative"
	FindingInfo     = "info"
)

// Finding severities.
const (
	SeverityInfo   = "info"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// SecurityReport is the Security Analyzer's output. Score starts at 100
// and each negative finding subtracts a fixed penalty, floored at 0.
type SecurityReport struct {
	SecurityScore   int             `json:"security_score"`
	SecurityLevel   string          `json:"security_level"` // Good, Moderate, Poor, Critical
	Findings        []Finding       `json:"findings"`
	Recommendations []string        `json:"recommendations"`
	Compliance      map[string]bool `json:"compliance"`
}

// SecurityLevel maps a 0-100 score to its display tier.
func SecurityLevel(score int) string {
	switch {
	case score >= 80:
		return "Good"
	case score >= 60:
		return "Moderate"
	case score >= 40:
		return "Poor"
	default:
		return "Critical"
	}
}

// InfrastructureResponse is the unified record returned by /generate.
type InfrastructureResponse struct {
	Intent           Intent           `json:"intent"`
	TerraformCode    string           `json:"terraform_code"`
	Diagram          string           `json:"diagram"`
	Explanation      string           `json:"explanation"`
	Validation       ValidationResult `json:"validation"`
	CostEstimation   CostEstimate     `json:"cost_estimation"`
	CloudBill        CloudBill        `json:"cloud_bill"`
	SecurityAnalysis SecurityReport   `json:"security_analysis"`
}
