package models

// RequirementMatch is a tender requirement the model judged satisfied by the
// proposal. Category is one of: technical, financial, legal, experience,
// certification, insurance. The model is the source of truth for content;
// values are passed through as received.
type RequirementMatch struct {
	ID          int    `json:"id"`
	Requirement string `json:"requirement"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Evidence    string `json:"evidence,omitempty"`
	Category    string `json:"category"`
}

// RequirementMismatch is a requirement the model judged missing, insufficient
// or non-compliant. Impact is one of: high, medium, low.
type RequirementMismatch struct {
	ID             int    `json:"id"`
	Requirement    string `json:"requirement"`
	Status         string `json:"status"`
	Description    string `json:"description"`
	Impact         string `json:"impact"`
	Category       string `json:"category"`
	Recommendation string `json:"recommendation,omitempty"`
}

// SummaryStats are aggregate figures produced by the model. They are not
// guaranteed internally consistent: matched + mismatched may differ from
// total. That is an accepted property of model-generated numbers, not
// something this service corrects.
type SummaryStats struct {
	TotalRequirements      int     `json:"totalRequirements"`
	MatchedRequirements    int     `json:"matchedRequirements"`
	MismatchedRequirements int     `json:"mismatchedRequirements"`
	ComplianceRate         float64 `json:"complianceRate"`
	RiskLevel              string  `json:"riskLevel"`
	CompetitivePosition    string  `json:"competitivePosition"`
}

// AnalysisResult is the full compliance comparison returned to the client.
// It is produced once per analyze call and never stored server-side; the
// client resends it as chat context.
type AnalysisResult struct {
	Matches          []RequirementMatch    `json:"matches"`
	Mismatches       []RequirementMismatch `json:"mismatches"`
	Recommendations  []string              `json:"recommendations,omitempty"`
	Summary          SummaryStats          `json:"summary"`
	DetailedAnalysis map[string]string     `json:"detailedAnalysis,omitempty"`
}
