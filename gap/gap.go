package gap

import "log/slog"

// Severity grades a coverage gap.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Action is what a recommendation asks for.
type Action string

const (
	ActionInsert Action = "INSERT"
	ActionAppend Action = "APPEND"
)

// Recommendation is a concrete remediation step attached to a gap.
type Recommendation struct {
	ID               string   `json:"id"`
	PolicyCode       string   `json:"policy_code"`
	Action           Action   `json:"action"`
	TargetSectionKey string   `json:"target_section_key,omitempty"`
	Priority         Severity `json:"priority"`
	Rationale        string   `json:"rationale"`
	EstimatedEffort  string   `json:"estimated_effort"`
}

// Impact quantifies a gap's exposure.
type Impact struct {
	RiskScore int      `json:"risk_score"` // 0-100
	Notes     []string `json:"notes,omitempty"`
}

// Gap is one policy whose vocabulary the document fails to cover.
type Gap struct {
	ID              string           `json:"id"`
	PolicyCode      string           `json:"policy_code"`
	PolicyName      string           `json:"policy_name"`
	Severity        Severity         `json:"severity"`
	Coverage        float64          `json:"coverage"`
	FoundKeywords   []string         `json:"found_keywords,omitempty"`
	MissingKeywords []string         `json:"missing_keywords,omitempty"`
	MissingElements []string         `json:"missing_elements,omitempty"`
	Hits            []KeywordHit     `json:"hits,omitempty"`
	Impact          Impact           `json:"impact"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// Summary aggregates a gap analysis run.
type Summary struct {
	TotalPolicies      int              `json:"total_policies"`
	GapCount           int              `json:"gap_count"`
	BySeverity         map[Severity]int `json:"by_severity"`
	OverallRiskScore   float64          `json:"overall_risk_score"`
	CoveragePercentage float64          `json:"coverage_percentage"`
	TopRiskAreas       []string         `json:"top_risk_areas,omitempty"`
}

// Options configures the gap engine.
type Options struct {
	// MatchThreshold is the keyword coverage below which a policy is a
	// gap (default: 0.3).
	MatchThreshold float64 `json:"match_threshold" yaml:"match_threshold"`

	// Search tunes keyword matching.
	Search SearchOptions `json:"search" yaml:"search"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (o *Options) defaults() {
	if o.MatchThreshold <= 0 {
		o.MatchThreshold = 0.3
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
