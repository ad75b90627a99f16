// Package governance grades compensation plans against a requirement
// matrix: A/B/C coverage per policy, 1-5 liability scores, risk trigger
// detection, and conflict identification. It goes beyond "section
// missing" detection to judge governance quality and legal exposure.
package governance

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hazyhaar/govlens/content"
)

// Severity ranks a requirement or conflict.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Status is the outcome of evaluating one requirement against the plan.
type Status string

const (
	StatusMet     Status = "MET"
	StatusPartial Status = "PARTIAL"
	StatusUnmet   Status = "UNMET"
)

// Grade is the coverage grade for a policy: A means 80%+ of its
// requirements are met, B means 40-79%, C means under 40%.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

// CoverageLevel selects how much remediation language a patch carries.
type CoverageLevel string

const (
	CoverageFull    CoverageLevel = "full"
	CoveragePartial CoverageLevel = "partial"
)

// PatchAction is how a recommended patch applies to the plan.
type PatchAction string

const (
	PatchInsert  PatchAction = "INSERT"
	PatchEnhance PatchAction = "ENHANCE"
)

// EvidenceType marks whether a quote supports or contradicts a
// requirement.
type EvidenceType string

const (
	EvidenceSupports  EvidenceType = "SUPPORTS"
	EvidenceConflicts EvidenceType = "CONFLICTS"
)

// Detection holds the machine-verifiable rules for one requirement.
// Positive patterns should appear in the plan, negative patterns should
// not, and required elements are counted toward coverage once any
// positive pattern matches.
type Detection struct {
	PositivePatterns []string          `json:"positive_patterns,omitempty" yaml:"positive_patterns,omitempty"`
	NegativePatterns []string          `json:"negative_patterns,omitempty" yaml:"negative_patterns,omitempty"`
	RequiredElements map[string]string `json:"required_elements,omitempty" yaml:"required_elements,omitempty"`
}

// Requirement is one atomic, checkable obligation a policy places on
// the plan.
type Requirement struct {
	ID             string           `json:"id" yaml:"id"`
	Name           string           `json:"name" yaml:"name"`
	Description    string           `json:"description" yaml:"description"`
	Severity       Severity         `json:"severity" yaml:"severity"`
	Detection      Detection        `json:"detection" yaml:"detection"`
	Scoring        map[Grade]string `json:"scoring,omitempty" yaml:"scoring,omitempty"`
	InsertionPoint string           `json:"insertion_point" yaml:"insertion_point"`
}

// MatrixEntry maps one policy to its requirements.
type MatrixEntry struct {
	PolicyCode   string        `json:"policy_code" yaml:"policy_code"`
	PolicyName   string        `json:"policy_name" yaml:"policy_name"`
	Category     string        `json:"category" yaml:"category"`
	Requirements []Requirement `json:"requirements" yaml:"requirements"`
}

// Matrix is a read-only requirement matrix keyed by policy code.
type Matrix struct {
	entries []MatrixEntry
	byCode  map[string]int
}

func newMatrix(entries []MatrixEntry) *Matrix {
	m := &Matrix{
		entries: make([]MatrixEntry, len(entries)),
		byCode:  make(map[string]int, len(entries)),
	}
	copy(m.entries, entries)
	for i, e := range m.entries {
		m.byCode[e.PolicyCode] = i
	}
	return m
}

// ForPolicy returns the matrix entry for a policy code.
func (m *Matrix) ForPolicy(code string) (MatrixEntry, bool) {
	i, ok := m.byCode[code]
	if !ok {
		return MatrixEntry{}, false
	}
	return m.entries[i], true
}

// Entries returns all matrix entries in order.
func (m *Matrix) Entries() []MatrixEntry {
	out := make([]MatrixEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of policies in the matrix.
func (m *Matrix) Len() int { return len(m.entries) }

// TriggerDef is a plan-language pattern that raises liability. With
// NegativeMatch set (or a pattern prefixed "!") the trigger fires on
// the ABSENCE of the pattern.
type TriggerDef struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	Patterns        []string `json:"patterns" yaml:"patterns"`
	NegativeMatch   bool     `json:"negative_match,omitempty" yaml:"negative_match,omitempty"`
	LiabilityImpact float64  `json:"liability_impact" yaml:"liability_impact"`
}

// Trigger is a TriggerDef that fired, with where it was found.
type Trigger struct {
	TriggerDef
	FoundIn         []string `json:"found_in,omitempty"`
	MatchedPatterns []string `json:"matched_patterns,omitempty"`
}

// Evidence is a quote from the plan tied to a requirement check.
type Evidence struct {
	Section       string       `json:"section"`
	LineReference string       `json:"line_reference"`
	Quote         string       `json:"quote"`
	Type          EvidenceType `json:"type"`
	Confidence    float64      `json:"confidence"`
}

// Conflict records plan language that a policy prohibits.
type Conflict struct {
	ID                string     `json:"id"`
	PlanLanguage      string     `json:"plan_language"`
	PolicyRequirement string     `json:"policy_requirement"`
	Type              string     `json:"type"`
	Severity          Severity   `json:"severity"`
	Evidence          []Evidence `json:"evidence,omitempty"`
}

// RequirementFinding is an evaluated requirement that the plan does not
// fully meet.
type RequirementFinding struct {
	Requirement Requirement `json:"requirement"`
	Status      Status      `json:"status"`
	Evidence    []string    `json:"evidence,omitempty"`
}

// Patch is the remediation recommended for one policy's shortfall.
type Patch struct {
	Type           PatchAction     `json:"type"`
	TargetSection  string          `json:"target_section"`
	InsertionPoint string          `json:"insertion_point"`
	PolicyCode     string          `json:"policy_code"`
	Blocks         []content.Block `json:"-"`
	Markdown       string          `json:"markdown,omitempty"`
	StateNotes     string          `json:"state_notes,omitempty"`
	Warnings       []string        `json:"warnings,omitempty"`
	Rationale      string          `json:"rationale"`
	Priority       Severity        `json:"priority"`
}

type patchWire struct {
	Type           PatchAction     `json:"type"`
	TargetSection  string          `json:"target_section"`
	InsertionPoint string          `json:"insertion_point"`
	PolicyCode     string          `json:"policy_code"`
	Blocks         json.RawMessage `json:"blocks,omitempty"`
	Markdown       string          `json:"markdown,omitempty"`
	StateNotes     string          `json:"state_notes,omitempty"`
	Warnings       []string        `json:"warnings,omitempty"`
	Rationale      string          `json:"rationale"`
	Priority       Severity        `json:"priority"`
}

// MarshalJSON encodes the patch with its blocks in envelope form.
func (p Patch) MarshalJSON() ([]byte, error) {
	blocks, err := content.MarshalBlocks(p.Blocks)
	if err != nil {
		return nil, err
	}
	return json.Marshal(patchWire{
		Type:           p.Type,
		TargetSection:  p.TargetSection,
		InsertionPoint: p.InsertionPoint,
		PolicyCode:     p.PolicyCode,
		Blocks:         blocks,
		Markdown:       p.Markdown,
		StateNotes:     p.StateNotes,
		Warnings:       p.Warnings,
		Rationale:      p.Rationale,
		Priority:       p.Priority,
	})
}

// UnmarshalJSON decodes a patch produced by MarshalJSON.
func (p *Patch) UnmarshalJSON(data []byte) error {
	var w patchWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var blocks []content.Block
	if len(w.Blocks) > 0 {
		var err error
		blocks, err = content.UnmarshalBlocks(w.Blocks)
		if err != nil {
			return err
		}
	}
	*p = Patch{
		Type:           w.Type,
		TargetSection:  w.TargetSection,
		InsertionPoint: w.InsertionPoint,
		PolicyCode:     w.PolicyCode,
		Blocks:         blocks,
		Markdown:       w.Markdown,
		StateNotes:     w.StateNotes,
		Warnings:       w.Warnings,
		Rationale:      w.Rationale,
		Priority:       w.Priority,
	}
	return nil
}

// Entry is the full governance assessment of one policy against the
// plan.
type Entry struct {
	ID                string               `json:"id"`
	GovernanceArea    string               `json:"governance_area"`
	PolicyCode        string               `json:"policy_code"`
	Coverage          Grade                `json:"coverage"`
	Liability         int                  `json:"liability"` // 1-5
	RiskTriggers      []Trigger            `json:"risk_triggers,omitempty"`
	Evidence          []Evidence           `json:"evidence,omitempty"`
	RecommendedPatch  Patch                `json:"recommended_patch"`
	UnmetRequirements []RequirementFinding `json:"unmet_requirements,omitempty"`
	Conflicts         []Conflict           `json:"conflicts,omitempty"`
}

// JurisdictionProfile is the wage-law posture the analysis ran under.
type JurisdictionProfile struct {
	Code         string   `json:"code"`
	Multiplier   float64  `json:"multiplier"`
	WageLawFlags []string `json:"wage_law_flags,omitempty"`
}

// Statistics aggregates an analysis run.
type Statistics struct {
	UnmetRequirements     int              `json:"unmet_requirements"`
	GradeDistribution     map[Grade]int    `json:"grade_distribution"`
	LiabilityDistribution map[int]int      `json:"liability_distribution"`
	SeverityDistribution  map[Severity]int `json:"severity_distribution"`
	TriggerCount          int              `json:"trigger_count"`
	ConflictCount         int              `json:"conflict_count"`
}

// RiskSummary is the executive view of the analysis.
type RiskSummary struct {
	OverallRisk        Severity  `json:"overall_risk"`
	TopTriggers        []Trigger `json:"top_triggers,omitempty"`
	HighLiabilityAreas []string  `json:"high_liability_areas,omitempty"`
	ImmediateActions   []string  `json:"immediate_actions,omitempty"`
}

// Report is the complete governance gap report for one plan.
type Report struct {
	PlanID       string              `json:"plan_id"`
	PlanName     string              `json:"plan_name"`
	AnalyzedAt   time.Time           `json:"analyzed_at"`
	Jurisdiction JurisdictionProfile `json:"jurisdiction"`
	Entries      []Entry             `json:"entries"`
	Statistics   Statistics          `json:"statistics"`
	RiskSummary  RiskSummary         `json:"risk_summary"`
}

// PatchQuery asks a PatchProvider for remediation content.
type PatchQuery struct {
	PolicyCode       string
	RequirementID    string
	Coverage         CoverageLevel
	TargetSectionKey string
	Jurisdiction     string
}

// PatchContent is template-backed remediation language.
type PatchContent struct {
	Blocks     []content.Block
	Markdown   string
	StateNotes string
	Warnings   []string
}

// PatchProvider resolves patch content for a query. Returning false
// makes the analyzer fall back to policy summary content.
type PatchProvider func(q PatchQuery) (PatchContent, bool)

// Options configures the analyzer.
type Options struct {
	// Jurisdiction scales liability scores (default: "CA").
	Jurisdiction string `json:"jurisdiction" yaml:"jurisdiction"`

	// MetThreshold is the fraction of a requirement's checks (positive
	// patterns plus required elements) that must match for MET status
	// (default: 0.8).
	MetThreshold float64 `json:"met_threshold" yaml:"met_threshold"`

	// Matrix overrides the built-in requirement matrix.
	Matrix *Matrix `json:"-" yaml:"-"`

	// Triggers overrides the built-in risk trigger set.
	Triggers []TriggerDef `json:"-" yaml:"-"`

	// Jurisdictions overrides the built-in multiplier table.
	Jurisdictions Jurisdictions `json:"-" yaml:"-"`

	// Patches supplies template-backed remediation content.
	Patches PatchProvider `json:"-" yaml:"-"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (o *Options) defaults() {
	if o.Jurisdiction == "" {
		o.Jurisdiction = "CA"
	}
	if o.MetThreshold <= 0 {
		o.MetThreshold = 0.8
	}
	if o.Matrix == nil {
		o.Matrix = DefaultMatrix()
	}
	if o.Triggers == nil {
		o.Triggers = DefaultTriggers()
	}
	if o.Jurisdictions == nil {
		o.Jurisdictions = DefaultJurisdictions()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
