// Package recommend turns gap analysis results into ready-to-insert
// policy recommendations, each carrying generated content blocks.
package recommend

import (
	"encoding/json"
	"log/slog"

	"github.com/hazyhaar/govlens/content"
	"github.com/hazyhaar/govlens/gap"
)

// Style controls how much policy content a recommendation carries.
type Style string

const (
	// StyleDetailed renders purpose, objectives, all provisions, and
	// compliance references.
	StyleDetailed Style = "detailed"

	// StyleSummary renders the summary and provision titles.
	StyleSummary Style = "summary"

	// StyleMinimal renders the summary and a pointer to the policy.
	StyleMinimal Style = "minimal"

	// StyleCompliance renders a compliance warning and critical
	// provisions only. Used automatically for CRITICAL gaps.
	StyleCompliance Style = "compliance"
)

// Recommendation is one gap turned into insertable content.
type Recommendation struct {
	ID               string          `json:"id"`
	GapID            string          `json:"gap_id"`
	PolicyCode       string          `json:"policy_code"`
	PolicyName       string          `json:"policy_name"`
	Action           gap.Action      `json:"action"`
	TargetSectionKey string          `json:"target_section_key,omitempty"`
	Blocks           []content.Block `json:"-"`
	Preview          string          `json:"preview"`
	Rationale        string          `json:"rationale"`
	Priority         gap.Severity    `json:"priority"`
	EstimatedEffort  string          `json:"estimated_effort"`
	Style            Style           `json:"style"`
}

type recommendationWire struct {
	ID               string          `json:"id"`
	GapID            string          `json:"gap_id"`
	PolicyCode       string          `json:"policy_code"`
	PolicyName       string          `json:"policy_name"`
	Action           gap.Action      `json:"action"`
	TargetSectionKey string          `json:"target_section_key,omitempty"`
	Blocks           json.RawMessage `json:"blocks"`
	Preview          string          `json:"preview"`
	Rationale        string          `json:"rationale"`
	Priority         gap.Severity    `json:"priority"`
	EstimatedEffort  string          `json:"estimated_effort"`
	Style            Style           `json:"style"`
}

// MarshalJSON encodes the recommendation with envelope-form blocks.
func (r Recommendation) MarshalJSON() ([]byte, error) {
	blocks, err := content.MarshalBlocks(r.Blocks)
	if err != nil {
		return nil, err
	}
	return json.Marshal(recommendationWire{
		ID:               r.ID,
		GapID:            r.GapID,
		PolicyCode:       r.PolicyCode,
		PolicyName:       r.PolicyName,
		Action:           r.Action,
		TargetSectionKey: r.TargetSectionKey,
		Blocks:           blocks,
		Preview:          r.Preview,
		Rationale:        r.Rationale,
		Priority:         r.Priority,
		EstimatedEffort:  r.EstimatedEffort,
		Style:            r.Style,
	})
}

// UnmarshalJSON decodes a recommendation produced by MarshalJSON.
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var w recommendationWire
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
	*r = Recommendation{
		ID:               w.ID,
		GapID:            w.GapID,
		PolicyCode:       w.PolicyCode,
		PolicyName:       w.PolicyName,
		Action:           w.Action,
		TargetSectionKey: w.TargetSectionKey,
		Blocks:           blocks,
		Preview:          w.Preview,
		Rationale:        w.Rationale,
		Priority:         w.Priority,
		EstimatedEffort:  w.EstimatedEffort,
		Style:            w.Style,
	}
	return nil
}

// Options configures the generator.
type Options struct {
	// Style selects the default content style for non-critical gaps
	// (default: detailed).
	Style Style `json:"style" yaml:"style"`

	// IncludeCompliance renders law citations as a callout.
	IncludeCompliance *bool `json:"include_compliance,omitempty" yaml:"include_compliance,omitempty"`

	// IncludeProvisions renders the provisions list.
	IncludeProvisions *bool `json:"include_provisions,omitempty" yaml:"include_provisions,omitempty"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (o *Options) defaults() {
	if o.Style == "" {
		o.Style = StyleDetailed
	}
	if o.IncludeCompliance == nil {
		v := true
		o.IncludeCompliance = &v
	}
	if o.IncludeProvisions == nil {
		v := true
		o.IncludeProvisions = &v
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
