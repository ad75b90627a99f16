// Package plan assembles the final plan document: accepted section
// mappings fill template slots, recommendations cover the gaps, and
// every slot gets a completion status.
package plan

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hazyhaar/govlens/content"
	"github.com/hazyhaar/govlens/gap"
)

// CompletionStatus grades how filled a plan section is.
type CompletionStatus string

const (
	CompletionEmpty    CompletionStatus = "EMPTY"
	CompletionPartial  CompletionStatus = "PARTIAL"
	CompletionComplete CompletionStatus = "COMPLETE"
)

// Source records where a plan section's content came from.
type Source string

const (
	SourceMapping        Source = "DOCUMENT_MAPPING"
	SourceRecommendation Source = "POLICY_RECOMMENDATION"
	SourceManual         Source = "MANUAL"
	SourceMultiple       Source = "MULTIPLE"
)

// Section is one assembled plan section.
type Section struct {
	ID            string           `json:"id"`
	SectionKey    string           `json:"section_key"`
	Title         string           `json:"title"`
	SectionNumber string           `json:"section_number"`
	Blocks        []content.Block  `json:"-"`
	Completion    CompletionStatus `json:"completion"`
	AutoPopulated bool             `json:"auto_populated"`
	Source        Source           `json:"source"`
}

type sectionWire struct {
	ID            string           `json:"id"`
	SectionKey    string           `json:"section_key"`
	Title         string           `json:"title"`
	SectionNumber string           `json:"section_number"`
	Blocks        json.RawMessage  `json:"blocks"`
	Completion    CompletionStatus `json:"completion"`
	AutoPopulated bool             `json:"auto_populated"`
	Source        Source           `json:"source"`
}

// MarshalJSON encodes the section with envelope-form blocks.
func (s Section) MarshalJSON() ([]byte, error) {
	blocks, err := content.MarshalBlocks(s.Blocks)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sectionWire{
		ID:            s.ID,
		SectionKey:    s.SectionKey,
		Title:         s.Title,
		SectionNumber: s.SectionNumber,
		Blocks:        blocks,
		Completion:    s.Completion,
		AutoPopulated: s.AutoPopulated,
		Source:        s.Source,
	})
}

// UnmarshalJSON decodes a section produced by MarshalJSON.
func (s *Section) UnmarshalJSON(data []byte) error {
	var w sectionWire
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
	*s = Section{
		ID:            w.ID,
		SectionKey:    w.SectionKey,
		Title:         w.Title,
		SectionNumber: w.SectionNumber,
		Blocks:        blocks,
		Completion:    w.Completion,
		AutoPopulated: w.AutoPopulated,
		Source:        w.Source,
	}
	return nil
}

// Plan is the assembled plan document.
type Plan struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Code                 string    `json:"code"`
	Sections             []Section `json:"sections"`
	CompletionPercentage int       `json:"completion_percentage"`
	CreatedAt            time.Time `json:"created_at"`
}

// Stats aggregates an assembly run.
type Stats struct {
	SectionsMapped         int `json:"sections_mapped"`
	AutoAcceptedMappings   int `json:"auto_accepted_mappings"`
	Recommendations        int `json:"recommendations"`
	RecommendationsApplied int `json:"recommendations_applied"`
	PlanSections           int `json:"plan_sections"`
	CompletionPercentage   int `json:"completion_percentage"`
}

// Options configures the assembler.
type Options struct {
	// ApplyRecommendations merges recommendation content into plan
	// sections. Off by default so generated language stays a proposal.
	ApplyRecommendations bool `json:"apply_recommendations" yaml:"apply_recommendations"`

	// MinApplyPriority is the lowest recommendation priority that
	// ApplyRecommendations merges (default: CRITICAL).
	MinApplyPriority gap.Severity `json:"min_apply_priority" yaml:"min_apply_priority"`

	// Dividers separates merged content runs (default: true).
	Dividers *bool `json:"dividers,omitempty" yaml:"dividers,omitempty"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (o *Options) defaults() {
	if o.MinApplyPriority == "" {
		o.MinApplyPriority = gap.SeverityCritical
	}
	if o.Dividers == nil {
		v := true
		o.Dividers = &v
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
