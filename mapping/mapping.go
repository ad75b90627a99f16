// Package mapping assigns detected document sections to slots of the plan
// template catalog through a tiered matching chain.
package mapping

import "log/slog"

// Method records which tier produced a mapping.
type Method string

const (
	MethodExact  Method = "EXACT"
	MethodFuzzy  Method = "FUZZY"
	MethodAI     Method = "AI"
	MethodManual Method = "MANUAL"
)

// Status is the review state of a mapping.
type Status string

const (
	StatusAccepted Status = "ACCEPTED"
	StatusPending  Status = "PENDING"
	StatusRejected Status = "REJECTED"
)

// Alternative is a runner-up candidate for a mapping.
type Alternative struct {
	TemplateSectionID string  `json:"template_section_id"`
	Score             float64 `json:"score"`
}

// Mapping links one detected section to one template slot. Several
// sections may map to the same slot.
type Mapping struct {
	ID                string        `json:"id"`
	SectionID         string        `json:"section_id"`
	SectionTitle      string        `json:"section_title"`
	TemplateSectionID string        `json:"template_section_id"`
	Confidence        float64       `json:"confidence"`
	Method            Method        `json:"method"`
	Status            Status        `json:"status"`
	Alternatives      []Alternative `json:"alternatives,omitempty"`
}

// Options configures the mapping engine. Zero values take the documented
// defaults.
type Options struct {
	// ExactThreshold is the minimum title similarity for the exact tier
	// (default: 0.95).
	ExactThreshold float64 `json:"exact_threshold" yaml:"exact_threshold"`

	// FuzzyThreshold is the minimum score for the fuzzy tier (default: 0.6).
	FuzzyThreshold float64 `json:"fuzzy_threshold" yaml:"fuzzy_threshold"`

	// AutoAcceptThreshold marks mappings ACCEPTED without review
	// (default: 0.9).
	AutoAcceptThreshold float64 `json:"auto_accept_threshold" yaml:"auto_accept_threshold"`

	// MaxAlternatives bounds the runner-up list (default: 3).
	MaxAlternatives int `json:"max_alternatives" yaml:"max_alternatives"`

	// AITier, when set, runs between the fuzzy and best-guess tiers.
	// The baseline engine ships without one.
	AITier AITier `json:"-" yaml:"-"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (o *Options) defaults() {
	if o.ExactThreshold <= 0 {
		o.ExactThreshold = 0.95
	}
	if o.FuzzyThreshold <= 0 {
		o.FuzzyThreshold = 0.6
	}
	if o.AutoAcceptThreshold <= 0 {
		o.AutoAcceptThreshold = 0.9
	}
	if o.MaxAlternatives <= 0 {
		o.MaxAlternatives = 3
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Statistics aggregates a mapping run.
type Statistics struct {
	Total             int            `json:"total"`
	ByMethod          map[Method]int `json:"by_method"`
	ByStatus          map[Status]int `json:"by_status"`
	AverageConfidence float64        `json:"average_confidence"`
	AutoAccepted      int            `json:"auto_accepted"`
	NeedsReview       int            `json:"needs_review"`
}

// Stats summarizes a set of mappings.
func Stats(mappings []Mapping) Statistics {
	st := Statistics{
		Total:    len(mappings),
		ByMethod: make(map[Method]int),
		ByStatus: make(map[Status]int),
	}
	if len(mappings) == 0 {
		return st
	}
	sum := 0.0
	for _, m := range mappings {
		st.ByMethod[m.Method]++
		st.ByStatus[m.Status]++
		sum += m.Confidence
		if m.Status == StatusAccepted {
			st.AutoAccepted++
		} else if m.Status == StatusPending {
			st.NeedsReview++
		}
	}
	st.AverageConfidence = sum / float64(len(mappings))
	return st
}
