// Package section splits a parsed document into titled sections using
// pluggable detection strategies.
package section

import (
	"encoding/json"
	"log/slog"

	"github.com/hazyhaar/govlens/content"
)

// Strategy selects how section boundaries are found.
type Strategy string

const (
	StrategyHeading    Strategy = "heading"
	StrategyPageBreak  Strategy = "page_break"
	StrategyWhitespace Strategy = "whitespace" // alias of heading
	StrategyAI         Strategy = "ai"         // extension point, falls back to heading
	StrategyHybrid     Strategy = "hybrid"
)

// PageRange is the inclusive page span a section covers.
type PageRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Section is a contiguous titled slice of document content.
type Section struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Blocks     []content.Block `json:"-"`
	PageRange  *PageRange      `json:"page_range,omitempty"`
	Confidence float64         `json:"confidence"`
	Method     Strategy        `json:"method"`
}

type sectionWire struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Blocks     json.RawMessage `json:"blocks"`
	PageRange  *PageRange      `json:"page_range,omitempty"`
	Confidence float64         `json:"confidence"`
	Method     Strategy        `json:"method"`
}

// MarshalJSON encodes the section with its blocks in tagged envelope form.
func (s Section) MarshalJSON() ([]byte, error) {
	blocks, err := content.MarshalBlocks(s.Blocks)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sectionWire{
		ID:         s.ID,
		Title:      s.Title,
		Blocks:     blocks,
		PageRange:  s.PageRange,
		Confidence: s.Confidence,
		Method:     s.Method,
	})
}

// UnmarshalJSON decodes the tagged envelope form.
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
		ID:         w.ID,
		Title:      w.Title,
		Blocks:     blocks,
		PageRange:  w.PageRange,
		Confidence: w.Confidence,
		Method:     w.Method,
	}
	return nil
}

// Text returns the concatenated text of the section body.
func (s *Section) Text() string { return content.JoinText(s.Blocks) }

// Words returns the word count of the section body.
func (s *Section) Words() int { return content.WordCount(s.Blocks) }

// Options configures a Detector.
type Options struct {
	// Strategy to apply (default: hybrid).
	Strategy Strategy `json:"strategy" yaml:"strategy"`

	// MinSectionWords merges smaller adjacent sections (default: 50).
	MinSectionWords int `json:"min_section_words" yaml:"min_section_words"`

	// MaxSectionWords splits larger sections at sub-headings (default: 5000).
	MaxSectionWords int `json:"max_section_words" yaml:"max_section_words"`

	// Titles bounds valid section titles.
	Titles content.ConvertOptions `json:"titles" yaml:"titles"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (o *Options) defaults() {
	if o.Strategy == "" {
		o.Strategy = StrategyHybrid
	}
	if o.MinSectionWords <= 0 {
		o.MinSectionWords = 50
	}
	if o.MaxSectionWords <= 0 {
		o.MaxSectionWords = 5000
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
