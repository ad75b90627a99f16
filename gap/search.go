// Package gap scores how well a plan document covers each governance
// policy's vocabulary and turns shortfalls into graded gaps.
package gap

import (
	"regexp"
	"strings"

	"github.com/hazyhaar/govlens/section"
)

// KeywordHit is one occurrence of a policy keyword inside a section.
type KeywordHit struct {
	Keyword      string `json:"keyword"`
	SectionID    string `json:"section_id"`
	SectionTitle string `json:"section_title"`
	Context      string `json:"context"`
}

// SearchOptions tunes keyword matching.
type SearchOptions struct {
	CaseSensitive bool `json:"case_sensitive" yaml:"case_sensitive"`
	WholeWord     bool `json:"whole_word" yaml:"whole_word"`
}

const contextWindow = 50

// FindKeyword searches every section for a keyword and returns each hit
// with a context excerpt around the first occurrence per section.
func FindKeyword(sections []section.Section, keyword string, opts SearchOptions) []KeywordHit {
	re, err := keywordRegexp(keyword, opts)
	if err != nil {
		return nil
	}

	var hits []KeywordHit
	for i := range sections {
		text := sections[i].Title + "\n" + sections[i].Text()
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		hits = append(hits, KeywordHit{
			Keyword:      keyword,
			SectionID:    sections[i].ID,
			SectionTitle: sections[i].Title,
			Context:      excerpt(text, loc[0], loc[1]),
		})
	}
	return hits
}

func keywordRegexp(keyword string, opts SearchOptions) (*regexp.Regexp, error) {
	pattern := regexp.QuoteMeta(keyword)
	if opts.WholeWord {
		pattern = `\b` + pattern + `\b`
	}
	if !opts.CaseSensitive {
		pattern = `(?i)` + pattern
	}
	return regexp.Compile(pattern)
}

// excerpt cuts a window around a match, adding ellipses at cut edges.
func excerpt(text string, start, end int) string {
	from := start - contextWindow
	if from < 0 {
		from = 0
	}
	to := end + contextWindow
	if to > len(text) {
		to = len(text)
	}

	out := strings.Join(strings.Fields(text[from:to]), " ")
	if from > 0 {
		out = "..." + out
	}
	if to < len(text) {
		out = out + "..."
	}
	return out
}
