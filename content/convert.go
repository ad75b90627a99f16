package content

import (
	"regexp"
	"strings"

	"github.com/hazyhaar/govlens/docpipe"
)

// ConvertOptions tunes element-to-block conversion.
type ConvertOptions struct {
	// MinTitleLength / MaxTitleLength bound valid section titles.
	MinTitleLength int
	MaxTitleLength int
}

func (o *ConvertOptions) defaults() {
	if o.MinTitleLength <= 0 {
		o.MinTitleLength = 3
	}
	if o.MaxTitleLength <= 0 {
		o.MaxTitleLength = 200
	}
}

var (
	bulletLineRe   = regexp.MustCompile(`^\s*[-•*]\s+`)
	numberedLineRe = regexp.MustCompile(`^\s*\d+[.)]\s+`)
	digitsOnlyRe   = regexp.MustCompile(`^\d+$`)
)

// Convert maps a parsed element stream onto the block model, preserving
// order. Paragraphs whose lines are mostly bulleted or numbered are
// reclassified as lists; empty tables degrade to a placeholder heading.
func Convert(elements []docpipe.Element, opts ConvertOptions) []Block {
	opts.defaults()

	blocks := make([]Block, 0, len(elements))
	for _, el := range elements {
		if b, ok := convertElement(el); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func convertElement(el docpipe.Element) (Block, bool) {
	switch el.Type {
	case docpipe.ElementHeading:
		text := strings.TrimSpace(el.Text)
		if text == "" {
			return nil, false
		}
		return NewHeading(el.Level, text), true

	case docpipe.ElementParagraph:
		text := strings.TrimSpace(el.Text)
		if text == "" {
			return nil, false
		}
		if items, ordered, ok := listFromParagraph(text); ok {
			return NewList(ordered, items), true
		}
		return NewParagraph(text), true

	case docpipe.ElementList:
		items := make([]ListItem, 0, len(el.Items))
		ordered := el.Ordered
		for _, raw := range el.Items {
			text := strings.TrimSpace(raw)
			if text == "" {
				continue
			}
			if numberedLineRe.MatchString(text) {
				ordered = true
			}
			items = append(items, ListItem{Text: stripListMarker(text)})
		}
		if len(items) == 0 {
			return nil, false
		}
		return NewList(ordered, items), true

	case docpipe.ElementTable:
		if len(el.Headers) == 0 && len(el.Rows) == 0 {
			return NewHeading(3, "[Empty Table]"), true
		}
		rows := make([]TableRow, 0, len(el.Rows))
		for _, r := range el.Rows {
			rows = append(rows, TableRow{Cells: r})
		}
		return NewTable(el.Headers, rows), true
	}
	return nil, false
}

// listFromParagraph detects paragraphs that are really lists: at least two
// lines with more than half of them carrying a bullet or number marker.
func listFromParagraph(text string) ([]ListItem, bool, bool) {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return nil, false, false
	}
	marked := 0
	ordered := false
	for _, line := range lines {
		if bulletLineRe.MatchString(line) {
			marked++
		} else if numberedLineRe.MatchString(line) {
			marked++
			ordered = true
		}
	}
	if marked*2 <= len(lines) {
		return nil, false, false
	}

	var items []ListItem
	for _, line := range lines {
		item := stripListMarker(strings.TrimSpace(line))
		if item != "" {
			items = append(items, ListItem{Text: item, Indent: lineIndent(line)})
		}
	}
	return items, ordered, len(items) > 0
}

func stripListMarker(line string) string {
	line = bulletLineRe.ReplaceAllString(line, "")
	line = numberedLineRe.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

func lineIndent(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n / 2
		}
	}
	return 0
}

// IsValidSectionTitle reports whether text can serve as a section title:
// within length bounds, not purely numeric, and free of terminal sentence
// punctuation (a trailing colon is allowed).
func IsValidSectionTitle(text string, opts ConvertOptions) bool {
	opts.defaults()

	t := strings.TrimSpace(text)
	if len(t) < opts.MinTitleLength || len(t) > opts.MaxTitleLength {
		return false
	}
	if digitsOnlyRe.MatchString(t) {
		return false
	}
	if strings.HasSuffix(t, ":") {
		return true
	}
	switch {
	case strings.HasSuffix(t, "."), strings.HasSuffix(t, "!"),
		strings.HasSuffix(t, "?"), strings.HasSuffix(t, ","):
		return false
	}
	return true
}
