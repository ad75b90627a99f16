package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hazyhaar/govlens/content"
)

// ApplyOptions selects and customizes a template.
type ApplyOptions struct {
	PolicyCode        string            `json:"policy_code"`
	RequirementID     string            `json:"requirement_id"`
	Coverage          Coverage          `json:"coverage"`
	PlaceholderValues map[string]string `json:"placeholder_values,omitempty"`
	Jurisdiction      string            `json:"jurisdiction,omitempty"`
}

// Applied is the result of rendering a template.
type Applied struct {
	Blocks     []content.Block `json:"-"`
	Markdown   string          `json:"markdown"`
	Unresolved []Placeholder   `json:"unresolved_placeholders,omitempty"`
	StateNotes string          `json:"state_notes,omitempty"`
	Warnings   []string        `json:"warnings,omitempty"`
}

// Apply renders the template for a requirement: placeholders are
// substituted, the language is converted to content blocks, and
// jurisdiction notes are attached.
func (s *Store) Apply(opts ApplyOptions) (*Applied, error) {
	if opts.Coverage == "" {
		opts.Coverage = CoverageFull
	}
	lang, err := s.ForRequirement(opts.PolicyCode, opts.RequirementID, opts.Coverage)
	if err != nil {
		return nil, err
	}

	markdown, unresolved := substitute(lang, opts.PlaceholderValues)

	applied := &Applied{
		Blocks:     MarkupBlocks(markdown),
		Markdown:   markdown,
		Unresolved: unresolved,
	}
	if opts.Jurisdiction != "" {
		applied.StateNotes = s.StateNotes(opts.PolicyCode, opts.Jurisdiction)
	}

	if len(unresolved) > 0 {
		names := make([]string, len(unresolved))
		for i, p := range unresolved {
			names[i] = p.Name
		}
		applied.Warnings = append(applied.Warnings,
			fmt.Sprintf("unresolved required placeholders: %s", strings.Join(names, ", ")))
	}
	if applied.StateNotes != "" {
		applied.Warnings = append(applied.Warnings,
			"state-specific compliance note: review jurisdiction requirements")
	}
	return applied, nil
}

// substitute fills placeholders from caller values, falling back to the
// template's recommended value. Required placeholders with neither are
// reported unresolved.
func substitute(lang *Language, values map[string]string) (string, []Placeholder) {
	out := lang.Language
	var unresolved []Placeholder
	for _, ph := range lang.Placeholders {
		value := values[ph.Name]
		if value == "" {
			value = ph.Recommended
		}
		if value == "" {
			if ph.Required {
				unresolved = append(unresolved, ph)
			}
			continue
		}
		out = strings.ReplaceAll(out, ph.Name, value)
	}
	return out, unresolved
}

var (
	boldHeadingRe = regexp.MustCompile(`^\*\*(.+)\*\*$`)
	hashHeadingRe = regexp.MustCompile(`^(#+)\s*(.*)$`)
	orderedRe     = regexp.MustCompile(`^\d+\.\s*`)
)

// MarkupBlocks converts template language to content blocks. Lines in
// **bold** or starting with # become headings, runs of numbered or
// dashed lines become lists, everything else becomes paragraphs.
func MarkupBlocks(markup string) []content.Block {
	var blocks []content.Block
	lines := strings.Split(markup, "\n")

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}

		if m := boldHeadingRe.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, content.NewHeading(2, m[1]))
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			m := hashHeadingRe.FindStringSubmatch(trimmed)
			blocks = append(blocks, content.NewHeading(len(m[1]), m[2]))
			continue
		}

		if orderedRe.MatchString(trimmed) {
			var items []content.ListItem
			for i < len(lines) && orderedRe.MatchString(strings.TrimSpace(lines[i])) {
				items = append(items, content.ListItem{
					Text: orderedRe.ReplaceAllString(strings.TrimSpace(lines[i]), ""),
				})
				i++
			}
			i--
			blocks = append(blocks, content.NewList(true, items))
			continue
		}

		if strings.HasPrefix(trimmed, "-") {
			var items []content.ListItem
			for i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), "-") {
				items = append(items, content.ListItem{
					Text: strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[i]), "-")),
				})
				i++
			}
			i--
			blocks = append(blocks, content.NewList(false, items))
			continue
		}

		blocks = append(blocks, content.NewParagraph(trimmed))
	}
	return blocks
}

// MergeOptions controls how patch blocks join existing content.
type MergeOptions struct {
	// Position places the patch at the start, end, or in place of the
	// existing blocks (default: END).
	Position Position `json:"position"`

	// Divider inserts a divider between existing and patch content.
	Divider bool `json:"divider"`
}

// Merge combines existing section blocks with patch blocks. Duplicate
// blocks, judged by content signature, are dropped keeping the first
// occurrence.
func Merge(existing, patched []content.Block, opts MergeOptions) []content.Block {
	if opts.Position == "" {
		opts.Position = PositionEnd
	}

	var merged []content.Block
	switch opts.Position {
	case PositionReplace:
		merged = append(merged, patched...)
	case PositionStart:
		merged = append(merged, patched...)
		if opts.Divider && len(existing) > 0 && len(patched) > 0 {
			merged = append(merged, content.NewDivider())
		}
		merged = append(merged, existing...)
	default:
		merged = append(merged, existing...)
		if opts.Divider && len(existing) > 0 && len(patched) > 0 {
			merged = append(merged, content.NewDivider())
		}
		merged = append(merged, patched...)
	}

	seen := make(map[string]struct{}, len(merged))
	out := merged[:0]
	for _, b := range merged {
		sig := content.Signature(b)
		if _, ok := seen[sig]; ok {
			continue
		}
		seen[sig] = struct{}{}
		out = append(out, b)
	}
	return out
}
