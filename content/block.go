// Package content defines the typed block model for plan documents and
// converts parsed document elements into it.
//
// A document body is a flat ordered list of blocks. The block set is closed:
// heading, paragraph, list, table, callout, divider. Consumers dispatch with
// a type switch; the unexported marker method keeps the set closed.
package content

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Block is one unit of plan content.
type Block interface {
	// ID returns the stable identifier assigned at creation.
	ID() string
	block()
}

// ListItem is a single entry of a List block.
type ListItem struct {
	Text   string `json:"text"`
	Indent int    `json:"indent"`
}

// TableRow is a single row of a Table block.
type TableRow struct {
	Cells []string `json:"cells"`
}

// CalloutVariant classifies a Callout block.
type CalloutVariant string

const (
	CalloutInfo    CalloutVariant = "info"
	CalloutWarning CalloutVariant = "warning"
	CalloutError   CalloutVariant = "error"
	CalloutSuccess CalloutVariant = "success"
)

type Heading struct {
	BlockID string `json:"id"`
	Level   int    `json:"level"` // 1-6
	Text    string `json:"content"`
}

type Paragraph struct {
	BlockID string `json:"id"`
	Text    string `json:"content"`
}

type List struct {
	BlockID string     `json:"id"`
	Ordered bool       `json:"ordered"`
	Items   []ListItem `json:"items"`
}

type Table struct {
	BlockID string     `json:"id"`
	Headers []string   `json:"headers"`
	Rows    []TableRow `json:"rows"`
}

type Callout struct {
	BlockID string         `json:"id"`
	Variant CalloutVariant `json:"variant"`
	Text    string         `json:"content"`
}

type Divider struct {
	BlockID string `json:"id"`
}

func (b Heading) ID() string   { return b.BlockID }
func (b Paragraph) ID() string { return b.BlockID }
func (b List) ID() string      { return b.BlockID }
func (b Table) ID() string     { return b.BlockID }
func (b Callout) ID() string   { return b.BlockID }
func (b Divider) ID() string   { return b.BlockID }

func (Heading) block()   {}
func (Paragraph) block() {}
func (List) block()      {}
func (Table) block()     {}
func (Callout) block()   {}
func (Divider) block()   {}

// NewID returns a fresh block identifier.
func NewID() string { return uuid.NewString() }

// NewHeading builds a heading block with the level clamped to 1-6.
func NewHeading(level int, text string) Heading {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Heading{BlockID: NewID(), Level: level, Text: text}
}

func NewParagraph(text string) Paragraph {
	return Paragraph{BlockID: NewID(), Text: text}
}

func NewList(ordered bool, items []ListItem) List {
	return List{BlockID: NewID(), Ordered: ordered, Items: items}
}

func NewTable(headers []string, rows []TableRow) Table {
	return Table{BlockID: NewID(), Headers: headers, Rows: rows}
}

func NewCallout(variant CalloutVariant, text string) Callout {
	return Callout{BlockID: NewID(), Variant: variant, Text: text}
}

func NewDivider() Divider {
	return Divider{BlockID: NewID()}
}

// Text returns the searchable text of a single block.
func Text(b Block) string {
	switch v := b.(type) {
	case Heading:
		return v.Text
	case Paragraph:
		return v.Text
	case Callout:
		return v.Text
	case List:
		parts := make([]string, len(v.Items))
		for i, it := range v.Items {
			parts[i] = it.Text
		}
		return strings.Join(parts, "\n")
	case Table:
		var sb strings.Builder
		sb.WriteString(strings.Join(v.Headers, " | "))
		for _, row := range v.Rows {
			sb.WriteByte('\n')
			sb.WriteString(strings.Join(row.Cells, " | "))
		}
		return sb.String()
	case Divider:
		return ""
	}
	return ""
}

// JoinText concatenates the text of all blocks separated by newlines.
func JoinText(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		t := Text(b)
		if t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(t)
	}
	return sb.String()
}

// WordCount counts whitespace-separated words across all blocks.
func WordCount(blocks []Block) int {
	n := 0
	for _, b := range blocks {
		n += len(strings.Fields(Text(b)))
	}
	return n
}

// Signature returns a content-identity key used for deduplication when
// merging block lists. Dividers are keyed by ID so they never collapse.
func Signature(b Block) string {
	switch v := b.(type) {
	case Heading:
		return "heading:" + strconv.Itoa(v.Level) + ":" + normSig(v.Text)
	case Paragraph:
		return "paragraph:" + normSig(v.Text)
	case List:
		kind := "unordered"
		if v.Ordered {
			kind = "ordered"
		}
		parts := make([]string, len(v.Items))
		for i, it := range v.Items {
			parts[i] = normSig(it.Text)
		}
		return "list:" + kind + ":" + strings.Join(parts, "|")
	case Table:
		return "table:" + normSig(strings.Join(v.Headers, "|")) + ":" + strconv.Itoa(len(v.Rows))
	case Callout:
		return "callout:" + string(v.Variant) + ":" + normSig(v.Text)
	case Divider:
		return "divider:" + v.BlockID
	}
	return ""
}

func normSig(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
