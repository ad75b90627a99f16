package content

import (
	"strings"
	"testing"

	"github.com/hazyhaar/govlens/docpipe"
)

func TestBlockJSONRoundTrip(t *testing.T) {
	blocks := []Block{
		NewHeading(2, "Payout Terms"),
		NewParagraph("Commission is paid monthly."),
		NewList(true, []ListItem{{Text: "First"}, {Text: "Second", Indent: 1}}),
		NewTable([]string{"Tier", "Rate"}, []TableRow{{Cells: []string{"Base", "5%"}}}),
		NewCallout(CalloutWarning, "Review with counsel."),
		NewDivider(),
	}

	data, err := MarshalBlocks(blocks)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := UnmarshalBlocks(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != len(blocks) {
		t.Fatalf("expected %d blocks, got %d", len(blocks), len(decoded))
	}

	h, ok := decoded[0].(Heading)
	if !ok || h.Level != 2 || h.Text != "Payout Terms" {
		t.Errorf("heading round trip failed: %+v", decoded[0])
	}
	if h.ID() != blocks[0].ID() {
		t.Error("block IDs should survive the round trip")
	}
	l, ok := decoded[2].(List)
	if !ok || !l.Ordered || len(l.Items) != 2 || l.Items[1].Indent != 1 {
		t.Errorf("list round trip failed: %+v", decoded[2])
	}
	c, ok := decoded[4].(Callout)
	if !ok || c.Variant != CalloutWarning {
		t.Errorf("callout round trip failed: %+v", decoded[4])
	}
}

func TestUnmarshalBlocksUnknownType(t *testing.T) {
	if _, err := UnmarshalBlocks([]byte(`[{"type":"video","content":"x"}]`)); err == nil {
		t.Fatal("expected error for unknown block type")
	}
}

func TestTextHelpers(t *testing.T) {
	blocks := []Block{
		NewHeading(1, "Overview"),
		NewParagraph("Two words"),
		NewTable([]string{"A", "B"}, []TableRow{{Cells: []string{"c", "d"}}}),
		NewDivider(),
	}
	joined := JoinText(blocks)
	if !strings.Contains(joined, "Overview") || !strings.Contains(joined, "A | B") {
		t.Errorf("unexpected joined text: %q", joined)
	}
	// Overview(1) + Two words(2) + table cells and separators(6)
	if wc := WordCount(blocks); wc != 9 {
		t.Errorf("word count = %d, want 9", wc)
	}
}

func TestSignature(t *testing.T) {
	a := NewParagraph("Same   Content")
	b := NewParagraph("same content")
	if Signature(a) != Signature(b) {
		t.Error("signatures should normalize case and whitespace")
	}
	d1, d2 := NewDivider(), NewDivider()
	if Signature(d1) == Signature(d2) {
		t.Error("dividers must never share a signature")
	}
}

func TestConvertHeadingAndParagraph(t *testing.T) {
	blocks := Convert([]docpipe.Element{
		{Type: docpipe.ElementHeading, Text: "Eligibility", Level: 9},
		{Type: docpipe.ElementParagraph, Text: "All sellers participate."},
		{Type: docpipe.ElementParagraph, Text: "   "},
	}, ConvertOptions{})

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	h := blocks[0].(Heading)
	if h.Level != 6 {
		t.Errorf("heading level should clamp to 6, got %d", h.Level)
	}
	if _, ok := blocks[1].(Paragraph); !ok {
		t.Errorf("expected paragraph, got %T", blocks[1])
	}
}

func TestConvertListParagraph(t *testing.T) {
	text := "- First item\n- Second item\n3. Third numbered\nplain trailer"
	blocks := Convert([]docpipe.Element{{Type: docpipe.ElementParagraph, Text: text}}, ConvertOptions{})

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	l, ok := blocks[0].(List)
	if !ok {
		t.Fatalf("expected list, got %T", blocks[0])
	}
	if !l.Ordered {
		t.Error("any numbered line should mark the list ordered")
	}
	if len(l.Items) != 4 {
		t.Errorf("expected 4 items, got %d", len(l.Items))
	}
	if l.Items[0].Text != "First item" {
		t.Errorf("marker should be stripped, got %q", l.Items[0].Text)
	}
}

func TestConvertEmptyTable(t *testing.T) {
	blocks := Convert([]docpipe.Element{{Type: docpipe.ElementTable}}, ConvertOptions{})
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	h, ok := blocks[0].(Heading)
	if !ok || h.Level != 3 || h.Text != "[Empty Table]" {
		t.Errorf("empty table should degrade to placeholder heading, got %+v", blocks[0])
	}
}

func TestIsValidSectionTitle(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Commission Structure", true},
		{"Terms:", true},
		{"ab", false},
		{"12345", false},
		{"This ends badly.", false},
		{"Why would you ask?", false},
		{strings.Repeat("x", 201), false},
	}
	for _, tt := range tests {
		if got := IsValidSectionTitle(tt.title, ConvertOptions{}); got != tt.want {
			t.Errorf("IsValidSectionTitle(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}
