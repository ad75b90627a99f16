package section

import (
	"strings"
	"testing"

	"github.com/hazyhaar/govlens/content"
	"github.com/hazyhaar/govlens/docpipe"
)

func heading(text string, level int) docpipe.Element {
	return docpipe.Element{Type: docpipe.ElementHeading, Text: text, Level: level}
}

func para(text string) docpipe.Element {
	return docpipe.Element{Type: docpipe.ElementParagraph, Text: text}
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestDetectByHeading(t *testing.T) {
	res := &docpipe.Result{Elements: []docpipe.Element{
		para("Preamble before any heading."),
		heading("Commission Structure", 1),
		para(words(60)),
		heading("Payout Terms", 2),
		para(words(60)),
	}}

	d := NewDetector(Options{Strategy: StrategyHeading, MinSectionWords: 1})
	sections := d.Detect(res)

	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	if sections[0].Title != "Introduction" {
		t.Errorf("leading content should land in Introduction, got %q", sections[0].Title)
	}
	if sections[1].Title != "Commission Structure" || sections[2].Title != "Payout Terms" {
		t.Errorf("unexpected titles: %q, %q", sections[1].Title, sections[2].Title)
	}
	for _, s := range sections {
		if s.Method != StrategyHeading || s.Confidence != 0.9 {
			t.Errorf("section %q: method=%s confidence=%f", s.Title, s.Method, s.Confidence)
		}
		if s.ID == "" {
			t.Error("sections need IDs")
		}
	}
}

func TestDetectInvalidTitleNotBoundary(t *testing.T) {
	res := &docpipe.Result{Elements: []docpipe.Element{
		heading("Overview", 1),
		para(words(10)),
		heading("12345", 1), // numeric, not a valid title
		para(words(10)),
	}}

	d := NewDetector(Options{Strategy: StrategyHeading, MinSectionWords: 1})
	sections := d.Detect(res)
	if len(sections) != 1 {
		t.Fatalf("numeric heading should not open a section, got %d sections", len(sections))
	}
}

func TestDetectByPageBreak(t *testing.T) {
	res := &docpipe.Result{
		PageCount: 2,
		Elements: []docpipe.Element{
			{Type: docpipe.ElementParagraph, Text: words(60), Page: 1},
			{Type: docpipe.ElementParagraph, Text: words(60), Page: 2},
		},
	}

	d := NewDetector(Options{Strategy: StrategyPageBreak, MinSectionWords: 1})
	sections := d.Detect(res)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "Page 1" || sections[1].Title != "Page 2" {
		t.Errorf("unexpected titles: %q, %q", sections[0].Title, sections[1].Title)
	}
	if sections[0].PageRange == nil || sections[0].PageRange.Start != 1 {
		t.Errorf("unexpected page range: %+v", sections[0].PageRange)
	}
}

func TestDetectHybridFallsBackToPages(t *testing.T) {
	res := &docpipe.Result{
		PageCount: 2,
		Elements: []docpipe.Element{
			{Type: docpipe.ElementParagraph, Text: words(60), Page: 1},
			{Type: docpipe.ElementParagraph, Text: words(60), Page: 2},
		},
	}

	d := NewDetector(Options{Strategy: StrategyHybrid, MinSectionWords: 1})
	sections := d.Detect(res)
	if len(sections) != 2 || sections[0].Method != StrategyPageBreak {
		t.Fatalf("hybrid should fall back to page breaks, got %+v", sections)
	}
}

func TestDetectNeverEmpty(t *testing.T) {
	res := &docpipe.Result{
		Title:    "Tiny Plan",
		Elements: []docpipe.Element{para("just one short line of content")},
	}

	for _, strategy := range []Strategy{StrategyHeading, StrategyPageBreak, StrategyHybrid, StrategyAI, StrategyWhitespace} {
		d := NewDetector(Options{Strategy: strategy})
		sections := d.Detect(res)
		if len(sections) == 0 {
			t.Errorf("strategy %s returned no sections for non-empty input", strategy)
		}
	}
}

func TestMergeSmallSections(t *testing.T) {
	res := &docpipe.Result{Elements: []docpipe.Element{
		heading("First", 1),
		para("tiny"),
		heading("Second", 1),
		para("also tiny"),
		heading("Third", 1),
		para(words(80)),
	}}

	d := NewDetector(Options{Strategy: StrategyHeading, MinSectionWords: 50})
	sections := d.Detect(res)

	if len(sections) != 2 {
		t.Fatalf("expected merged result of 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "First / Second" {
		t.Errorf("merged titles should join with ' / ', got %q", sections[0].Title)
	}
}

func TestSplitLargeSections(t *testing.T) {
	res := &docpipe.Result{Elements: []docpipe.Element{
		heading("Big Section", 1),
		para(words(30)),
		heading("Sub Part", 3),
		para(words(30)),
	}}

	d := NewDetector(Options{Strategy: StrategyHeading, MinSectionWords: 1, MaxSectionWords: 40})
	sections := d.Detect(res)

	if len(sections) != 2 {
		t.Fatalf("expected split into 2 sections, got %d", len(sections))
	}
	if !strings.Contains(sections[1].Title, "Sub Part") {
		t.Errorf("split section should carry sub-heading title, got %q", sections[1].Title)
	}
}

func TestSectionJSONRoundTrip(t *testing.T) {
	s := Section{
		ID:         content.NewID(),
		Title:      "Terms",
		Blocks:     []content.Block{content.NewHeading(1, "Terms"), content.NewParagraph("Body.")},
		PageRange:  &PageRange{Start: 2, End: 3},
		Confidence: 0.9,
		Method:     StrategyHeading,
	}
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var back Section
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if back.Title != "Terms" || len(back.Blocks) != 2 || back.PageRange.End != 3 {
		t.Errorf("round trip mismatch: %+v", back)
	}
}
