package patch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/govlens/content"
)

const testTemplateYAML = `policy_code: TP-001
policy_name: Test Policy
patches:
  - requirement_id: R-T-01
    requirement_name: Test Requirement
    severity: HIGH
    insertion_point: "Section: Terms"
    templates:
      full_coverage:
        title: Full Language
        language: |
          **Recovery Terms**
          Overpayments are recoverable within [WINDOW].
          1. Notice is given in writing.
          2. Deductions are capped per period.
        placeholders:
          - name: "[WINDOW]"
            description: recovery window
            recommended: six months
      partial_coverage:
        title: Partial Language
        language: |
          Existing terms are supplemented with a [WINDOW] recovery window.
        placeholders:
          - name: "[WINDOW]"
            description: recovery window
            required: true
state_specific_notes:
  CA: Deduction consent rules apply.
`

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStoreLoadAndCache(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "TP-001-test.yaml", testTemplateYAML)
	s := NewStore(dir, StoreOptions{})

	tpl, err := s.Load("TP-001")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tpl.PolicyName != "Test Policy" || len(tpl.Patches) != 1 {
		t.Fatalf("unexpected template: %+v", tpl)
	}

	// Second load must come from cache even if the file disappears.
	if err := os.Remove(filepath.Join(dir, "TP-001-test.yaml")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load("TP-001"); err != nil {
		t.Errorf("cached load failed: %v", err)
	}

	if _, err := s.Load("TP-999"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("missing template should wrap ErrTemplateNotFound, got %v", err)
	}
}

func TestStoreForRequirement(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "TP-001.yaml", testTemplateYAML)
	s := NewStore(dir, StoreOptions{})

	full, err := s.ForRequirement("TP-001", "R-T-01", CoverageFull)
	if err != nil {
		t.Fatalf("ForRequirement: %v", err)
	}
	if !strings.Contains(full.Language, "Recovery Terms") {
		t.Errorf("wrong variant: %q", full.Language)
	}

	if _, err := s.ForRequirement("TP-001", "R-T-99", CoverageFull); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("unknown requirement should wrap ErrTemplateNotFound, got %v", err)
	}
}

func TestApplySubstitutesPlaceholders(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "TP-001.yaml", testTemplateYAML)
	s := NewStore(dir, StoreOptions{})

	applied, err := s.Apply(ApplyOptions{
		PolicyCode:    "TP-001",
		RequirementID: "R-T-01",
		Jurisdiction:  "CA",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if strings.Contains(applied.Markdown, "[WINDOW]") {
		t.Errorf("recommended value should replace placeholder: %q", applied.Markdown)
	}
	if !strings.Contains(applied.Markdown, "six months") {
		t.Errorf("expected recommended value in output: %q", applied.Markdown)
	}
	if applied.StateNotes != "Deduction consent rules apply." {
		t.Errorf("state notes = %q", applied.StateNotes)
	}
	if len(applied.Warnings) != 1 || !strings.Contains(applied.Warnings[0], "state-specific") {
		t.Errorf("expected single state note warning, got %v", applied.Warnings)
	}

	// Heading, paragraph, ordered list.
	if len(applied.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(applied.Blocks))
	}
	if h, ok := applied.Blocks[0].(content.Heading); !ok || h.Text != "Recovery Terms" {
		t.Errorf("first block should be the bold heading: %+v", applied.Blocks[0])
	}
	if l, ok := applied.Blocks[2].(content.List); !ok || !l.Ordered || len(l.Items) != 2 {
		t.Errorf("numbered run should become an ordered list: %+v", applied.Blocks[2])
	}
}

func TestApplyReportsUnresolvedRequired(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "TP-001.yaml", testTemplateYAML)
	s := NewStore(dir, StoreOptions{})

	applied, err := s.Apply(ApplyOptions{
		PolicyCode:    "TP-001",
		RequirementID: "R-T-01",
		Coverage:      CoveragePartial,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(applied.Unresolved) != 1 || applied.Unresolved[0].Name != "[WINDOW]" {
		t.Fatalf("required placeholder without value should be unresolved: %+v", applied.Unresolved)
	}
	if len(applied.Warnings) == 0 || !strings.Contains(applied.Warnings[0], "[WINDOW]") {
		t.Errorf("expected unresolved warning, got %v", applied.Warnings)
	}

	applied, err = s.Apply(ApplyOptions{
		PolicyCode:        "TP-001",
		RequirementID:     "R-T-01",
		Coverage:          CoveragePartial,
		PlaceholderValues: map[string]string{"[WINDOW]": "90 days"},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(applied.Unresolved) != 0 || !strings.Contains(applied.Markdown, "90 days") {
		t.Errorf("caller value should resolve placeholder: %q", applied.Markdown)
	}
}

func TestMarkupBlocks(t *testing.T) {
	markup := "## Overview\n" +
		"A paragraph of text.\n" +
		"- first\n" +
		"- second\n" +
		"**Details**\n" +
		"1. one\n" +
		"2. two\n"

	blocks := MarkupBlocks(markup)
	if len(blocks) != 5 {
		t.Fatalf("expected 5 blocks, got %d", len(blocks))
	}
	if h := blocks[0].(content.Heading); h.Level != 2 || h.Text != "Overview" {
		t.Errorf("hash heading: %+v", h)
	}
	if _, ok := blocks[1].(content.Paragraph); !ok {
		t.Errorf("expected paragraph, got %T", blocks[1])
	}
	if l := blocks[2].(content.List); l.Ordered || len(l.Items) != 2 {
		t.Errorf("dash run should become unordered list: %+v", l)
	}
	if h := blocks[3].(content.Heading); h.Level != 2 || h.Text != "Details" {
		t.Errorf("bold heading: %+v", h)
	}
	if l := blocks[4].(content.List); !l.Ordered || len(l.Items) != 2 {
		t.Errorf("numbered run should become ordered list: %+v", l)
	}
}

func TestMergePositionsAndDedup(t *testing.T) {
	existing := []content.Block{
		content.NewHeading(2, "Terms"),
		content.NewParagraph("Original terms."),
	}
	patched := []content.Block{
		content.NewParagraph("Patch language."),
		content.NewParagraph("original terms."), // duplicate modulo case
	}

	merged := Merge(existing, patched, MergeOptions{Position: PositionEnd, Divider: true})
	// heading + original + divider + patch; case-folded duplicate dropped.
	if len(merged) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(merged))
	}
	if _, ok := merged[2].(content.Divider); !ok {
		t.Errorf("expected divider between existing and patch content: %T", merged[2])
	}

	merged = Merge(existing, patched, MergeOptions{Position: PositionStart})
	if _, ok := merged[0].(content.Paragraph); !ok {
		t.Errorf("START should lead with patch blocks: %T", merged[0])
	}

	merged = Merge(existing, patched, MergeOptions{Position: PositionReplace})
	if len(merged) != 2 {
		t.Errorf("REPLACE should keep only patch blocks, got %d", len(merged))
	}
}

func TestBuiltinTemplates(t *testing.T) {
	s := Builtin()
	for _, code := range []string{"SCP-001", "SCP-005", "SCP-006"} {
		if _, err := s.Load(code); err != nil {
			t.Errorf("builtin template missing for %s: %v", code, err)
		}
	}

	applied, err := s.Apply(ApplyOptions{
		PolicyCode:    "SCP-001",
		RequirementID: "R-001-01",
		Jurisdiction:  "CA",
	})
	if err != nil {
		t.Fatalf("Apply builtin: %v", err)
	}
	if strings.Contains(applied.Markdown, "[CLAWBACK_WINDOW]") {
		t.Error("builtin placeholders should carry recommended values")
	}
	if applied.StateNotes == "" {
		t.Error("SCP-001 should carry CA state notes")
	}
}

func TestLoadAllSkipsBroken(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "TP-001.yaml", testTemplateYAML)
	writeTemplate(t, dir, "broken.yaml", "policy_code: [")
	writeTemplate(t, dir, "INDEX.yaml", "version: 1")
	s := NewStore(dir, StoreOptions{})

	templates, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(templates) != 1 || templates[0].PolicyCode != "TP-001" {
		t.Errorf("expected only the valid template, got %+v", templates)
	}
}
