package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/govlens/docpipe"
	"github.com/hazyhaar/govlens/governance"
	"github.com/hazyhaar/govlens/patch"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testPlanMD = `# FY26 Sales Compensation Plan

## Plan Purpose

This plan motivates the sales organization and aligns variable pay
with company revenue goals for the fiscal year.

## Commission Structure

Commissions are earned at 8% of recognized revenue. Clawback of
overpaid commissions applies when revenue is reversed within 90 days.
Recovery is limited and repayment schedules are available. Employees
may dispute or appeal any clawback decision.

## Quota Management

Quotas are set annually. Quota adjustment follows territory changes
and requires written notice within 30 days.

## Payment Terms

Commissions are paid monthly within 45 days of quarter close.
`

func writePlan(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := New(Config{Jurisdiction: "DEFAULT"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestRunMarkdownPlan(t *testing.T) {
	p := testPipeline(t)
	path := writePlan(t, "plan.md", testPlanMD)

	rep, err := p.Run(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.Document.Format != docpipe.FormatMD {
		t.Errorf("format = %q, want md", rep.Document.Format)
	}
	if len(rep.Sections) == 0 {
		t.Fatal("expected detected sections")
	}
	if rep.Governance == nil || len(rep.Governance.Entries) == 0 {
		t.Fatal("expected governance entries")
	}
	if rep.Plan == nil || len(rep.Plan.Sections) == 0 {
		t.Fatal("expected an assembled plan")
	}
	if rep.Plan.Title != "FY26 Sales Compensation Plan" {
		t.Errorf("title should come from the document: %q", rep.Plan.Title)
	}
	if rep.Governance.PlanName != rep.Plan.Title {
		t.Errorf("governance report should carry the same plan name, got %q", rep.Governance.PlanName)
	}
	if rep.Timings.TotalMS < 0 {
		t.Errorf("timings: %+v", rep.Timings)
	}
}

func TestRunExplicitTitleWins(t *testing.T) {
	p := testPipeline(t)
	path := writePlan(t, "plan.md", testPlanMD)

	rep, err := p.Run(context.Background(), path, "Q3 Override Plan")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Plan.Title != "Q3 Override Plan" {
		t.Errorf("explicit title should win, got %q", rep.Plan.Title)
	}
}

func TestRunTitleFallsBackToDocument(t *testing.T) {
	p := testPipeline(t)
	path := writePlan(t, "fy26-draft.txt", "commission is paid monthly.\nquota is set annually.\n")

	rep, err := p.Run(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Plan.Title == "" {
		t.Fatal("plan title should never be empty")
	}
	if rep.Document.Title != "" && rep.Plan.Title != rep.Document.Title {
		t.Errorf("title = %q, want document title %q", rep.Plan.Title, rep.Document.Title)
	}
}

func TestRunUnsupportedFormat(t *testing.T) {
	p := testPipeline(t)
	path := writePlan(t, "plan.xyz", "whatever")

	if _, err := p.Run(context.Background(), path, ""); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestRunCancelledContext(t *testing.T) {
	p := testPipeline(t)
	path := writePlan(t, "plan.md", testPlanMD)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Run(ctx, path, ""); err == nil {
		t.Fatal("expected a context error")
	}
}

func TestReportMarshalsToJSON(t *testing.T) {
	p := testPipeline(t)
	path := writePlan(t, "plan.md", testPlanMD)

	rep, err := p.Run(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}
	var round map[string]json.RawMessage
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	for _, key := range []string{"document", "sections", "governance", "plan", "timings"} {
		if _, ok := round[key]; !ok {
			t.Errorf("report JSON missing %q", key)
		}
	}
}

func TestPatchProviderBridgesStore(t *testing.T) {
	provider := patchProvider(patch.Builtin(), testLogger())

	got, ok := provider(governance.PatchQuery{
		PolicyCode:    "SCP-001",
		RequirementID: "R-001-01",
		Coverage:      governance.CoverageFull,
		Jurisdiction:  "CA",
	})
	if !ok {
		t.Fatal("builtin template for SCP-001/R-001-01 should resolve")
	}
	if len(got.Blocks) == 0 || got.Markdown == "" {
		t.Errorf("expected rendered content: %+v", got)
	}
	if got.StateNotes == "" {
		t.Error("CA query should surface state notes")
	}

	if _, ok := provider(governance.PatchQuery{PolicyCode: "SCP-404", RequirementID: "R-X"}); ok {
		t.Error("unknown policy should not resolve")
	}
}

func TestSections(t *testing.T) {
	p := testPipeline(t)
	path := writePlan(t, "plan.md", testPlanMD)

	sections, err := p.Sections(context.Background(), path)
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	if len(sections) == 0 {
		t.Fatal("expected sections")
	}
	var sawPayment bool
	for _, s := range sections {
		if strings.Contains(s.Title, "Payment Terms") {
			sawPayment = true
		}
	}
	if !sawPayment {
		t.Errorf("expected a Payment Terms section, got %d sections", len(sections))
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "govlens.yaml")
	body := `jurisdiction: NY
patch_templates: /etc/govlens/patches
mapping:
  fuzzy_threshold: 0.7
plan:
  apply_recommendations: true
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Jurisdiction != "NY" || cfg.PatchTemplates != "/etc/govlens/patches" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Mapping.FuzzyThreshold != 0.7 {
		t.Errorf("fuzzy threshold = %v", cfg.Mapping.FuzzyThreshold)
	}
	if !cfg.Plan.ApplyRecommendations {
		t.Error("plan.apply_recommendations should be set")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
