package gap

import (
	"strings"
	"testing"

	"github.com/hazyhaar/govlens/content"
	"github.com/hazyhaar/govlens/policy"
	"github.com/hazyhaar/govlens/section"
)

func sectionWith(title, text string) section.Section {
	return section.Section{
		ID:     content.NewID(),
		Title:  title,
		Blocks: []content.Block{content.NewParagraph(text)},
	}
}

func testPolicy() policy.Policy {
	return policy.Policy{
		Code:           "TP-001",
		Name:           "Clawback and Recovery Policy",
		Category:       policy.CategoryCompliance,
		GovernanceArea: "Financial Controls",
		Keywords:       []string{"clawback", "chargeback", "repayment", "overpayment"},
		StateLaws:      []string{"CA Labor Code 2751"},
		Provisions: []policy.Provision{
			{ID: "p1", Title: "Revenue Reversal Clawback", Priority: policy.PriorityCritical},
			{ID: "p2", Title: "Appeals Process", Priority: policy.PriorityMedium},
		},
	}
}

func libWith(p policy.Policy) *policy.Library {
	return policy.NewLibrary(p)
}

func TestFindKeyword(t *testing.T) {
	sections := []section.Section{
		sectionWith("Terms", strings.Repeat("padding before the match ", 10)+"clawback applies here"+strings.Repeat(" padding after the match", 10)),
		sectionWith("Other", "nothing relevant"),
	}

	hits := FindKeyword(sections, "CLAWBACK", SearchOptions{})
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit (case-insensitive), got %d", len(hits))
	}
	if !strings.HasPrefix(hits[0].Context, "...") || !strings.HasSuffix(hits[0].Context, "...") {
		t.Errorf("mid-text context needs ellipses: %q", hits[0].Context)
	}
	if !strings.Contains(hits[0].Context, "clawback") {
		t.Errorf("context should contain the match: %q", hits[0].Context)
	}

	if hits := FindKeyword(sections, "claw", SearchOptions{WholeWord: true}); len(hits) != 0 {
		t.Error("whole-word search should not match substrings")
	}
}

func TestAnalyzeNoGapWhenCovered(t *testing.T) {
	e := NewEngine(libWith(testPolicy()), Options{})
	sections := []section.Section{
		sectionWith("Clawback / Recovery", "Clawback and chargeback repayment of any overpayment follows this policy and its recovery controls."),
	}

	gaps, summary := e.Analyze(sections)
	if len(gaps) != 0 {
		t.Fatalf("expected no gaps, got %+v", gaps)
	}
	if summary.CoveragePercentage != 100 {
		t.Errorf("coverage = %f, want 100", summary.CoveragePercentage)
	}
}

func TestAnalyzeZeroCoverageGap(t *testing.T) {
	e := NewEngine(libWith(testPolicy()), Options{})
	sections := []section.Section{
		sectionWith("Quota", "Quotas are assigned annually by sales leadership."),
	}

	gaps, summary := e.Analyze(sections)
	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(gaps))
	}
	g := gaps[0]
	if g.Coverage != 0 {
		t.Errorf("coverage = %f, want 0", g.Coverage)
	}
	if g.Severity != SeverityCritical {
		t.Errorf("compliance policy at zero coverage should be CRITICAL, got %s", g.Severity)
	}
	if g.Impact.RiskScore != 100 {
		t.Errorf("risk score = %d, want 100 (90+10 compliance+10 law, clamped)", g.Impact.RiskScore)
	}
	if len(g.Recommendations) == 0 || g.Recommendations[0].Action != ActionInsert {
		t.Errorf("expected INSERT recommendation, got %+v", g.Recommendations)
	}
	if summary.GapCount != 1 || summary.BySeverity[SeverityCritical] != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	foundMissing := false
	for _, el := range g.MissingElements {
		if strings.Contains(el, "Revenue Reversal Clawback") {
			foundMissing = true
		}
	}
	if !foundMissing {
		t.Errorf("critical provision should be flagged: %v", g.MissingElements)
	}
}

func TestAnalyzePartialCoverageDowngrades(t *testing.T) {
	e := NewEngine(libWith(testPolicy()), Options{})
	// One of nine keywords present: coverage > 0 but < 0.3.
	sections := []section.Section{
		sectionWith("Terms", "A chargeback may occur on cancelled orders."),
	}

	gaps, _ := e.Analyze(sections)
	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(gaps))
	}
	if gaps[0].Severity != SeverityHigh {
		t.Errorf("partial coverage should downgrade CRITICAL to HIGH, got %s", gaps[0].Severity)
	}
	if gaps[0].Coverage <= 0 || gaps[0].Coverage >= 0.3 {
		t.Errorf("coverage = %f, want in (0, 0.3)", gaps[0].Coverage)
	}
}

func TestAnalyzeAppendTargetsAreaSection(t *testing.T) {
	e := NewEngine(libWith(testPolicy()), Options{})
	sections := []section.Section{
		sectionWith("Financial Terms", "Nothing about recoveries at all."),
	}

	gaps, _ := e.Analyze(sections)
	if len(gaps) != 1 {
		t.Fatal("expected a gap")
	}
	var appendRec *Recommendation
	for i := range gaps[0].Recommendations {
		if gaps[0].Recommendations[i].Action == ActionAppend {
			appendRec = &gaps[0].Recommendations[i]
		}
	}
	if appendRec == nil {
		t.Fatal("expected APPEND recommendation for matching area section")
	}
	if appendRec.TargetSectionKey != sections[0].ID {
		t.Error("append should target the matching section")
	}
	// "financial" in the title gives partial coverage, downgrading the gap
	// to HIGH, so the append step carries MEDIUM priority.
	if appendRec.Priority != SeverityMedium {
		t.Errorf("expected MEDIUM append priority, got %s", appendRec.Priority)
	}
}

func TestSummaryCoveragePercentageFloor(t *testing.T) {
	e := NewEngine(libWith(testPolicy()), Options{})
	gaps := make([]Gap, 25)
	s := e.summarize(gaps)
	if s.CoveragePercentage != 0 {
		t.Errorf("coverage should floor at 0, got %f", s.CoveragePercentage)
	}
}
