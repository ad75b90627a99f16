package recommend

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hazyhaar/govlens/content"
	"github.com/hazyhaar/govlens/gap"
	"github.com/hazyhaar/govlens/policy"
)

func testPolicy() policy.Policy {
	return policy.Policy{
		Code:           "TP-001",
		Name:           "Clawback and Recovery Policy",
		Category:       policy.CategoryCompliance,
		GovernanceArea: "Financial Controls",
		Summary:        "Defines recovery of overpaid commissions.",
		Objectives:     []string{"Recover overpayments", "Guarantee a dispute path"},
		Provisions: []policy.Provision{
			{ID: "p1", Title: "Appeals Process", Content: "Participants may appeal.", Priority: policy.PriorityMedium},
			{ID: "p2", Title: "Revenue Reversal Clawback", Content: "Reversed revenue is recoverable.", Priority: policy.PriorityCritical},
		},
		StateLaws: []string{"CA Labor Code 2751"},
	}
}

func testGap(severity gap.Severity, recs ...gap.Recommendation) gap.Gap {
	return gap.Gap{
		ID:              content.NewID(),
		PolicyCode:      "TP-001",
		PolicyName:      "Clawback and Recovery Policy",
		Severity:        severity,
		Coverage:        0,
		MissingKeywords: []string{"clawback", "recovery"},
		Recommendations: recs,
	}
}

func TestFromGapsCriticalUsesComplianceStyle(t *testing.T) {
	g := NewGenerator(policy.NewLibrary(testPolicy()), Options{})
	recs := g.FromGaps([]gap.Gap{testGap(gap.SeverityCritical)})
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	r := recs[0]
	if r.Style != StyleCompliance {
		t.Errorf("critical gap should force compliance style, got %s", r.Style)
	}

	var sawWarning, sawCritical bool
	for _, b := range r.Blocks {
		if c, ok := b.(content.Callout); ok && c.Variant == content.CalloutWarning {
			sawWarning = true
		}
		if h, ok := b.(content.Heading); ok && h.Text == "Critical Requirements" {
			sawCritical = true
		}
	}
	if !sawWarning || !sawCritical {
		t.Errorf("compliance content should carry warning callout and critical requirements, got %+v", r.Blocks)
	}
	if !strings.Contains(r.Rationale, "silent") {
		t.Errorf("zero coverage rationale should say the plan is silent: %q", r.Rationale)
	}
}

func TestFromGapsDetailedContent(t *testing.T) {
	g := NewGenerator(policy.NewLibrary(testPolicy()), Options{})
	recs := g.FromGaps([]gap.Gap{testGap(gap.SeverityMedium)})
	r := recs[0]
	if r.Style != StyleDetailed {
		t.Fatalf("style = %s, want detailed", r.Style)
	}

	if h, ok := r.Blocks[0].(content.Heading); !ok || h.Text != "Clawback and Recovery Policy" {
		t.Errorf("first block should be the policy heading: %+v", r.Blocks[0])
	}

	// Critical provision sorts ahead of medium in the provisions list.
	var provList *content.List
	for i, b := range r.Blocks {
		if h, ok := b.(content.Heading); ok && h.Text == "Key Provisions" {
			if l, ok := r.Blocks[i+1].(content.List); ok {
				provList = &l
			}
		}
	}
	if provList == nil {
		t.Fatal("expected a provisions list after the Key Provisions heading")
	}
	if !strings.HasPrefix(provList.Items[0].Text, "Revenue Reversal Clawback") {
		t.Errorf("critical provision should sort first: %q", provList.Items[0].Text)
	}

	last := r.Blocks[len(r.Blocks)-1]
	if c, ok := last.(content.Callout); !ok || !strings.Contains(c.Text, "CA Labor Code 2751") {
		t.Errorf("detailed content should end with a compliance callout: %+v", last)
	}
}

func TestFromGapsPrefersAppendTarget(t *testing.T) {
	g := NewGenerator(policy.NewLibrary(testPolicy()), Options{})
	gp := testGap(gap.SeverityMedium,
		gap.Recommendation{Action: gap.ActionInsert, EstimatedEffort: "30 minutes"},
		gap.Recommendation{Action: gap.ActionAppend, TargetSectionKey: "sec-42", EstimatedEffort: "30 minutes"},
	)
	r := g.FromGaps([]gap.Gap{gp})[0]
	if r.Action != gap.ActionAppend || r.TargetSectionKey != "sec-42" {
		t.Errorf("append step with a host section should win: %+v", r)
	}
	if r.EstimatedEffort != "30 minutes" {
		t.Errorf("effort = %q", r.EstimatedEffort)
	}
}

func TestMinimalStyle(t *testing.T) {
	g := NewGenerator(policy.NewLibrary(testPolicy()), Options{Style: StyleMinimal})
	blocks := g.Content(testPolicy(), StyleMinimal)
	if len(blocks) != 3 {
		t.Fatalf("minimal style should render 3 blocks, got %d", len(blocks))
	}
	if p, ok := blocks[2].(content.Paragraph); !ok || !strings.Contains(p.Text, "TP-001") {
		t.Errorf("minimal content should point at the policy code: %+v", blocks[2])
	}
}

func TestFromGapsSkipsUnknownPolicy(t *testing.T) {
	g := NewGenerator(policy.NewLibrary(testPolicy()), Options{})
	unknown := testGap(gap.SeverityLow)
	unknown.PolicyCode = "TP-404"
	recs := g.FromGaps([]gap.Gap{unknown})
	if len(recs) != 0 {
		t.Errorf("unknown policy should be skipped, got %+v", recs)
	}
}

func TestPreviewTruncates(t *testing.T) {
	blocks := []content.Block{
		content.NewParagraph(strings.Repeat("word ", 100)),
	}
	got := Preview(blocks, 50)
	if len([]rune(got)) != 50 || !strings.HasSuffix(got, "...") {
		t.Errorf("preview should truncate to 50 runes with ellipsis: %q (%d)", got, len(got))
	}
}

func TestRecommendationJSONRoundTrip(t *testing.T) {
	g := NewGenerator(policy.NewLibrary(testPolicy()), Options{})
	r := g.FromGaps([]gap.Gap{testGap(gap.SeverityHigh)})[0]

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Recommendation
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.PolicyCode != r.PolicyCode || len(got.Blocks) != len(r.Blocks) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
