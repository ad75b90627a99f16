package recommend

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/hazyhaar/govlens/content"
	"github.com/hazyhaar/govlens/gap"
	"github.com/hazyhaar/govlens/policy"
)

// Generator builds recommendations from gaps.
type Generator struct {
	lib    *policy.Library
	opts   Options
	logger *slog.Logger
}

// NewGenerator creates a Generator over a policy library.
func NewGenerator(lib *policy.Library, opts Options) *Generator {
	opts.defaults()
	return &Generator{lib: lib, opts: opts, logger: opts.Logger}
}

// FromGaps produces one recommendation per gap. Gaps whose policy is
// missing from the library are logged and skipped.
func (g *Generator) FromGaps(gaps []gap.Gap) []Recommendation {
	var out []Recommendation
	for _, gp := range gaps {
		p, ok := g.lib.Get(gp.PolicyCode)
		if !ok {
			g.logger.Warn("gap references unknown policy", "policy", gp.PolicyCode)
			continue
		}
		out = append(out, g.fromGap(gp, p))
	}
	return out
}

func (g *Generator) fromGap(gp gap.Gap, p policy.Policy) Recommendation {
	style := g.opts.Style
	if gp.Severity == gap.SeverityCritical {
		style = StyleCompliance
	}
	blocks := g.Content(p, style)

	action := gap.ActionInsert
	target := ""
	effort := "15 minutes"
	if len(gp.Recommendations) > 0 {
		action = gp.Recommendations[0].Action
		target = gp.Recommendations[0].TargetSectionKey
		effort = gp.Recommendations[0].EstimatedEffort
		// An APPEND step with a concrete host section beats a bare insert.
		for _, rec := range gp.Recommendations {
			if rec.Action == gap.ActionAppend && rec.TargetSectionKey != "" {
				action = rec.Action
				target = rec.TargetSectionKey
				break
			}
		}
	}

	return Recommendation{
		ID:               content.NewID(),
		GapID:            gp.ID,
		PolicyCode:       p.Code,
		PolicyName:       p.Name,
		Action:           action,
		TargetSectionKey: target,
		Blocks:           blocks,
		Preview:          Preview(blocks, 200),
		Rationale:        rationale(gp, p),
		Priority:         gp.Severity,
		EstimatedEffort:  effort,
		Style:            style,
	}
}

// Content renders a policy as content blocks in the given style.
func (g *Generator) Content(p policy.Policy, style Style) []content.Block {
	if style == StyleCompliance {
		return g.complianceContent(p)
	}

	blocks := []content.Block{content.NewHeading(2, p.Name)}

	if style == StyleDetailed {
		blocks = append(blocks, content.NewHeading(3, "Purpose"))
	}
	blocks = append(blocks, content.NewParagraph(p.Summary))
	if style == StyleDetailed && len(p.Objectives) > 0 {
		blocks = append(blocks, content.NewList(true, listItems(p.Objectives)))
	}

	if style == StyleMinimal {
		blocks = append(blocks, content.NewParagraph(
			fmt.Sprintf("See policy %s for complete details.", p.Code)))
		return blocks
	}

	if *g.opts.IncludeProvisions && len(p.Provisions) > 0 {
		if style == StyleDetailed {
			blocks = append(blocks, content.NewHeading(3, "Key Provisions"))
		} else {
			blocks = append(blocks, content.NewParagraph("Key provisions:"))
		}
		blocks = append(blocks, content.NewList(true, provisionItems(p.Provisions, style)))
	}

	if *g.opts.IncludeCompliance {
		if laws := allLaws(p); len(laws) > 0 {
			blocks = append(blocks, content.NewCallout(content.CalloutInfo,
				fmt.Sprintf("Compliance: This policy ensures compliance with %s.", strings.Join(laws, ", "))))
		}
	}
	return blocks
}

// complianceContent renders the compliance-first variant used for
// CRITICAL gaps: a warning callout plus critical provisions.
func (g *Generator) complianceContent(p policy.Policy) []content.Block {
	blocks := []content.Block{content.NewHeading(2, p.Name)}

	if laws := allLaws(p); len(laws) > 0 {
		blocks = append(blocks, content.NewCallout(content.CalloutWarning,
			fmt.Sprintf("COMPLIANCE REQUIREMENT: This policy is required for compliance with %s.", strings.Join(laws, ", "))))
	}

	var critical []content.ListItem
	for _, prov := range p.Provisions {
		if prov.Priority == policy.PriorityCritical {
			critical = append(critical, content.ListItem{Text: prov.Title + ": " + prov.Content})
		}
	}
	if len(critical) > 0 {
		blocks = append(blocks,
			content.NewHeading(3, "Critical Requirements"),
			content.NewList(true, critical))
	}
	return blocks
}

// provisionItems orders provisions critical first, then high, then the
// rest, rendering titles with content for the detailed style.
func provisionItems(provisions []policy.Provision, style Style) []content.ListItem {
	ranked := make([]policy.Provision, len(provisions))
	copy(ranked, provisions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return priorityRank(ranked[i].Priority) < priorityRank(ranked[j].Priority)
	})

	items := make([]content.ListItem, len(ranked))
	for i, prov := range ranked {
		text := prov.Title
		if style == StyleDetailed && prov.Content != "" {
			text = prov.Title + ": " + prov.Content
		}
		items[i] = content.ListItem{Text: text}
	}
	return items
}

func priorityRank(p policy.Priority) int {
	switch p {
	case policy.PriorityCritical:
		return 0
	case policy.PriorityHigh:
		return 1
	case policy.PriorityMedium:
		return 2
	default:
		return 3
	}
}

func listItems(texts []string) []content.ListItem {
	items := make([]content.ListItem, len(texts))
	for i, t := range texts {
		items[i] = content.ListItem{Text: t}
	}
	return items
}

func allLaws(p policy.Policy) []string {
	return append(append([]string{}, p.FederalLaws...), p.StateLaws...)
}

func rationale(gp gap.Gap, p policy.Policy) string {
	if gp.Coverage == 0 {
		return fmt.Sprintf("the plan is silent on %s; %d of its key terms appear nowhere", p.Name, len(gp.MissingKeywords))
	}
	return fmt.Sprintf("the plan covers only %.0f%% of %s vocabulary; %d key terms are missing",
		gp.Coverage*100, p.Name, len(gp.MissingKeywords))
}

// Preview flattens blocks to a text excerpt of at most maxLen runes.
func Preview(blocks []content.Block, maxLen int) string {
	var b strings.Builder
	for _, blk := range blocks {
		if b.Len() >= maxLen {
			break
		}
		if t := content.Text(blk); t != "" {
			b.WriteString(t)
			b.WriteString(" ")
		}
	}
	out := strings.TrimSpace(b.String())
	runes := []rune(out)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return out
}
