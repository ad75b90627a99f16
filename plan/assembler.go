package plan

import (
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hazyhaar/govlens/content"
	"github.com/hazyhaar/govlens/gap"
	"github.com/hazyhaar/govlens/mapping"
	"github.com/hazyhaar/govlens/patch"
	"github.com/hazyhaar/govlens/recommend"
	"github.com/hazyhaar/govlens/section"
	"github.com/hazyhaar/govlens/template"
)

// Assembler builds plans from mappings and recommendations against a
// template catalog.
type Assembler struct {
	catalog *template.Catalog
	opts    Options
	logger  *slog.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler(catalog *template.Catalog, opts Options) *Assembler {
	opts.defaults()
	return &Assembler{catalog: catalog, opts: opts, logger: opts.Logger}
}

// Assemble groups accepted mappings and recommendations into template
// slots and returns the plan with assembly statistics. Recommendations
// targeting a mapped document section land in that section's slot;
// unanchored ones open a new slot named for their policy.
func (a *Assembler) Assemble(title string, sections []section.Section, mappings []mapping.Mapping, recs []recommend.Recommendation) (*Plan, Stats) {
	byID := make(map[string]*section.Section, len(sections))
	for i := range sections {
		byID[sections[i].ID] = &sections[i]
	}

	// Document section -> template slot, for anchoring recommendations.
	slotOf := make(map[string]string)
	mapsBySlot := make(map[string][]mapping.Mapping)
	accepted := 0
	for _, m := range mappings {
		if m.Status != mapping.StatusAccepted {
			continue
		}
		accepted++
		mapsBySlot[m.TemplateSectionID] = append(mapsBySlot[m.TemplateSectionID], m)
		if _, ok := slotOf[m.SectionID]; !ok {
			slotOf[m.SectionID] = m.TemplateSectionID
		}
	}

	recsBySlot := make(map[string][]recommend.Recommendation)
	for _, r := range recs {
		key := ""
		if r.TargetSectionKey != "" {
			key = slotOf[r.TargetSectionKey]
		}
		if key == "" {
			key = "policy-" + r.PolicyCode
		}
		recsBySlot[key] = append(recsBySlot[key], r)
	}

	applied := 0
	var out []Section
	for _, key := range a.slotOrder(mapsBySlot, recsBySlot) {
		sec, n := a.buildSection(key, mapsBySlot[key], recsBySlot[key], byID)
		applied += n
		out = append(out, sec)
	}

	completion := completionPercentage(out)
	p := &Plan{
		ID:                   content.NewID(),
		Title:                title,
		Code:                 planCode(title),
		Sections:             out,
		CompletionPercentage: completion,
		CreatedAt:            time.Now().UTC(),
	}

	stats := Stats{
		SectionsMapped:         accepted,
		AutoAcceptedMappings:   accepted,
		Recommendations:        len(recs),
		RecommendationsApplied: applied,
		PlanSections:           len(out),
		CompletionPercentage:   completion,
	}
	a.logger.Debug("plan assembled",
		"sections", len(out),
		"completion", completion,
		"recommendations_applied", applied)
	return p, stats
}

// slotOrder yields slot keys in catalog order, policy slots last in
// lexical order.
func (a *Assembler) slotOrder(maps map[string][]mapping.Mapping, recs map[string][]recommend.Recommendation) []string {
	seen := make(map[string]bool)
	var catalogKeys, extraKeys []string
	add := func(key string) {
		if seen[key] {
			return
		}
		seen[key] = true
		if _, ok := a.catalog.Get(key); ok {
			catalogKeys = append(catalogKeys, key)
		} else {
			extraKeys = append(extraKeys, key)
		}
	}
	for key := range maps {
		add(key)
	}
	for key := range recs {
		add(key)
	}

	sort.Slice(catalogKeys, func(i, j int) bool {
		si, _ := a.catalog.Get(catalogKeys[i])
		sj, _ := a.catalog.Get(catalogKeys[j])
		return si.Order < sj.Order
	})
	sort.Strings(extraKeys)
	return append(catalogKeys, extraKeys...)
}

func (a *Assembler) buildSection(key string, maps []mapping.Mapping, recs []recommend.Recommendation, byID map[string]*section.Section) (Section, int) {
	var blocks []content.Block
	source := SourceManual
	auto := false

	for _, m := range maps {
		src, ok := byID[m.SectionID]
		if !ok {
			a.logger.Warn("mapping references unknown section", "section_id", m.SectionID)
			continue
		}
		blocks = patch.Merge(blocks, src.Blocks, patch.MergeOptions{
			Position: patch.PositionEnd,
			Divider:  *a.opts.Dividers,
		})
		source = SourceMapping
		auto = true
	}

	applied := 0
	if a.opts.ApplyRecommendations {
		for _, r := range recs {
			if severityRank(r.Priority) > severityRank(a.opts.MinApplyPriority) {
				continue
			}
			blocks = patch.Merge(blocks, r.Blocks, patch.MergeOptions{
				Position: patch.PositionEnd,
				Divider:  *a.opts.Dividers,
			})
			applied++
		}
		if applied > 0 {
			if source == SourceMapping {
				source = SourceMultiple
			} else {
				source = SourceRecommendation
			}
			auto = true
		}
	}

	sec := Section{
		ID:            content.NewID(),
		SectionKey:    key,
		Blocks:        blocks,
		Completion:    completionOf(blocks),
		AutoPopulated: auto,
		Source:        source,
	}

	if t, ok := a.catalog.Get(key); ok {
		sec.Title = t.Title
		sec.SectionNumber = t.SectionNumber
	} else if len(recs) > 0 {
		sec.Title = recs[0].PolicyName
		sec.SectionNumber = "0.0"
	} else {
		sec.Title = key
		sec.SectionNumber = "0.0"
	}
	return sec, applied
}

func completionOf(blocks []content.Block) CompletionStatus {
	switch {
	case len(blocks) == 0:
		return CompletionEmpty
	case len(blocks) < 3:
		return CompletionPartial
	default:
		return CompletionComplete
	}
}

// completionPercentage scores complete sections fully and partial ones
// at half weight.
func completionPercentage(sections []Section) int {
	if len(sections) == 0 {
		return 0
	}
	score := 0.0
	for _, s := range sections {
		switch s.Completion {
		case CompletionComplete:
			score++
		case CompletionPartial:
			score += 0.5
		}
	}
	return int(math.Round(score / float64(len(sections)) * 100))
}

func severityRank(s gap.Severity) int {
	switch s {
	case gap.SeverityCritical:
		return 0
	case gap.SeverityHigh:
		return 1
	case gap.SeverityMedium:
		return 2
	default:
		return 3
	}
}

// planCode derives a stable plan code from the title and year.
func planCode(title string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(title) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
		if b.Len() >= 20 {
			break
		}
	}
	code := strings.Trim(b.String(), "-")
	if code == "" {
		code = "PLAN"
	}
	return code + "-" + time.Now().UTC().Format("2006")
}
