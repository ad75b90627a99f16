package gap

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/hazyhaar/govlens/content"
	"github.com/hazyhaar/govlens/policy"
	"github.com/hazyhaar/govlens/section"
)

// Engine runs keyword coverage analysis against a policy library.
type Engine struct {
	lib    *policy.Library
	opts   Options
	logger *slog.Logger
}

// NewEngine creates an Engine.
func NewEngine(lib *policy.Library, opts Options) *Engine {
	opts.defaults()
	return &Engine{lib: lib, opts: opts, logger: opts.Logger}
}

// Analyze checks every policy's keyword coverage across the document
// sections. Policies at or above the match threshold produce no gap.
func (e *Engine) Analyze(sections []section.Section) ([]Gap, Summary) {
	var gaps []Gap
	for _, p := range e.lib.Policies() {
		if g, ok := e.analyzePolicy(p, sections); ok {
			gaps = append(gaps, g)
		}
	}
	return gaps, e.summarize(gaps)
}

func (e *Engine) analyzePolicy(p policy.Policy, sections []section.Section) (Gap, bool) {
	keywords := policy.SearchKeywords(p)
	if len(keywords) == 0 {
		return Gap{}, false
	}

	var found, missing []string
	var hits []KeywordHit
	for _, kw := range keywords {
		kwHits := FindKeyword(sections, kw, e.opts.Search)
		if len(kwHits) > 0 {
			found = append(found, kw)
			hits = append(hits, kwHits[0])
		} else {
			missing = append(missing, kw)
		}
	}

	coverage := float64(len(found)) / float64(len(keywords))
	if coverage >= e.opts.MatchThreshold {
		e.logger.Debug("policy covered", "policy", p.Code, "coverage", coverage)
		return Gap{}, false
	}

	severity := severityFor(p.Category)
	if coverage > 0 {
		severity = downgrade(severity)
	}

	g := Gap{
		ID:              content.NewID(),
		PolicyCode:      p.Code,
		PolicyName:      p.Name,
		Severity:        severity,
		Coverage:        coverage,
		FoundKeywords:   found,
		MissingKeywords: missing,
		MissingElements: missingElements(p, sections, e.opts.Search),
		Hits:            hits,
		Impact:          impactFor(p, severity),
	}
	g.Recommendations = e.recommend(p, g, sections)

	e.logger.Debug("policy gap",
		"policy", p.Code,
		"coverage", coverage,
		"severity", severity)
	return g, true
}

func severityFor(cat policy.Category) Severity {
	switch cat {
	case policy.CategoryCompliance, policy.CategoryGovernance:
		return SeverityCritical
	case policy.CategoryCalculation:
		return SeverityHigh
	case policy.CategoryProcess:
		return SeverityMedium
	case policy.CategoryDocumentation:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// downgrade drops severity one level when partial coverage exists.
func downgrade(s Severity) Severity {
	switch s {
	case SeverityCritical:
		return SeverityHigh
	case SeverityHigh:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// missingElements lists structural expectations the document fails:
// a reference to the policy itself, its legal citations, and coverage of
// its critical provisions.
func missingElements(p policy.Policy, sections []section.Section, search SearchOptions) []string {
	var out []string

	if len(FindKeyword(sections, p.Code, search)) == 0 {
		out = append(out, fmt.Sprintf("no reference to policy %s", p.Code))
	}

	laws := append(append([]string{}, p.FederalLaws...), p.StateLaws...)
	cited := false
	for _, law := range laws {
		if len(FindKeyword(sections, law, search)) > 0 {
			cited = true
			break
		}
	}
	if len(laws) > 0 && !cited {
		out = append(out, "no citation of governing law ("+strings.Join(laws, ", ")+")")
	}

	for _, prov := range p.Provisions {
		if prov.Priority != policy.PriorityCritical {
			continue
		}
		if len(FindKeyword(sections, prov.Title, search)) == 0 {
			out = append(out, "critical provision not addressed: "+prov.Title)
		}
	}
	return out
}

// impactFor seeds a risk score by severity and adjusts for category and
// legal exposure.
func impactFor(p policy.Policy, severity Severity) Impact {
	score := 30
	switch severity {
	case SeverityCritical:
		score = 90
	case SeverityHigh:
		score = 70
	case SeverityMedium:
		score = 50
	}

	var notes []string
	if p.Category == policy.CategoryCompliance {
		score += 10
		notes = append(notes, "compliance exposure: statutory penalties possible")
	}
	if p.Category == policy.CategoryGovernance {
		score += 5
	}
	if len(p.FederalLaws)+len(p.StateLaws) > 0 {
		score += 10
		notes = append(notes, "cited law without plan coverage invites wage claims")
	}
	if score > 100 {
		score = 100
	}
	if p.Code == "SCP-001" {
		notes = append(notes, "unrecovered overpayments historically exceed $500K annual exposure")
	}
	return Impact{RiskScore: score, Notes: notes}
}

// recommend produces an INSERT step, plus an APPEND step when an existing
// section already touches the policy's governance area.
func (e *Engine) recommend(p policy.Policy, g Gap, sections []section.Section) []Recommendation {
	effort := effortFor(len(p.Provisions))

	recs := []Recommendation{{
		ID:              content.NewID(),
		PolicyCode:      p.Code,
		Action:          ActionInsert,
		Priority:        g.Severity,
		Rationale:       fmt.Sprintf("document does not cover %s (%s)", p.Name, p.Code),
		EstimatedEffort: effort,
	}}

	if target := findAreaSection(p, sections); target != nil {
		priority := SeverityMedium
		if g.Severity == SeverityCritical {
			priority = SeverityHigh
		}
		recs = append(recs, Recommendation{
			ID:               content.NewID(),
			PolicyCode:       p.Code,
			Action:           ActionAppend,
			TargetSectionKey: target.ID,
			Priority:         priority,
			Rationale:        fmt.Sprintf("section %q already covers this area and can host the language", target.Title),
			EstimatedEffort:  effort,
		})
	}
	return recs
}

// findAreaSection looks for a section whose title shares a governance
// area term with the policy.
func findAreaSection(p policy.Policy, sections []section.Section) *section.Section {
	for _, term := range strings.Fields(strings.ToLower(p.GovernanceArea)) {
		if len(term) <= 3 {
			continue
		}
		for i := range sections {
			if strings.Contains(strings.ToLower(sections[i].Title), term) {
				return &sections[i]
			}
		}
	}
	return nil
}

func effortFor(provisions int) string {
	switch {
	case provisions <= 2:
		return "15 minutes"
	case provisions <= 5:
		return "30 minutes"
	default:
		return "1 hour"
	}
}

func (e *Engine) summarize(gaps []Gap) Summary {
	s := Summary{
		TotalPolicies: e.lib.Len(),
		GapCount:      len(gaps),
		BySeverity:    make(map[Severity]int),
	}

	coverage := 100 - float64(len(gaps))*5
	if coverage < 0 {
		coverage = 0
	}
	s.CoveragePercentage = coverage

	if len(gaps) == 0 {
		return s
	}

	sum := 0
	ranked := make([]Gap, len(gaps))
	copy(ranked, gaps)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Impact.RiskScore > ranked[j].Impact.RiskScore
	})
	for _, g := range gaps {
		s.BySeverity[g.Severity]++
		sum += g.Impact.RiskScore
	}
	s.OverallRiskScore = float64(sum) / float64(len(gaps))

	for i, g := range ranked {
		if i >= 5 {
			break
		}
		s.TopRiskAreas = append(s.TopRiskAreas, g.PolicyName)
	}
	return s
}
