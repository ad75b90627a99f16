package governance

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/hazyhaar/govlens/content"
	"github.com/hazyhaar/govlens/policy"
	"github.com/hazyhaar/govlens/section"
)

// Analyzer grades a plan against the requirement matrix.
type Analyzer struct {
	lib    *policy.Library
	opts   Options
	logger *slog.Logger

	regexps map[string]*regexp.Regexp
}

// NewAnalyzer creates an Analyzer over a policy library.
func NewAnalyzer(lib *policy.Library, opts Options) *Analyzer {
	opts.defaults()
	return &Analyzer{
		lib:     lib,
		opts:    opts,
		logger:  opts.Logger,
		regexps: make(map[string]*regexp.Regexp),
	}
}

// Analyze evaluates every policy's requirements against the plan
// sections and returns the full governance report.
func (a *Analyzer) Analyze(sections []section.Section, planName string) *Report {
	planText := buildPlanText(sections)
	triggers := a.detectTriggers(planText, sections)

	var entries []Entry
	for _, p := range a.lib.Policies() {
		matrixEntry, ok := a.opts.Matrix.ForPolicy(p.Code)
		if !ok {
			a.logger.Warn("no requirement matrix entry for policy", "policy", p.Code)
			continue
		}

		var unmet []RequirementFinding
		var evidence []Evidence
		var conflicts []Conflict
		for _, req := range matrixEntry.Requirements {
			res := a.evaluateRequirement(req, planText)
			if res.status != StatusMet {
				unmet = append(unmet, RequirementFinding{
					Requirement: req,
					Status:      res.status,
					Evidence:    res.evidence,
				})
			}
			evidence = append(evidence, res.objects...)
			conflicts = append(conflicts, res.conflicts...)
		}

		grade := gradeFor(len(matrixEntry.Requirements), len(unmet))
		relevant := relevantTriggers(triggers, p)
		liability := a.liabilityScore(grade, relevant)

		entries = append(entries, Entry{
			ID:                content.NewID(),
			GovernanceArea:    matrixEntry.PolicyName,
			PolicyCode:        p.Code,
			Coverage:          grade,
			Liability:         liability,
			RiskTriggers:      relevant,
			Evidence:          evidence,
			RecommendedPatch:  a.recommendPatch(p, unmet, grade),
			UnmetRequirements: unmet,
			Conflicts:         conflicts,
		})

		a.logger.Debug("policy graded",
			"policy", p.Code,
			"grade", grade,
			"liability", liability,
			"unmet", len(unmet))
	}

	if planName == "" {
		planName = "Untitled Plan"
	}
	return &Report{
		PlanID:     content.NewID(),
		PlanName:   planName,
		AnalyzedAt: time.Now().UTC(),
		Jurisdiction: JurisdictionProfile{
			Code:         a.opts.Jurisdiction,
			Multiplier:   a.opts.Jurisdictions.Multiplier(a.opts.Jurisdiction),
			WageLawFlags: a.opts.Jurisdictions.WageLawFlags(a.opts.Jurisdiction),
		},
		Entries:     entries,
		Statistics:  buildStatistics(entries),
		RiskSummary: buildRiskSummary(entries, triggers),
	}
}

// buildPlanText concatenates section titles and content for pattern
// matching across section boundaries.
func buildPlanText(sections []section.Section) string {
	parts := make([]string, 0, len(sections))
	for i := range sections {
		parts = append(parts, sections[i].Title+"\n"+sections[i].Text())
	}
	return strings.Join(parts, "\n\n")
}

// pattern compiles a case-insensitive matcher, caching by source.
// Invalid patterns are logged once and skipped.
func (a *Analyzer) pattern(src string) *regexp.Regexp {
	if re, ok := a.regexps[src]; ok {
		return re
	}
	re, err := regexp.Compile("(?i)" + src)
	if err != nil {
		a.logger.Warn("invalid detection pattern", "pattern", src, "error", err)
		re = nil
	}
	a.regexps[src] = re
	return re
}

// detectTriggers scans the plan for risk trigger language. Patterns
// prefixed "!" (or triggers marked NegativeMatch) fire on absence.
func (a *Analyzer) detectTriggers(planText string, sections []section.Section) []Trigger {
	var detected []Trigger
	for _, def := range a.opts.Triggers {
		var foundIn, matched []string
		for _, pat := range def.Patterns {
			negative := def.NegativeMatch || strings.HasPrefix(pat, "!")
			re := a.pattern(strings.TrimPrefix(pat, "!"))
			if re == nil {
				continue
			}

			if negative {
				if !re.MatchString(planText) {
					matched = append(matched, pat)
					foundIn = append(foundIn, "(absence detected throughout plan)")
				}
				continue
			}
			if !re.MatchString(planText) {
				continue
			}
			matched = append(matched, pat)
			for i := range sections {
				if re.MatchString(sections[i].Text()) {
					title := sections[i].Title
					if title == "" {
						title = "Untitled Section"
					}
					foundIn = append(foundIn, title)
				}
			}
		}
		if len(matched) > 0 {
			detected = append(detected, Trigger{
				TriggerDef:      def,
				FoundIn:         dedupeStrings(foundIn),
				MatchedPatterns: matched,
			})
		}
	}
	return detected
}

type evalResult struct {
	status    Status
	evidence  []string
	objects   []Evidence
	conflicts []Conflict
}

// evaluateRequirement checks one requirement's detection rules against
// the plan text. Required elements earn half credit once any positive
// pattern matches; a negative pattern match caps the status at PARTIAL
// and records a conflict.
func (a *Analyzer) evaluateRequirement(req Requirement, planText string) evalResult {
	var res evalResult
	matchedPositive := 0

	for _, pat := range req.Detection.PositivePatterns {
		re := a.pattern(pat)
		if re == nil {
			continue
		}
		loc := re.FindStringIndex(planText)
		if loc == nil {
			continue
		}
		matchedPositive++
		res.evidence = append(res.evidence, "matched: "+pat)
		res.objects = append(res.objects, Evidence{
			Section:       "Multiple sections",
			LineReference: "Pattern match",
			Quote:         quoteAround(planText, loc[0], loc[1]),
			Type:          EvidenceSupports,
			Confidence:    0.8,
		})
	}

	matchedNegative := 0
	for _, pat := range req.Detection.NegativePatterns {
		re := a.pattern(pat)
		if re == nil || !re.MatchString(planText) {
			continue
		}
		matchedNegative++
		res.conflicts = append(res.conflicts, Conflict{
			ID:                fmt.Sprintf("conflict-%s-%d", req.ID, len(res.conflicts)),
			PlanLanguage:      pat,
			PolicyRequirement: req.Description,
			Type:              "CONTRADICTION",
			Severity:          req.Severity,
			Evidence: []Evidence{{
				Section:       "Multiple sections",
				LineReference: "Negative pattern match",
				Quote:         pat,
				Type:          EvidenceConflicts,
				Confidence:    0.9,
			}},
		})
	}

	matchedElements := 0
	if matchedPositive > 0 {
		matchedElements = len(req.Detection.RequiredElements) / 2
	}

	totalRequired := len(req.Detection.PositivePatterns) + len(req.Detection.RequiredElements)
	totalMatched := matchedPositive + matchedElements

	switch {
	case matchedNegative > 0:
		res.status = StatusPartial
	case float64(totalMatched) >= float64(totalRequired)*a.opts.MetThreshold:
		res.status = StatusMet
	case totalMatched > 0:
		res.status = StatusPartial
	default:
		res.status = StatusUnmet
	}
	return res
}

// quoteAround extracts a window around a match for evidence display.
func quoteAround(text string, start, end int) string {
	from := start - 50
	if from < 0 {
		from = 0
	}
	to := end + 50
	if to > len(text) {
		to = len(text)
	}
	return "..." + strings.TrimSpace(text[from:to]) + "..."
}

// Grade cutoffs on the met-requirement ratio.
const (
	gradeAThreshold = 0.8
	gradeBThreshold = 0.4
)

// gradeFor converts the met-requirement ratio to a coverage grade.
func gradeFor(total, unmet int) Grade {
	if total == 0 {
		return GradeA
	}
	pct := float64(total-unmet) / float64(total)
	switch {
	case pct >= gradeAThreshold:
		return GradeA
	case pct >= gradeBThreshold:
		return GradeB
	default:
		return GradeC
	}
}

// liabilityScore combines the coverage grade base, relevant trigger
// impacts, and the jurisdiction multiplier, clamped to 1-5.
func (a *Analyzer) liabilityScore(grade Grade, triggers []Trigger) int {
	var base float64
	switch grade {
	case GradeA:
		base = 1
	case GradeB:
		base = 2.5
	default:
		base = 3.5
	}
	for _, t := range triggers {
		base += t.LiabilityImpact
	}
	raw := base * a.opts.Jurisdictions.Multiplier(a.opts.Jurisdiction)

	score := int(math.Round(raw))
	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}
	return score
}

// relevantTriggers keeps the triggers whose categories touch the
// policy's category or governance area.
func relevantTriggers(triggers []Trigger, p policy.Policy) []Trigger {
	var out []Trigger
	for _, t := range triggers {
		for _, cat := range triggerRelevance[t.ID] {
			if cat == string(p.Category) || cat == p.GovernanceArea {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// recommendPatch turns a policy's unmet requirements into a patch
// recommendation, preferring template content from the provider and
// falling back to the policy summary.
func (a *Analyzer) recommendPatch(p policy.Policy, unmet []RequirementFinding, grade Grade) Patch {
	if len(unmet) == 0 {
		return Patch{
			Type:           PatchEnhance,
			TargetSection:  "Multiple sections",
			InsertionPoint: "Throughout plan",
			PolicyCode:     p.Code,
			Rationale:      "plan meets requirements, consider enhancing documentation",
			Priority:       SeverityLow,
		}
	}

	first := unmet[0]
	action := PatchInsert
	priority := SeverityMedium
	level := CoverageFull
	switch grade {
	case GradeC:
		action = PatchInsert
		priority = SeverityHigh
		if anyCritical(unmet) {
			priority = SeverityCritical
		}
		level = CoverageFull
	case GradeB:
		action = PatchEnhance
		priority = SeverityMedium
		if anyCritical(unmet) {
			priority = SeverityHigh
		}
		level = CoveragePartial
	}

	patch := Patch{
		Type:           action,
		TargetSection:  first.Requirement.InsertionPoint,
		InsertionPoint: first.Requirement.InsertionPoint,
		PolicyCode:     p.Code,
		Rationale:      fmt.Sprintf("addresses %d unmet requirements in %s", len(unmet), p.Name),
		Priority:       priority,
	}

	if a.opts.Patches != nil {
		if pc, ok := a.opts.Patches(PatchQuery{
			PolicyCode:       p.Code,
			RequirementID:    first.Requirement.ID,
			Coverage:         level,
			TargetSectionKey: first.Requirement.InsertionPoint,
			Jurisdiction:     a.opts.Jurisdiction,
		}); ok {
			patch.Blocks = pc.Blocks
			patch.Markdown = pc.Markdown
			patch.StateNotes = pc.StateNotes
			patch.Warnings = pc.Warnings
			return patch
		}
	}

	patch.Blocks = []content.Block{
		content.NewHeading(2, p.Name),
		content.NewParagraph(p.Summary),
	}
	return patch
}

func anyCritical(unmet []RequirementFinding) bool {
	for _, f := range unmet {
		if f.Requirement.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

func buildStatistics(entries []Entry) Statistics {
	s := Statistics{
		GradeDistribution:     make(map[Grade]int),
		LiabilityDistribution: make(map[int]int),
		SeverityDistribution:  make(map[Severity]int),
	}
	for _, e := range entries {
		s.UnmetRequirements += len(e.UnmetRequirements)
		s.GradeDistribution[e.Coverage]++
		s.LiabilityDistribution[e.Liability]++
		for _, f := range e.UnmetRequirements {
			s.SeverityDistribution[f.Requirement.Severity]++
		}
		s.TriggerCount += len(e.RiskTriggers)
		s.ConflictCount += len(e.Conflicts)
	}
	return s
}

func buildRiskSummary(entries []Entry, triggers []Trigger) RiskSummary {
	var sum float64
	hasFive, hasFour := false, false
	for _, e := range entries {
		sum += float64(e.Liability)
		if e.Liability == 5 {
			hasFive = true
		}
		if e.Liability == 4 {
			hasFour = true
		}
	}
	avg := 0.0
	if len(entries) > 0 {
		avg = sum / float64(len(entries))
	}

	overall := SeverityLow
	switch {
	case hasFive || avg >= 4:
		overall = SeverityCritical
	case hasFour || avg >= 3:
		overall = SeverityHigh
	case avg >= 2:
		overall = SeverityMedium
	}

	top := make([]Trigger, len(triggers))
	copy(top, triggers)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].LiabilityImpact > top[j].LiabilityImpact
	})
	if len(top) > 5 {
		top = top[:5]
	}

	var areas, actions []string
	for _, e := range entries {
		if e.Liability < 4 {
			continue
		}
		areas = append(areas, e.GovernanceArea)
		if len(actions) < 5 {
			actions = append(actions, fmt.Sprintf("Address %s (%s): %s",
				e.GovernanceArea, e.PolicyCode, e.RecommendedPatch.Rationale))
		}
	}

	return RiskSummary{
		OverallRisk:        overall,
		TopTriggers:        top,
		HighLiabilityAreas: areas,
		ImmediateActions:   actions,
	}
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
