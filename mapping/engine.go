package mapping

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"

	"github.com/hazyhaar/govlens/content"
	"github.com/hazyhaar/govlens/section"
	"github.com/hazyhaar/govlens/template"
)

// AITier is an optional matching stage between fuzzy and best-guess. It
// returns false when it has no answer, letting the chain continue.
type AITier func(sec section.Section, catalog *template.Catalog) (templateID string, confidence float64, ok bool)

// Engine maps detected sections onto a template catalog.
type Engine struct {
	opts    Options
	catalog *template.Catalog
	corpus  []string
	logger  *slog.Logger
}

// candidate is an internal tier result.
type candidate struct {
	templateID   string
	score        float64
	method       Method
	alternatives []Alternative
}

// NewEngine creates an Engine for one catalog.
func NewEngine(catalog *template.Catalog, opts Options) *Engine {
	opts.defaults()
	sections := catalog.Sections()
	corpus := make([]string, len(sections))
	for i, s := range sections {
		corpus[i] = normalizeTitle(s.Title) + " " + normalizeTitle(s.Description) + " " + s.SectionNumber
	}
	return &Engine{opts: opts, catalog: catalog, corpus: corpus, logger: opts.Logger}
}

// Map assigns every section to a template slot. The chain is exact, fuzzy,
// AI (when configured), then best guess, so every section gets a mapping.
func (e *Engine) Map(sections []section.Section) []Mapping {
	mappings := make([]Mapping, 0, len(sections))
	for _, sec := range sections {
		mappings = append(mappings, e.mapOne(sec))
	}
	return mappings
}

func (e *Engine) mapOne(sec section.Section) Mapping {
	cand, ok := e.exactTier(sec)
	if !ok {
		cand, ok = e.fuzzyTier(sec)
	}
	if !ok && e.opts.AITier != nil {
		if id, conf, aiOK := e.opts.AITier(sec, e.catalog); aiOK {
			cand, ok = candidate{templateID: id, score: conf, method: MethodAI}, true
		}
	}
	if !ok {
		cand = e.bestGuess(sec)
	}

	status := StatusPending
	if cand.score >= e.opts.AutoAcceptThreshold {
		status = StatusAccepted
	}

	e.logger.Debug("mapped section",
		"section", sec.Title,
		"template", cand.templateID,
		"method", cand.method,
		"confidence", cand.score)

	return Mapping{
		ID:                content.NewID(),
		SectionID:         sec.ID,
		SectionTitle:      sec.Title,
		TemplateSectionID: cand.templateID,
		Confidence:        cand.score,
		Method:            cand.method,
		Status:            status,
		Alternatives:      cand.alternatives,
	}
}

// exactTier matches on normalized title similarity.
func (e *Engine) exactTier(sec section.Section) (candidate, bool) {
	normalized := normalizeTitle(sec.Title)
	if normalized == "" {
		return candidate{}, false
	}

	best := candidate{method: MethodExact}
	for _, ts := range e.catalog.Sections() {
		sim := similarity(normalized, normalizeTitle(ts.Title))
		if sim > best.score {
			best.score = sim
			best.templateID = ts.ID
		}
	}
	if best.score >= e.opts.ExactThreshold {
		return best, true
	}
	return candidate{}, false
}

// fuzzyTier ranks catalog entries with a fuzzy search over title,
// description, and section number, then scores candidates by their best
// field similarity.
func (e *Engine) fuzzyTier(sec section.Section) (candidate, bool) {
	ranked := e.rankFuzzy(sec)
	if len(ranked) == 0 {
		return candidate{}, false
	}
	if ranked[0].Score < e.opts.FuzzyThreshold {
		return candidate{}, false
	}

	cand := candidate{
		templateID: ranked[0].TemplateSectionID,
		score:      ranked[0].Score,
		method:     MethodFuzzy,
	}
	for _, alt := range ranked[1:] {
		if len(cand.alternatives) >= e.opts.MaxAlternatives {
			break
		}
		cand.alternatives = append(cand.alternatives, alt)
	}
	return cand, true
}

// bestGuess never fails: the top fuzzy candidate regardless of threshold,
// or the first catalog slot with a floor score. Either way the mapping is
// marked MANUAL for review.
func (e *Engine) bestGuess(sec section.Section) candidate {
	if ranked := e.rankFuzzy(sec); len(ranked) > 0 {
		return candidate{
			templateID: ranked[0].TemplateSectionID,
			score:      ranked[0].Score,
			method:     MethodManual,
		}
	}
	sections := e.catalog.Sections()
	return candidate{templateID: sections[0].ID, score: 0.1, method: MethodManual}
}

// fuzzyBonus is the ranking weight of the subsequence match score
// relative to the levenshtein field similarity.
const fuzzyBonus = 0.1

// rankFuzzy returns catalog candidates ordered by score descending.
func (e *Engine) rankFuzzy(sec section.Section) []Alternative {
	normalized := normalizeTitle(sec.Title)
	if normalized == "" {
		return nil
	}

	matches := fuzzy.Find(normalized, e.corpus)
	sections := e.catalog.Sections()

	topScore := 0
	if len(matches) > 0 && matches[0].Score > 0 {
		topScore = matches[0].Score
	}

	var out []Alternative
	seen := make(map[string]bool)
	add := func(idx, fuzzyScore int) {
		ts := sections[idx]
		if seen[ts.ID] {
			return
		}
		seen[ts.ID] = true
		score := similarity(normalized, normalizeTitle(ts.Title))
		if s := similarity(normalized, normalizeTitle(ts.Description)); s > score {
			score = s
		}
		if topScore > 0 && fuzzyScore > 0 {
			score += fuzzyBonus * float64(fuzzyScore) / float64(topScore)
			if score > 1 {
				score = 1
			}
		}
		if sec.Title == ts.SectionNumber {
			score = 1
		}
		out = append(out, Alternative{TemplateSectionID: ts.ID, Score: score})
	}
	for _, m := range matches {
		add(m.Index, m.Score)
	}
	// Fuzzy search requires subsequence hits; make sure high-similarity
	// titles with transposed words still rank.
	for i := range sections {
		add(i, 0)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// normalizeTitle lower-cases, strips punctuation, and collapses whitespace.
func normalizeTitle(title string) string {
	t := strings.ToLower(title)
	t = nonWordRe.ReplaceAllString(t, "")
	return strings.Join(strings.Fields(t), " ")
}

// similarity is the normalized levenshtein ratio of two strings: 1 minus
// distance over the longer length.
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	longer := len([]rune(a))
	if l := len([]rune(b)); l > longer {
		longer = l
	}
	if longer == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return float64(longer-d) / float64(longer)
}
