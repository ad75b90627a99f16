package section

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/hazyhaar/govlens/content"
	"github.com/hazyhaar/govlens/docpipe"
)

// Detector turns a parsed document into a non-empty list of sections.
type Detector struct {
	opts   Options
	logger *slog.Logger
}

// NewDetector creates a Detector with the given options.
func NewDetector(opts Options) *Detector {
	opts.defaults()
	return &Detector{opts: opts, logger: opts.Logger}
}

// annotated pairs a converted block with its source element metadata.
type annotated struct {
	block content.Block
	page  int
	level int // heading level, 0 for body blocks
}

// Detect splits the document into sections. For any document with content
// the result is never empty: when no boundary is found, a single section
// holding everything is returned.
func (d *Detector) Detect(res *docpipe.Result) []Section {
	blocks := d.annotate(res.Elements)
	if len(blocks) == 0 {
		return nil
	}

	strategy := d.opts.Strategy
	if strategy == StrategyAI {
		d.logger.Warn("ai section detection not configured, falling back to heading strategy")
		strategy = StrategyHeading
	}
	if strategy == StrategyWhitespace {
		strategy = StrategyHeading
	}

	var sections []Section
	switch strategy {
	case StrategyHeading:
		sections = d.byHeading(blocks)
	case StrategyPageBreak:
		sections = d.byPageBreak(blocks)
	case StrategyHybrid:
		sections = d.byHeading(blocks)
		if len(sections) <= 1 {
			if res.PageCount > 1 {
				sections = d.byPageBreak(blocks)
			}
		}
	default:
		sections = d.byHeading(blocks)
	}

	sections = d.mergeSmall(sections)
	sections = d.splitLarge(sections)
	sections = dropEmpty(sections)

	if len(sections) == 0 {
		sections = []Section{d.wholeDocument(res, blocks)}
	}

	d.logger.Debug("detected sections",
		"strategy", d.opts.Strategy,
		"sections", len(sections))
	return sections
}

func (d *Detector) annotate(elements []docpipe.Element) []annotated {
	var out []annotated
	for _, el := range elements {
		converted := content.Convert([]docpipe.Element{el}, d.opts.Titles)
		for _, b := range converted {
			level := 0
			if h, ok := b.(content.Heading); ok {
				level = h.Level
			}
			out = append(out, annotated{block: b, page: el.Page, level: level})
		}
	}
	return out
}

// byHeading opens a new section at every level-1/2 heading with a valid
// title. Content before the first boundary lands in an "Introduction"
// section.
func (d *Detector) byHeading(blocks []annotated) []Section {
	var sections []Section
	current := d.newSection("Introduction", StrategyHeading, 0.9)

	for _, ab := range blocks {
		if ab.level > 0 && ab.level <= 2 {
			if h, ok := ab.block.(content.Heading); ok && content.IsValidSectionTitle(h.Text, d.opts.Titles) {
				if len(current.Blocks) > 0 {
					sections = append(sections, current)
				}
				current = d.newSection(strings.TrimSuffix(h.Text, ":"), StrategyHeading, 0.9)
			}
		}
		appendBlock(&current, ab)
	}
	if len(current.Blocks) > 0 {
		sections = append(sections, current)
	}
	return sections
}

// byPageBreak groups blocks by their source page.
func (d *Detector) byPageBreak(blocks []annotated) []Section {
	var sections []Section
	var current Section
	currentPage := -1

	for _, ab := range blocks {
		if ab.page != currentPage {
			if len(current.Blocks) > 0 {
				sections = append(sections, current)
			}
			currentPage = ab.page
			current = d.newSection("Page "+strconv.Itoa(ab.page), StrategyPageBreak, 0.7)
		}
		appendBlock(&current, ab)
	}
	if len(current.Blocks) > 0 {
		sections = append(sections, current)
	}
	return sections
}

func (d *Detector) wholeDocument(res *docpipe.Result, blocks []annotated) Section {
	title := res.Title
	if title == "" {
		title = "Document"
	}
	s := d.newSection(title, StrategyHybrid, 0.5)
	for _, ab := range blocks {
		appendBlock(&s, ab)
	}
	return s
}

func (d *Detector) newSection(title string, method Strategy, confidence float64) Section {
	return Section{
		ID:         content.NewID(),
		Title:      title,
		Confidence: confidence,
		Method:     method,
	}
}

func appendBlock(s *Section, ab annotated) {
	s.Blocks = append(s.Blocks, ab.block)
	if ab.page > 0 {
		if s.PageRange == nil {
			s.PageRange = &PageRange{Start: ab.page, End: ab.page}
		} else if ab.page > s.PageRange.End {
			s.PageRange.End = ab.page
		}
	}
}

// mergeSmall folds runs of undersized sections together, joining titles
// with " / " and widening page ranges.
func (d *Detector) mergeSmall(sections []Section) []Section {
	if len(sections) < 2 {
		return sections
	}
	var out []Section
	for _, s := range sections {
		if len(out) > 0 {
			prev := &out[len(out)-1]
			if prev.Words() < d.opts.MinSectionWords && s.Words() < d.opts.MinSectionWords {
				prev.Title = prev.Title + " / " + s.Title
				prev.Blocks = append(prev.Blocks, s.Blocks...)
				mergePageRange(prev, s.PageRange)
				if s.Confidence < prev.Confidence {
					prev.Confidence = s.Confidence
				}
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

func mergePageRange(s *Section, pr *PageRange) {
	if pr == nil {
		return
	}
	if s.PageRange == nil {
		s.PageRange = &PageRange{Start: pr.Start, End: pr.End}
		return
	}
	if pr.Start < s.PageRange.Start {
		s.PageRange.Start = pr.Start
	}
	if pr.End > s.PageRange.End {
		s.PageRange.End = pr.End
	}
}

// splitLarge breaks oversized sections at level-3/4 sub-headings. Sections
// with no internal sub-heading stay whole regardless of size.
func (d *Detector) splitLarge(sections []Section) []Section {
	var out []Section
	for _, s := range sections {
		if s.Words() <= d.opts.MaxSectionWords {
			out = append(out, s)
			continue
		}
		parts := d.splitAtSubheadings(s)
		out = append(out, parts...)
	}
	return out
}

func (d *Detector) splitAtSubheadings(s Section) []Section {
	var parts []Section
	current := s
	current.Blocks = nil

	for _, b := range s.Blocks {
		if h, ok := b.(content.Heading); ok && h.Level >= 3 && h.Level <= 4 && len(current.Blocks) > 0 {
			parts = append(parts, current)
			current = Section{
				ID:         content.NewID(),
				Title:      s.Title + " - " + h.Text,
				PageRange:  s.PageRange,
				Confidence: s.Confidence,
				Method:     s.Method,
			}
		}
		current.Blocks = append(current.Blocks, b)
	}
	if len(current.Blocks) > 0 {
		parts = append(parts, current)
	}
	if len(parts) == 0 {
		return []Section{s}
	}
	return parts
}

func dropEmpty(sections []Section) []Section {
	var out []Section
	for _, s := range sections {
		if len(s.Blocks) > 0 {
			out = append(out, s)
		}
	}
	return out
}
