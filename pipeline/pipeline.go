// Package pipeline chains the full analysis: parse a document, detect
// sections, map them onto the standard template, find policy gaps, run
// the governance analysis and assemble a plan draft.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/hazyhaar/govlens/docpipe"
	"github.com/hazyhaar/govlens/gap"
	"github.com/hazyhaar/govlens/governance"
	"github.com/hazyhaar/govlens/mapping"
	"github.com/hazyhaar/govlens/patch"
	"github.com/hazyhaar/govlens/plan"
	"github.com/hazyhaar/govlens/policy"
	"github.com/hazyhaar/govlens/recommend"
	"github.com/hazyhaar/govlens/section"
	"github.com/hazyhaar/govlens/template"
)

// Pipeline wires the analysis stages over a shared template catalog and
// policy library.
type Pipeline struct {
	parser      *docpipe.Parser
	detector    *section.Detector
	mapper      *mapping.Engine
	gaps        *gap.Engine
	analyzer    *governance.Analyzer
	recommender *recommend.Generator
	assembler   *plan.Assembler
	patches     *patch.Store
	logger      *slog.Logger
	cfg         Config
}

// New builds a Pipeline from the config: file-backed catalogs and
// matrices when paths are set, built-in data otherwise.
func New(cfg Config) (*Pipeline, error) {
	cfg.defaults()

	catalog := template.Standard()
	if cfg.TemplateCatalog != "" {
		var err error
		catalog, err = template.LoadCatalog(cfg.TemplateCatalog)
		if err != nil {
			return nil, fmt.Errorf("load template catalog: %w", err)
		}
	}

	lib := policy.Builtin()
	if cfg.PolicyLibrary != "" {
		var err error
		lib, err = policy.LoadLibrary(cfg.PolicyLibrary)
		if err != nil {
			return nil, fmt.Errorf("load policy library: %w", err)
		}
	}

	govOpts := governance.Options{
		Jurisdiction: cfg.Jurisdiction,
		MetThreshold: cfg.MetThreshold,
		Logger:       cfg.Logger,
	}
	if cfg.RequirementMatrix != "" {
		m, err := governance.LoadMatrix(cfg.RequirementMatrix)
		if err != nil {
			return nil, fmt.Errorf("load requirement matrix: %w", err)
		}
		govOpts.Matrix = m
	}
	if cfg.RiskTriggers != "" {
		defs, jurisdictions, err := governance.LoadTriggers(cfg.RiskTriggers)
		if err != nil {
			return nil, fmt.Errorf("load risk triggers: %w", err)
		}
		govOpts.Triggers = defs
		govOpts.Jurisdictions = jurisdictions
	}

	store := patch.Builtin()
	if cfg.PatchTemplates != "" {
		store = patch.NewStore(cfg.PatchTemplates, patch.StoreOptions{Logger: cfg.Logger})
	}
	govOpts.Patches = patchProvider(store, cfg.Logger)

	cfg.Parser.Logger = cfg.Logger
	cfg.Sections.Logger = cfg.Logger
	cfg.Mapping.Logger = cfg.Logger
	cfg.Gaps.Logger = cfg.Logger
	cfg.Recommend.Logger = cfg.Logger
	cfg.Plan.Logger = cfg.Logger

	return &Pipeline{
		parser:      docpipe.New(cfg.Parser),
		detector:    section.NewDetector(cfg.Sections),
		mapper:      mapping.NewEngine(catalog, cfg.Mapping),
		gaps:        gap.NewEngine(lib, cfg.Gaps),
		analyzer:    governance.NewAnalyzer(lib, govOpts),
		recommender: recommend.NewGenerator(lib, cfg.Recommend),
		assembler:   plan.NewAssembler(catalog, cfg.Plan),
		patches:     store,
		logger:      cfg.Logger,
		cfg:         cfg,
	}, nil
}

// Reload rebuilds the pipeline from its config, re-reading any
// file-backed catalogs.
func (p *Pipeline) Reload() error {
	fresh, err := New(p.cfg)
	if err != nil {
		return err
	}
	*p = *fresh
	return nil
}

// patchProvider adapts the template store to the analyzer's provider
// contract. Missing templates fall through to the analyzer's generated
// content.
func patchProvider(store *patch.Store, logger *slog.Logger) governance.PatchProvider {
	return func(q governance.PatchQuery) (governance.PatchContent, bool) {
		applied, err := store.Apply(patch.ApplyOptions{
			PolicyCode:    q.PolicyCode,
			RequirementID: q.RequirementID,
			Coverage:      patch.Coverage(q.Coverage),
			Jurisdiction:  q.Jurisdiction,
		})
		if err != nil {
			if !errors.Is(err, patch.ErrTemplateNotFound) {
				logger.Warn("patch template apply failed",
					"policy", q.PolicyCode, "requirement", q.RequirementID, "error", err)
			}
			return governance.PatchContent{}, false
		}
		return governance.PatchContent{
			Blocks:     applied.Blocks,
			Markdown:   applied.Markdown,
			StateNotes: applied.StateNotes,
			Warnings:   applied.Warnings,
		}, true
	}
}

// Timings records per-stage wall time in milliseconds.
type Timings struct {
	ParseMS      int64 `json:"parse_ms"`
	SectionsMS   int64 `json:"sections_ms"`
	MappingMS    int64 `json:"mapping_ms"`
	GapsMS       int64 `json:"gaps_ms"`
	GovernanceMS int64 `json:"governance_ms"`
	RecommendMS  int64 `json:"recommend_ms"`
	AssemblyMS   int64 `json:"assembly_ms"`
	TotalMS      int64 `json:"total_ms"`
}

// Report bundles the output of every stage of one run.
type Report struct {
	Document        *docpipe.Result            `json:"document"`
	Sections        []section.Section          `json:"sections"`
	Mappings        []mapping.Mapping          `json:"mappings"`
	MappingStats    mapping.Statistics         `json:"mapping_stats"`
	Gaps            []gap.Gap                  `json:"gaps"`
	GapSummary      gap.Summary                `json:"gap_summary"`
	Governance      *governance.Report         `json:"governance"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Plan            *plan.Plan                 `json:"plan"`
	PlanStats       plan.Stats                 `json:"plan_stats"`
	Timings         Timings                    `json:"timings"`
}

// Run analyzes one document end to end. An empty title falls back to
// the document title, then to the file name.
func (p *Pipeline) Run(ctx context.Context, path, title string) (*Report, error) {
	start := time.Now()
	rep := &Report{}

	t0 := time.Now()
	doc, err := p.parser.Parse(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	rep.Document = doc
	rep.Timings.ParseMS = time.Since(t0).Milliseconds()

	if title == "" {
		title = doc.Title
	}
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t0 = time.Now()
	rep.Sections = p.detector.Detect(doc)
	rep.Timings.SectionsMS = time.Since(t0).Milliseconds()

	t0 = time.Now()
	rep.Mappings = p.mapper.Map(rep.Sections)
	rep.MappingStats = mapping.Stats(rep.Mappings)
	rep.Timings.MappingMS = time.Since(t0).Milliseconds()

	t0 = time.Now()
	rep.Gaps, rep.GapSummary = p.gaps.Analyze(rep.Sections)
	rep.Timings.GapsMS = time.Since(t0).Milliseconds()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t0 = time.Now()
	rep.Governance = p.analyzer.Analyze(rep.Sections, title)
	rep.Timings.GovernanceMS = time.Since(t0).Milliseconds()

	t0 = time.Now()
	rep.Recommendations = p.recommender.FromGaps(rep.Gaps)
	rep.Timings.RecommendMS = time.Since(t0).Milliseconds()

	t0 = time.Now()
	rep.Plan, rep.PlanStats = p.assembler.Assemble(title, rep.Sections, rep.Mappings, rep.Recommendations)
	rep.Timings.AssemblyMS = time.Since(t0).Milliseconds()

	rep.Timings.TotalMS = time.Since(start).Milliseconds()
	p.logger.Info("analysis complete",
		"path", path,
		"sections", len(rep.Sections),
		"gaps", len(rep.Gaps),
		"risk", rep.Governance.RiskSummary.OverallRisk,
		"completion", rep.PlanStats.CompletionPercentage,
		"elapsed_ms", rep.Timings.TotalMS)
	return rep, nil
}

// Parse runs only the extraction stage.
func (p *Pipeline) Parse(ctx context.Context, path string) (*docpipe.Result, error) {
	return p.parser.Parse(ctx, path)
}

// Sections parses a document and returns its detected sections.
func (p *Pipeline) Sections(ctx context.Context, path string) ([]section.Section, error) {
	doc, err := p.parser.Parse(ctx, path)
	if err != nil {
		return nil, err
	}
	return p.detector.Detect(doc), nil
}

// Map parses a document and maps its sections onto the template.
func (p *Pipeline) Map(ctx context.Context, path string) ([]mapping.Mapping, mapping.Statistics, error) {
	sections, err := p.Sections(ctx, path)
	if err != nil {
		return nil, mapping.Statistics{}, err
	}
	mappings := p.mapper.Map(sections)
	return mappings, mapping.Stats(mappings), nil
}

// Patches exposes the template store behind the analyzer's provider.
func (p *Pipeline) Patches() *patch.Store {
	return p.patches
}
