package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/govlens/pipeline"
)

var analyzeTitle string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Run the full governance analysis on a plan document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline()
		if err != nil {
			return err
		}
		rep, err := p.Run(cmd.Context(), args[0], analyzeTitle)
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(rep)
		}
		printAnalysis(rep)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "plan title (defaults to the document title)")
}

func printAnalysis(rep *pipeline.Report) {
	fmt.Printf("Document:  %s (%s, %d pages)\n", rep.Document.Path, rep.Document.Format, rep.Document.PageCount)
	fmt.Printf("Sections:  %d detected\n", len(rep.Sections))
	fmt.Printf("Mappings:  %d (%d auto-accepted, %d need review)\n",
		rep.MappingStats.Total, rep.MappingStats.AutoAccepted, rep.MappingStats.NeedsReview)
	fmt.Printf("Coverage:  %.0f%% of %d policies\n",
		rep.GapSummary.CoveragePercentage, rep.GapSummary.TotalPolicies)

	if len(rep.Gaps) > 0 {
		fmt.Printf("\nPolicy gaps (%d):\n", len(rep.Gaps))
		for _, g := range rep.Gaps {
			fmt.Printf("  [%s] %s %s: %.0f%% coverage, %d terms missing\n",
				g.Severity, g.PolicyCode, g.PolicyName, g.Coverage*100, len(g.MissingKeywords))
		}
	}

	gov := rep.Governance
	fmt.Printf("\nGovernance risk: %s (jurisdiction %s, %d triggers, %d conflicts)\n",
		gov.RiskSummary.OverallRisk, gov.Jurisdiction.Code,
		gov.Statistics.TriggerCount, gov.Statistics.ConflictCount)
	for _, e := range gov.Entries {
		fmt.Printf("  %s %s: coverage %s, liability %d/5\n",
			e.PolicyCode, e.GovernanceArea, e.Coverage, e.Liability)
	}
	for _, action := range gov.RiskSummary.ImmediateActions {
		fmt.Printf("  ! %s\n", action)
	}

	fmt.Printf("\nPlan: %s (%s)\n", rep.Plan.Title, rep.Plan.Code)
	fmt.Printf("  %d sections, %d%% complete, %d recommendations (%d applied)\n",
		rep.PlanStats.PlanSections, rep.PlanStats.CompletionPercentage,
		rep.PlanStats.Recommendations, rep.PlanStats.RecommendationsApplied)
	fmt.Printf("\nDone in %dms\n", rep.Timings.TotalMS)
}
