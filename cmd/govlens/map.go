package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mapCmd = &cobra.Command{
	Use:   "map <file>",
	Short: "Map a document's sections onto the plan template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline()
		if err != nil {
			return err
		}
		mappings, stats, err := p.Map(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(map[string]any{"mappings": mappings, "stats": stats})
		}
		for _, m := range mappings {
			fmt.Printf("%-40s -> %-12s %.2f (%s, %s)\n",
				m.SectionTitle, m.TemplateSectionID, m.Confidence, m.Method, m.Status)
		}
		fmt.Printf("\n%d mappings, %d auto-accepted, %d need review, avg confidence %.2f\n",
			stats.Total, stats.AutoAccepted, stats.NeedsReview, stats.AverageConfidence)
		return nil
	},
}
