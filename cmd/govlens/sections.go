package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <file>",
	Short: "Parse a document and list its detected sections",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline()
		if err != nil {
			return err
		}
		sections, err := p.Sections(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(sections)
		}
		for _, s := range sections {
			fmt.Printf("%-40s %d blocks (%s, confidence %.2f)\n",
				s.Title, len(s.Blocks), s.Method, s.Confidence)
		}
		return nil
	},
}
