package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Extract structured content from a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline()
		if err != nil {
			return err
		}
		doc, err := p.Parse(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(doc)
		}
		fmt.Printf("%s: %s, %d elements, %d pages\n", doc.Path, doc.Format, len(doc.Elements), doc.PageCount)
		if doc.Title != "" {
			fmt.Printf("Title: %s\n", doc.Title)
		}
		for _, w := range doc.Warnings {
			fmt.Printf("Warning: %s\n", w)
		}
		return nil
	},
}
