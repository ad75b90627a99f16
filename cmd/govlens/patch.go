package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/govlens/patch"
)

var (
	patchCoverage     string
	patchJurisdiction string
	patchValues       []string
)

var patchCmd = &cobra.Command{
	Use:   "patch <policy> <requirement>",
	Short: "Preview the remediation template for a requirement",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline()
		if err != nil {
			return err
		}

		values := make(map[string]string, len(patchValues))
		for _, kv := range patchValues {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("invalid --set %q, want NAME=value", kv)
			}
			values[k] = v
		}

		applied, err := p.Patches().Apply(patch.ApplyOptions{
			PolicyCode:        args[0],
			RequirementID:     args[1],
			Coverage:          patch.Coverage(patchCoverage),
			PlaceholderValues: values,
			Jurisdiction:      patchJurisdiction,
		})
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(applied)
		}

		fmt.Println(applied.Markdown)
		if applied.StateNotes != "" {
			fmt.Printf("\nState notes (%s): %s\n", patchJurisdiction, applied.StateNotes)
		}
		for _, w := range applied.Warnings {
			fmt.Printf("Warning: %s\n", w)
		}
		return nil
	},
}

func init() {
	patchCmd.Flags().StringVar(&patchCoverage, "coverage", "full", "template variant (full or partial)")
	patchCmd.Flags().StringVar(&patchJurisdiction, "jurisdiction", "", "attach state-specific notes")
	patchCmd.Flags().StringArrayVar(&patchValues, "set", nil, "placeholder value NAME=value (repeatable)")
}
