package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/govlens/docpipe"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported document formats",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if jsonOut {
			return printJSON(map[string]any{"formats": docpipe.SupportedFormats()})
		}
		fmt.Println(strings.Join(docpipe.SupportedFormats(), " "))
		return nil
	},
}
