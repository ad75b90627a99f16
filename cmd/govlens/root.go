package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/govlens/pipeline"
)

var (
	cfgPath  string
	logLevel string
	jsonOut  bool

	rootCmd = &cobra.Command{
		Use:   "govlens",
		Short: "Governance analysis for compensation plan documents",
		Long: `govlens parses compensation plan documents, maps their sections onto
a standard plan template, measures policy coverage and governance
requirements, and assembles a plan draft with remediation language.`,
		PersistentPreRun: func(*cobra.Command, []string) {
			setupLogging()
		},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit raw JSON instead of a text summary")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(patchCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(mcpCmd)
}

// Logs go to stderr so stdout stays machine-readable.
func setupLogging() {
	var lvl slog.Level
	switch logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}

func buildPipeline() (*pipeline.Pipeline, error) {
	var cfg pipeline.Config
	if cfgPath != "" {
		var err error
		cfg, err = pipeline.LoadConfig(cfgPath)
		if err != nil {
			return nil, err
		}
	}
	cfg.Logger = slog.Default()
	return pipeline.New(cfg)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
