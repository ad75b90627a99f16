package pipeline

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/govlens/docpipe"
	"github.com/hazyhaar/govlens/gap"
	"github.com/hazyhaar/govlens/mapping"
	"github.com/hazyhaar/govlens/plan"
	"github.com/hazyhaar/govlens/recommend"
	"github.com/hazyhaar/govlens/section"
)

// Config assembles the options of every stage. Zero value runs with
// built-in policies, templates and matrices.
type Config struct {
	// Jurisdiction scales governance liability scores (default: "CA").
	Jurisdiction string `yaml:"jurisdiction"`

	// MetThreshold is the governance requirement-coverage bar for MET
	// status (default: 0.8).
	MetThreshold float64 `yaml:"met_threshold"`

	// TemplateCatalog is a YAML plan template catalog; empty uses the
	// standard catalog.
	TemplateCatalog string `yaml:"template_catalog"`

	// PolicyLibrary is a YAML policy library; empty uses the built-in
	// policies.
	PolicyLibrary string `yaml:"policy_library"`

	// RequirementMatrix is a YAML requirement matrix; empty uses the
	// built-in matrix.
	RequirementMatrix string `yaml:"requirement_matrix"`

	// RiskTriggers is a YAML trigger and jurisdiction table; empty uses
	// the built-in set.
	RiskTriggers string `yaml:"risk_triggers"`

	// PatchTemplates is a directory of patch template files; empty uses
	// the built-in templates.
	PatchTemplates string `yaml:"patch_templates"`

	Parser    docpipe.Config    `yaml:"parser"`
	Sections  section.Options   `yaml:"sections"`
	Mapping   mapping.Options   `yaml:"mapping"`
	Gaps      gap.Options       `yaml:"gaps"`
	Recommend recommend.Options `yaml:"recommend"`
	Plan      plan.Options      `yaml:"plan"`

	Logger *slog.Logger `yaml:"-"`
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// DefaultConfig runs entirely on built-in catalogs.
func DefaultConfig() Config {
	var cfg Config
	cfg.defaults()
	return cfg
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
