package governance

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type matrixFile struct {
	Policies []MatrixEntry `yaml:"policies"`
}

// LoadMatrix reads a requirement matrix from a YAML file. Detection
// patterns are validated as regular expressions at load time.
func LoadMatrix(path string) (*Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var f matrixFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Policies) == 0 {
		return nil, fmt.Errorf("%s: no policies defined", path)
	}

	seen := make(map[string]bool)
	for _, e := range f.Policies {
		if e.PolicyCode == "" || e.PolicyName == "" {
			return nil, fmt.Errorf("%s: matrix entry needs policy_code and policy_name", path)
		}
		if seen[e.PolicyCode] {
			return nil, fmt.Errorf("%s: duplicate policy code %q", path, e.PolicyCode)
		}
		seen[e.PolicyCode] = true

		for _, req := range e.Requirements {
			if req.ID == "" {
				return nil, fmt.Errorf("%s: requirement in %s needs an id", path, e.PolicyCode)
			}
			patterns := append(append([]string{}, req.Detection.PositivePatterns...),
				req.Detection.NegativePatterns...)
			for _, pat := range patterns {
				if _, err := regexp.Compile("(?i)" + pat); err != nil {
					return nil, fmt.Errorf("%s: requirement %s pattern %q: %w", path, req.ID, pat, err)
				}
			}
		}
	}
	return newMatrix(f.Policies), nil
}

type triggersFile struct {
	Triggers      []TriggerDef  `yaml:"triggers"`
	Jurisdictions Jurisdictions `yaml:"jurisdictions"`
}

// LoadTriggers reads risk triggers, and optionally a jurisdiction
// table, from a YAML file. A missing jurisdictions block falls back to
// the built-in table.
func LoadTriggers(path string) ([]TriggerDef, Jurisdictions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	var f triggersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Triggers) == 0 {
		return nil, nil, fmt.Errorf("%s: no triggers defined", path)
	}

	seen := make(map[string]bool)
	for _, t := range f.Triggers {
		if t.ID == "" || len(t.Patterns) == 0 {
			return nil, nil, fmt.Errorf("%s: trigger needs id and patterns", path)
		}
		if seen[t.ID] {
			return nil, nil, fmt.Errorf("%s: duplicate trigger id %q", path, t.ID)
		}
		seen[t.ID] = true
		for _, pat := range t.Patterns {
			if _, err := regexp.Compile("(?i)" + strings.TrimPrefix(pat, "!")); err != nil {
				return nil, nil, fmt.Errorf("%s: trigger %s pattern %q: %w", path, t.ID, pat, err)
			}
		}
	}

	if f.Jurisdictions == nil {
		f.Jurisdictions = DefaultJurisdictions()
	}
	return f.Triggers, f.Jurisdictions, nil
}
