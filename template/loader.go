package template

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Sections []Section `yaml:"sections"`
}

// LoadCatalog reads a template catalog from a YAML file. Sections are
// sorted by order and validated for unique IDs.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(f.Sections) == 0 {
		return nil, fmt.Errorf("catalog %s: no sections defined", path)
	}

	seen := make(map[string]bool, len(f.Sections))
	for _, s := range f.Sections {
		if s.ID == "" || s.Title == "" {
			return nil, fmt.Errorf("catalog %s: section needs id and title", path)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("catalog %s: duplicate section id %q", path, s.ID)
		}
		seen[s.ID] = true
	}

	sort.SliceStable(f.Sections, func(i, j int) bool {
		return f.Sections[i].Order < f.Sections[j].Order
	})
	return newCatalog(f.Sections), nil
}
