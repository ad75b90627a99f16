package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type libraryFile struct {
	Policies []Policy `yaml:"policies"`
}

// LoadLibrary reads a policy library from a YAML file, or from every
// .yaml/.yml file in a directory.
func LoadLibrary(path string) (*Library, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", path, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if ext == ".yaml" || ext == ".yml" {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
	} else {
		files = []string{path}
	}

	var policies []Policy
	seen := make(map[string]bool)
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		var f libraryFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		for _, p := range f.Policies {
			if p.Code == "" || p.Name == "" {
				return nil, fmt.Errorf("%s: policy needs code and name", file)
			}
			if seen[p.Code] {
				return nil, fmt.Errorf("%s: duplicate policy code %q", file, p.Code)
			}
			seen[p.Code] = true
			policies = append(policies, p)
		}
	}

	if len(policies) == 0 {
		return nil, fmt.Errorf("%s: no policies defined", path)
	}
	return newLibrary(policies), nil
}
