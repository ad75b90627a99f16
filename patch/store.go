package patch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store loads patch templates from a directory of YAML files and
// caches them by policy code. A file serves a policy when its name
// contains the policy code. Safe for concurrent use.
type Store struct {
	dir    string
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*Template
}

// StoreOptions configures a Store.
type StoreOptions struct {
	Logger *slog.Logger
}

// NewStore creates a template store over a directory. An empty dir
// serves only pre-seeded templates.
func NewStore(dir string, opts StoreOptions) *Store {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Store{
		dir:    dir,
		logger: opts.Logger,
		cache:  make(map[string]*Template),
	}
}

// Load returns the template for a policy code, reading and caching the
// backing file on first use.
func (s *Store) Load(policyCode string) (*Template, error) {
	s.mu.RLock()
	t, ok := s.cache[policyCode]
	s.mu.RUnlock()
	if ok {
		return t, nil
	}

	if s.dir == "" {
		return nil, fmt.Errorf("policy %s: %w", policyCode, ErrTemplateNotFound)
	}

	file, err := s.findFile(policyCode)
	if err != nil {
		return nil, err
	}
	t, err = parseTemplateFile(file)
	if err != nil {
		return nil, err
	}
	if t.PolicyCode != policyCode {
		return nil, fmt.Errorf("%s: template declares policy %q, want %q", file, t.PolicyCode, policyCode)
	}

	s.mu.Lock()
	s.cache[policyCode] = t
	s.mu.Unlock()
	return t, nil
}

// LoadAll parses every template file in the directory. Files that fail
// to parse are logged and skipped.
func (s *Store) LoadAll() ([]*Template, error) {
	if s.dir == "" {
		return s.cached(), nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", s.dir, err)
	}

	var out []*Template
	for _, e := range entries {
		if e.IsDir() || !isTemplateFile(e.Name()) {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		t, err := parseTemplateFile(path)
		if err != nil {
			s.logger.Warn("skipping patch template", "file", path, "error", err)
			continue
		}
		s.mu.Lock()
		s.cache[t.PolicyCode] = t
		s.mu.Unlock()
		out = append(out, t)
	}
	return out, nil
}

// ForRequirement resolves the template variant for one requirement.
func (s *Store) ForRequirement(policyCode, requirementID string, cov Coverage) (*Language, error) {
	t, err := s.Load(policyCode)
	if err != nil {
		return nil, err
	}
	lang, ok := t.ForRequirement(requirementID, cov)
	if !ok {
		return nil, fmt.Errorf("requirement %s/%s (%s): %w", policyCode, requirementID, cov, ErrTemplateNotFound)
	}
	return lang, nil
}

// StateNotes returns jurisdiction-specific guidance, or empty when the
// template carries none.
func (s *Store) StateNotes(policyCode, jurisdiction string) string {
	t, err := s.Load(policyCode)
	if err != nil {
		return ""
	}
	return t.StateNotes[jurisdiction]
}

// seed preloads templates into the cache.
func (s *Store) seed(templates []*Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range templates {
		s.cache[t.PolicyCode] = t
	}
}

func (s *Store) cached() []*Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Template, 0, len(s.cache))
	for _, t := range s.cache {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PolicyCode < out[j].PolicyCode })
	return out
}

func (s *Store) findFile(policyCode string) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("read dir %s: %w", s.dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !isTemplateFile(e.Name()) {
			continue
		}
		if strings.Contains(e.Name(), policyCode) {
			return filepath.Join(s.dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("policy %s: %w", policyCode, ErrTemplateNotFound)
}

func isTemplateFile(name string) bool {
	if name == "INDEX.yaml" || name == "INDEX.yml" {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func parseTemplateFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if t.PolicyCode == "" {
		return nil, fmt.Errorf("%s: template needs policy_code", path)
	}
	if len(t.Patches) == 0 {
		return nil, fmt.Errorf("%s: template has no patches", path)
	}
	for _, p := range t.Patches {
		if p.RequirementID == "" {
			return nil, fmt.Errorf("%s: patch entry needs requirement_id", path)
		}
	}
	return &t, nil
}
