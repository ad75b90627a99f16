// Package patch stores remediation language templates and applies them
// to plan content. Templates live in YAML files keyed by policy code,
// carry full and partial coverage variants, and use placeholders for
// company-specific values.
package patch

import "errors"

// ErrTemplateNotFound is returned when no template exists for a policy
// code or requirement.
var ErrTemplateNotFound = errors.New("patch template not found")

// Coverage selects which template variant to apply.
type Coverage string

const (
	CoverageFull    Coverage = "full"
	CoveragePartial Coverage = "partial"
)

// Position controls where patch blocks land relative to existing
// section content.
type Position string

const (
	PositionStart   Position = "START"
	PositionEnd     Position = "END"
	PositionReplace Position = "REPLACE"
)

// Placeholder is a slot in template language that needs a value.
type Placeholder struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Recommended string `json:"recommended,omitempty" yaml:"recommended,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// Language is one template variant's remediation text.
type Language struct {
	Title        string        `json:"title,omitempty" yaml:"title,omitempty"`
	Language     string        `json:"language" yaml:"language"`
	Placeholders []Placeholder `json:"placeholders,omitempty" yaml:"placeholders,omitempty"`
	UseWhen      string        `json:"use_when,omitempty" yaml:"use_when,omitempty"`
}

// Variants holds the coverage-level template variants for one
// requirement.
type Variants struct {
	FullCoverage    *Language `json:"full_coverage,omitempty" yaml:"full_coverage,omitempty"`
	PartialCoverage *Language `json:"partial_coverage,omitempty" yaml:"partial_coverage,omitempty"`
}

// Entry maps one requirement to its remediation templates.
type Entry struct {
	RequirementID   string   `json:"requirement_id" yaml:"requirement_id"`
	RequirementName string   `json:"requirement_name" yaml:"requirement_name"`
	Severity        string   `json:"severity" yaml:"severity"`
	InsertionPoint  string   `json:"insertion_point" yaml:"insertion_point"`
	Templates       Variants `json:"templates" yaml:"templates"`
}

// ValidationRule is a post-application check described in a template.
type ValidationRule struct {
	Rule  string `json:"rule" yaml:"rule"`
	Check string `json:"check" yaml:"check"`
}

// Template is the full patch template for one policy.
type Template struct {
	PolicyCode      string            `json:"policy_code" yaml:"policy_code"`
	PolicyName      string            `json:"policy_name" yaml:"policy_name"`
	Patches         []Entry           `json:"patches" yaml:"patches"`
	ValidationRules []ValidationRule  `json:"validation_rules,omitempty" yaml:"validation_rules,omitempty"`
	StateNotes      map[string]string `json:"state_specific_notes,omitempty" yaml:"state_specific_notes,omitempty"`
}

// ForRequirement returns the template variant for a requirement at the
// requested coverage level.
func (t *Template) ForRequirement(requirementID string, cov Coverage) (*Language, bool) {
	for i := range t.Patches {
		if t.Patches[i].RequirementID != requirementID {
			continue
		}
		if cov == CoveragePartial {
			return t.Patches[i].Templates.PartialCoverage, t.Patches[i].Templates.PartialCoverage != nil
		}
		return t.Patches[i].Templates.FullCoverage, t.Patches[i].Templates.FullCoverage != nil
	}
	return nil, false
}
