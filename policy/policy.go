// Package policy is the read-only catalog of governance policies that
// compensation plans are checked against.
package policy

import "errors"

// ErrPolicyNotFound is returned by lookups for unknown policy codes.
var ErrPolicyNotFound = errors.New("policy not found")

// Priority ranks a provision within a policy.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// Category classifies a policy for severity grading.
type Category string

const (
	CategoryCompliance    Category = "Compliance"
	CategoryGovernance    Category = "Governance"
	CategoryCalculation   Category = "Calculation"
	CategoryProcess       Category = "Process"
	CategoryDocumentation Category = "Documentation"
)

// Provision is one clause of a policy.
type Provision struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Content  string   `json:"content" yaml:"content"`
	Priority Priority `json:"priority" yaml:"priority"`
}

// Policy is a governance policy definition.
type Policy struct {
	Code           string      `json:"code" yaml:"code"`
	Name           string      `json:"name" yaml:"name"`
	Category       Category    `json:"category" yaml:"category"`
	GovernanceArea string      `json:"governance_area" yaml:"governance_area"`
	Summary        string      `json:"summary" yaml:"summary"`
	Objectives     []string    `json:"objectives,omitempty" yaml:"objectives,omitempty"`
	Provisions     []Provision `json:"provisions,omitempty" yaml:"provisions,omitempty"`
	Keywords       []string    `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	FederalLaws    []string    `json:"federal_laws,omitempty" yaml:"federal_laws,omitempty"`
	StateLaws      []string    `json:"state_laws,omitempty" yaml:"state_laws,omitempty"`
	Related        []string    `json:"related,omitempty" yaml:"related,omitempty"`
}

// Library is a read-only set of policies keyed by code.
type Library struct {
	policies []Policy
	byCode   map[string]int
}

// NewLibrary builds a library from explicit policies. Later duplicates of
// a code shadow earlier ones in lookups.
func NewLibrary(policies ...Policy) *Library {
	return newLibrary(policies)
}

func newLibrary(policies []Policy) *Library {
	l := &Library{
		policies: make([]Policy, len(policies)),
		byCode:   make(map[string]int, len(policies)),
	}
	copy(l.policies, policies)
	for i, p := range l.policies {
		l.byCode[p.Code] = i
	}
	return l
}

// Get looks up a policy by code.
func (l *Library) Get(code string) (Policy, bool) {
	i, ok := l.byCode[code]
	if !ok {
		return Policy{}, false
	}
	return l.policies[i], true
}

// Policies returns all policies in library order.
func (l *Library) Policies() []Policy {
	out := make([]Policy, len(l.policies))
	copy(out, l.policies)
	return out
}

// Len returns the number of policies.
func (l *Library) Len() int { return len(l.policies) }
