package governance

// builtinTriggers are the plan-language patterns that raise liability
// even in structurally complete plans.
var builtinTriggers = []TriggerDef{
	{
		ID:   "RT-001",
		Name: "Retro/Discretion Posture",
		Patterns: []string{
			"change.*cancel.*any time",
			"sole discretion",
			"not subject to review.*court",
			"company reserves the right",
			"may modify.*at any time",
			"at.* discretion",
		},
		LiabilityImpact: 1,
		Description:     "Broad discretionary language increases enforceability risk",
	},
	{
		ID:   "RT-002",
		Name: "Earned-After-Deductions",
		Patterns: []string{
			"earned only after",
			"deemed earned.*subtracted",
			"before.*commission is deemed earned",
			"earned.*after.*deduct",
			"commission.*earned.*less",
		},
		LiabilityImpact: 2,
		Description:     "Commission contingent on deductions carries wage claim risk in CA",
	},
	{
		ID:   "RT-003",
		Name: "Recoverable Draw with Termination Repayment",
		Patterns: []string{
			"recoverable draw",
			"pay back.*overdraw",
			"repayment.*termination",
			"overdraw.*death",
			"repay.*draw.*separation",
			"return.*advance",
		},
		LiabilityImpact: 2,
		Description:     "Recoverable draw plus termination repayment carries high state law risk",
	},
	{
		ID:   "RT-004",
		Name: "AR Deductions",
		Patterns: []string{
			"AR.*deduct",
			"unpaid invoice.*subtract",
			"accounts receivable.*commission",
			"aging.*deduct",
			"collection.*offset",
		},
		LiabilityImpact: 1,
		Description:     "AR deductions from commissions carry wage law risk",
	},
	{
		ID:              "RT-005",
		Name:            "No Dispute Timeline",
		Patterns:        []string{"!dispute.*days", "!appeal.*days", "!contest.*within"},
		NegativeMatch:   true,
		LiabilityImpact: 1,
		Description:     "Missing dispute timeline leads to inconsistent handling",
	},
	{
		ID:   "RT-006",
		Name: "Spiff Employment Requirement",
		Patterns: []string{
			"must be employed.*spiff",
			"employed at.*time.*award",
			"active.*time.*payment",
			"employment.*condition.*bonus",
		},
		LiabilityImpact: 1,
		Description:     "Employment requirement for earned incentives carries state law risk",
	},
	{
		ID:   "RT-007",
		Name: "Territory Reassignment Without Process",
		Patterns: []string{
			"reassign.*territory.*discretion",
			"change.*territory.*business needs",
			"territory.*subject to change",
		},
		LiabilityImpact: 1,
		Description:     "Unilateral territory changes without governance invite credit disputes",
	},
	{
		ID:   "RT-008",
		Name: "Undefined Manageable Expenses",
		Patterns: []string{
			"other.*expenses",
			"manageable expenses",
			"miscellaneous.*deduct",
			"such other.*expenses",
		},
		LiabilityImpact: 1,
		Description:     "Vague expense deductions fuel disputes",
	},
	{
		ID:   "RT-009",
		Name: "Sales Crediting by Management Determination",
		Patterns: []string{
			"as determined by management",
			"manager.*discretion.*credit",
			"company.*determine.*credit",
		},
		LiabilityImpact: 1,
		Description:     "Subjective crediting criteria raise fairness concerns",
	},
	{
		ID:   "RT-010",
		Name: "No Cap or Threshold Defined",
		Patterns: []string{
			"!maximum.*commission",
			"!cap",
			"!ceiling",
			"!threshold.*approval",
		},
		NegativeMatch:   true,
		LiabilityImpact: 1,
		Description:     "No caps means windfall exposure and budget unpredictability",
	},
}

// DefaultTriggers returns a copy of the built-in risk trigger set.
func DefaultTriggers() []TriggerDef {
	out := make([]TriggerDef, len(builtinTriggers))
	copy(out, builtinTriggers)
	return out
}

// JurisdictionInfo scales liability for one jurisdiction.
type JurisdictionInfo struct {
	Multiplier   float64  `json:"multiplier" yaml:"multiplier"`
	WageLawFlags []string `json:"wage_law_flags,omitempty" yaml:"wage_law_flags,omitempty"`
}

// Jurisdictions maps a jurisdiction code to its liability profile.
// Unknown codes fall back to a 1.0 multiplier.
type Jurisdictions map[string]JurisdictionInfo

// Multiplier returns the liability multiplier for a jurisdiction.
func (j Jurisdictions) Multiplier(code string) float64 {
	if info, ok := j[code]; ok {
		return info.Multiplier
	}
	return 1.0
}

// WageLawFlags returns the wage law flags for a jurisdiction.
func (j Jurisdictions) WageLawFlags(code string) []string {
	if info, ok := j[code]; ok {
		return info.WageLawFlags
	}
	return nil
}

// DefaultJurisdictions returns the built-in multiplier table.
func DefaultJurisdictions() Jurisdictions {
	return Jurisdictions{
		"CA": {
			Multiplier: 1.5,
			WageLawFlags: []string{
				"final_pay_immediate",
				"written_agreement_required",
				"deduction_consent_strict",
				"earned_on_close_not_payment",
				"clawback_limits",
			},
		},
		"NY": {
			Multiplier:   1.2,
			WageLawFlags: []string{"final_pay_next_payday", "deduction_consent_required"},
		},
		"DEFAULT": {
			Multiplier: 1.0,
		},
	}
}

// triggerRelevance maps each trigger to the policy categories and
// governance areas it bears on.
var triggerRelevance = map[string][]string{
	"RT-001": {"Compliance", "Mid-Period Changes"},
	"RT-002": {"Legal Compliance", "Compliance"},
	"RT-003": {"Financial Controls", "Legal Compliance"},
	"RT-004": {"Financial Controls"},
	"RT-005": {"Compliance", "Dispute Resolution"},
	"RT-006": {"Legal Compliance", "Compliance"},
	"RT-007": {"Performance Management"},
	"RT-008": {"Financial Controls"},
	"RT-009": {"Performance Management", "Deal Governance"},
	"RT-010": {"Deal Governance", "Financial Controls"},
}
