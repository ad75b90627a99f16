package policy

// builtinPolicies mirrors the standard sales compensation governance set.
var builtinPolicies = []Policy{
	{
		Code:           "SCP-001",
		Name:           "Clawback and Recovery Policy",
		Category:       CategoryCompliance,
		GovernanceArea: "Financial Controls",
		Summary:        "Defines when and how overpaid or reversed incentive compensation is recovered.",
		Objectives: []string{
			"Recover commissions on cancelled or reversed revenue",
			"Tier approval authority by recovery amount",
			"Guarantee participants a dispute path",
		},
		Provisions: []Provision{
			{ID: "P-001-01", Title: "Revenue Reversal Clawback", Content: "Commissions on cancelled, returned, or reversed transactions are subject to recovery.", Priority: PriorityCritical},
			{ID: "P-001-02", Title: "Approval Authority", Content: "Recoveries above defined thresholds require manager, director, or review board approval.", Priority: PriorityMedium},
			{ID: "P-001-03", Title: "Recovery Mechanism", Content: "Recovery is limited to a capped share of variable pay with advance written notice.", Priority: PriorityHigh},
			{ID: "P-001-04", Title: "Appeals Process", Content: "Participants may appeal a clawback within a defined window to a named review body.", Priority: PriorityMedium},
		},
		Keywords:    []string{"clawback", "recovery", "chargeback", "reversal", "repayment", "overpayment"},
		FederalLaws: []string{"FLSA"},
		StateLaws:   []string{"CA Labor Code 221", "CA Labor Code 2751"},
		Related:     []string{"SCP-006"},
	},
	{
		Code:           "SCP-002",
		Name:           "Quota Management Policy",
		Category:       CategoryGovernance,
		GovernanceArea: "Performance Management",
		Summary:        "Governs how quotas are set, communicated, and adjusted during the plan period.",
		Objectives: []string{
			"Document quota setting methodology",
			"Control mid-year quota adjustments",
			"Define quota treatment on territory change",
		},
		Provisions: []Provision{
			{ID: "P-002-01", Title: "Quota Setting Methodology", Content: "Quotas derive from documented factors: history, territory potential, strategy, resources.", Priority: PriorityMedium},
			{ID: "P-002-02", Title: "Mid-Year Adjustment Governance", Content: "Quota changes require tiered approval and a qualifying trigger.", Priority: PriorityHigh},
			{ID: "P-002-03", Title: "Territory Change Treatment", Content: "Quota adjustments for territory additions, reductions, and in-flight deals are defined.", Priority: PriorityMedium},
		},
		Keywords: []string{"quota", "methodology", "adjustment", "attainment", "target"},
	},
	{
		Code:           "SCP-003",
		Name:           "Windfall and Large Deal Policy",
		Category:       CategoryGovernance,
		GovernanceArea: "Deal Governance",
		Summary:        "Defines windfall triggers and the review and treatment of unusually large deals.",
		Objectives: []string{
			"Quantify windfall thresholds",
			"Require review board oversight of large deals",
			"Offer multiple treatment options",
		},
		Provisions: []Provision{
			{ID: "P-003-01", Title: "Windfall Triggers", Content: "Deals above contract value, commission, or quota-share thresholds qualify as windfalls.", Priority: PriorityHigh},
			{ID: "P-003-02", Title: "Review Requirement", Content: "Windfall deals require compensation review board approval before payment.", Priority: PriorityHigh},
			{ID: "P-003-03", Title: "Treatment Options", Content: "Windfalls may be capped, amortized, split, or paid as a special bonus.", Priority: PriorityMedium},
		},
		Keywords: []string{"windfall", "large deal", "cap", "review board", "amortize"},
	},
	{
		Code:           "SCP-005",
		Name:           "Section 409A Compliance Policy",
		Category:       CategoryCompliance,
		GovernanceArea: "Legal Compliance",
		Summary:        "Keeps incentive payments inside the short-term deferral safe harbor of IRC Section 409A.",
		Objectives: []string{
			"Pay incentives by March 15 of the following year",
			"Carry a 409A savings clause",
		},
		Provisions: []Provision{
			{ID: "P-005-01", Title: "Short-Term Deferral Safe Harbor", Content: "All amounts pay out within 2.5 months after the year they are earned.", Priority: PriorityCritical},
			{ID: "P-005-02", Title: "Savings Clause", Content: "The plan is construed to comply with or be exempt from Section 409A.", Priority: PriorityCritical},
		},
		Keywords:    []string{"409A", "deferral", "safe harbor", "March 15"},
		FederalLaws: []string{"IRC Section 409A"},
	},
	{
		Code:           "SCP-006",
		Name:           "State Wage Law Compliance Policy",
		Category:       CategoryCompliance,
		GovernanceArea: "Legal Compliance",
		Summary:        "Aligns commission terms with state wage statutes, California and New York in particular.",
		Objectives: []string{
			"Meet the California written agreement requirement",
			"Pay final wages on state-specific timelines",
			"Collect written consent for deductions",
		},
		Provisions: []Provision{
			{ID: "P-006-01", Title: "California Written Agreement", Content: "Commission terms are in a signed writing per Labor Code 2751.", Priority: PriorityCritical},
			{ID: "P-006-02", Title: "Final Payment Timing", Content: "Final wages follow state timing: immediate for CA involuntary, 72 hours voluntary.", Priority: PriorityCritical},
			{ID: "P-006-03", Title: "Deduction Consent", Content: "Recoverable items require written participant consent where state law demands it.", Priority: PriorityHigh},
		},
		Keywords:  []string{"wage", "labor code", "written agreement", "final pay", "deduction", "consent"},
		StateLaws: []string{"CA Labor Code 2751", "CA Labor Code 201-203", "NY Labor Law 191"},
		Related:   []string{"SCP-001"},
	},
}

// Builtin returns the built-in policy library.
func Builtin() *Library {
	return newLibrary(builtinPolicies)
}
