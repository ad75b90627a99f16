package governance

// builtinMatrix is the standard requirement matrix for the sales
// compensation governance set. Patterns are case-insensitive regular
// expressions evaluated against the full plan text.
var builtinMatrix = []MatrixEntry{
	{
		PolicyCode: "SCP-001",
		PolicyName: "Clawback and Recovery Policy",
		Category:   "Financial Controls",
		Requirements: []Requirement{
			{
				ID:          "R-001-01",
				Name:        "Revenue Reversal Clawback",
				Description: "Plan must address clawback for cancelled or reversed transactions",
				Severity:    SeverityHigh,
				Detection: Detection{
					PositivePatterns: []string{
						"chargeback",
						"clawback",
						"recovery",
						"reversal",
						"cancellation.*commission",
					},
					NegativePatterns: []string{"no clawback", "non-recoverable"},
					RequiredElements: map[string]string{
						"triggering_events": "cancellation, return, reversal, adjustment",
						"threshold":         "$50K or any amount",
						"timing":            "within X days/months",
					},
				},
				Scoring: map[Grade]string{
					GradeA: "Has explicit clawback with triggers, thresholds, and timing",
					GradeB: "Mentions adjustments/chargebacks but no formal clawback framework",
					GradeC: "Silent on recovery of overpayments",
				},
				InsertionPoint: "Section: When is Commission Earned OR new Section 20",
			},
			{
				ID:          "R-001-02",
				Name:        "Approval Authority",
				Description: "Clawback amounts require tiered approval",
				Severity:    SeverityMedium,
				Detection: Detection{
					RequiredElements: map[string]string{
						"approval_tiers": "$5K, $25K, $50K+",
						"approval_roles": "Manager, Director, VP, CRB",
					},
				},
				Scoring: map[Grade]string{
					GradeA: "Explicit approval matrix by dollar threshold",
					GradeB: "Mentions management approval, no tiers",
					GradeC: "No approval requirement stated",
				},
				InsertionPoint: "Within clawback section",
			},
			{
				ID:          "R-001-03",
				Name:        "Recovery Mechanism",
				Description: "Method of recovering overpaid commissions",
				Severity:    SeverityHigh,
				Detection: Detection{
					PositivePatterns: []string{"payroll deduction", "offset.*future", "repayment"},
					RequiredElements: map[string]string{
						"max_deduction_rate": "25% of net variable comp",
						"notice_period":      "60 days advance",
					},
				},
				Scoring: map[Grade]string{
					GradeA: "Explicit recovery method with limits and notice",
					GradeB: "Says 'company may deduct' without limits",
					GradeC: "No recovery mechanism defined",
				},
				InsertionPoint: "Section: Draw Payments or new Recovery section",
			},
			{
				ID:          "R-001-04",
				Name:        "Appeals Process",
				Description: "Employee right to dispute clawback",
				Severity:    SeverityMedium,
				Detection: Detection{
					PositivePatterns: []string{"appeal", "dispute.*clawback", "contest.*recovery"},
					RequiredElements: map[string]string{
						"timeline":    "30 days to appeal",
						"review_body": "defined",
					},
				},
				Scoring: map[Grade]string{
					GradeA: "Formal appeals process with timeline and review body",
					GradeB: "General dispute language exists, not specific to clawback",
					GradeC: "No appeals right for clawbacks",
				},
				InsertionPoint: "Within clawback section",
			},
		},
	},
	{
		PolicyCode: "SCP-002",
		PolicyName: "Quota Management Policy",
		Category:   "Performance Management",
		Requirements: []Requirement{
			{
				ID:          "R-002-01",
				Name:        "Quota Setting Methodology",
				Description: "Documented approach to setting quotas",
				Severity:    SeverityMedium,
				Detection: Detection{
					PositivePatterns: []string{
						"quota.*methodology",
						"territory potential",
						"historical performance",
					},
					RequiredElements: map[string]string{
						"factors": "historical, territory potential, strategic, resources",
						"weights": "defined percentages",
					},
				},
				Scoring: map[Grade]string{
					GradeA: "Multi-factor methodology with weights documented",
					GradeB: "Quotas mentioned but methodology not explained",
					GradeC: "Quotas assigned without methodology disclosure",
				},
				InsertionPoint: "New Section: Quota Methodology",
			},
			{
				ID:          "R-002-02",
				Name:        "Mid-Year Adjustment Governance",
				Description: "Approval thresholds for quota changes",
				Severity:    SeverityHigh,
				Detection: Detection{
					PositivePatterns: []string{"quota.*change", "adjustment.*approval"},
					NegativePatterns: []string{"subject to change at any time", "sole discretion"},
					RequiredElements: map[string]string{
						"approval_tiers":      "<10%: Manager, 10-25%: Director, >25%: VP/CRB",
						"qualifying_triggers": "defined list",
						"non_qualifying":      "performance-based not allowed",
					},
				},
				Scoring: map[Grade]string{
					GradeA: "Approval tiers with thresholds and qualifying triggers",
					GradeB: "Mentions changes possible, no governance",
					GradeC: "Silent OR says 'change anytime at sole discretion'",
				},
				InsertionPoint: "Section: Modifications to Plan",
			},
			{
				ID:          "R-002-03",
				Name:        "Territory Change Quota Treatment",
				Description: "How quota adjusts when territory changes",
				Severity:    SeverityMedium,
				Detection: Detection{
					RequiredElements: map[string]string{
						"addition_treatment":  "defined",
						"reduction_treatment": "defined",
						"in_flight_deals":     "defined",
					},
				},
				Scoring: map[Grade]string{
					GradeA: "Explicit quota adjustment rules for territory changes",
					GradeB: "Territory changes mentioned, no quota impact defined",
					GradeC: "Silent on quota impact of territory changes",
				},
				InsertionPoint: "Section: Territory Management",
			},
		},
	},
	{
		PolicyCode: "SCP-003",
		PolicyName: "Windfall and Large Deal Policy",
		Category:   "Deal Governance",
		Requirements: []Requirement{
			{
				ID:          "R-003-01",
				Name:        "Windfall Triggers",
				Description: "Definition of what constitutes a windfall",
				Severity:    SeverityHigh,
				Detection: Detection{
					RequiredElements: map[string]string{
						"transaction_threshold": "$1M+ contract value",
						"commission_threshold":  "$100K+ commission",
						"quota_threshold":       ">50% of annual quota",
					},
				},
				Scoring: map[Grade]string{
					GradeA: "Explicit windfall criteria defined",
					GradeB: "Large deal mentioned, no quantified triggers",
					GradeC: "No windfall definition",
				},
				InsertionPoint: "New Section: Large Deal Governance",
			},
			{
				ID:          "R-003-02",
				Name:        "CRB Review Requirement",
				Description: "Review body oversight of windfall deals",
				Severity:    SeverityHigh,
				Detection: Detection{
					PositivePatterns: []string{
						"CRB",
						"Compensation Review Board",
						"executive review",
						"special approval",
					},
				},
				Scoring: map[Grade]string{
					GradeA: "CRB review required with timeline and documentation",
					GradeB: "Management discretion mentioned, no formal review",
					GradeC: "No review requirement for large deals",
				},
				InsertionPoint: "Within windfall section",
			},
			{
				ID:          "R-003-03",
				Name:        "Treatment Options",
				Description: "How windfall compensation is handled",
				Severity:    SeverityMedium,
				Detection: Detection{
					RequiredElements: map[string]string{
						"options": "cap, amortize, split credit, special bonus",
					},
				},
				Scoring: map[Grade]string{
					GradeA: "Multiple treatment options defined with criteria",
					GradeB: "Cap mentioned, no other options",
					GradeC: "No treatment options defined",
				},
				InsertionPoint: "Within windfall section",
			},
		},
	},
	{
		PolicyCode: "SCP-005",
		PolicyName: "Section 409A Compliance Policy",
		Category:   "Legal Compliance",
		Requirements: []Requirement{
			{
				ID:          "R-005-01",
				Name:        "Short-Term Deferral Safe Harbor",
				Description: "Payment by March 15 following year",
				Severity:    SeverityCritical,
				Detection: Detection{
					PositivePatterns: []string{"409A", "short.term deferral", "March 15", "2.5 months"},
					RequiredElements: map[string]string{
						"payment_deadline": "March 15 following year",
					},
				},
				Scoring: map[Grade]string{
					GradeA: "Explicit 409A language with safe harbor timing",
					GradeB: "Payment timing exists, no 409A reference",
					GradeC: "No 409A compliance language",
				},
				InsertionPoint: "Section: Standard Terms and Conditions",
			},
			{
				ID:          "R-005-02",
				Name:        "Savings Clause",
				Description: "Protection language for 409A compliance",
				Severity:    SeverityCritical,
				Detection: Detection{
					PositivePatterns: []string{"409A.*compliance", "construed.*409A", "limited.*409A"},
				},
				Scoring: map[Grade]string{
					GradeA: "Explicit 409A savings clause",
					GradeB: "Legal compliance language, not specific to 409A",
					GradeC: "No savings clause",
				},
				InsertionPoint: "Section: Standard Terms and Conditions",
			},
		},
	},
	{
		PolicyCode: "SCP-006",
		PolicyName: "State Wage Law Compliance Policy",
		Category:   "Legal Compliance",
		Requirements: []Requirement{
			{
				ID:          "R-006-01",
				Name:        "California Written Agreement",
				Description: "CA Labor Code 2751 compliance",
				Severity:    SeverityCritical,
				Detection: Detection{
					PositivePatterns: []string{
						"California",
						"Labor Code",
						"written agreement",
						"2751",
					},
					RequiredElements: map[string]string{
						"written_agreement_language": "explicit reference",
						"participant_acknowledgment": "required",
					},
				},
				Scoring: map[Grade]string{
					GradeA: "Explicit CA written agreement requirement with 2751 reference",
					GradeB: "Has acknowledgment but no CA-specific language",
					GradeC: "No California compliance provisions",
				},
				InsertionPoint: "Section: Acknowledgement",
			},
			{
				ID:          "R-006-02",
				Name:        "Final Payment Timing",
				Description: "State-specific final pay timing",
				Severity:    SeverityCritical,
				Detection: Detection{
					RequiredElements: map[string]string{
						"ca_involuntary": "immediate",
						"ca_voluntary":   "72 hours",
						"state_matrix":   "multi-state compliance",
					},
				},
				Scoring: map[Grade]string{
					GradeA: "State-specific final payment timing matrix",
					GradeB: "Final payment mentioned, no state specifics",
					GradeC: "No final payment timing provisions",
				},
				InsertionPoint: "Section: Payment Upon Termination",
			},
			{
				ID:          "R-006-03",
				Name:        "Deduction Consent",
				Description: "State law requirements for payroll deductions",
				Severity:    SeverityHigh,
				Detection: Detection{
					PositivePatterns: []string{"consent.*deduction", "authorization.*deduct"},
					RequiredElements: map[string]string{
						"written_consent": "for recoverable items",
						"state_specific":  "CA, NY requirements",
					},
				},
				Scoring: map[Grade]string{
					GradeA: "Written consent requirement with state-specific rules",
					GradeB: "Deductions mentioned, no consent language",
					GradeC: "No consent provisions for deductions",
				},
				InsertionPoint: "Section: When is Commission Earned",
			},
		},
	},
}

// DefaultMatrix returns the built-in requirement matrix.
func DefaultMatrix() *Matrix {
	return newMatrix(builtinMatrix)
}
