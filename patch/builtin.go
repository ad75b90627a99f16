package patch

// builtinTemplates carry remediation language for the highest-severity
// requirements so analysis works without a template directory.
var builtinTemplates = []*Template{
	{
		PolicyCode: "SCP-001",
		PolicyName: "Clawback and Recovery Policy",
		Patches: []Entry{
			{
				RequirementID:   "R-001-01",
				RequirementName: "Revenue Reversal Clawback",
				Severity:        "HIGH",
				InsertionPoint:  "Section: When is Commission Earned OR new Section 20",
				Templates: Variants{
					FullCoverage: &Language{
						Title: "Commission Clawback and Recovery",
						Language: "**Commission Clawback and Recovery**\n" +
							"Commissions paid on transactions that are subsequently cancelled, returned, reversed, or adjusted are subject to recovery.\n" +
							"Recovery applies when:\n" +
							"1. The underlying transaction is cancelled or the product returned within [CLAWBACK_WINDOW].\n" +
							"2. Revenue is reversed or restated for any reason.\n" +
							"3. A billing or crediting error resulted in overpayment.\n" +
							"Recovered amounts are limited to [MAX_DEDUCTION_RATE] of net variable compensation per pay period, with [NOTICE_PERIOD] advance written notice.",
						Placeholders: []Placeholder{
							{Name: "[CLAWBACK_WINDOW]", Description: "Window after payment during which recovery applies", Recommended: "six (6) months"},
							{Name: "[MAX_DEDUCTION_RATE]", Description: "Cap on per-period recovery", Recommended: "25%"},
							{Name: "[NOTICE_PERIOD]", Description: "Advance notice before recovery begins", Recommended: "60 days"},
						},
					},
					PartialCoverage: &Language{
						Title: "Clawback Clarification",
						Language: "**Clawback Clarification**\n" +
							"Existing adjustment language is supplemented as follows: commissions on cancelled or reversed transactions are recoverable within [CLAWBACK_WINDOW], subject to the notice and deduction limits stated in this plan.",
						Placeholders: []Placeholder{
							{Name: "[CLAWBACK_WINDOW]", Description: "Window after payment during which recovery applies", Recommended: "six (6) months"},
						},
					},
				},
			},
			{
				RequirementID:   "R-001-04",
				RequirementName: "Appeals Process",
				Severity:        "MEDIUM",
				InsertionPoint:  "Within clawback section",
				Templates: Variants{
					FullCoverage: &Language{
						Title: "Clawback Appeals",
						Language: "**Clawback Appeals**\n" +
							"A participant may dispute a clawback by written appeal to [REVIEW_BODY] within [APPEAL_WINDOW] of notice. The review body issues a written decision within [DECISION_WINDOW]. Recovery is suspended while an appeal is pending.",
						Placeholders: []Placeholder{
							{Name: "[REVIEW_BODY]", Description: "Body that hears clawback appeals", Recommended: "the Compensation Review Board"},
							{Name: "[APPEAL_WINDOW]", Description: "Time to file an appeal", Recommended: "30 days"},
							{Name: "[DECISION_WINDOW]", Description: "Time to decide an appeal", Recommended: "30 days"},
						},
					},
				},
			},
		},
		StateNotes: map[string]string{
			"CA": "California Labor Code 221-224 restricts deductions from earned wages. Written consent is required and recovery from final pay is sharply limited.",
			"NY": "New York Labor Law 193 permits deductions only with written authorization and for enumerated purposes.",
		},
	},
	{
		PolicyCode: "SCP-005",
		PolicyName: "Section 409A Compliance Policy",
		Patches: []Entry{
			{
				RequirementID:   "R-005-01",
				RequirementName: "Short-Term Deferral Safe Harbor",
				Severity:        "CRITICAL",
				InsertionPoint:  "Section: Standard Terms and Conditions",
				Templates: Variants{
					FullCoverage: &Language{
						Title: "Section 409A Payment Timing",
						Language: "**Section 409A Payment Timing**\n" +
							"All amounts payable under this plan are intended to qualify for the short-term deferral exception to Section 409A of the Internal Revenue Code. Each payment will be made no later than March 15 of the calendar year following the year in which the amount is earned and vested.",
					},
				},
			},
			{
				RequirementID:   "R-005-02",
				RequirementName: "Savings Clause",
				Severity:        "CRITICAL",
				InsertionPoint:  "Section: Standard Terms and Conditions",
				Templates: Variants{
					FullCoverage: &Language{
						Title: "Section 409A Savings Clause",
						Language: "**Section 409A Savings Clause**\n" +
							"This plan shall be interpreted and administered so that every payment is either exempt from or compliant with Section 409A. Any provision that would cause a payment to fail that standard is limited or construed to the minimum extent necessary to comply.",
					},
				},
			},
		},
	},
	{
		PolicyCode: "SCP-006",
		PolicyName: "State Wage Law Compliance Policy",
		Patches: []Entry{
			{
				RequirementID:   "R-006-01",
				RequirementName: "California Written Agreement",
				Severity:        "CRITICAL",
				InsertionPoint:  "Section: Acknowledgement",
				Templates: Variants{
					FullCoverage: &Language{
						Title: "California Commission Agreement",
						Language: "**California Commission Agreement**\n" +
							"For participants employed in California, this plan constitutes the written commission agreement required by Labor Code section 2751. It states the method by which commissions are computed and paid.\n" +
							"- Each participant receives a signed copy of this plan.\n" +
							"- Each participant signs a receipt acknowledging the plan's terms.\n" +
							"- The plan's terms remain in force until superseded by a new written agreement.",
					},
					PartialCoverage: &Language{
						Title: "California Acknowledgment Supplement",
						Language: "**California Acknowledgment Supplement**\n" +
							"The acknowledgment section is supplemented to state that, for California participants, this plan is the written agreement required by Labor Code section 2751 and that a signed receipt will be collected.",
					},
				},
			},
		},
		StateNotes: map[string]string{
			"CA": "Labor Code 2751 requires a signed writing stating how commissions are computed and paid, plus a signed receipt from the employee.",
		},
	},
}

// Builtin returns a store pre-seeded with the built-in templates. It
// reads no files.
func Builtin() *Store {
	s := NewStore("", StoreOptions{})
	s.seed(builtinTemplates)
	return s
}
