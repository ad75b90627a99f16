// Package template holds the canonical compensation plan template catalog:
// the ordered library of sections a finished plan is assembled from.
package template

// Category groups template sections.
type Category string

const (
	CategoryPlanOverview  Category = "PLAN_OVERVIEW"
	CategoryPlanMeasures  Category = "PLAN_MEASURES"
	CategoryPayouts       Category = "PAYOUTS"
	CategoryPayoutExample Category = "PAYOUT_EXAMPLE"
	CategoryTerms         Category = "TERMS_CONDITIONS"
)

// Section is one slot of the plan template.
type Section struct {
	ID            string   `json:"id" yaml:"id"`
	SectionNumber string   `json:"section_number" yaml:"section_number"`
	Title         string   `json:"title" yaml:"title"`
	Category      Category `json:"category" yaml:"category"`
	Order         int      `json:"order" yaml:"order"`
	Required      bool     `json:"required" yaml:"required"`
	Selectable    bool     `json:"selectable" yaml:"selectable"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// standardSections is the built-in library. Orders are sparse so client
// catalogs can interleave custom slots.
var standardSections = []Section{
	{ID: "section-01", SectionNumber: "1.0", Title: "Plan Overview", Category: CategoryPlanOverview, Order: 1, Required: true, Description: "Purpose and scope of the incentive plan"},
	{ID: "section-02", SectionNumber: "1.1", Title: "Sales Incentive Plan Summary", Category: CategoryPlanOverview, Order: 2, Required: true, Description: "Target compensation mix and measure summary"},
	{ID: "section-10", SectionNumber: "2.0", Title: "Plan Measures", Category: CategoryPlanMeasures, Order: 10, Required: true, Description: "Performance measures and weights"},
	{ID: "section-11", SectionNumber: "2.1", Title: "Revenue Quota Bonus", Category: CategoryPlanMeasures, Order: 11, Selectable: true, Description: "Revenue attainment incentive mechanics"},
	{ID: "section-12", SectionNumber: "2.2", Title: "Unit Quota Bonus", Category: CategoryPlanMeasures, Order: 12, Selectable: true, Description: "Unit attainment incentive mechanics"},
	{ID: "section-13", SectionNumber: "2.3", Title: "Strategic Product SPIF", Category: CategoryPlanMeasures, Order: 13, Selectable: true, Description: "Special incentives on strategic products"},
	{ID: "section-14", SectionNumber: "2.4", Title: "Coverage Bonus", Category: CategoryPlanMeasures, Order: 14, Selectable: true, Description: "Territory coverage incentive"},
	{ID: "section-20", SectionNumber: "3.0", Title: "Payouts", Category: CategoryPayouts, Order: 20, Required: true, Description: "Payout calculation and rate tables"},
	{ID: "section-21", SectionNumber: "3.1", Title: "Payout Timing", Category: CategoryPayouts, Order: 21, Required: true, Description: "Payment schedule and processing cadence"},
	{ID: "section-30", SectionNumber: "4.0", Title: "Payout Example", Category: CategoryPayoutExample, Order: 30, Required: true, Description: "Worked example of a payout calculation"},
	{ID: "section-40", SectionNumber: "5.0", Title: "Terms and Conditions", Category: CategoryTerms, Order: 40, Required: true, Description: "Governing terms of the plan"},
	{ID: "section-41", SectionNumber: "5.1", Title: "Effective Dates of the Plan", Category: CategoryTerms, Order: 41, Required: true, Description: "Plan period start and end"},
	{ID: "section-42", SectionNumber: "5.2", Title: "Compensation Plan Acknowledgement", Category: CategoryTerms, Order: 42, Required: true, Description: "Participant acknowledgment and signature"},
	{ID: "section-43", SectionNumber: "5.3", Title: "Eligibility", Category: CategoryTerms, Order: 43, Required: true, Selectable: true, Description: "Who participates and from when"},
	{ID: "section-44", SectionNumber: "5.4", Title: "Plan Amendment or Termination", Category: CategoryTerms, Order: 44, Required: true, Description: "How the plan may change"},
	{ID: "section-45", SectionNumber: "5.5", Title: "Plan Administration", Category: CategoryTerms, Order: 45, Required: true, Description: "Administration roles and authority"},
	{ID: "section-46", SectionNumber: "5.6", Title: "New Hires and Transfers", Category: CategoryTerms, Order: 46, Required: true, Selectable: true, Description: "Proration rules for partial periods"},
	{ID: "section-47", SectionNumber: "5.7", Title: "Termination, Retirement, Death, Disability", Category: CategoryTerms, Order: 47, Required: true, Selectable: true, Description: "Treatment on separation events"},
	{ID: "section-48", SectionNumber: "5.8", Title: "Quota Management", Category: CategoryTerms, Order: 48, Selectable: true, Description: "Quota setting and adjustment governance"},
	{ID: "section-49", SectionNumber: "5.9", Title: "Territory Management", Category: CategoryTerms, Order: 49, Selectable: true, Description: "Territory assignment and change process"},
	{ID: "section-50", SectionNumber: "5.10", Title: "Sales Crediting", Category: CategoryTerms, Order: 50, Selectable: true, Description: "Crediting rules and split handling"},
	{ID: "section-51", SectionNumber: "5.11", Title: "Windfall Protection", Category: CategoryTerms, Order: 51, Selectable: true, Description: "Large deal review and treatment"},
	{ID: "section-52", SectionNumber: "5.12", Title: "Clawback / Recovery", Category: CategoryTerms, Order: 52, Selectable: true, Description: "Recovery of overpaid incentives"},
	{ID: "section-53", SectionNumber: "5.13", Title: "Payment Timing & Compliance", Category: CategoryTerms, Order: 53, Selectable: true, Description: "Wage law and 409A timing compliance"},
	{ID: "section-54", SectionNumber: "5.14", Title: "Exceptions & Disputes", Category: CategoryTerms, Order: 54, Selectable: true, Description: "Dispute windows and resolution path"},
	{ID: "section-55", SectionNumber: "5.15", Title: "Leave of Absence", Category: CategoryTerms, Order: 55, Selectable: true, Description: "Incentive treatment during leave"},
	{ID: "section-56", SectionNumber: "5.16", Title: "Definitions", Category: CategoryTerms, Order: 56, Required: true, Description: "Defined terms used across the plan"},
}

// Catalog is a read-only, ordered set of template sections.
type Catalog struct {
	sections []Section
	byID     map[string]int
}

// Standard returns the built-in template catalog.
func Standard() *Catalog {
	return newCatalog(standardSections)
}

func newCatalog(sections []Section) *Catalog {
	c := &Catalog{
		sections: make([]Section, len(sections)),
		byID:     make(map[string]int, len(sections)),
	}
	copy(c.sections, sections)
	for i, s := range c.sections {
		c.byID[s.ID] = i
	}
	return c
}

// Sections returns all sections in catalog order.
func (c *Catalog) Sections() []Section {
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// Get looks up a section by ID.
func (c *Catalog) Get(id string) (Section, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Section{}, false
	}
	return c.sections[i], true
}

// ByCategory returns the sections of one category in order.
func (c *Catalog) ByCategory(cat Category) []Section {
	var out []Section
	for _, s := range c.sections {
		if s.Category == cat {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of sections.
func (c *Catalog) Len() int { return len(c.sections) }
