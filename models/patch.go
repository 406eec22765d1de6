// ABOUTME: Partial day submissions and the pure merge reducer
// ABOUTME: Scalars overwrite per field, logs append, keyed lists upsert by name
package models

// SalesPatch is a partial sales submission. Nil pointers were not submitted.
type SalesPatch struct {
	Leads            *int            `json:"leads,omitempty"`
	Sources          []SalesSource   `json:"sources,omitempty"`
	LeadQuality      *int            `json:"leadQuality,omitempty"`
	ColdCalls        *int            `json:"coldCalls,omitempty"`
	Meetings         *int            `json:"meetings,omitempty"`
	DealsClosed      *int            `json:"dealsClosed,omitempty"`
	Revenue          *float64        `json:"revenue,omitempty"`
	RevenueBreakdown []RevenueSource `json:"revenueBreakdown,omitempty"`
	DealStage        *string         `json:"dealStage,omitempty"`
	CallLog          []CallRecord    `json:"callLog,omitempty"`
	Notes            *string         `json:"notes,omitempty"`
}

// NetworkPatch is a partial network submission. NewContacts are appended.
type NetworkPatch struct {
	NewContacts           []Contact `json:"newContacts,omitempty"`
	Reconnections         *int      `json:"reconnections,omitempty"`
	IntroductionsGiven    *int      `json:"introductionsGiven,omitempty"`
	IntroductionsReceived *int      `json:"introductionsReceived,omitempty"`
	Notes                 *string   `json:"notes,omitempty"`
}

type FinancePatch struct {
	Revenue           *float64 `json:"revenue,omitempty"`
	OperatingExpenses *float64 `json:"operatingExpenses,omitempty"`
	MRR               *float64 `json:"mrr,omitempty"`
	Churn             *float64 `json:"churn,omitempty"`
	TaxReserve        *float64 `json:"taxReserve,omitempty"`
	CashPosition      *float64 `json:"cashPosition,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}

type ProductivityPatch struct {
	FocusHours           *float64 `json:"focusHours,omitempty"`
	DeepWorkHours        *float64 `json:"deepWorkHours,omitempty"`
	TasksCompleted       *int     `json:"tasksCompleted,omitempty"`
	EnergyLevel          *int     `json:"energyLevel,omitempty"`
	StressLevel          *int     `json:"stressLevel,omitempty"`
	MajorAccomplishments []string `json:"majorAccomplishments,omitempty"`
	Notes                *string  `json:"notes,omitempty"`
}

type GymPatch struct {
	Type      *string  `json:"type,omitempty"`
	Sets      *int     `json:"sets,omitempty"`
	Reps      *int     `json:"reps,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	Completed *bool    `json:"completed,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

// DayPatch is one submission for a date. Callers populate at most one section.
type DayPatch struct {
	Sales         *SalesPatch              `json:"sales,omitempty"`
	Network       *NetworkPatch            `json:"network,omitempty"`
	Relationships []RelationshipAssessment `json:"relationships,omitempty"`
	Finance       *FinancePatch            `json:"finance,omitempty"`
	Productivity  *ProductivityPatch       `json:"productivity,omitempty"`
	Gym           *GymPatch                `json:"gym,omitempty"`
	Notes         *string                  `json:"notes,omitempty"`
}

// Sections returns the categories this patch touches, in canonical order.
func (p DayPatch) Sections() []Category {
	var out []Category
	if p.Sales != nil {
		out = append(out, CategorySales)
	}
	if p.Network != nil {
		out = append(out, CategoryNetwork)
	}
	if len(p.Relationships) > 0 {
		out = append(out, CategoryRelationships)
	}
	if p.Finance != nil {
		out = append(out, CategoryFinance)
	}
	if p.Productivity != nil {
		out = append(out, CategoryProductivity)
	}
	if p.Gym != nil {
		out = append(out, CategoryGym)
	}
	if p.Notes != nil {
		out = append(out, CategoryNotes)
	}
	return out
}

// NewContacts returns contacts acquired by this patch, if any.
func (p DayPatch) NewContacts() []Contact {
	if p.Network == nil {
		return nil
	}
	return p.Network.NewContacts
}

// Merge applies a patch to the record and returns the result. The receiver is not modified.
func (r DailyRecord) Merge(p DayPatch) DailyRecord {
	out := r.Clone()

	if p.Sales != nil {
		if out.Sales == nil {
			out.Sales = &SalesEntry{}
		}
		p.Sales.applyTo(out.Sales)
	}
	if p.Network != nil {
		if out.Network == nil {
			out.Network = &NetworkEntry{}
		}
		p.Network.applyTo(out.Network)
	}
	if len(p.Relationships) > 0 {
		out.Relationships = append(out.Relationships, cloneAssessments(p.Relationships)...)
	}
	if p.Finance != nil {
		if out.Finance == nil {
			out.Finance = &FinanceEntry{}
		}
		p.Finance.applyTo(out.Finance)
	}
	if p.Productivity != nil {
		if out.Productivity == nil {
			out.Productivity = &ProductivityEntry{}
		}
		p.Productivity.applyTo(out.Productivity)
	}
	if p.Gym != nil {
		if out.Gym == nil {
			out.Gym = &GymEntry{}
		}
		p.Gym.applyTo(out.Gym)
	}
	if p.Notes != nil {
		notes := *p.Notes
		out.Notes = &notes
	}

	out.Categories = out.PresentCategories()
	return out
}

// PresentCategories derives the tag set from the populated sections.
func (r DailyRecord) PresentCategories() []Category {
	out := []Category{}
	if r.Sales != nil {
		out = append(out, CategorySales)
	}
	if r.Network != nil {
		out = append(out, CategoryNetwork)
	}
	if len(r.Relationships) > 0 {
		out = append(out, CategoryRelationships)
	}
	if r.Finance != nil {
		out = append(out, CategoryFinance)
	}
	if r.Productivity != nil {
		out = append(out, CategoryProductivity)
	}
	if r.Gym != nil {
		out = append(out, CategoryGym)
	}
	if r.Notes != nil {
		out = append(out, CategoryNotes)
	}
	return out
}

// HasCategory reports whether the section for c is populated.
func (r DailyRecord) HasCategory(c Category) bool {
	for _, have := range r.PresentCategories() {
		if have == c {
			return true
		}
	}
	return false
}

func (p *SalesPatch) applyTo(s *SalesEntry) {
	setInt(&s.Leads, p.Leads)
	setInt(&s.LeadQuality, p.LeadQuality)
	setInt(&s.ColdCalls, p.ColdCalls)
	setInt(&s.Meetings, p.Meetings)
	setInt(&s.DealsClosed, p.DealsClosed)
	setFloat(&s.Revenue, p.Revenue)
	setString(&s.DealStage, p.DealStage)
	setString(&s.Notes, p.Notes)

	for _, src := range p.Sources {
		s.Sources = upsertSource(s.Sources, src)
	}
	for _, rev := range p.RevenueBreakdown {
		s.RevenueBreakdown = upsertRevenue(s.RevenueBreakdown, rev)
	}
	if len(p.CallLog) > 0 {
		s.CallLog = append(s.CallLog, cloneCalls(p.CallLog)...)
	}
}

func (p *NetworkPatch) applyTo(n *NetworkEntry) {
	setInt(&n.Reconnections, p.Reconnections)
	setInt(&n.IntroductionsGiven, p.IntroductionsGiven)
	setInt(&n.IntroductionsReceived, p.IntroductionsReceived)
	setString(&n.Notes, p.Notes)
	if len(p.NewContacts) > 0 {
		n.NewContacts = append(n.NewContacts, cloneContacts(p.NewContacts)...)
	}
}

func (p *FinancePatch) applyTo(f *FinanceEntry) {
	setFloat(&f.Revenue, p.Revenue)
	setFloat(&f.OperatingExpenses, p.OperatingExpenses)
	setFloat(&f.MRR, p.MRR)
	setFloat(&f.Churn, p.Churn)
	setFloat(&f.TaxReserve, p.TaxReserve)
	setFloat(&f.CashPosition, p.CashPosition)
	setString(&f.Notes, p.Notes)
}

func (p *ProductivityPatch) applyTo(e *ProductivityEntry) {
	setFloat(&e.FocusHours, p.FocusHours)
	setFloat(&e.DeepWorkHours, p.DeepWorkHours)
	setInt(&e.TasksCompleted, p.TasksCompleted)
	setInt(&e.EnergyLevel, p.EnergyLevel)
	setInt(&e.StressLevel, p.StressLevel)
	setString(&e.Notes, p.Notes)
	if len(p.MajorAccomplishments) > 0 {
		e.MajorAccomplishments = append(e.MajorAccomplishments, p.MajorAccomplishments...)
	}
}

func (p *GymPatch) applyTo(g *GymEntry) {
	setString(&g.Type, p.Type)
	setInt(&g.Sets, p.Sets)
	setInt(&g.Reps, p.Reps)
	setFloat(&g.Weight, p.Weight)
	if p.Completed != nil {
		g.Completed = *p.Completed
	}
	setString(&g.Notes, p.Notes)
}

func upsertSource(list []SalesSource, src SalesSource) []SalesSource {
	for i := range list {
		if list[i].Name == src.Name {
			list[i] = src
			return list
		}
	}
	return append(list, src)
}

func upsertRevenue(list []RevenueSource, rev RevenueSource) []RevenueSource {
	for i := range list {
		if list[i].Name == rev.Name {
			list[i] = rev
			return list
		}
	}
	return append(list, rev)
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
