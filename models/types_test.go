// ABOUTME: Tests for the day merge reducer and derived categories
// ABOUTME: Covers idempotence, non-destructive merges, and log append monotonicity
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }
func strp(v string) *string     { return &v }
func boolp(v bool) *bool        { return &v }

func salesPatch() DayPatch {
	return DayPatch{Sales: &SalesPatch{
		Leads:       intp(10),
		DealsClosed: intp(2),
		Revenue:     floatp(5000),
		DealStage:   strp(StageProposal),
	}}
}

func financePatch() DayPatch {
	return DayPatch{Finance: &FinancePatch{
		Revenue:           floatp(5000),
		OperatingExpenses: floatp(1000),
		CashPosition:      floatp(25000),
	}}
}

func TestMergeIntoEmptyRecord(t *testing.T) {
	rec := DailyRecord{}.Merge(salesPatch())

	require.NotNil(t, rec.Sales)
	assert.Equal(t, 10, rec.Sales.Leads)
	assert.Equal(t, 5000.0, rec.Sales.Revenue)
	assert.Equal(t, []Category{CategorySales}, rec.Categories)
}

func TestMergeIsIdempotentForScalarSections(t *testing.T) {
	patches := []DayPatch{
		salesPatch(),
		financePatch(),
		{Productivity: &ProductivityPatch{FocusHours: floatp(4.5), EnergyLevel: intp(7)}},
		{Gym: &GymPatch{Type: strp("squat"), Sets: intp(5), Reps: intp(5), Weight: floatp(100), Completed: boolp(true)}},
		{Network: &NetworkPatch{Reconnections: intp(3), IntroductionsGiven: intp(1)}},
		{Notes: strp("quiet day")},
	}

	for _, p := range patches {
		once := DailyRecord{}.Merge(p)
		twice := once.Merge(p)
		assert.Equal(t, once, twice)
	}
}

func TestMergeDifferentSectionsIsNonDestructiveAndCommutative(t *testing.T) {
	salesFirst := DailyRecord{}.Merge(salesPatch()).Merge(financePatch())
	financeFirst := DailyRecord{}.Merge(financePatch()).Merge(salesPatch())

	require.NotNil(t, salesFirst.Sales)
	require.NotNil(t, salesFirst.Finance)
	assert.Equal(t, 10, salesFirst.Sales.Leads)
	assert.Equal(t, 1000.0, salesFirst.Finance.OperatingExpenses)
	assert.Equal(t, []Category{CategorySales, CategoryFinance}, salesFirst.Categories)
	assert.Equal(t, salesFirst, financeFirst)
}

func TestMergeSameSectionKeepsUnsubmittedFields(t *testing.T) {
	rec := DailyRecord{}.Merge(salesPatch())
	rec = rec.Merge(DayPatch{Sales: &SalesPatch{Revenue: floatp(7500)}})

	assert.Equal(t, 7500.0, rec.Sales.Revenue, "last write wins")
	assert.Equal(t, 10, rec.Sales.Leads, "unsubmitted field survives")
	assert.Equal(t, StageProposal, rec.Sales.DealStage)
}

func TestCallLogAppendMonotonicity(t *testing.T) {
	batches := [][]CallRecord{
		{NewCallRecord("Ann", "Acme", CallCold, OutcomeVoicemail, 30, nil, "")},
		{
			NewCallRecord("Bob", "Beta", CallWarm, OutcomeQualified, 300, []string{"price"}, ""),
			NewCallRecord("Cy", "Cobalt", CallClient, OutcomeMeeting, 600, nil, ""),
		},
		{},
		{NewCallRecord("Di", "Delta", CallFollowup, OutcomeCallback, 90, nil, "")},
	}

	rec := DailyRecord{}
	total := 0
	for _, batch := range batches {
		before := 0
		if rec.Sales != nil {
			before = len(rec.Sales.CallLog)
		}
		rec = rec.Merge(DayPatch{Sales: &SalesPatch{CallLog: batch}})
		total += len(batch)
		assert.Len(t, rec.Sales.CallLog, total)
		assert.GreaterOrEqual(t, len(rec.Sales.CallLog), before)
	}
	assert.Equal(t, "Ann", rec.Sales.CallLog[0].Contact)
	assert.Equal(t, "Di", rec.Sales.CallLog[3].Contact)
}

func TestRelationshipsAppend(t *testing.T) {
	a1 := NewAssessment("c1")
	a2 := NewAssessment("c2")

	rec := DailyRecord{}.Merge(DayPatch{Relationships: []RelationshipAssessment{a1}})
	rec = rec.Merge(DayPatch{Relationships: []RelationshipAssessment{a2}})

	require.Len(t, rec.Relationships, 2)
	assert.Equal(t, "c1", rec.Relationships[0].ContactID)
	assert.Equal(t, "c2", rec.Relationships[1].ContactID)
	assert.Equal(t, []Category{CategoryRelationships}, rec.Categories)
}

func TestSourcesUpsertByName(t *testing.T) {
	rec := DailyRecord{}.Merge(DayPatch{Sales: &SalesPatch{Sources: []SalesSource{
		{Name: "LinkedIn", Count: 2, Active: true},
		{Name: "Referral", Count: 1, Active: true},
	}}})
	rec = rec.Merge(DayPatch{Sales: &SalesPatch{Sources: []SalesSource{
		{Name: "LinkedIn", Count: 5, Active: true},
	}}})

	require.Len(t, rec.Sales.Sources, 2)
	assert.Equal(t, 5, rec.Sales.Sources[0].Count)
	assert.Equal(t, "Referral", rec.Sales.Sources[1].Name)
}

func TestMergeDoesNotAliasInput(t *testing.T) {
	base := DailyRecord{}.Merge(DayPatch{Sales: &SalesPatch{CallLog: []CallRecord{
		NewCallRecord("Ann", "", "", "", 0, nil, ""),
	}}})
	next := base.Merge(DayPatch{Sales: &SalesPatch{CallLog: []CallRecord{
		NewCallRecord("Bob", "", "", "", 0, nil, ""),
	}}})

	assert.Len(t, base.Sales.CallLog, 1)
	assert.Len(t, next.Sales.CallLog, 2)

	next.Sales.CallLog[0].Contact = "changed"
	assert.Equal(t, "Ann", base.Sales.CallLog[0].Contact)
}

func TestCategoriesFollowCanonicalOrder(t *testing.T) {
	rec := DailyRecord{}.
		Merge(DayPatch{Notes: strp("n")}).
		Merge(DayPatch{Gym: &GymPatch{Completed: boolp(true)}}).
		Merge(financePatch()).
		Merge(salesPatch())

	assert.Equal(t, []Category{CategorySales, CategoryFinance, CategoryGym, CategoryNotes}, rec.Categories)
	assert.True(t, rec.HasCategory(CategoryGym))
	assert.False(t, rec.HasCategory(CategoryNetwork))
}

func TestDayPatchSections(t *testing.T) {
	assert.Empty(t, DayPatch{}.Sections())
	assert.Equal(t, []Category{CategoryFinance}, financePatch().Sections())

	both := DayPatch{Sales: &SalesPatch{}, Notes: strp("x")}
	assert.Equal(t, []Category{CategorySales, CategoryNotes}, both.Sections())
}

func TestCallPatchDerivesCounters(t *testing.T) {
	rec := DailyRecord{}
	for _, outcome := range []string{OutcomeVoicemail, OutcomeQualified, OutcomeMeeting} {
		call := NewCallRecord("x", "", CallCold, outcome, 60, nil, "")
		rec = rec.Merge(DayPatch{Sales: ptrSales(CallPatch(rec.Sales, call))})
	}

	assert.Len(t, rec.Sales.CallLog, 3)
	assert.Equal(t, 3, rec.Sales.ColdCalls)
	assert.Equal(t, 2, rec.Sales.Leads)
}

func ptrSales(p SalesPatch) *SalesPatch { return &p }

func TestNewCallRecord(t *testing.T) {
	call := NewCallRecord("", "Acme", "", "", 125, nil, "left message")

	assert.Equal(t, "Unknown", call.Contact)
	assert.Equal(t, OutcomeVoicemail, call.Outcome)
	assert.Equal(t, "02:05", call.Duration)
	assert.False(t, call.Success)
	assert.NotNil(t, call.Objections)
	assert.Contains(t, call.ID, "call_")
}

func TestDailyRecordJSONShape(t *testing.T) {
	rec := DailyRecord{}.Merge(salesPatch())

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "sales")
	assert.NotContains(t, raw, "finance")
	assert.Equal(t, []any{"sales"}, raw["categories"])
}

func TestUserStateCloneIsDeep(t *testing.T) {
	st := NewUserState()
	st.Entries["2025-01-01"] = DailyRecord{}.Merge(salesPatch())
	st.Contacts = append(st.Contacts, NewContact("Ann"))

	cp := st.Clone()
	cp.Entries["2025-01-01"].Sales.Leads = 99
	cp.Contacts[0].FullName = "changed"

	assert.Equal(t, 10, st.Entries["2025-01-01"].Sales.Leads)
	assert.Equal(t, "Ann", st.Contacts[0].FullName)
}
