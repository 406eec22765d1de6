// ABOUTME: Tests for dashboard aggregation, contact filtering and call analytics

package stats

import (
	"testing"

	"github.com/harperreed/opslog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, nil)
	assert.Equal(t, Stats{}, s)
}

func TestComputeSalesAndFinanceDay(t *testing.T) {
	rec := models.DailyRecord{}.
		Merge(models.DayPatch{Sales: &models.SalesPatch{Leads: i(10), DealsClosed: i(2), Revenue: f(5000)}}).
		Merge(models.DayPatch{Finance: &models.FinancePatch{Revenue: f(5000), OperatingExpenses: f(1000)}})

	s := Compute(map[string]models.DailyRecord{"2025-01-15": rec}, nil)

	assert.Equal(t, 5000.0, s.Revenue)
	assert.Equal(t, 4000.0, s.Profit)
	assert.Equal(t, 10, s.Leads)
	assert.Equal(t, 20, s.Conversion)
	assert.Equal(t, 1, s.DaysLogged)
}

func TestComputeAcrossSeparateDays(t *testing.T) {
	entries := map[string]models.DailyRecord{
		"2025-01-01": models.DailyRecord{}.Merge(models.DayPatch{Sales: &models.SalesPatch{Leads: i(10), DealsClosed: i(2), Revenue: f(5000)}}),
		"2025-01-02": models.DailyRecord{}.Merge(models.DayPatch{Finance: &models.FinancePatch{OperatingExpenses: f(1000)}}),
	}

	s := Compute(entries, nil)

	assert.Equal(t, 5000.0, s.Revenue)
	assert.Equal(t, 1000.0, s.Expenses)
	assert.Equal(t, 4000.0, s.Profit)
	assert.Equal(t, 10, s.Leads)
	assert.Equal(t, 20, s.Conversion)
	assert.Equal(t, 2, s.DaysLogged)
}

func TestComputeTrustAndNetwork(t *testing.T) {
	high := models.NewAssessment("a")
	high.TrustMatrix = models.TrustMatrixMax
	low := models.NewAssessment("b")
	low.TrustMatrix = models.TrustMatrix{Integrity: 5, Competence: 5, Communication: 5, Alignment: 5, Reciprocity: 5}
	seed := models.NewAssessment("c")

	entries := map[string]models.DailyRecord{
		"2025-01-01": models.DailyRecord{}.Merge(models.DayPatch{Relationships: []models.RelationshipAssessment{high, low}}),
		"2025-01-02": models.DailyRecord{}.Merge(models.DayPatch{Relationships: []models.RelationshipAssessment{seed}}),
		"2025-01-03": models.DailyRecord{}.Merge(models.DayPatch{Productivity: &models.ProductivityPatch{FocusHours: f(2.5)}}),
		"2025-01-04": models.DailyRecord{}.Merge(models.DayPatch{Productivity: &models.ProductivityPatch{FocusHours: f(4)}}),
	}
	strategic := models.NewContact("S")
	strategic.Tier = models.TierStrategic
	contacts := []models.Contact{models.NewContact("A"), strategic}

	s := Compute(entries, contacts)

	// (100 + 25 + 60) / 3 = 61.67
	assert.Equal(t, 62, s.AvgTrust)
	assert.Equal(t, 3, s.Assessments)
	assert.Equal(t, 6.5, s.Focus)
	assert.Equal(t, 2, s.NetworkSize)
	assert.Equal(t, 1, s.Strategic)
	assert.Zero(t, s.Conversion)
}

func TestConversionRoundsHalfUp(t *testing.T) {
	rec := models.DailyRecord{}.Merge(models.DayPatch{Sales: &models.SalesPatch{Leads: i(8), DealsClosed: i(1)}})
	s := Compute(map[string]models.DailyRecord{"d": rec}, nil)
	assert.Equal(t, 13, s.Conversion) // 12.5
}

func TestDayTrustAverage(t *testing.T) {
	_, ok := DayTrustAverage(models.DailyRecord{})
	assert.False(t, ok)

	a := models.NewAssessment("x")
	b := models.NewAssessment("y")
	b.TrustMatrix.Integrity = 16
	avg, ok := DayTrustAverage(models.DailyRecord{Relationships: []models.RelationshipAssessment{a, b}})
	require.True(t, ok)
	assert.Equal(t, 60.5, avg)
}

func TestFilterContacts(t *testing.T) {
	mk := func(name, company, industry string, tier models.NetworkTier, trust int) models.Contact {
		c := models.NewContact(name)
		c.Company = company
		c.Industry = industry
		c.Tier = tier
		c.LastTrustScore = trust
		return c
	}
	contacts := []models.Contact{
		mk("Ann Molefe", "Acme", models.IndustryMining, models.TierKey, 40),
		mk("Bob Smith", "Kalahari Tours", models.IndustryTourism, models.TierStrategic, 90),
		mk("Cara Diaz", "ACME Labs", models.IndustryTech, models.TierRegular, 70),
		mk("Dan Poe", "Zed", models.IndustryFinance, models.TierRegular, 70),
	}

	tests := []struct {
		name  string
		query string
		tier  string
		want  []string
	}{
		{"all sorted by trust", "", "", []string{"Bob Smith", "Cara Diaz", "Dan Poe", "Ann Molefe"}},
		{"all keyword", "", "all", []string{"Bob Smith", "Cara Diaz", "Dan Poe", "Ann Molefe"}},
		{"company case-insensitive", "acme", "", []string{"Cara Diaz", "Ann Molefe"}},
		{"industry", "touris", "", []string{"Bob Smith"}},
		{"tier", "", "regular", []string{"Cara Diaz", "Dan Poe"}},
		{"query and tier", "acme", "key", []string{"Ann Molefe"}},
		{"no match", "zzz", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterContacts(contacts, tt.query, tt.tier)
			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.FullName)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSummarizeCalls(t *testing.T) {
	calls := []models.CallRecord{
		models.NewCallRecord("a", "", models.CallCold, models.OutcomeVoicemail, 30, nil, ""),
		models.NewCallRecord("b", "", models.CallCold, models.OutcomeQualified, 300, []string{"price", "timing"}, ""),
		models.NewCallRecord("c", "", models.CallWarm, models.OutcomeMeeting, 601, []string{"price"}, ""),
	}
	sales := &models.SalesEntry{CallLog: calls, Revenue: 1000, DealsClosed: 3}

	sum := SummarizeCalls(sales)

	assert.Equal(t, 3, sum.TotalCalls)
	assert.Equal(t, 931, sum.TalkTimeSeconds)
	assert.Equal(t, 310, sum.AvgDurationSecs)
	assert.Equal(t, 67, sum.ConnectionRate)
	assert.Equal(t, map[string]int{"voicemail": 1, "qualified": 1, "meeting": 1}, sum.Outcomes)
	assert.Equal(t, 2, sum.Objections["price"])
	assert.Equal(t, 333, sum.AvgDealSize)
}

func TestSummarizeCallsNil(t *testing.T) {
	sum := SummarizeCalls(nil)
	assert.Zero(t, sum.TotalCalls)
	assert.NotNil(t, sum.Outcomes)
}
