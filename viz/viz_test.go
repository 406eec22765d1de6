// ABOUTME: Tests for the dashboard and trust graph

package viz

import (
	"testing"
	"time"

	"github.com/harperreed/opslog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardState() *models.UserState {
	st := models.NewUserState()

	fresh := models.NewContact("Fresh Face")
	fresh.Tier = models.TierStrategic
	fresh.LastInteractionDate = "2025-03-01"
	fresh.LastTrustScore = 80
	old := models.NewContact("Old Friend")
	old.LastInteractionDate = "2024-12-01"
	old.LastTrustScore = 20
	never := models.NewContact("Never Met")
	st.Contacts = []models.Contact{fresh, old, never}

	stage := models.StageProposal
	revenue := 12500.0
	st.Entries["2025-03-01"] = models.DailyRecord{}.Merge(models.DayPatch{Sales: &models.SalesPatch{DealStage: &stage, Revenue: &revenue}})
	st.Entries["2025-03-02"] = models.DailyRecord{}.Merge(models.DayPatch{Sales: &models.SalesPatch{DealStage: &stage}})
	return st
}

func TestGenerateDashboard(t *testing.T) {
	d := GenerateDashboard(dashboardState(), []string{"PUSH"}, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 2, d.PipelineByStage[models.StageProposal])
	assert.Equal(t, 1, d.Tiers[models.TierStrategic])
	require.Len(t, d.RecentActivity, 2)
	assert.Equal(t, "2025-03-02", d.RecentActivity[0].Date)

	require.Len(t, d.StaleContacts, 2)
	assert.Equal(t, "Old Friend", d.StaleContacts[0].Name)
	assert.Equal(t, 99, d.StaleContacts[0].DaysSince)
	assert.Equal(t, -1, d.StaleContacts[1].DaysSince)
}

func TestRenderDashboard(t *testing.T) {
	out := RenderDashboard(GenerateDashboard(dashboardState(), []string{"PUSH"}, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))

	assert.Contains(t, out, "OPSLOG DASHBOARD")
	assert.Contains(t, out, "BWP 12,500")
	assert.Contains(t, out, "Proposal")
	assert.Contains(t, out, "strategic 1 · regular 2")
	assert.Contains(t, out, "NEEDS ATTENTION")
	assert.Contains(t, out, "› PUSH")
}

func TestRenderDashboardEmpty(t *testing.T) {
	out := RenderDashboard(GenerateDashboard(models.NewUserState(), nil, time.Now()))

	assert.Contains(t, out, "Conversion  0%")
	assert.NotContains(t, out, "PIPELINE")
	assert.NotContains(t, out, "INSIGHTS")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "BWP 0", FormatMoney(0))
	assert.Equal(t, "BWP 999", FormatMoney(999))
	assert.Equal(t, "BWP 1,000", FormatMoney(1000))
	assert.Equal(t, "BWP 1,234,568", FormatMoney(1234567.6))
	assert.Equal(t, "BWP -4,000", FormatMoney(-4000))
}

func TestGenerateTrustGraph(t *testing.T) {
	dot, err := GenerateTrustGraph(dashboardState())
	require.NoError(t, err)

	assert.Contains(t, dot, "you")
	assert.Contains(t, dot, "Fresh Face")
	assert.Contains(t, dot, "gold")
}
