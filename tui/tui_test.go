// ABOUTME: Tests for the terminal interface
// ABOUTME: Drives the model with key messages and checks the rendered views
package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/insights"
	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *app.App {
	t.Helper()
	ctx := context.Background()
	a, err := app.NewWithBackend(ctx, nil, store.NewMemoryBackend(), insights.Static{}, nil)
	require.NoError(t, err)
	a.Now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { _ = a.Close() })

	strategic := models.NewContact("Neo Molefe")
	strategic.Company = "Debswana"
	strategic.Tier = models.TierStrategic
	_, err = a.Store.Acquire(ctx, "2025-03-01", strategic)
	require.NoError(t, err)
	_, err = a.Store.Acquire(ctx, "2025-03-01", models.Contact{FullName: "Ann Casual", Tier: models.TierCasual})
	require.NoError(t, err)

	notes := "board meeting"
	_, err = a.Store.MergeDay(ctx, "2025-03-05", models.DayPatch{Notes: &notes})
	require.NoError(t, err)
	return a
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestDashboardIsDefault(t *testing.T) {
	m := NewModel(setupTestApp(t))

	out := m.View()
	assert.Contains(t, out, "OPSLOG DASHBOARD")
	assert.Contains(t, out, "Contacts    2 (1 strategic)")
}

func TestTabsCycle(t *testing.T) {
	m := NewModel(setupTestApp(t))

	m = press(t, m, "tab")
	assert.Equal(t, TabNetwork, m.tab)
	m = press(t, m, "tab")
	assert.Equal(t, TabDays, m.tab)
	m = press(t, m, "tab")
	assert.Equal(t, TabDashboard, m.tab)
}

func TestNetworkTierFilterAndDetail(t *testing.T) {
	m := NewModel(setupTestApp(t))
	m = press(t, m, "tab")

	out := m.View()
	assert.Contains(t, out, "Neo Molefe")
	assert.Contains(t, out, "Ann Casual")

	m = press(t, m, "t")
	assert.Equal(t, "strategic", tierFilters[m.tierIndex])
	out = m.View()
	assert.Contains(t, out, "Neo Molefe")
	assert.NotContains(t, out, "Ann Casual")

	m = press(t, m, "enter")
	assert.Equal(t, ViewDetail, m.viewMode)
	out = m.View()
	assert.Contains(t, out, "Debswana")
	assert.Contains(t, out, "strategic")

	m = press(t, m, "esc")
	assert.Equal(t, ViewList, m.viewMode)
}

func TestNetworkSearch(t *testing.T) {
	m := NewModel(setupTestApp(t))
	m = press(t, m, "tab", "/")
	require.True(t, m.searching)

	m = press(t, m, "a", "n", "n", "enter")
	assert.False(t, m.searching)
	assert.Equal(t, "ann", m.search.Value())

	contacts := m.filteredContacts()
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ann Casual", contacts[0].FullName)
}

func TestDaysNewestFirst(t *testing.T) {
	m := NewModel(setupTestApp(t))
	m = press(t, m, "tab", "tab")

	out := m.View()
	assert.Less(t, strings.Index(out, "2025-03-05"), strings.Index(out, "2025-03-01"))

	m = press(t, m, "enter")
	assert.Equal(t, "2025-03-05", m.selectedID)
	assert.Contains(t, m.View(), "board meeting")

	m = press(t, m, "esc", "down", "enter")
	assert.Equal(t, "2025-03-01", m.selectedID)
	assert.Contains(t, m.View(), "New contacts:")
}

func TestTrustGraphView(t *testing.T) {
	m := NewModel(setupTestApp(t))
	m = press(t, m, "tab", "g")

	require.Equal(t, ViewGraph, m.viewMode)
	assert.Contains(t, m.View(), "Neo Molefe")

	m = press(t, m, "esc")
	assert.Equal(t, ViewList, m.viewMode)
	assert.Empty(t, m.graphDOT)
}

func TestQuit(t *testing.T) {
	m := NewModel(setupTestApp(t))
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
