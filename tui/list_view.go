package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/stats"
	"github.com/harperreed/opslog/viz"
)

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("OPSLOG"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.tab {
	case TabDashboard:
		s.WriteString(m.renderDashboard())
	case TabNetwork:
		s.WriteString(m.renderNetworkTable())
	case TabDays:
		s.WriteString(m.renderDaysTable())
	}
	s.WriteString("\n\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n")
	}
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"Dashboard", "Network", "Days"}
	var rendered []string

	for i, tab := range tabs {
		if Tab(i) == m.tab {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderDashboard() string {
	d := viz.GenerateDashboard(m.app.Store.Snapshot(), m.app.CurrentInsights(), m.app.Now())
	return viz.RenderDashboard(d)
}

func (m Model) filteredContacts() []models.Contact {
	return stats.FilterContacts(m.app.Store.Contacts(), m.search.Value(), tierFilters[m.tierIndex])
}

func (m Model) renderNetworkTable() string {
	var s strings.Builder
	fmt.Fprintf(&s, "Tier: %s", tierFilters[m.tierIndex])
	if m.searching || m.search.Value() != "" {
		s.WriteString("   ")
		s.WriteString(m.search.View())
	}
	s.WriteString("\n\n")

	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Company", Width: 20},
		{Title: "Tier", Width: 10},
		{Title: "Trust", Width: 6},
		{Title: "Last", Width: 10},
	}

	var rows []table.Row
	for _, c := range m.filteredContacts() {
		rows = append(rows, table.Row{
			c.FullName,
			c.Company,
			string(c.Tier),
			fmt.Sprintf("%d", c.LastTrustScore),
			c.LastInteractionDate,
		})
	}

	s.WriteString(m.newTable(columns, rows).View())
	return s.String()
}

func (m Model) renderDaysTable() string {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Categories", Width: 40},
		{Title: "Revenue", Width: 10},
		{Title: "Trust", Width: 6},
	}

	dates := m.daysNewestFirst()
	st := m.app.Store.Snapshot()
	var rows []table.Row
	for _, date := range dates {
		rec := st.Entries[date]
		cats := make([]string, len(rec.Categories))
		for i, c := range rec.Categories {
			cats[i] = string(c)
		}
		revenue := ""
		if rec.Sales != nil {
			revenue = fmt.Sprintf("%.0f", rec.Sales.Revenue)
		}
		trust := ""
		if avg, ok := stats.DayTrustAverage(rec); ok {
			trust = fmt.Sprintf("%.1f", avg)
		}
		rows = append(rows, table.Row{date, strings.Join(cats, ", "), revenue, trust})
	}

	return m.newTable(columns, rows).View()
}

func (m Model) newTable(columns []table.Column, rows []table.Row) table.Model {
	height := m.height - 12
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t
}

func (m Model) daysNewestFirst() []string {
	dates := m.app.Store.Dates()
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
	return dates
}

func (m Model) renderListHelp() string {
	help := []string{"Tab: Switch tabs"}
	switch m.tab {
	case TabNetwork:
		help = append(help, "↑/↓: Navigate", "Enter: Details", "/: Search", "t: Tier", "g: Trust graph")
	case TabDays:
		help = append(help, "↑/↓: Navigate", "Enter: Details")
	}
	help = append(help, "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) rowCount() int {
	switch m.tab {
	case TabNetwork:
		return len(m.filteredContacts())
	case TabDays:
		return len(m.app.Store.Dates())
	}
	return 0
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.tab = (m.tab + 1) % tabCount
		m.selectedRow = 0
	case "shift+tab":
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.selectedRow = 0
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < m.rowCount()-1 {
			m.selectedRow++
		}
	case "enter":
		if id := m.getSelectedID(); id != "" {
			m.viewMode = ViewDetail
			m.selectedID = id
		}
	case "/":
		if m.tab == TabNetwork {
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink
		}
	case "t":
		if m.tab == TabNetwork {
			m.tierIndex = (m.tierIndex + 1) % len(tierFilters)
			m.selectedRow = 0
		}
	case "g":
		if m.tab == TabNetwork {
			if err := m.generateGraph(); err != nil {
				m.err = err
				return m, nil
			}
			m.viewMode = ViewGraph
		}
	}

	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.selectedRow = 0
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.selectedRow = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.selectedRow = 0
	return m, cmd
}

func (m Model) getSelectedID() string {
	switch m.tab {
	case TabNetwork:
		contacts := m.filteredContacts()
		if m.selectedRow < len(contacts) {
			return contacts[m.selectedRow].ID
		}
	case TabDays:
		dates := m.daysNewestFirst()
		if m.selectedRow < len(dates) {
			return dates[m.selectedRow]
		}
	}
	return ""
}
