package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/stats"
	"github.com/harperreed/opslog/viz"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	switch m.tab {
	case TabNetwork:
		s.WriteString(titleStyle.Render("CONTACT"))
		s.WriteString("\n\n")
		s.WriteString(m.renderContactDetail())
	case TabDays:
		s.WriteString(titleStyle.Render(m.selectedID))
		s.WriteString("\n\n")
		s.WriteString(m.renderDayDetail())
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(strings.Join([]string{"Esc: Back", "q: Quit"}, " • ")))
	return s.String()
}

func field(s *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	s.WriteString(fieldLabelStyle.Render(label))
	s.WriteString(fieldValueStyle.Render(value))
	s.WriteString("\n")
}

func (m Model) renderContactDetail() string {
	c, ok := m.app.Store.Contact(m.selectedID)
	if !ok {
		return fmt.Sprintf("Error: contact %s not found", m.selectedID)
	}

	var s strings.Builder
	field(&s, "Name:", c.FullName)
	field(&s, "Title:", c.Title)
	field(&s, "Position:", c.Position)
	field(&s, "Company:", c.Company)
	field(&s, "Industry:", c.Industry)
	field(&s, "Tier:", string(c.Tier))
	field(&s, "Trust:", fmt.Sprintf("%d/100", c.LastTrustScore))
	field(&s, "Interactions:", fmt.Sprintf("%d", c.InteractionCount))
	field(&s, "Last interaction:", c.LastInteractionDate)
	if c.EstimatedNetWorth > 0 {
		field(&s, "Net worth:", fmt.Sprintf("%s (%.0f%% confidence)", viz.FormatMoney(c.EstimatedNetWorth), c.WealthConfidence))
	}
	field(&s, "Income source:", c.PrimaryIncomeSource)
	field(&s, "Tags:", strings.Join(c.Tags, ", "))
	field(&s, "Notes:", c.Notes)
	return s.String()
}

func (m Model) renderDayDetail() string {
	rec, ok := m.app.Store.Day(m.selectedID)
	if !ok {
		return fmt.Sprintf("Error: nothing logged for %s", m.selectedID)
	}

	var s strings.Builder
	if sales := rec.Sales; sales != nil {
		field(&s, "Leads:", fmt.Sprintf("%d", sales.Leads))
		field(&s, "Deals closed:", fmt.Sprintf("%d", sales.DealsClosed))
		field(&s, "Sales revenue:", viz.FormatMoney(sales.Revenue))
		field(&s, "Deal stage:", sales.DealStage)
		if len(sales.CallLog) > 0 {
			calls := stats.SummarizeCalls(sales)
			field(&s, "Calls:", fmt.Sprintf("%d (%s talk time, %d%% connected)",
				calls.TotalCalls, models.FormatDuration(calls.TalkTimeSeconds), calls.ConnectionRate))
		}
	}
	if n := rec.Network; n != nil {
		field(&s, "New contacts:", fmt.Sprintf("%d", len(n.NewContacts)))
		field(&s, "Reconnections:", fmt.Sprintf("%d", n.Reconnections))
	}
	for _, a := range rec.Relationships {
		field(&s, "Assessment:", fmt.Sprintf("%s %d/100 (%s)", m.app.Store.DisplayName(a.ContactID), a.TrustMatrix.Score(), a.Mood))
	}
	if f := rec.Finance; f != nil {
		field(&s, "Expenses:", viz.FormatMoney(f.OperatingExpenses))
		field(&s, "Cash:", viz.FormatMoney(f.CashPosition))
	}
	if p := rec.Productivity; p != nil {
		field(&s, "Focus hours:", fmt.Sprintf("%.1f", p.FocusHours))
		field(&s, "Tasks:", fmt.Sprintf("%d", p.TasksCompleted))
	}
	if g := rec.Gym; g != nil {
		done := "skipped"
		if g.Completed {
			done = "completed"
		}
		field(&s, "Workout:", fmt.Sprintf("%s, %s", g.Type, done))
	}
	if rec.Notes != nil {
		field(&s, "Notes:", *rec.Notes)
	}
	return s.String()
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.viewMode = ViewList
		m.selectedID = ""
	}
	return m, nil
}
