// ABOUTME: MCP prompt handlers for recurring review workflows
// ABOUTME: Builds weekly and per-relationship review prompts from logged data
package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PromptHandlers struct {
	app *app.App
}

func NewPromptHandlers(a *app.App) *PromptHandlers {
	return &PromptHandlers{app: a}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(_ context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := request.Params.Arguments
	switch request.Params.Name {
	case "weekly-review":
		return h.weeklyReview(args)
	case "relationship-review":
		return h.relationshipReview(args)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) weeklyReview(args map[string]string) (*mcp.GetPromptResult, error) {
	end, err := models.ParseDate(defaultDate(h.app, args["end_date"]))
	if err != nil {
		return nil, fmt.Errorf("invalid end_date: %w", err)
	}
	start := end.AddDate(0, 0, -6)

	st := h.app.Store.Snapshot()
	week := make(map[string]models.DailyRecord)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(models.DateLayout)
		if rec, ok := st.Entries[key]; ok {
			week[key] = rec
		}
	}
	s := stats.Compute(week, st.Contacts)

	var text strings.Builder
	fmt.Fprintf(&text, "Weekly review for %s to %s\n\n", start.Format(models.DateLayout), end.Format(models.DateLayout))
	fmt.Fprintf(&text, "Days logged: %d of 7\n", s.DaysLogged)
	fmt.Fprintf(&text, "Revenue: %.0f BWP, expenses: %.0f BWP, profit: %.0f BWP\n", s.Revenue, s.Expenses, s.Profit)
	fmt.Fprintf(&text, "Leads: %d, deals closed: %d, conversion: %d%%\n", s.Leads, s.DealsClosed, s.Conversion)
	fmt.Fprintf(&text, "Trust assessments: %d (average %d/100)\n", s.Assessments, s.AvgTrust)
	fmt.Fprintf(&text, "Focus hours: %.1f\n", s.Focus)

	text.WriteString("\nPlease review this week and provide:")
	text.WriteString("\n1. What went well and what slipped")
	text.WriteString("\n2. The single most important commercial priority for next week")
	text.WriteString("\n3. Which relationships need attention")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Week ending %s", end.Format(models.DateLayout)),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text.String()},
			},
		},
	}, nil
}

func (h *PromptHandlers) relationshipReview(args map[string]string) (*mcp.GetPromptResult, error) {
	id, ok := args["contact_id"]
	if !ok || id == "" {
		return nil, fmt.Errorf("contact_id is required")
	}
	contact, ok := h.app.Store.Contact(id)
	if !ok {
		return nil, fmt.Errorf("contact %s not found", id)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Relationship review: %s\n", contact.FullName)
	if contact.Position != "" || contact.Company != "" {
		fmt.Fprintf(&text, "Role: %s at %s\n", contact.Position, contact.Company)
	}
	fmt.Fprintf(&text, "Tier: %s\n", contact.Tier)
	fmt.Fprintf(&text, "Last trust score: %d/100 over %d interactions\n", contact.LastTrustScore, contact.InteractionCount)
	if contact.LastInteractionDate != "" {
		fmt.Fprintf(&text, "Last interaction: %s\n", contact.LastInteractionDate)
	}

	st := h.app.Store.Snapshot()
	history := assessmentHistory(st, id)
	if len(history) > 0 {
		text.WriteString("\nAssessment history:\n")
		for _, line := range history {
			text.WriteString(line)
		}
	}
	if contact.Notes != "" {
		fmt.Fprintf(&text, "\nNotes: %s\n", contact.Notes)
	}

	text.WriteString("\nPlease analyze this relationship and provide:")
	text.WriteString("\n1. The trend in trust and what is driving it")
	text.WriteString("\n2. The weakest trust dimension and how to strengthen it")
	text.WriteString("\n3. A concrete next step and when to take it")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Relationship review for %s", contact.FullName),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text.String()},
			},
		},
	}, nil
}

func assessmentHistory(st *models.UserState, contactID string) []string {
	var lines []string
	for _, date := range sortedDates(st) {
		for _, a := range st.Entries[date].Relationships {
			if a.ContactID != contactID {
				continue
			}
			m := a.TrustMatrix
			lines = append(lines, fmt.Sprintf("- %s: %d/100 (integrity %d, competence %d, communication %d, alignment %d, reciprocity %d), mood %s\n",
				date, m.Score(), m.Integrity, m.Competence, m.Communication, m.Alignment, m.Reciprocity, a.Mood))
		}
	}
	return lines
}

func sortedDates(st *models.UserState) []string {
	dates := make([]string, 0, len(st.Entries))
	for d := range st.Entries {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
