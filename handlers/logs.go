// ABOUTME: Daily section MCP tool handlers
// ABOUTME: Implements log_sales, log_call, log_network, log_finance, log_productivity, log_gym and log_notes
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type LogHandlers struct {
	app *app.App
}

func NewLogHandlers(a *app.App) *LogHandlers {
	return &LogHandlers{app: a}
}

// DayOutput is the merged record after a submission.
type DayOutput struct {
	Date   string             `json:"date"`
	Record models.DailyRecord `json:"record"`
}

type LogSalesInput struct {
	Date        string   `json:"date,omitempty" jsonschema:"Date YYYY-MM-DD (default today)"`
	Leads       *int     `json:"leads,omitempty" jsonschema:"Leads generated"`
	LeadQuality *int     `json:"lead_quality,omitempty" jsonschema:"Lead quality 1-10"`
	ColdCalls   *int     `json:"cold_calls,omitempty" jsonschema:"Cold calls made"`
	Meetings    *int     `json:"meetings,omitempty" jsonschema:"Meetings held"`
	DealsClosed *int     `json:"deals_closed,omitempty" jsonschema:"Deals closed"`
	Revenue     *float64 `json:"revenue,omitempty" jsonschema:"Revenue in BWP"`
	DealStage   *string  `json:"deal_stage,omitempty" jsonschema:"Prospecting, Qualification, Proposal, Negotiation, Closed Won or Closed Lost"`
	Sources     []string `json:"sources,omitempty" jsonschema:"Active lead source names"`
	Notes       *string  `json:"notes,omitempty" jsonschema:"Sales notes"`
}

func (h *LogHandlers) LogSales(ctx context.Context, _ *mcp.CallToolRequest, input LogSalesInput) (*mcp.CallToolResult, DayOutput, error) {
	patch := models.SalesPatch{
		Leads:       input.Leads,
		LeadQuality: input.LeadQuality,
		ColdCalls:   input.ColdCalls,
		Meetings:    input.Meetings,
		DealsClosed: input.DealsClosed,
		Revenue:     input.Revenue,
		DealStage:   input.DealStage,
		Notes:       input.Notes,
	}
	for _, name := range input.Sources {
		patch.Sources = append(patch.Sources, models.SalesSource{Name: name, Count: 1, Active: true})
	}
	return h.merge(ctx, input.Date, models.DayPatch{Sales: &patch})
}

type LogCallInput struct {
	Date            string   `json:"date,omitempty" jsonschema:"Date YYYY-MM-DD (default today)"`
	Contact         string   `json:"contact,omitempty" jsonschema:"Who was called"`
	Company         string   `json:"company,omitempty" jsonschema:"Their company"`
	CallType        string   `json:"call_type,omitempty" jsonschema:"cold, warm, followup or client (default cold)"`
	Outcome         string   `json:"outcome,omitempty" jsonschema:"voicemail, not-interested, callback, qualified or meeting (default voicemail)"`
	DurationSeconds int      `json:"duration_seconds,omitempty" jsonschema:"Call length in seconds"`
	Objections      []string `json:"objections,omitempty" jsonschema:"Objections raised"`
	Notes           string   `json:"notes,omitempty" jsonschema:"Call notes"`
}

func (h *LogHandlers) LogCall(ctx context.Context, _ *mcp.CallToolRequest, input LogCallInput) (*mcp.CallToolResult, DayOutput, error) {
	date := defaultDate(h.app, input.Date)
	call := models.NewCallRecord(input.Contact, input.Company, input.CallType, input.Outcome, input.DurationSeconds, input.Objections, input.Notes)
	rec, err := h.app.Store.LogCall(ctx, date, call)
	if err != nil {
		return nil, DayOutput{}, fmt.Errorf("failed to log call: %w", err)
	}
	return nil, DayOutput{Date: date, Record: rec}, nil
}

type LogNetworkInput struct {
	Date                  string  `json:"date,omitempty" jsonschema:"Date YYYY-MM-DD (default today)"`
	Reconnections         *int    `json:"reconnections,omitempty" jsonschema:"Dormant contacts reconnected with"`
	IntroductionsGiven    *int    `json:"introductions_given,omitempty" jsonschema:"Introductions made for others"`
	IntroductionsReceived *int    `json:"introductions_received,omitempty" jsonschema:"Introductions received"`
	Notes                 *string `json:"notes,omitempty" jsonschema:"Networking notes"`
}

func (h *LogHandlers) LogNetwork(ctx context.Context, _ *mcp.CallToolRequest, input LogNetworkInput) (*mcp.CallToolResult, DayOutput, error) {
	return h.merge(ctx, input.Date, models.DayPatch{Network: &models.NetworkPatch{
		Reconnections:         input.Reconnections,
		IntroductionsGiven:    input.IntroductionsGiven,
		IntroductionsReceived: input.IntroductionsReceived,
		Notes:                 input.Notes,
	}})
}

type LogFinanceInput struct {
	Date              string   `json:"date,omitempty" jsonschema:"Date YYYY-MM-DD (default today)"`
	Revenue           *float64 `json:"revenue,omitempty" jsonschema:"Revenue in BWP"`
	OperatingExpenses *float64 `json:"operating_expenses,omitempty" jsonschema:"Operating expenses in BWP"`
	MRR               *float64 `json:"mrr,omitempty" jsonschema:"Monthly recurring revenue"`
	Churn             *float64 `json:"churn,omitempty" jsonschema:"Churn percent"`
	TaxReserve        *float64 `json:"tax_reserve,omitempty" jsonschema:"Tax reserve"`
	CashPosition      *float64 `json:"cash_position,omitempty" jsonschema:"Cash on hand"`
	Notes             *string  `json:"notes,omitempty" jsonschema:"Finance notes"`
}

func (h *LogHandlers) LogFinance(ctx context.Context, _ *mcp.CallToolRequest, input LogFinanceInput) (*mcp.CallToolResult, DayOutput, error) {
	return h.merge(ctx, input.Date, models.DayPatch{Finance: &models.FinancePatch{
		Revenue:           input.Revenue,
		OperatingExpenses: input.OperatingExpenses,
		MRR:               input.MRR,
		Churn:             input.Churn,
		TaxReserve:        input.TaxReserve,
		CashPosition:      input.CashPosition,
		Notes:             input.Notes,
	}})
}

type LogProductivityInput struct {
	Date                 string   `json:"date,omitempty" jsonschema:"Date YYYY-MM-DD (default today)"`
	FocusHours           *float64 `json:"focus_hours,omitempty" jsonschema:"Focused work hours"`
	DeepWorkHours        *float64 `json:"deep_work_hours,omitempty" jsonschema:"Deep work hours"`
	TasksCompleted       *int     `json:"tasks_completed,omitempty" jsonschema:"Tasks completed"`
	EnergyLevel          *int     `json:"energy_level,omitempty" jsonschema:"Energy 1-10"`
	StressLevel          *int     `json:"stress_level,omitempty" jsonschema:"Stress 1-10"`
	MajorAccomplishments []string `json:"major_accomplishments,omitempty" jsonschema:"Notable wins"`
	Notes                *string  `json:"notes,omitempty" jsonschema:"Productivity notes"`
}

func (h *LogHandlers) LogProductivity(ctx context.Context, _ *mcp.CallToolRequest, input LogProductivityInput) (*mcp.CallToolResult, DayOutput, error) {
	return h.merge(ctx, input.Date, models.DayPatch{Productivity: &models.ProductivityPatch{
		FocusHours:           input.FocusHours,
		DeepWorkHours:        input.DeepWorkHours,
		TasksCompleted:       input.TasksCompleted,
		EnergyLevel:          input.EnergyLevel,
		StressLevel:          input.StressLevel,
		MajorAccomplishments: input.MajorAccomplishments,
		Notes:                input.Notes,
	}})
}

type LogGymInput struct {
	Date      string   `json:"date,omitempty" jsonschema:"Date YYYY-MM-DD (default today)"`
	Type      *string  `json:"type,omitempty" jsonschema:"Workout type"`
	Sets      *int     `json:"sets,omitempty" jsonschema:"Sets"`
	Reps      *int     `json:"reps,omitempty" jsonschema:"Reps per set"`
	Weight    *float64 `json:"weight,omitempty" jsonschema:"Weight in kg"`
	Completed *bool    `json:"completed,omitempty" jsonschema:"Whether the workout was completed"`
	Notes     *string  `json:"notes,omitempty" jsonschema:"Workout notes"`
}

func (h *LogHandlers) LogGym(ctx context.Context, _ *mcp.CallToolRequest, input LogGymInput) (*mcp.CallToolResult, DayOutput, error) {
	return h.merge(ctx, input.Date, models.DayPatch{Gym: &models.GymPatch{
		Type:      input.Type,
		Sets:      input.Sets,
		Reps:      input.Reps,
		Weight:    input.Weight,
		Completed: input.Completed,
		Notes:     input.Notes,
	}})
}

type LogNotesInput struct {
	Date  string `json:"date,omitempty" jsonschema:"Date YYYY-MM-DD (default today)"`
	Notes string `json:"notes" jsonschema:"Notes for the day (replaces previous notes)"`
}

func (h *LogHandlers) LogNotes(ctx context.Context, _ *mcp.CallToolRequest, input LogNotesInput) (*mcp.CallToolResult, DayOutput, error) {
	notes := input.Notes
	return h.merge(ctx, input.Date, models.DayPatch{Notes: &notes})
}

func (h *LogHandlers) merge(ctx context.Context, date string, patch models.DayPatch) (*mcp.CallToolResult, DayOutput, error) {
	date = defaultDate(h.app, date)
	rec, err := h.app.Store.MergeDay(ctx, date, patch)
	if err != nil {
		return nil, DayOutput{}, fmt.Errorf("failed to log %v: %w", patch.Sections(), err)
	}
	return nil, DayOutput{Date: date, Record: rec}, nil
}
