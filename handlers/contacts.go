// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements acquire_contact, log_assessment and find_contacts tools
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ContactHandlers struct {
	app *app.App
}

func NewContactHandlers(a *app.App) *ContactHandlers {
	return &ContactHandlers{app: a}
}

type AcquireContactInput struct {
	Date                string   `json:"date,omitempty" jsonschema:"Date of acquisition YYYY-MM-DD (default today)"`
	FullName            string   `json:"full_name" jsonschema:"Contact full name (required)"`
	Title               string   `json:"title,omitempty" jsonschema:"Honorific or title"`
	Position            string   `json:"position,omitempty" jsonschema:"Job position"`
	Company             string   `json:"company,omitempty" jsonschema:"Company name"`
	Industry            string   `json:"industry,omitempty" jsonschema:"Mining, Tourism, Finance, Agriculture, Tech, Government, Manufacturing or Other"`
	Tier                string   `json:"tier,omitempty" jsonschema:"strategic, key, regular or casual (default regular)"`
	EstimatedNetWorth   float64  `json:"estimated_net_worth,omitempty" jsonschema:"Estimated net worth in BWP"`
	WealthConfidence    float64  `json:"wealth_confidence,omitempty" jsonschema:"Confidence in the net worth estimate 0-100"`
	PrimaryIncomeSource string   `json:"primary_income_source,omitempty" jsonschema:"Main source of income"`
	Tags                []string `json:"tags,omitempty" jsonschema:"Free-form tags"`
	Notes               string   `json:"notes,omitempty" jsonschema:"Notes about the contact"`
}

func (h *ContactHandlers) AcquireContact(ctx context.Context, _ *mcp.CallToolRequest, input AcquireContactInput) (*mcp.CallToolResult, models.Contact, error) {
	if input.FullName == "" {
		return nil, models.Contact{}, fmt.Errorf("full_name is required")
	}

	contact := models.NewContact(input.FullName)
	contact.Title = input.Title
	contact.Position = input.Position
	contact.Company = input.Company
	if input.Industry != "" {
		contact.Industry = input.Industry
	}
	if input.Tier != "" {
		tier, err := models.ParseTier(input.Tier)
		if err != nil {
			return nil, models.Contact{}, err
		}
		contact.Tier = tier
	}
	contact.EstimatedNetWorth = input.EstimatedNetWorth
	contact.WealthConfidence = input.WealthConfidence
	contact.PrimaryIncomeSource = input.PrimaryIncomeSource
	if input.Tags != nil {
		contact.Tags = input.Tags
	}
	contact.Notes = input.Notes

	acquired, err := h.app.Store.Acquire(ctx, defaultDate(h.app, input.Date), contact)
	if err != nil {
		return nil, models.Contact{}, fmt.Errorf("failed to acquire contact: %w", err)
	}
	return nil, acquired, nil
}

type LogAssessmentInput struct {
	Date           string   `json:"date,omitempty" jsonschema:"Date YYYY-MM-DD (default today)"`
	ContactID      string   `json:"contact_id" jsonschema:"Contact ID (required)"`
	Integrity      *int     `json:"integrity,omitempty" jsonschema:"Integrity 0-25 (default 15)"`
	Competence     *int     `json:"competence,omitempty" jsonschema:"Competence 0-25 (default 15)"`
	Communication  *int     `json:"communication,omitempty" jsonschema:"Communication 0-20 (default 10)"`
	Alignment      *int     `json:"alignment,omitempty" jsonschema:"Alignment 0-15 (default 10)"`
	Reciprocity    *int     `json:"reciprocity,omitempty" jsonschema:"Reciprocity 0-15 (default 10)"`
	Temperature    *int     `json:"temperature,omitempty" jsonschema:"Relationship temperature 0-100 (default 50)"`
	Mood           string   `json:"mood,omitempty" jsonschema:"Positive, Neutral, Negative, Tense or Relaxed"`
	Weather        string   `json:"weather,omitempty" jsonschema:"Sunny, Cloudy, Rainy, Stormy or Clear"`
	TimeInvested   *int     `json:"time_invested,omitempty" jsonschema:"Minutes invested"`
	ResourcesSpent *float64 `json:"resources_spent,omitempty" jsonschema:"BWP spent on the relationship"`
	ValueReceived  string   `json:"value_received,omitempty" jsonschema:"Low, Medium, High or Strategic"`
	ConflictLogged bool     `json:"conflict_logged,omitempty" jsonschema:"Whether a conflict occurred"`
	StrategicNotes string   `json:"strategic_notes,omitempty" jsonschema:"Strategic notes"`
}

type AssessmentOutput struct {
	ContactID   string `json:"contact_id"`
	ContactName string `json:"contact_name"`
	TrustScore  int    `json:"trust_score"`
	Applied     bool   `json:"applied"`
}

func (h *ContactHandlers) LogAssessment(ctx context.Context, _ *mcp.CallToolRequest, input LogAssessmentInput) (*mcp.CallToolResult, AssessmentOutput, error) {
	if input.ContactID == "" {
		return nil, AssessmentOutput{}, fmt.Errorf("contact_id is required")
	}

	a := models.NewAssessment(input.ContactID)
	setInt(&a.TrustMatrix.Integrity, input.Integrity)
	setInt(&a.TrustMatrix.Competence, input.Competence)
	setInt(&a.TrustMatrix.Communication, input.Communication)
	setInt(&a.TrustMatrix.Alignment, input.Alignment)
	setInt(&a.TrustMatrix.Reciprocity, input.Reciprocity)
	setInt(&a.Temperature, input.Temperature)
	setInt(&a.ValueExchange.TimeInvested, input.TimeInvested)
	if input.ResourcesSpent != nil {
		a.ValueExchange.ResourcesSpent = *input.ResourcesSpent
	}
	if input.Mood != "" {
		a.Mood = input.Mood
	}
	if input.Weather != "" {
		a.Weather = input.Weather
	}
	if input.ValueReceived != "" {
		a.ValueExchange.ValueReceived = input.ValueReceived
	}
	a.ConflictLogged = input.ConflictLogged
	a.StrategicNotes = input.StrategicNotes

	applied, err := h.app.Store.LogAssessment(ctx, defaultDate(h.app, input.Date), a)
	if err != nil {
		return nil, AssessmentOutput{}, fmt.Errorf("failed to log assessment: %w", err)
	}

	return nil, AssessmentOutput{
		ContactID:   a.ContactID,
		ContactName: h.app.Store.DisplayName(a.ContactID),
		TrustScore:  a.TrustMatrix.Score(),
		Applied:     applied,
	}, nil
}

type FindContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Case-insensitive match on name, company or industry"`
	Tier  string `json:"tier,omitempty" jsonschema:"strategic, key, regular, casual or all (default all)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 20)"`
}

type FindContactsOutput struct {
	Contacts []models.Contact `json:"contacts"`
	Total    int              `json:"total"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, _ *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	tier := input.Tier
	if tier == "" {
		tier = stats.TierAll
	}

	matched := stats.FilterContacts(h.app.Store.Contacts(), input.Query, tier)
	total := len(matched)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return nil, FindContactsOutput{Contacts: matched, Total: total}, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
