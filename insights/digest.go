// ABOUTME: Condensed view of the history sent to the insight model
// ABOUTME: Per-day activity and per-contact profile summaries plus the analysis prompt

package insights

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/opslog/models"
)

type SalesSummary struct {
	Revenue     float64 `json:"revenue"`
	Leads       int     `json:"leads"`
	DealsClosed int     `json:"dealsClosed"`
}

type GymSummary struct {
	Completed bool   `json:"completed"`
	Type      string `json:"type"`
}

type NetworkSummary struct {
	NewContacts int `json:"newContacts"`
}

type AssessmentSummary struct {
	Trust   int    `json:"trust"`
	Mood    string `json:"mood"`
	Weather string `json:"weather"`
	Time    int    `json:"time"`
}

type DaySummary struct {
	Date          string              `json:"date"`
	Activities    []models.Category   `json:"activities"`
	Sales         *SalesSummary       `json:"sales"`
	Gym           *GymSummary         `json:"gym"`
	Network       *NetworkSummary     `json:"network"`
	Relationships []AssessmentSummary `json:"relationships"`
}

type ContactSummary struct {
	Tier     models.NetworkTier `json:"tier"`
	Industry string             `json:"industry"`
	Wealth   float64            `json:"wealth"`
}

// Digest is everything the model sees. It carries no names or notes.
type Digest struct {
	Days     []DaySummary     `json:"days"`
	Contacts []ContactSummary `json:"contacts"`
}

// BuildDigest summarizes the state, days in ascending date order.
func BuildDigest(state *models.UserState) Digest {
	d := Digest{
		Days:     make([]DaySummary, 0, len(state.Entries)),
		Contacts: make([]ContactSummary, 0, len(state.Contacts)),
	}

	dates := make([]string, 0, len(state.Entries))
	for date := range state.Entries {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		rec := state.Entries[date]
		day := DaySummary{Date: date, Activities: rec.Categories}
		if rec.Sales != nil {
			day.Sales = &SalesSummary{Revenue: rec.Sales.Revenue, Leads: rec.Sales.Leads, DealsClosed: rec.Sales.DealsClosed}
		}
		if rec.Gym != nil {
			day.Gym = &GymSummary{Completed: rec.Gym.Completed, Type: rec.Gym.Type}
		}
		if rec.Network != nil {
			day.Network = &NetworkSummary{NewContacts: len(rec.Network.NewContacts)}
		}
		for _, r := range rec.Relationships {
			day.Relationships = append(day.Relationships, AssessmentSummary{
				Trust:   models.TrustScore(r.TrustMatrix),
				Mood:    r.Mood,
				Weather: r.Weather,
				Time:    r.ValueExchange.TimeInvested,
			})
		}
		d.Days = append(d.Days, day)
	}

	for _, c := range state.Contacts {
		d.Contacts = append(d.Contacts, ContactSummary{Tier: c.Tier, Industry: c.Industry, Wealth: c.EstimatedNetWorth})
	}
	return d
}

// Empty reports whether there is nothing to analyze.
func (d Digest) Empty() bool {
	return len(d.Days) == 0 && len(d.Contacts) == 0
}

// Prompt renders the analysis request.
func (d Digest) Prompt() string {
	days, _ := json.Marshal(d.Days)
	contacts, _ := json.Marshal(d.Contacts)

	var b strings.Builder
	b.WriteString("Analyze this operator's relationship intelligence and commercial logs.\n\n")
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Daily logs: %s\n", days)
	fmt.Fprintf(&b, "- Contact network: %s\n\n", contacts)
	b.WriteString("Focus areas:\n")
	b.WriteString("1. Relationship ROI: weigh trust depth (100-point scale) against commercial results.\n")
	b.WriteString("2. Weather forecasting: relate relationship weather (Sunny, Rainy, ...) to deal velocity.\n")
	b.WriteString("3. Value exchange: compare time invested with trust growth.\n")
	b.WriteString("4. Trust dimensions: identify whether integrity or competence builds the most trust.\n\n")
	b.WriteString("Write each insight as one short, blunt, upper-case business directive.\n")
	b.WriteString(`Respond with JSON only: {"insights": ["..."]}`)
	return b.String()
}
