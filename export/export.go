// ABOUTME: Renders the user state as JSON or CSV export documents
// ABOUTME: CSV is one row per date with lossy sanitizing of free text

package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/stats"
)

var ErrNoEntries = errors.New("no entries to export")

// Format selects an export document type.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts json or csv in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (json, csv)", s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

const exportDateLayout = "2006-01-02T15:04:05.000Z"

// Document is the JSON export shape.
type Document struct {
	UserData          map[string]models.DailyRecord `json:"userData"`
	GeneratedInsights []string                      `json:"generatedInsights"`
	ExportDate        string                        `json:"exportDate"`
	Plan              string                        `json:"plan"`
}

// ToJSON renders the entries, the latest insights, the export time and the plan.
func ToJSON(state *models.UserState, insights []string, now time.Time) ([]byte, error) {
	if insights == nil {
		insights = []string{}
	}
	entries := state.Entries
	if entries == nil {
		entries = map[string]models.DailyRecord{}
	}

	doc := Document{
		UserData:          entries,
		GeneratedInsights: insights,
		ExportDate:        now.UTC().Format(exportDateLayout),
		Plan:              state.Plan,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

var csvHeader = []string{
	"Date",
	"Categories",
	"Sales_Leads",
	"Sales_Revenue",
	"Finance_Revenue",
	"Finance_Expenses",
	"Productivity_FocusHours",
	"Productivity_Score",
	"Relationship_Contact",
	"Relationship_Trust",
	"Relationship_Notes",
}

// ToCSV renders one row per date in ascending date order. An empty state is refused.
func ToCSV(state *models.UserState) ([]byte, error) {
	if len(state.Entries) == 0 {
		return nil, ErrNoEntries
	}

	names := make(map[string]string, len(state.Contacts))
	for _, c := range state.Contacts {
		names[c.ID] = c.FullName
	}

	dates := make([]string, 0, len(state.Entries))
	for d := range state.Entries {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	lines := make([]string, 0, len(dates)+1)
	lines = append(lines, strings.Join(csvHeader, ","))
	for _, d := range dates {
		lines = append(lines, csvRow(d, state.Entries[d], names))
	}
	return []byte(strings.Join(lines, "\n")), nil
}

func csvRow(date string, rec models.DailyRecord, names map[string]string) string {
	categories := make([]string, len(rec.Categories))
	for i, c := range rec.Categories {
		categories[i] = string(c)
	}

	var leads int
	var salesRevenue, finRevenue, finExpenses, focus float64
	if rec.Sales != nil {
		leads = rec.Sales.Leads
		salesRevenue = rec.Sales.Revenue
	}
	if rec.Finance != nil {
		finRevenue = rec.Finance.Revenue
		finExpenses = rec.Finance.OperatingExpenses
	}
	if rec.Productivity != nil {
		focus = rec.Productivity.FocusHours
	}

	contacts := make([]string, len(rec.Relationships))
	notes := make([]string, len(rec.Relationships))
	for i, r := range rec.Relationships {
		name, ok := names[r.ContactID]
		if !ok {
			name = r.ContactID
		}
		contacts[i] = name
		notes[i] = r.StrategicNotes
	}

	trust := "0"
	if avg, ok := stats.DayTrustAverage(rec); ok {
		trust = strconv.FormatFloat(avg, 'f', 1, 64)
	}

	return strings.Join([]string{
		date,
		quote(strings.Join(categories, "; ")),
		strconv.Itoa(leads),
		number(salesRevenue),
		number(finRevenue),
		number(finExpenses),
		number(focus),
		"0",
		quote(strings.Join(contacts, "; ")),
		trust,
		quote(strings.Join(notes, "; ")),
	}, ",")
}

var textSanitizer = strings.NewReplacer(",", " ", "\r", " ", "\n", " ", `"`, "'")

// quote wraps free text in double quotes after replacing characters that would break naive parsers.
func quote(s string) string {
	return `"` + textSanitizer.Replace(s) + `"`
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
