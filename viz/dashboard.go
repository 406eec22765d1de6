// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: ASCII overview of commercial results, the network and recent activity
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/stats"
)

// StaleAfterDays marks a contact as needing attention.
const StaleAfterDays = 30

type Dashboard struct {
	Stats stats.Stats

	// Days whose sales section ended in each stage
	PipelineByStage map[string]int
	Tiers           map[models.NetworkTier]int

	// Most recent logged days, newest first
	RecentActivity []ActivityItem

	StaleContacts []StaleContact
	Insights      []string
}

type ActivityItem struct {
	Date       string
	Categories []models.Category
}

type StaleContact struct {
	Name      string
	DaysSince int // -1 when never assessed
}

// GenerateDashboard summarizes a state snapshot as of now.
func GenerateDashboard(state *models.UserState, insights []string, now time.Time) *Dashboard {
	d := &Dashboard{
		Stats:           stats.Compute(state.Entries, state.Contacts),
		PipelineByStage: make(map[string]int),
		Tiers:           make(map[models.NetworkTier]int),
		Insights:        insights,
	}

	dates := make([]string, 0, len(state.Entries))
	for date, rec := range state.Entries {
		dates = append(dates, date)
		if rec.Sales != nil && rec.Sales.DealStage != "" {
			d.PipelineByStage[rec.Sales.DealStage]++
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	for i, date := range dates {
		if i == 7 {
			break
		}
		d.RecentActivity = append(d.RecentActivity, ActivityItem{Date: date, Categories: state.Entries[date].Categories})
	}

	for _, c := range state.Contacts {
		d.Tiers[c.Tier]++
		if c.LastInteractionDate == "" {
			d.StaleContacts = append(d.StaleContacts, StaleContact{Name: c.FullName, DaysSince: -1})
			continue
		}
		last, err := models.ParseDate(c.LastInteractionDate)
		if err != nil {
			continue
		}
		if days := int(now.Sub(last).Hours() / 24); days > StaleAfterDays {
			d.StaleContacts = append(d.StaleContacts, StaleContact{Name: c.FullName, DaysSince: days})
		}
	}
	return d
}

func RenderDashboard(d *Dashboard) string {
	var out strings.Builder
	s := d.Stats

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  OPSLOG DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("COMMERCIAL\n")
	fmt.Fprintf(&out, "  Revenue     %s\n", FormatMoney(s.Revenue))
	fmt.Fprintf(&out, "  Profit      %s\n", FormatMoney(s.Profit))
	fmt.Fprintf(&out, "  Leads       %d\n", s.Leads)
	fmt.Fprintf(&out, "  Conversion  %d%%\n\n", s.Conversion)

	out.WriteString("NETWORK\n")
	fmt.Fprintf(&out, "  Avg trust   %d/100 (%d assessments)\n", s.AvgTrust, s.Assessments)
	fmt.Fprintf(&out, "  Contacts    %d (%d strategic)\n", s.NetworkSize, s.Strategic)
	renderTiers(&out, d.Tiers)
	out.WriteString("\n")

	out.WriteString("OUTPUT\n")
	fmt.Fprintf(&out, "  Focus       %s hrs\n", trimFloat(s.Focus))
	fmt.Fprintf(&out, "  Days logged %d\n\n", s.DaysLogged)

	if len(d.PipelineByStage) > 0 {
		out.WriteString("PIPELINE\n")
		renderPipeline(&out, d.PipelineByStage)
		out.WriteString("\n")
	}

	if len(d.RecentActivity) > 0 {
		out.WriteString("RECENT ACTIVITY\n")
		for _, a := range d.RecentActivity {
			cats := make([]string, len(a.Categories))
			for i, c := range a.Categories {
				cats[i] = string(c)
			}
			fmt.Fprintf(&out, "  %s  %s\n", a.Date, strings.Join(cats, ", "))
		}
		out.WriteString("\n")
	}

	if len(d.StaleContacts) > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		fmt.Fprintf(&out, "  ⚠️  %d contacts - no assessment in %d+ days\n\n", len(d.StaleContacts), StaleAfterDays)
	}

	if len(d.Insights) > 0 {
		out.WriteString("INSIGHTS\n")
		for _, in := range d.Insights {
			fmt.Fprintf(&out, "  › %s\n", in)
		}
	}

	return out.String()
}

func renderTiers(out *strings.Builder, tiers map[models.NetworkTier]int) {
	order := []models.NetworkTier{models.TierStrategic, models.TierKey, models.TierRegular, models.TierCasual}
	parts := make([]string, 0, len(order))
	for _, t := range order {
		if n := tiers[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", t, n))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(out, "  Tiers       %s\n", strings.Join(parts, " · "))
	}
}

func renderPipeline(out *strings.Builder, pipeline map[string]int) {
	stages := []string{
		models.StageProspecting,
		models.StageQualification,
		models.StageProposal,
		models.StageNegotiation,
		models.StageClosedWon,
		models.StageClosedLost,
	}

	maxCount := 1
	for _, n := range pipeline {
		if n > maxCount {
			maxCount = n
		}
	}

	for _, stage := range stages {
		n, ok := pipeline[stage]
		if !ok {
			continue
		}
		barLength := (n * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		fmt.Fprintf(out, "  %-13s %s  %2d\n", stage, bar, n)
	}
}

// FormatMoney renders an amount with thousands separators and no decimals, e.g. "BWP 12,500".
func FormatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits := fmt.Sprintf("%.0f", v)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "BWP " + sign + b.String()
}

func trimFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
