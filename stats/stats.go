// ABOUTME: Dashboard aggregates computed from every daily record and the contact directory
// ABOUTME: Pure functions; every call walks the full state

package stats

import (
	"math"

	"github.com/harperreed/opslog/models"
)

// Stats is the dashboard summary.
type Stats struct {
	Revenue     float64 `json:"revenue"`
	Expenses    float64 `json:"expenses"`
	Profit      float64 `json:"profit"`
	Leads       int     `json:"leads"`
	DealsClosed int     `json:"dealsClosed"`
	Conversion  int     `json:"conversion"` // percent
	AvgTrust    int     `json:"avgTrust"`
	Assessments int     `json:"assessments"`
	NetworkSize int     `json:"networkSize"`
	Strategic   int     `json:"strategic"`
	Focus       float64 `json:"focus"`
	DaysLogged  int     `json:"daysLogged"`
}

// Compute aggregates all entries. Revenue comes from the sales section and
// expenses from the finance section.
func Compute(entries map[string]models.DailyRecord, contacts []models.Contact) Stats {
	var s Stats
	trustTotal := 0

	for _, e := range entries {
		s.DaysLogged++
		if e.Sales != nil {
			s.Revenue += e.Sales.Revenue
			s.Leads += e.Sales.Leads
			s.DealsClosed += e.Sales.DealsClosed
		}
		if e.Finance != nil {
			s.Expenses += e.Finance.OperatingExpenses
		}
		if e.Productivity != nil {
			s.Focus += e.Productivity.FocusHours
		}
		for _, r := range e.Relationships {
			trustTotal += models.TrustScore(r.TrustMatrix)
			s.Assessments++
		}
	}

	s.Profit = s.Revenue - s.Expenses
	if s.Leads > 0 {
		s.Conversion = roundInt(100 * float64(s.DealsClosed) / float64(s.Leads))
	}
	if s.Assessments > 0 {
		s.AvgTrust = roundInt(float64(trustTotal) / float64(s.Assessments))
	}

	s.NetworkSize = len(contacts)
	for _, c := range contacts {
		if c.Tier == models.TierStrategic {
			s.Strategic++
		}
	}
	return s
}

// DayTrustAverage returns the mean trust score of the day's assessments.
func DayTrustAverage(rec models.DailyRecord) (float64, bool) {
	if len(rec.Relationships) == 0 {
		return 0, false
	}
	total := 0
	for _, r := range rec.Relationships {
		total += models.TrustScore(r.TrustMatrix)
	}
	return float64(total) / float64(len(rec.Relationships)), true
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
