// ABOUTME: Call log analytics for a single day's sales section
// ABOUTME: Talk time, connection rate, outcome and objection tallies

package stats

import "github.com/harperreed/opslog/models"

type CallSummary struct {
	TotalCalls      int            `json:"totalCalls"`
	TalkTimeSeconds int            `json:"talkTimeSeconds"`
	AvgDurationSecs int            `json:"avgDurationSeconds"`
	ConnectionRate  int            `json:"connectionRate"` // percent of calls not ending in voicemail
	Outcomes        map[string]int `json:"outcomes"`
	Objections      map[string]int `json:"objections"`
	AvgDealSize     int            `json:"avgDealSize"`
}

// SummarizeCalls analyzes a sales section. A nil section yields an empty summary.
func SummarizeCalls(s *models.SalesEntry) CallSummary {
	sum := CallSummary{
		Outcomes:   map[string]int{},
		Objections: map[string]int{},
	}
	if s == nil {
		return sum
	}

	if s.DealsClosed > 0 {
		sum.AvgDealSize = roundInt(s.Revenue / float64(s.DealsClosed))
	}

	connected := 0
	for _, c := range s.CallLog {
		sum.TotalCalls++
		sum.TalkTimeSeconds += c.DurationSeconds
		sum.Outcomes[c.Outcome]++
		if c.Outcome != models.OutcomeVoicemail {
			connected++
		}
		for _, o := range c.Objections {
			sum.Objections[o]++
		}
	}

	if sum.TotalCalls > 0 {
		sum.AvgDurationSecs = roundInt(float64(sum.TalkTimeSeconds) / float64(sum.TotalCalls))
		sum.ConnectionRate = roundInt(100 * float64(connected) / float64(sum.TotalCalls))
	}
	return sum
}
