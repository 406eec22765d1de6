// ABOUTME: Contact and call construction helpers
// ABOUTME: Assigns time-derived ids and the acquisition defaults
package models

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// NewContactID generates a ULID. Monotonic entropy keeps ids unique within the process.
func NewContactID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewContact returns a contact with the values a fresh acquisition starts from.
func NewContact(fullName string) Contact {
	return Contact{
		ID:               NewContactID(),
		FullName:         fullName,
		Industry:         IndustryTech,
		Tier:             TierRegular,
		LastTrustScore:   50,
		InteractionCount: 1,
		Tags:             []string{},
	}
}

// ValidTier reports whether t is one of the four network tiers.
func ValidTier(t NetworkTier) bool {
	switch t {
	case TierStrategic, TierKey, TierRegular, TierCasual:
		return true
	}
	return false
}

// ParseTier normalizes user input to a tier.
func ParseTier(s string) (NetworkTier, error) {
	t := NetworkTier(strings.ToLower(strings.TrimSpace(s)))
	if !ValidTier(t) {
		return "", fmt.Errorf("invalid tier %q (strategic, key, regular, casual)", s)
	}
	return t, nil
}

// NewCallRecord builds a call log entry. Success is derived from the outcome.
func NewCallRecord(contact, company, callType, outcome string, durationSeconds int, objections []string, notes string) CallRecord {
	if contact == "" {
		contact = "Unknown"
	}
	if outcome == "" {
		outcome = OutcomeVoicemail
	}
	if callType == "" {
		callType = CallCold
	}
	if objections == nil {
		objections = []string{}
	}
	return CallRecord{
		ID:              "call_" + uuid.NewString(),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Contact:         contact,
		Company:         company,
		Type:            callType,
		Duration:        FormatDuration(durationSeconds),
		DurationSeconds: durationSeconds,
		Outcome:         outcome,
		Objections:      objections,
		Notes:           notes,
		Success:         outcome == OutcomeQualified || outcome == OutcomeMeeting,
	}
}

// FormatDuration renders seconds as MM:SS.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// CallPatch appends a call and refreshes the counters derived from the call log:
// cold calls become the log length and leads the number of successful calls.
func CallPatch(existing *SalesEntry, call CallRecord) SalesPatch {
	calls := 1
	leads := 0
	if call.Success {
		leads++
	}
	if existing != nil {
		calls += len(existing.CallLog)
		for _, c := range existing.CallLog {
			if c.Success {
				leads++
			}
		}
	}
	return SalesPatch{
		CallLog:   []CallRecord{call},
		ColdCalls: &calls,
		Leads:     &leads,
	}
}
