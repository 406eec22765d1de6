// ABOUTME: Calendar date keys for the entry store
// ABOUTME: Entries are keyed by ISO dates (YYYY-MM-DD)
package models

import "time"

const DateLayout = "2006-01-02"

// ParseDate validates an ISO calendar date key.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Today returns the local calendar date key.
func Today() string {
	return time.Now().Format(DateLayout)
}
