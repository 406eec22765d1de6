// ABOUTME: Entry store operations on the date-keyed record map
// ABOUTME: A merge into an unknown date creates the record
package store

import "github.com/harperreed/opslog/models"

func mergeEntry(entries map[string]models.DailyRecord, date string, patch models.DayPatch) models.DailyRecord {
	existing := entries[date]
	merged := existing.Merge(patch)
	entries[date] = merged
	return merged
}

// normalizeEntries restores the derived category tags after a load.
func normalizeEntries(entries map[string]models.DailyRecord) {
	for date, rec := range entries {
		rec.Categories = rec.PresentCategories()
		entries[date] = rec
	}
}
