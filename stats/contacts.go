// ABOUTME: Contact search and ranking for the network view
// ABOUTME: Substring match on name, company and industry with an optional tier filter

package stats

import (
	"sort"
	"strings"

	"github.com/harperreed/opslog/models"
)

// TierAll disables tier filtering.
const TierAll = "all"

// FilterContacts returns matching contacts ordered by last trust score, highest first.
// Contacts with equal scores keep their directory order.
func FilterContacts(contacts []models.Contact, query string, tier string) []models.Contact {
	q := strings.ToLower(strings.TrimSpace(query))
	tier = strings.ToLower(strings.TrimSpace(tier))

	out := make([]models.Contact, 0, len(contacts))
	for _, c := range contacts {
		if tier != "" && tier != TierAll && string(c.Tier) != tier {
			continue
		}
		if q != "" && !matches(c, q) {
			continue
		}
		out = append(out, c.Clone())
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastTrustScore > out[j].LastTrustScore
	})
	return out
}

func matches(c models.Contact, q string) bool {
	for _, field := range []string{c.FullName, c.Company, c.Industry} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
