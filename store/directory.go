// ABOUTME: Contact directory operations
// ABOUTME: Contacts are unique by id and are never rewritten by name
package store

import (
	"fmt"
	"strings"

	"github.com/harperreed/opslog/models"
)

// normalizeContacts fills acquisition defaults and rejects unusable contacts.
func normalizeContacts(in []models.Contact) ([]models.Contact, error) {
	out := make([]models.Contact, len(in))
	for i, c := range in {
		c = c.Clone()
		c.FullName = strings.TrimSpace(c.FullName)
		if c.FullName == "" {
			return nil, fmt.Errorf("%w: full name is required", ErrInvalidContact)
		}
		if c.ID == "" {
			c.ID = models.NewContactID()
		}
		seed := models.NewContact(c.FullName)
		if c.LastTrustScore == 0 && c.InteractionCount == 0 {
			c.LastTrustScore = seed.LastTrustScore
			c.InteractionCount = seed.InteractionCount
		}
		if c.Industry == "" {
			c.Industry = seed.Industry
		}
		if c.Tier == "" {
			c.Tier = seed.Tier
		}
		if !models.ValidTier(c.Tier) {
			return nil, fmt.Errorf("%w: tier %q", ErrInvalidContact, c.Tier)
		}
		if c.Tags == nil {
			c.Tags = []string{}
		}
		out[i] = c
	}
	return out, nil
}

// appendContacts adds a batch to the directory. Any id already present, in the
// directory or earlier in the batch, rejects the whole batch.
func appendContacts(dir []models.Contact, batch []models.Contact) ([]models.Contact, error) {
	seen := make(map[string]bool, len(dir)+len(batch))
	for _, c := range dir {
		seen[c.ID] = true
	}
	for _, c := range batch {
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateContact, c.ID)
		}
		seen[c.ID] = true
	}
	return append(dir, batch...), nil
}

func indexOfContact(dir []models.Contact, id string) int {
	for i := range dir {
		if dir[i].ID == id {
			return i
		}
	}
	return -1
}

func findContact(dir []models.Contact, id string) (models.Contact, bool) {
	idx := indexOfContact(dir, id)
	if idx < 0 {
		return models.Contact{}, false
	}
	return dir[idx].Clone(), true
}
