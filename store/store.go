// ABOUTME: State container owning the entry store and contact directory
// ABOUTME: Every mutation runs on a draft copy and is persisted before it becomes visible
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/harperreed/opslog/models"
	"go.uber.org/zap"
)

var (
	ErrNoSnapshot       = errors.New("no snapshot stored")
	ErrInvalidDate      = errors.New("invalid date")
	ErrMultipleSections = errors.New("patch populates more than one section")
	ErrDuplicateContact = errors.New("duplicate contact id")
	ErrInvalidContact   = errors.New("invalid contact")
	ErrInvalidSetting   = errors.New("invalid setting")
)

// Backend persists the full state snapshot. Save replaces the previous snapshot atomically.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// ChangeFunc receives a private copy of the state after a successful mutation.
type ChangeFunc func(snapshot *models.UserState)

// Store is the single writer for the user state.
type Store struct {
	mu       sync.Mutex
	state    *models.UserState
	backend  Backend
	logger   *zap.Logger
	hooksMu  sync.RWMutex
	onChange []ChangeFunc
}

// Open loads the persisted snapshot, or starts from the default state when none exists.
func Open(ctx context.Context, backend Backend, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	state := models.NewUserState()
	data, err := backend.Load(ctx)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		logger.Info("no saved state, starting fresh")
	case err != nil:
		return nil, fmt.Errorf("failed to load state: %w", err)
	default:
		state, err = Decode(data)
		if err != nil {
			return nil, err
		}
		logger.Debug("state loaded",
			zap.Int("entries", len(state.Entries)),
			zap.Int("contacts", len(state.Contacts)))
	}

	return &Store{
		state:   state,
		backend: backend,
		logger:  logger,
	}, nil
}

// OnChange registers a hook called after every successful mutation.
func (s *Store) OnChange(fn ChangeFunc) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() *models.UserState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Day returns the record stored for date.
func (s *Store) Day(date string) (models.DailyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.state.Entries[date]
	if !ok {
		return models.DailyRecord{}, false
	}
	return rec.Clone(), true
}

// Dates returns every stored date in ascending order.
func (s *Store) Dates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	dates := make([]string, 0, len(s.state.Entries))
	for d := range s.state.Entries {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// MergeDay merges a partial submission into the record for date. Contacts carried in
// the network section are added to the directory in the same write.
func (s *Store) MergeDay(ctx context.Context, date string, patch models.DayPatch) (models.DailyRecord, error) {
	if _, err := models.ParseDate(date); err != nil {
		return models.DailyRecord{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if sections := patch.Sections(); len(sections) > 1 {
		return models.DailyRecord{}, fmt.Errorf("%w: %v", ErrMultipleSections, sections)
	}
	for _, a := range patch.Relationships {
		if err := a.TrustMatrix.Validate(); err != nil {
			return models.DailyRecord{}, err
		}
	}

	var merged models.DailyRecord
	err := s.mutate(ctx, func(st *models.UserState) error {
		if acquired := patch.NewContacts(); len(acquired) > 0 {
			normalized, err := normalizeContacts(acquired)
			if err != nil {
				return err
			}
			contacts, err := appendContacts(st.Contacts, normalized)
			if err != nil {
				return err
			}
			st.Contacts = contacts

			network := *patch.Network
			network.NewContacts = normalized
			patch.Network = &network
		}

		merged = mergeEntry(st.Entries, date, patch)
		return nil
	})
	if err != nil {
		return models.DailyRecord{}, err
	}
	return merged.Clone(), nil
}

// Acquire records a new contact through the network section of date.
func (s *Store) Acquire(ctx context.Context, date string, contact models.Contact) (models.Contact, error) {
	rec, err := s.MergeDay(ctx, date, models.DayPatch{
		Network: &models.NetworkPatch{NewContacts: []models.Contact{contact}},
	})
	if err != nil {
		return models.Contact{}, err
	}
	acquired := rec.Network.NewContacts
	return acquired[len(acquired)-1], nil
}

// LogCall appends a call to the sales section of date and refreshes the
// counters derived from the call log in the same write.
func (s *Store) LogCall(ctx context.Context, date string, call models.CallRecord) (models.DailyRecord, error) {
	if _, err := models.ParseDate(date); err != nil {
		return models.DailyRecord{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	var merged models.DailyRecord
	err := s.mutate(ctx, func(st *models.UserState) error {
		patch := models.CallPatch(st.Entries[date].Sales, call)
		merged = mergeEntry(st.Entries, date, models.DayPatch{Sales: &patch})
		return nil
	})
	if err != nil {
		return models.DailyRecord{}, err
	}
	return merged.Clone(), nil
}

// LogAssessment appends an assessment to date and applies it to the referenced contact.
// A missing contact is tolerated; applied reports whether a contact was updated.
func (s *Store) LogAssessment(ctx context.Context, date string, a models.RelationshipAssessment) (applied bool, err error) {
	if _, err := models.ParseDate(date); err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if err := a.TrustMatrix.Validate(); err != nil {
		return false, err
	}

	err = s.mutate(ctx, func(st *models.UserState) error {
		mergeEntry(st.Entries, date, models.DayPatch{
			Relationships: []models.RelationshipAssessment{a},
		})
		idx := indexOfContact(st.Contacts, a.ContactID)
		if idx < 0 {
			return nil
		}
		st.Contacts[idx] = models.ApplyAssessmentToContact(st.Contacts[idx], a, date)
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if !applied {
		s.logger.Warn("assessment references unknown contact", zap.String("contact_id", a.ContactID), zap.String("date", date))
	}
	return applied, nil
}

// Contacts returns the directory in acquisition order.
func (s *Store) Contacts() []models.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone().Contacts
}

// Contact looks up a contact by id.
func (s *Store) Contact(id string) (models.Contact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return findContact(s.state.Contacts, id)
}

// DisplayName returns the contact's name, or models.UnknownContactName.
func (s *Store) DisplayName(id string) string {
	c, ok := s.Contact(id)
	if !ok {
		return models.UnknownContactName
	}
	return c.FullName
}

// SetConsent records whether the user allows insight generation.
func (s *Store) SetConsent(ctx context.Context, consent bool) error {
	return s.mutate(ctx, func(st *models.UserState) error {
		st.Consent = consent
		return nil
	})
}

// SetPlan switches between the free and premium plan.
func (s *Store) SetPlan(ctx context.Context, plan string) error {
	if plan != models.PlanFree && plan != models.PlanPremium {
		return fmt.Errorf("%w: plan %q", ErrInvalidSetting, plan)
	}
	return s.mutate(ctx, func(st *models.UserState) error {
		st.Plan = plan
		return nil
	})
}

// SetTheme switches between the light and dark theme.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if theme != models.ThemeLight && theme != models.ThemeDark {
		return fmt.Errorf("%w: theme %q", ErrInvalidSetting, theme)
	}
	return s.mutate(ctx, func(st *models.UserState) error {
		st.Theme = theme
		return nil
	})
}

// Login stores the profile and marks the session as logged in.
func (s *Store) Login(ctx context.Context, profile models.UserProfile) error {
	return s.mutate(ctx, func(st *models.UserState) error {
		st.Profile = &profile
		st.IsLoggedIn = true
		return nil
	})
}

// Logout ends the session but keeps the profile.
func (s *Store) Logout(ctx context.Context) error {
	return s.mutate(ctx, func(st *models.UserState) error {
		st.IsLoggedIn = false
		return nil
	})
}

// mutate applies fn to a draft, persists the draft, and only then swaps it in.
func (s *Store) mutate(ctx context.Context, fn func(st *models.UserState) error) error {
	s.mu.Lock()
	draft := s.state.Clone()
	if err := fn(draft); err != nil {
		s.mu.Unlock()
		return err
	}

	data, err := Encode(draft)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.backend.Save(ctx, data); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to persist state: %w", err)
	}
	s.state = draft
	snapshot := draft.Clone()
	s.mu.Unlock()

	s.logger.Debug("state persisted", zap.Int("bytes", len(data)))

	s.hooksMu.RLock()
	hooks := append([]ChangeFunc(nil), s.onChange...)
	s.hooksMu.RUnlock()
	for _, fn := range hooks {
		fn(snapshot)
	}
	return nil
}
