// ABOUTME: Tests for the state container
// ABOUTME: Covers merge persistence, contact uniqueness, assessments and rollback on failed writes
package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/harperreed/opslog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct {
	MemoryBackend
	fail bool
}

func (f *failingBackend) Save(ctx context.Context, data []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.MemoryBackend.Save(ctx, data)
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }
func strp(v string) *string     { return &v }

func openTestStore(t *testing.T) (*Store, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend()
	s, err := Open(context.Background(), backend, nil)
	require.NoError(t, err)
	return s, backend
}

func TestOpenWithoutSnapshotUsesDefaults(t *testing.T) {
	s, _ := openTestStore(t)

	st := s.Snapshot()
	assert.Empty(t, st.Entries)
	assert.Empty(t, st.Contacts)
	assert.False(t, st.Consent)
	assert.Equal(t, models.PlanFree, st.Plan)
	assert.Equal(t, models.ThemeDark, st.Theme)
}

func TestMergeDayPersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	s, backend := openTestStore(t)

	_, err := s.MergeDay(ctx, "2025-01-15", models.DayPatch{Sales: &models.SalesPatch{
		Leads: intp(10), DealsClosed: intp(2), Revenue: floatp(5000),
	}})
	require.NoError(t, err)
	_, err = s.MergeDay(ctx, "2025-01-15", models.DayPatch{Finance: &models.FinancePatch{
		Revenue: floatp(5000), OperatingExpenses: floatp(1000),
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, backend.Saves())

	reopened, err := Open(ctx, backend, nil)
	require.NoError(t, err)

	rec, ok := reopened.Day("2025-01-15")
	require.True(t, ok)
	assert.Equal(t, 10, rec.Sales.Leads)
	assert.Equal(t, 1000.0, rec.Finance.OperatingExpenses)
	assert.Equal(t, []models.Category{models.CategorySales, models.CategoryFinance}, rec.Categories)
}

func TestMergeDayValidation(t *testing.T) {
	ctx := context.Background()
	s, backend := openTestStore(t)

	tests := []struct {
		name  string
		date  string
		patch models.DayPatch
		want  error
	}{
		{"bad date", "15/01/2025", models.DayPatch{Notes: strp("x")}, ErrInvalidDate},
		{"impossible date", "2025-02-30", models.DayPatch{Notes: strp("x")}, ErrInvalidDate},
		{"two sections", "2025-01-15", models.DayPatch{Notes: strp("x"), Gym: &models.GymPatch{}}, ErrMultipleSections},
		{"trust out of range", "2025-01-15", models.DayPatch{Relationships: []models.RelationshipAssessment{
			{ContactID: "c1", TrustMatrix: models.TrustMatrix{Integrity: 26}},
		}}, models.ErrTrustOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.MergeDay(ctx, tt.date, tt.patch)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, backend.Saves())
	assert.Empty(t, s.Dates())
}

func TestAcquireAddsContactAndNetworkLog(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	c, err := s.Acquire(ctx, "2025-01-15", models.Contact{FullName: "  Jane Doe  ", Company: "Acme"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Jane Doe", c.FullName)
	assert.Equal(t, models.TierRegular, c.Tier)

	got, ok := s.Contact(c.ID)
	require.True(t, ok)
	assert.Equal(t, c, got)

	rec, ok := s.Day("2025-01-15")
	require.True(t, ok)
	require.Len(t, rec.Network.NewContacts, 1)
	assert.Equal(t, c.ID, rec.Network.NewContacts[0].ID)
	assert.Equal(t, []models.Category{models.CategoryNetwork}, rec.Categories)
}

func TestRawNetworkContactsGetAcquisitionSeeds(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	kept := models.Contact{FullName: "Known", LastTrustScore: 80, InteractionCount: 4}
	rec, err := s.MergeDay(ctx, "2025-01-15", models.DayPatch{
		Network: &models.NetworkPatch{NewContacts: []models.Contact{{FullName: "Raw"}, kept}},
	})
	require.NoError(t, err)
	require.Len(t, rec.Network.NewContacts, 2)

	raw, ok := s.Contact(rec.Network.NewContacts[0].ID)
	require.True(t, ok)
	assert.Equal(t, 50, raw.LastTrustScore)
	assert.Equal(t, 1, raw.InteractionCount)
	assert.Equal(t, models.IndustryTech, raw.Industry)
	assert.Equal(t, raw, rec.Network.NewContacts[0])

	known, ok := s.Contact(rec.Network.NewContacts[1].ID)
	require.True(t, ok)
	assert.Equal(t, 80, known.LastTrustScore)
	assert.Equal(t, 4, known.InteractionCount)
}

func TestAcquireRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	first := models.NewContact("Ann")
	_, err := s.Acquire(ctx, "2025-01-15", first)
	require.NoError(t, err)

	dup := models.NewContact("Someone Else")
	dup.ID = first.ID
	_, err = s.Acquire(ctx, "2025-01-16", dup)
	assert.ErrorIs(t, err, ErrDuplicateContact)

	assert.Len(t, s.Contacts(), 1)
	_, ok := s.Day("2025-01-16")
	assert.False(t, ok, "rejected batch leaves no trace")
}

func TestAcquireRejectsDuplicateWithinBatch(t *testing.T) {
	s, _ := openTestStore(t)

	c := models.NewContact("Ann")
	_, err := s.MergeDay(context.Background(), "2025-01-15", models.DayPatch{
		Network: &models.NetworkPatch{NewContacts: []models.Contact{c, c}},
	})
	assert.ErrorIs(t, err, ErrDuplicateContact)
	assert.Empty(t, s.Contacts())
}

func TestAcquireRequiresName(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.Acquire(context.Background(), "2025-01-15", models.Contact{FullName: "   "})
	assert.ErrorIs(t, err, ErrInvalidContact)
}

func TestSameNameContactsStayDistinct(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	a, err := s.Acquire(ctx, "2025-01-15", models.Contact{FullName: "Sam"})
	require.NoError(t, err)
	b, err := s.Acquire(ctx, "2025-01-15", models.Contact{FullName: "Sam"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, s.Contacts(), 2)
}

func TestDisplayNameForMissingContact(t *testing.T) {
	s, _ := openTestStore(t)
	assert.Equal(t, models.UnknownContactName, s.DisplayName("nope"))
}

func TestLogAssessmentAppliesToContact(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	c, err := s.Acquire(ctx, "2025-01-15", models.Contact{FullName: "Ann"})
	require.NoError(t, err)

	a := models.NewAssessment(c.ID)
	a.TrustMatrix = models.TrustMatrix{Integrity: 20, Competence: 20, Communication: 10, Alignment: 10, Reciprocity: 10}
	applied, err := s.LogAssessment(ctx, "2025-01-16", a)
	require.NoError(t, err)
	assert.True(t, applied)

	got, _ := s.Contact(c.ID)
	assert.Equal(t, 70, got.LastTrustScore)
	assert.Equal(t, c.InteractionCount+1, got.InteractionCount)
	assert.Equal(t, "2025-01-16", got.LastInteractionDate)

	rec, ok := s.Day("2025-01-16")
	require.True(t, ok)
	assert.Len(t, rec.Relationships, 1)
}

func TestLogAssessmentToleratesMissingContact(t *testing.T) {
	s, _ := openTestStore(t)

	applied, err := s.LogAssessment(context.Background(), "2025-01-16", models.NewAssessment("ghost"))
	require.NoError(t, err)
	assert.False(t, applied)

	rec, ok := s.Day("2025-01-16")
	require.True(t, ok)
	assert.Equal(t, "ghost", rec.Relationships[0].ContactID)
}

func TestFailedSaveRollsBack(t *testing.T) {
	ctx := context.Background()
	backend := &failingBackend{}
	s, err := Open(ctx, backend, nil)
	require.NoError(t, err)

	_, err = s.MergeDay(ctx, "2025-01-15", models.DayPatch{Notes: strp("kept")})
	require.NoError(t, err)

	backend.fail = true
	_, err = s.Acquire(ctx, "2025-01-15", models.Contact{FullName: "Ann"})
	require.Error(t, err)

	assert.Empty(t, s.Contacts())
	rec, _ := s.Day("2025-01-15")
	assert.Nil(t, rec.Network)
	assert.Equal(t, "kept", *rec.Notes)
}

func TestOnChangeReceivesPrivateSnapshot(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	var got []*models.UserState
	s.OnChange(func(st *models.UserState) { got = append(got, st) })

	require.NoError(t, s.SetConsent(ctx, true))
	_, err := s.MergeDay(ctx, "2025-01-15", models.DayPatch{Notes: strp("x")})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.True(t, got[0].Consent)
	assert.Empty(t, got[0].Entries)

	got[1].Entries["2025-01-15"] = models.DailyRecord{}
	rec, _ := s.Day("2025-01-15")
	assert.NotNil(t, rec.Notes)
}

func TestOnChangeNotCalledOnFailure(t *testing.T) {
	s, _ := openTestStore(t)

	calls := 0
	s.OnChange(func(*models.UserState) { calls++ })

	_, err := s.MergeDay(context.Background(), "bad", models.DayPatch{})
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	require.NoError(t, s.SetPlan(ctx, models.PlanPremium))
	require.NoError(t, s.SetTheme(ctx, models.ThemeLight))
	assert.ErrorIs(t, s.SetPlan(ctx, "gold"), ErrInvalidSetting)
	assert.ErrorIs(t, s.SetTheme(ctx, "neon"), ErrInvalidSetting)

	require.NoError(t, s.Login(ctx, models.UserProfile{Name: "Kago", Email: "k@example.com"}))
	require.NoError(t, s.Logout(ctx))

	st := s.Snapshot()
	assert.Equal(t, models.PlanPremium, st.Plan)
	assert.Equal(t, models.ThemeLight, st.Theme)
	assert.False(t, st.IsLoggedIn)
	require.NotNil(t, st.Profile)
	assert.Equal(t, "Kago", st.Profile.Name)
}

func TestConcurrentMerges(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			call := models.NewCallRecord("x", "", "", models.OutcomeMeeting, 30, nil, "")
			_, err := s.MergeDay(ctx, "2025-01-15", models.DayPatch{Sales: &models.SalesPatch{CallLog: []models.CallRecord{call}}})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rec, _ := s.Day("2025-01-15")
	assert.Len(t, rec.Sales.CallLog, 20)
}

func TestLogCallDerivesCounters(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	_, err := s.MergeDay(ctx, "2025-01-15", models.DayPatch{Sales: &models.SalesPatch{Revenue: floatp(900)}})
	require.NoError(t, err)

	_, err = s.LogCall(ctx, "2025-01-15", models.NewCallRecord("Ann", "", "", models.OutcomeMeeting, 120, nil, ""))
	require.NoError(t, err)
	rec, err := s.LogCall(ctx, "2025-01-15", models.NewCallRecord("Bob", "", "", models.OutcomeVoicemail, 30, nil, ""))
	require.NoError(t, err)

	assert.Len(t, rec.Sales.CallLog, 2)
	assert.Equal(t, 2, rec.Sales.ColdCalls)
	assert.Equal(t, 1, rec.Sales.Leads)
	assert.Equal(t, 900.0, rec.Sales.Revenue)

	_, err = s.LogCall(ctx, "nope", models.NewCallRecord("x", "", "", "", 0, nil, ""))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDecodeRestoresCategories(t *testing.T) {
	st, err := Decode([]byte(`{"entries":{"2025-01-15":{"gym":{"type":"run","completed":true},"categories":["sales"]}},"consent":true}`))
	require.NoError(t, err)

	assert.Equal(t, []models.Category{models.CategoryGym}, st.Entries["2025-01-15"].Categories)
	assert.NotNil(t, st.Contacts)
	assert.Equal(t, models.PlanFree, st.Plan)
}
