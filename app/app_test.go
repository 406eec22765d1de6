// ABOUTME: Tests for application wiring and the shared operations built on it

package app

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harperreed/opslog/config"
	"github.com/harperreed/opslog/export"
	"github.com/harperreed/opslog/insights"
	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSummarizer struct {
	calls atomic.Int32
}

func (c *countingSummarizer) Name() string { return "counting" }

func (c *countingSummarizer) Summarize(context.Context, insights.Digest) ([]string, error) {
	c.calls.Add(1)
	return []string{"KEEP GOING."}, nil
}

func newTestApp(t *testing.T) (*App, *countingSummarizer) {
	t.Helper()
	s := &countingSummarizer{}
	a, err := NewWithBackend(context.Background(), config.Defaults(), store.NewMemoryBackend(), s, nil)
	require.NoError(t, err)
	a.Now = func() time.Time { return time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { _ = a.Close() })
	return a, s
}

func TestMutationsTriggerRefreshOnlyWithConsent(t *testing.T) {
	ctx := context.Background()
	a, s := newTestApp(t)

	_, err := a.Store.Acquire(ctx, a.Today(), models.Contact{FullName: "Ann"})
	require.NoError(t, err)
	a.Refresher.Wait()
	assert.Zero(t, s.calls.Load())

	require.NoError(t, a.Store.SetConsent(ctx, true))
	a.Refresher.Wait()
	assert.Equal(t, int32(1), s.calls.Load())
	assert.Equal(t, []string{"KEEP GOING."}, a.Refresher.Current())
}

func TestInsightsRequireConsent(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := a.Insights(context.Background())
	assert.ErrorIs(t, err, ErrConsentRequired)
}

func TestInsightsGeneratesWhenNothingCached(t *testing.T) {
	ctx := context.Background()
	a, s := newTestApp(t)
	require.NoError(t, a.Store.SetConsent(ctx, true)) // empty state: refresh skipped
	a.Refresher.Wait()
	require.Zero(t, s.calls.Load())

	got, err := a.Insights(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"KEEP GOING."}, got)
}

func TestInsightsAreCarriedIntoExport(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)
	require.NoError(t, a.Store.SetConsent(ctx, true))
	a.Refresher.Wait()

	got, err := a.Insights(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"KEEP GOING."}, got)

	notes := "shipped"
	_, err = a.Store.MergeDay(ctx, a.Today(), models.DayPatch{Notes: &notes})
	require.NoError(t, err)

	data, err := a.ExportJSON()
	require.NoError(t, err)
	var doc struct {
		GeneratedInsights []string `json:"generatedInsights"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, got, doc.GeneratedInsights)
}

func TestOpenRefreshesWhenConsentWasGiven(t *testing.T) {
	ctx := context.Background()
	st := models.NewUserState()
	st.Consent = true
	st.Entries["2025-01-31"] = models.DailyRecord{}
	data, err := store.Encode(st)
	require.NoError(t, err)
	backend := store.NewMemoryBackend()
	require.NoError(t, backend.Save(ctx, data))

	s := &countingSummarizer{}
	a, err := NewWithBackend(ctx, config.Defaults(), backend, s, nil)
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	out, err := a.ExportJSON()
	require.NoError(t, err)
	assert.Contains(t, string(out), "KEEP GOING.")
	assert.Equal(t, int32(1), s.calls.Load())
}

func TestExports(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	_, err := a.ExportCSV()
	assert.ErrorIs(t, err, export.ErrNoEntries)

	notes := "shipped"
	_, err = a.Store.MergeDay(ctx, a.Today(), models.DayPatch{Notes: &notes})
	require.NoError(t, err)

	data, err := a.Export(export.FormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(data), `2025-02-01,"notes"`)

	data, err = a.Export(export.FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"exportDate": "2025-02-01T12:00:00.000Z"`)

	paths, err := a.WriteExports(ctx, t.TempDir())
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	_, err := a.Store.Acquire(ctx, "2025-01-01", models.Contact{FullName: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, 1, a.Stats().NetworkSize)
	assert.Equal(t, 1, a.Stats().DaysLogged)
}

func TestNewWithSQLiteBackend(t *testing.T) {
	cfg := config.Defaults()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "opslog.db")
	cfg.Insights.Provider = "none"

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, a.Snapshots)
	assert.Equal(t, "static", a.Summarizer.Name())
	require.NoError(t, a.Store.SetPlan(context.Background(), models.PlanPremium))
	require.NoError(t, a.Close())

	reopened, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	assert.Equal(t, models.PlanPremium, reopened.Store.Snapshot().Plan)
}

func TestNewWithMemoryBackend(t *testing.T) {
	cfg := config.Defaults()
	cfg.Storage.Backend = config.BackendMemory
	cfg.Insights.Provider = "none"

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer func() { _ = a.Close() }()
	assert.Nil(t, a.Snapshots)
	assert.Nil(t, a.Charm)
}
