// ABOUTME: Tests for the HTML dashboard pages
// ABOUTME: Renders every page against an in-memory App through a chi router
package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/insights"
	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestPages(t *testing.T) (*app.App, http.Handler) {
	t.Helper()
	a, err := app.NewWithBackend(context.Background(), nil, store.NewMemoryBackend(), insights.Static{}, nil)
	require.NoError(t, err)
	a.Now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { _ = a.Close() })

	srv, err := NewServer(a)
	require.NoError(t, err)
	r := chi.NewRouter()
	srv.Mount(r)
	return a, r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func seed(t *testing.T, a *app.App) string {
	t.Helper()
	ctx := context.Background()

	c := models.NewContact("Kagiso Molefe")
	c.Company = "Debswana"
	c.Tier = models.TierStrategic
	acquired, err := a.Store.Acquire(ctx, "2025-03-01", c)
	require.NoError(t, err)

	revenue := 12500.0
	stage := models.StageProposal
	_, err = a.Store.MergeDay(ctx, "2025-03-02", models.DayPatch{
		Sales: &models.SalesPatch{Revenue: &revenue, DealStage: &stage},
	})
	require.NoError(t, err)

	_, err = a.Store.LogAssessment(ctx, "2025-03-02", models.NewAssessment(acquired.ID))
	require.NoError(t, err)
	return acquired.ID
}

func TestDashboardPage(t *testing.T) {
	a, h := setupTestPages(t)
	seed(t, a)

	rec := get(h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "BWP 12,500")
	assert.Contains(t, body, "Proposal")
	assert.Contains(t, body, "/api/v1/graph.svg")
	assert.Contains(t, body, `href="/days/2025-03-02"`)
}

func TestDashboardPageEmpty(t *testing.T) {
	_, h := setupTestPages(t)

	rec := get(h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Pipeline")
}

func TestNetworkPageFilters(t *testing.T) {
	a, h := setupTestPages(t)
	seed(t, a)

	rec := get(h, "/network?q=debs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kagiso Molefe")

	rec = get(h, "/network?tier=casual")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No contacts found")
}

func TestDayPages(t *testing.T) {
	a, h := setupTestPages(t)
	seed(t, a)

	rec := get(h, "/days")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2025-03-01")

	rec = get(h, "/days/2025-03-02")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Relationships")
	assert.Contains(t, body, "Kagiso Molefe")
	assert.Contains(t, body, "Average trust 60.0")

	assert.Equal(t, http.StatusNotFound, get(h, "/days/2025-01-01").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/days/someday").Code)
}
