// ABOUTME: HTTP handlers for the local JSON API
// ABOUTME: Thin adapters from requests to App operations
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-graphviz"
	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/export"
	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/stats"
	"github.com/harperreed/opslog/viz"
	"go.uber.org/zap"
)

// Handler implements the API handlers
type Handler struct {
	app     *app.App
	logger  *zap.Logger
	version string
}

func NewHandler(a *app.App, version string) *Handler {
	return &Handler{app: a, logger: a.Logger.Named("api"), version: version}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Backend  string `json:"backend"`
	Insights string `json:"insights"`
	Days     int    `json:"days"`
	Contacts int    `json:"contacts"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Version:  h.version,
		Backend:  h.app.Config.Storage.Backend,
		Insights: h.app.Summarizer.Name(),
		Days:     len(h.app.Store.Dates()),
		Contacts: len(h.app.Store.Contacts()),
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.app.Stats())
}

// Dashboard renders the terminal dashboard as plain text.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d := viz.GenerateDashboard(h.app.Store.Snapshot(), h.app.CurrentInsights(), h.app.Now())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(viz.RenderDashboard(d)))
}

func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := viz.RenderTrustGraph(r.Context(), h.app.Store.Snapshot(), graphviz.SVG, &buf); err != nil {
		h.logger.Error("graph render failed", zap.Error(err))
		MapError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"dates": h.app.Store.Dates()})
}

type DayResponse struct {
	Date         string             `json:"date"`
	Record       models.DailyRecord `json:"record"`
	Calls        *stats.CallSummary `json:"calls,omitempty"`
	TrustAverage *float64           `json:"trustAverage,omitempty"`
}

func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := models.ParseDate(date); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid date %q", date))
		return
	}
	rec, ok := h.app.Store.Day(date)
	if !ok {
		WriteProblem(w, r, http.StatusNotFound, fmt.Sprintf("Nothing logged for %s", date))
		return
	}

	resp := DayResponse{Date: date, Record: rec}
	if rec.Sales != nil && len(rec.Sales.CallLog) > 0 {
		summary := stats.SummarizeCalls(rec.Sales)
		resp.Calls = &summary
	}
	if avg, ok := stats.DayTrustAverage(rec); ok {
		resp.TrustAverage = &avg
	}
	writeJSON(w, http.StatusOK, resp)
}

// MergeDay handles POST /api/v1/days/{date} with a one-section DayPatch body.
func (h *Handler) MergeDay(w http.ResponseWriter, r *http.Request) {
	var patch models.DayPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	date := chi.URLParam(r, "date")
	rec, err := h.app.Store.MergeDay(r.Context(), date, patch)
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DayResponse{Date: date, Record: rec})
}

type CallRequest struct {
	Contact         string   `json:"contact"`
	Company         string   `json:"company"`
	Type            string   `json:"type"`
	Outcome         string   `json:"outcome"`
	DurationSeconds int      `json:"durationSeconds"`
	Objections      []string `json:"objections"`
	Notes           string   `json:"notes"`
}

func (h *Handler) LogCall(w http.ResponseWriter, r *http.Request) {
	var req CallRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date := chi.URLParam(r, "date")
	call := models.NewCallRecord(req.Contact, req.Company, req.Type, req.Outcome, req.DurationSeconds, req.Objections, req.Notes)
	rec, err := h.app.Store.LogCall(r.Context(), date, call)
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, DayResponse{Date: date, Record: rec})
}

type AssessmentResponse struct {
	Assessment models.RelationshipAssessment `json:"assessment"`
	TrustScore int                           `json:"trustScore"`
	Applied    bool                          `json:"applied"`
}

// LogAssessment accepts a partial assessment; omitted fields keep the seed values.
func (h *Handler) LogAssessment(w http.ResponseWriter, r *http.Request) {
	a := models.NewAssessment("")
	if !decodeBody(w, r, &a) {
		return
	}
	if a.ContactID == "" {
		WriteProblem(w, r, http.StatusUnprocessableEntity, "contactId is required")
		return
	}

	applied, err := h.app.Store.LogAssessment(r.Context(), chi.URLParam(r, "date"), a)
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, AssessmentResponse{Assessment: a, TrustScore: a.TrustMatrix.Score(), Applied: applied})
}

func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	contacts := stats.FilterContacts(h.app.Store.Contacts(), q.Get("q"), q.Get("tier"))

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			WriteProblem(w, r, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		if limit > 0 && limit < len(contacts) {
			contacts = contacts[:limit]
		}
	}
	writeJSON(w, http.StatusOK, map[string][]models.Contact{"contacts": contacts})
}

// AcquireContact handles POST /api/v1/contacts. The acquisition date comes from ?date=.
func (h *Handler) AcquireContact(w http.ResponseWriter, r *http.Request) {
	contact := models.NewContact("")
	if !decodeBody(w, r, &contact) {
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.app.Today()
	}

	acquired, err := h.app.Store.Acquire(r.Context(), date, contact)
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, acquired)
}

func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, ok := h.app.Store.Contact(id)
	if !ok {
		WriteProblem(w, r, http.StatusNotFound, fmt.Sprintf("Contact %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, export.FormatCSV)
}

func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, export.FormatJSON)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, format export.Format) {
	data, err := h.app.Export(format)
	if err != nil {
		MapError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(format, h.app.Now())))
	_, _ = w.Write(data)
}

func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Insights(r.Context())
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"insights":   list,
		"provider":   h.app.Summarizer.Name(),
		"resolvedAt": h.app.Refresher.ResolvedAt(),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
