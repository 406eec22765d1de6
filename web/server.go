// ABOUTME: Read-only HTML dashboard with embedded templates
// ABOUTME: Mounted next to the JSON API; every page renders the current snapshot
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/stats"
	"github.com/harperreed/opslog/viz"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Server struct {
	app       *app.App
	templates *template.Template
	logger    *zap.Logger
}

func NewServer(a *app.App) (*Server, error) {
	funcMap := template.FuncMap{
		"money": viz.FormatMoney,
		"percent": func(part, total int) int {
			if total == 0 {
				return 0
			}
			return part * 100 / total
		},
		"name": a.Store.DisplayName,
		"score": func(m models.TrustMatrix) int {
			return m.Score()
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{app: a, templates: tmpl, logger: a.Logger.Named("web")}, nil
}

// Mount registers the pages on r.
func (s *Server) Mount(r chi.Router) {
	r.Get("/", s.handleDashboard)
	r.Get("/network", s.handleNetwork)
	r.Get("/days", s.handleDays)
	r.Get("/days/{date}", s.handleDay)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d := viz.GenerateDashboard(s.app.Store.Snapshot(), s.app.CurrentInsights(), s.app.Now())

	stages := make([]string, 0, len(d.PipelineByStage))
	total := 0
	for stage, n := range d.PipelineByStage {
		stages = append(stages, stage)
		total += n
	}
	sort.Strings(stages)

	s.renderTemplate(w, "layout.html", map[string]interface{}{
		"Title":           "Dashboard",
		"ContentTemplate": "dashboard-content",
		"Dashboard":       d,
		"Stages":          stages,
		"PipelineTotal":   total,
	})
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	tier := r.URL.Query().Get("tier")
	if tier == "" {
		tier = stats.TierAll
	}

	s.renderTemplate(w, "layout.html", map[string]interface{}{
		"Title":           "Network",
		"ContentTemplate": "network-content",
		"Contacts":        stats.FilterContacts(s.app.Store.Contacts(), query, tier),
		"Query":           query,
		"Tier":            tier,
	})
}

type dayRow struct {
	Date       string
	Categories []models.Category
}

func (s *Server) handleDays(w http.ResponseWriter, r *http.Request) {
	dates := s.app.Store.Dates()
	rows := make([]dayRow, 0, len(dates))
	for i := len(dates) - 1; i >= 0; i-- {
		rec, _ := s.app.Store.Day(dates[i])
		rows = append(rows, dayRow{Date: dates[i], Categories: rec.Categories})
	}

	s.renderTemplate(w, "layout.html", map[string]interface{}{
		"Title":           "Days",
		"ContentTemplate": "days-content",
		"Days":            rows,
	})
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := models.ParseDate(date); err != nil {
		http.Error(w, fmt.Sprintf("invalid date %q", date), http.StatusBadRequest)
		return
	}
	rec, ok := s.app.Store.Day(date)
	if !ok {
		http.NotFound(w, r)
		return
	}

	data := map[string]interface{}{
		"Title":           date,
		"ContentTemplate": "day-content",
		"Date":            date,
		"Record":          rec,
		"Calls":           stats.SummarizeCalls(rec.Sales),
	}
	if avg, ok := stats.DayTrustAverage(rec); ok {
		data["TrustAverage"] = fmt.Sprintf("%.1f", avg)
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
