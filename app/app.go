// ABOUTME: Wires configuration, persistence, the store and the insight refresher
// ABOUTME: Shared by the CLI, MCP server, HTTP API and TUI

package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/opslog/charm"
	"github.com/harperreed/opslog/config"
	"github.com/harperreed/opslog/db"
	"github.com/harperreed/opslog/export"
	"github.com/harperreed/opslog/insights"
	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/stats"
	"github.com/harperreed/opslog/store"
	"go.uber.org/zap"
)

var ErrConsentRequired = errors.New("insights require consent (run: opslog consent --accept)")

// App holds the long-lived components of one process.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Store      *store.Store
	Summarizer insights.Summarizer
	Refresher  *insights.Refresher

	// Set when the matching backend is in use
	Snapshots *db.SnapshotRepository
	Charm     *charm.Client

	Now     func() time.Time
	closers []func() error
}

// New opens the configured backend and store.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{Config: cfg, Logger: logger, Now: time.Now}

	var backend store.Backend
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		conn, err := db.OpenDatabase(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.closers = append(a.closers, conn.Close)
		a.Snapshots = db.NewSnapshotRepository(conn)
		backend = a.Snapshots
	case config.BackendCharm:
		client, err := charm.NewClient(&charm.Config{Host: cfg.Charm.Host, AutoSync: cfg.Charm.AutoSync})
		if err != nil {
			return nil, err
		}
		a.Charm = client
		backend = charm.NewBackend(client)
	case config.BackendMemory:
		backend = store.NewMemoryBackend()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	summarizer, err := insights.New(ctx, cfg.Insights.Provider, cfg.Insights.APIKey, cfg.Insights.Model)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	if err := a.attach(ctx, backend, summarizer); err != nil {
		_ = a.Close()
		return nil, err
	}
	logger.Debug("app ready",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("insights", summarizer.Name()))
	return a, nil
}

// NewWithBackend builds an App on an explicit backend and summarizer.
func NewWithBackend(ctx context.Context, cfg *config.Config, backend store.Backend, summarizer insights.Summarizer, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Defaults()
	}
	a := &App{Config: cfg, Logger: logger, Now: time.Now}
	if err := a.attach(ctx, backend, summarizer); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) attach(ctx context.Context, backend store.Backend, summarizer insights.Summarizer) error {
	s, err := store.Open(ctx, backend, a.Logger.Named("store"))
	if err != nil {
		return err
	}
	a.Store = s
	a.Summarizer = summarizer
	a.Refresher = insights.NewRefresher(summarizer, a.Config.Insights.Timeout.Std(), a.Logger.Named("insights"))

	// Every successful mutation schedules a follow-up insight refresh
	s.OnChange(a.Refresher.Trigger)
	a.Refresher.Trigger(s.Snapshot())
	return nil
}

// Close waits for in-flight insight refreshes and releases the backend.
func (a *App) Close() error {
	if a.Refresher != nil {
		a.Refresher.Wait()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}

// Stats computes the dashboard over the current state.
func (a *App) Stats() stats.Stats {
	st := a.Store.Snapshot()
	return stats.Compute(st.Entries, st.Contacts)
}

// Insights returns the latest refreshed insights, generating them now when none exist yet.
func (a *App) Insights(ctx context.Context) ([]string, error) {
	st := a.Store.Snapshot()
	if !st.Consent {
		return nil, ErrConsentRequired
	}
	if cur := a.Refresher.Current(); cur != nil {
		return cur, nil
	}
	out := insights.Generate(ctx, a.Summarizer, st, a.Config.Insights.Timeout.Std(), a.Logger.Named("insights"))
	a.Refresher.Set(out)
	return out, nil
}

// CurrentInsights returns the already refreshed insights without generating new
// ones. Nothing is returned until the user consents.
func (a *App) CurrentInsights() []string {
	if !a.Store.Snapshot().Consent {
		return nil
	}
	return a.Refresher.Current()
}

// ExportJSON renders the JSON export with the most recently generated insights.
func (a *App) ExportJSON() ([]byte, error) {
	return export.ToJSON(a.Store.Snapshot(), a.settledInsights(), a.Now())
}

// settledInsights lets in-flight refreshes land before reading the current list.
func (a *App) settledInsights() []string {
	a.Refresher.Wait()
	return a.Refresher.Current()
}

// ExportCSV renders the CSV export.
func (a *App) ExportCSV() ([]byte, error) {
	return export.ToCSV(a.Store.Snapshot())
}

// Export renders one format.
func (a *App) Export(format export.Format) ([]byte, error) {
	if format == export.FormatCSV {
		return a.ExportCSV()
	}
	return a.ExportJSON()
}

// WriteExports writes both formats into dir.
func (a *App) WriteExports(ctx context.Context, dir string) ([]string, error) {
	return export.WriteAll(ctx, dir, a.Store.Snapshot(), a.settledInsights(), a.Now())
}

// Today is the default date for submissions.
func (a *App) Today() string {
	return a.Now().Format(models.DateLayout)
}
