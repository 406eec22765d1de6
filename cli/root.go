// ABOUTME: Root command and lazily initialized runtime shared by every subcommand
// ABOUTME: Global flags override the loaded configuration before the app is opened
package cli

import (
	"context"
	"fmt"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/config"
	"github.com/harperreed/opslog/logging"
	"github.com/spf13/cobra"
)

// Runtime opens the App on first use so that --help and bad flags never touch storage.
type Runtime struct {
	Version string

	configPath string
	backend    string
	dbPath     string
	verbose    bool

	app *app.App
}

// App returns the shared App, opening it on the first call.
func (r *Runtime) App(ctx context.Context) (*app.App, error) {
	if r.app != nil {
		return r.app, nil
	}

	cfg, err := config.Load(r.configPath)
	if err != nil {
		return nil, err
	}
	if r.backend != "" {
		cfg.Storage.Backend = r.backend
	}
	if r.dbPath != "" {
		cfg.Storage.Path = r.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, r.verbose)
	if err != nil {
		return nil, err
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	r.app = a
	return a, nil
}

// Close releases the App if it was opened.
func (r *Runtime) Close() error {
	if r.app == nil {
		return nil
	}
	return r.app.Close()
}

// NewRootCommand builds the full command tree.
func NewRootCommand(rt *Runtime) *cobra.Command {
	root := &cobra.Command{
		Use:           "opslog",
		Short:         "Personal operations log: sales, network, trust, finance, output",
		Version:       rt.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&rt.configPath, "config", "", "Config file (default: "+config.DefaultPath()+")")
	flags.StringVar(&rt.backend, "backend", "", "Storage backend: sqlite, charm or memory")
	flags.StringVar(&rt.dbPath, "db-path", "", "SQLite database path")
	flags.BoolVarP(&rt.verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(
		newLogCommand(rt),
		newContactCommand(rt),
		newAssessCommand(rt),
		newDayCommand(rt),
		newStatsCommand(rt),
		newExportCommand(rt),
		newInsightsCommand(rt),
		newGraphCommand(rt),
		newTUICommand(rt),
		newMCPCommand(rt),
		newServeCommand(rt),
		newSyncCommand(rt),
		newConsentCommand(rt),
		newPlanCommand(rt),
		newThemeCommand(rt),
		newLoginCommand(rt),
		newLogoutCommand(rt),
	)
	return root
}

// NewRootCommandWithApp builds the command tree around an already opened App.
func NewRootCommandWithApp(a *app.App, version string) *cobra.Command {
	return NewRootCommand(&Runtime{Version: version, app: a})
}

// Execute runs the CLI with args and closes whatever it opened.
func Execute(ctx context.Context, version string, args []string) error {
	rt := &Runtime{Version: version}
	root := NewRootCommand(rt)
	root.SetArgs(args)

	runErr := root.ExecuteContext(ctx)
	if err := rt.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to close: %w", err)
	}
	return runErr
}

// withApp adapts a handler that needs the App into a cobra RunE.
func withApp(rt *Runtime, fn func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := rt.App(cmd.Context())
		if err != nil {
			return err
		}
		return fn(cmd, a, args)
	}
}
