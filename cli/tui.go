// ABOUTME: Interactive terminal UI command
// ABOUTME: Refuses to start when stdout is not a terminal
package cli

import (
	"errors"
	"os"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("the TUI needs an interactive terminal (try: opslog stats)")

func newTUICommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the dashboard, network and days interactively",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(_ *cobra.Command, a *app.App, _ []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNotTerminal
			}
			return tui.Run(a)
		}),
	}
}
