// ABOUTME: Storage sync and maintenance commands
// ABOUTME: Reports on and resets whichever backend holds the snapshot
package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/charm"
	"github.com/spf13/cobra"
)

var (
	errWipeNotConfirmed = errors.New("refusing to wipe without --confirm")
	errNotConnected     = errors.New("not connected to charm server")
)

func newSyncCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Inspect and manage stored state",
	}
	cmd.AddCommand(
		newSyncStatusCommand(rt),
		newSyncNowCommand(rt),
		newSyncWipeCommand(rt),
	)
	return cmd
}

func newSyncStatusCommand(rt *Runtime) *cobra.Command {
	var history int
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show where state is stored and its last write",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			out := cmd.OutOrStdout()
			switch {
			case a.Charm != nil:
				charm.WriteStatus(out, a.Charm.Status())
				return nil
			case a.Snapshots != nil:
				return writeSnapshotStatus(cmd, a, out, history)
			default:
				fmt.Fprintf(out, "Backend: %s (nothing is persisted)\n", a.Config.Storage.Backend)
				return nil
			}
		}),
	}
	cmd.Flags().IntVar(&history, "history", 5, "Recent writes to list")
	return cmd
}

func writeSnapshotStatus(cmd *cobra.Command, a *app.App, out io.Writer, history int) error {
	status, err := a.Snapshots.Status(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "SQLite Snapshot Status")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintf(out, "Database: %s\n", a.Config.Storage.Path)
	fmt.Fprintf(out, "Writes:   %d\n", status.Writes)
	if !status.HasSnapshot {
		fmt.Fprintln(out, "\nNo snapshot saved yet")
		return nil
	}
	fmt.Fprintf(out, "Updated:  %s\n", status.UpdatedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(out, "Size:     %d bytes\n", status.SizeBytes)

	if history <= 0 {
		return nil
	}
	writes, err := a.Snapshots.History(cmd.Context(), history)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nRecent writes:")
	for _, w := range writes {
		fmt.Fprintf(out, "  %s  %d bytes\n", w.WrittenAt.Local().Format(time.RFC3339), w.SizeBytes)
	}
	return nil
}

func newSyncNowCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Push and pull the charm snapshot",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			if a.Charm == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Backend %s has nothing to sync\n", a.Config.Storage.Backend)
				return nil
			}
			if !a.Charm.IsConnected() {
				return fmt.Errorf("%w: %s", errNotConnected, a.Charm.Config().Host)
			}
			if err := a.Charm.Sync(); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Sync complete")
			return nil
		}),
	}
}

func newSyncWipeCommand(rt *Runtime) *cobra.Command {
	var confirm, localOnly bool
	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete all stored state",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			if !confirm {
				return errWipeNotConfirmed
			}
			switch {
			case a.Charm != nil && localOnly:
				if err := a.Charm.Reset(); err != nil {
					return fmt.Errorf("failed to reset charm data: %w", err)
				}
			case a.Charm != nil:
				n, err := a.Charm.Wipe()
				if err != nil {
					return fmt.Errorf("failed to wipe charm data: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d keys\n", n)
			case a.Snapshots != nil:
				if err := a.Snapshots.Wipe(cmd.Context()); err != nil {
					return err
				}
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Backend %s has nothing stored\n", a.Config.Storage.Backend)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Stored state wiped; restart to begin fresh")
			return nil
		}),
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm deletion")
	cmd.Flags().BoolVar(&localOnly, "local", false, "Charm only: drop the local copy and keep the server copy")
	return cmd
}
