// ABOUTME: Account and preference commands
// ABOUTME: Consent for insights, plan, theme, and the local login session
package cli

import (
	"errors"
	"fmt"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/models"
	"github.com/spf13/cobra"
)

func newConsentCommand(rt *Runtime) *cobra.Command {
	var accept, revoke bool
	cmd := &cobra.Command{
		Use:   "consent",
		Short: "Allow or revoke sending activity digests for insight generation",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			out := cmd.OutOrStdout()
			switch {
			case accept && revoke:
				return errors.New("pass only one of --accept or --revoke")
			case !accept && !revoke:
				fmt.Fprintf(out, "Consent: %t\n", a.Store.Snapshot().Consent)
				return nil
			}
			if err := a.Store.SetConsent(cmd.Context(), accept); err != nil {
				return err
			}
			if accept {
				fmt.Fprintln(out, "✓ Consent granted; insights will be generated")
			} else {
				fmt.Fprintln(out, "✓ Consent revoked")
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&accept, "accept", false, "Grant consent")
	cmd.Flags().BoolVar(&revoke, "revoke", false, "Revoke consent")
	return cmd
}

func newPlanCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:       "plan [free|premium]",
		Short:     "Show or switch the plan",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{models.PlanFree, models.PlanPremium},
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, args []string) error {
			if len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Plan: %s\n", a.Store.Snapshot().Plan)
				return nil
			}
			if err := a.Store.SetPlan(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Plan set to %s\n", args[0])
			return nil
		}),
	}
}

func newThemeCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or switch the theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{models.ThemeLight, models.ThemeDark},
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, args []string) error {
			if len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", a.Store.Snapshot().Theme)
				return nil
			}
			if err := a.Store.SetTheme(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Theme set to %s\n", args[0])
			return nil
		}),
	}
}

func newLoginCommand(rt *Runtime) *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store your profile and start a session",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			if name == "" {
				return errors.New("--name is required")
			}
			if err := a.Store.Login(cmd.Context(), models.UserProfile{Name: name, Email: email}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged in as %s\n", name)
			return nil
		}),
	}
	cmd.Flags().StringVar(&name, "name", "", "Your name")
	cmd.Flags().StringVar(&email, "email", "", "Your email")
	return cmd
}

func newLogoutCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session; the profile is kept",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			if err := a.Store.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Logged out")
			return nil
		}),
	}
}
