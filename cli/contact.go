// ABOUTME: Contact directory commands
// ABOUTME: Acquire contacts, search the network and show a contact's trust history
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/stats"
	"github.com/spf13/cobra"
)

func newContactCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contact",
		Aliases: []string{"contacts"},
		Short:   "Manage the contact directory",
	}
	cmd.AddCommand(
		newContactAddCommand(rt),
		newContactListCommand(rt),
		newContactShowCommand(rt),
	)
	return cmd
}

func newContactAddCommand(rt *Runtime) *cobra.Command {
	var (
		title, position, company, industry, tier, income, notes string
		netWorth, confidence                                    float64
		tags                                                    []string
	)
	cmd := &cobra.Command{
		Use:   "add <full name>",
		Short: "Acquire a new contact",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, args []string) error {
			contact := models.NewContact(args[0])
			if tier != "" {
				t, err := models.ParseTier(tier)
				if err != nil {
					return err
				}
				contact.Tier = t
			}
			contact.Title = title
			contact.Position = position
			contact.Company = company
			if industry != "" {
				contact.Industry = industry
			}
			contact.EstimatedNetWorth = netWorth
			contact.WealthConfidence = confidence
			contact.PrimaryIncomeSource = income
			if tags != nil {
				contact.Tags = tags
			}
			contact.Notes = notes

			date := dateFlag(cmd, a)
			acquired, err := a.Store.Acquire(cmd.Context(), date, contact)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Contact acquired: %s (ID: %s)\n", acquired.FullName, acquired.ID)
			return nil
		}),
	}
	addDateFlag(cmd)
	cmd.Flags().StringVar(&title, "title", "", "Honorific or title")
	cmd.Flags().StringVar(&position, "position", "", "Position")
	cmd.Flags().StringVar(&company, "company", "", "Company")
	cmd.Flags().StringVar(&industry, "industry", "", "Mining, Tourism, Finance, Agriculture, Tech, Government, Manufacturing or Other")
	cmd.Flags().StringVar(&tier, "tier", "", "strategic, key, regular or casual (default regular)")
	cmd.Flags().Float64Var(&netWorth, "net-worth", 0, "Estimated net worth (BWP)")
	cmd.Flags().Float64Var(&confidence, "wealth-confidence", 0, "Confidence in the net worth estimate")
	cmd.Flags().StringVar(&income, "income-source", "", "Primary income source")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	return cmd
}

func newContactListCommand(rt *Runtime) *cobra.Command {
	var (
		query, tier string
		limit       int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search contacts, highest trust first",
		Args:  cobra.NoArgs,
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, _ []string) error {
			matched := stats.FilterContacts(a.Store.Contacts(), query, tier)
			out := cmd.OutOrStdout()
			if len(matched) == 0 {
				fmt.Fprintln(out, "No contacts found")
				return nil
			}
			total := len(matched)
			if limit > 0 && len(matched) > limit {
				matched = matched[:limit]
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tTIER\tTRUST\tLAST SEEN")
			for _, c := range matched {
				lastSeen := c.LastInteractionDate
				if lastSeen == "" {
					lastSeen = "-"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
					c.ID, c.FullName, c.Company, c.Tier, c.LastTrustScore, lastSeen)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if total > len(matched) {
				fmt.Fprintf(out, "\n%d of %d contacts shown\n", len(matched), total)
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Match on name, company or industry")
	cmd.Flags().StringVar(&tier, "tier", stats.TierAll, "strategic, key, regular, casual or all")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum rows")
	return cmd
}

func newContactShowCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a contact and its assessment history",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, args []string) error {
			c, ok := a.Store.Contact(args[0])
			if !ok {
				return fmt.Errorf("contact not found: %s", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", c.FullName, c.ID)
			if c.Title != "" || c.Position != "" {
				fmt.Fprintf(out, "  %s %s\n", c.Title, c.Position)
			}
			fmt.Fprintf(out, "  Company:      %s\n", c.Company)
			fmt.Fprintf(out, "  Industry:     %s\n", c.Industry)
			fmt.Fprintf(out, "  Tier:         %s\n", c.Tier)
			fmt.Fprintf(out, "  Trust:        %d\n", c.LastTrustScore)
			fmt.Fprintf(out, "  Interactions: %d\n", c.InteractionCount)
			if c.LastInteractionDate != "" {
				fmt.Fprintf(out, "  Last seen:    %s\n", c.LastInteractionDate)
			}
			if c.EstimatedNetWorth > 0 {
				fmt.Fprintf(out, "  Net worth:    BWP %.0f\n", c.EstimatedNetWorth)
			}
			if len(c.Tags) > 0 {
				fmt.Fprintf(out, "  Tags:         %v\n", c.Tags)
			}
			if c.Notes != "" {
				fmt.Fprintf(out, "  Notes:        %s\n", c.Notes)
			}

			history := assessmentHistory(a, c.ID)
			if len(history) == 0 {
				return nil
			}
			fmt.Fprintln(out, "\nAssessments:")
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "DATE\tTRUST\tTEMP\tMOOD\tCONFLICT")
			for _, h := range history {
				_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%t\n",
					h.date, h.TrustMatrix.Score(), h.Temperature, h.Mood, h.ConflictLogged)
			}
			return w.Flush()
		}),
	}
}

type datedAssessment struct {
	date string
	models.RelationshipAssessment
}

// assessmentHistory walks the days in ascending order.
func assessmentHistory(a *app.App, contactID string) []datedAssessment {
	var out []datedAssessment
	for _, date := range a.Store.Dates() {
		rec, _ := a.Store.Day(date)
		for _, r := range rec.Relationships {
			if r.ContactID == contactID {
				out = append(out, datedAssessment{date: date, RelationshipAssessment: r})
			}
		}
	}
	return out
}
