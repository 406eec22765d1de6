// ABOUTME: Trust assessment command
// ABOUTME: Unset matrix flags keep the seed values of a fresh assessment
package cli

import (
	"fmt"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/models"
	"github.com/spf13/cobra"
)

func newAssessCommand(rt *Runtime) *cobra.Command {
	seed := models.NewAssessment("")
	cmd := &cobra.Command{
		Use:   "assess <contact-id>",
		Short: "Log a relationship assessment for a contact",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(rt, func(cmd *cobra.Command, a *app.App, args []string) error {
			assessment := models.NewAssessment(args[0])
			f := cmd.Flags()
			assessment.TrustMatrix.Integrity, _ = f.GetInt("integrity")
			assessment.TrustMatrix.Competence, _ = f.GetInt("competence")
			assessment.TrustMatrix.Communication, _ = f.GetInt("communication")
			assessment.TrustMatrix.Alignment, _ = f.GetInt("alignment")
			assessment.TrustMatrix.Reciprocity, _ = f.GetInt("reciprocity")
			assessment.Temperature, _ = f.GetInt("temperature")
			assessment.Mood, _ = f.GetString("mood")
			assessment.Weather, _ = f.GetString("weather")
			assessment.ValueExchange.TimeInvested, _ = f.GetInt("time")
			assessment.ValueExchange.ResourcesSpent, _ = f.GetFloat64("spent")
			assessment.ValueExchange.ValueReceived, _ = f.GetString("value")
			assessment.ConflictLogged, _ = f.GetBool("conflict")
			assessment.StrategicNotes, _ = f.GetString("notes")

			date := dateFlag(cmd, a)
			applied, err := a.Store.LogAssessment(cmd.Context(), date, assessment)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			name := a.Store.DisplayName(assessment.ContactID)
			fmt.Fprintf(out, "✓ Assessment logged for %s on %s: trust %d/100\n", name, date, assessment.TrustMatrix.Score())
			if !applied {
				fmt.Fprintf(out, "  No contact with ID %s; the contact record was not updated\n", assessment.ContactID)
			}
			return nil
		}),
	}
	addDateFlag(cmd)
	m := seed.TrustMatrix
	cmd.Flags().Int("integrity", m.Integrity, "Integrity 0-25")
	cmd.Flags().Int("competence", m.Competence, "Competence 0-25")
	cmd.Flags().Int("communication", m.Communication, "Communication 0-20")
	cmd.Flags().Int("alignment", m.Alignment, "Alignment 0-15")
	cmd.Flags().Int("reciprocity", m.Reciprocity, "Reciprocity 0-15")
	cmd.Flags().Int("temperature", seed.Temperature, "Relationship temperature 0-100")
	cmd.Flags().String("mood", seed.Mood, "Positive, Neutral, Negative, Tense or Relaxed")
	cmd.Flags().String("weather", seed.Weather, "Sunny, Cloudy, Rainy, Stormy or Clear")
	cmd.Flags().Int("time", seed.ValueExchange.TimeInvested, "Minutes invested")
	cmd.Flags().Float64("spent", seed.ValueExchange.ResourcesSpent, "BWP spent on the relationship")
	cmd.Flags().String("value", seed.ValueExchange.ValueReceived, "Low, Medium, High or Strategic")
	cmd.Flags().Bool("conflict", false, "A conflict occurred")
	cmd.Flags().String("notes", "", "Strategic notes")
	return cmd
}
