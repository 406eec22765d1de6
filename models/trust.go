// ABOUTME: Relationship trust scoring from the five-dimension matrix
// ABOUTME: Pure scoring plus the explicit contact update applied after an assessment
package models

import (
	"errors"
	"fmt"
)

var ErrTrustOutOfRange = errors.New("trust dimension out of range")

// TrustMatrixMax holds the upper bound of every dimension. Its score is 100.
var TrustMatrixMax = TrustMatrix{
	Integrity:     25,
	Competence:    25,
	Communication: 20,
	Alignment:     15,
	Reciprocity:   15,
}

// UnknownContactName is shown for assessments whose contact is not in the directory.
const UnknownContactName = "UNKNOWN"

// TrustScore sums the five dimensions. It does not clamp or validate.
func TrustScore(m TrustMatrix) int {
	return m.Integrity + m.Competence + m.Communication + m.Alignment + m.Reciprocity
}

// Score is shorthand for TrustScore(m).
func (m TrustMatrix) Score() int {
	return TrustScore(m)
}

// DefaultTrustMatrix is the seed used when a new assessment is started.
func DefaultTrustMatrix() TrustMatrix {
	return TrustMatrix{
		Integrity:     15,
		Competence:    15,
		Communication: 10,
		Alignment:     10,
		Reciprocity:   10,
	}
}

// Validate checks every dimension against its documented bound.
func (m TrustMatrix) Validate() error {
	dims := []struct {
		name     string
		val, max int
	}{
		{"integrity", m.Integrity, TrustMatrixMax.Integrity},
		{"competence", m.Competence, TrustMatrixMax.Competence},
		{"communication", m.Communication, TrustMatrixMax.Communication},
		{"alignment", m.Alignment, TrustMatrixMax.Alignment},
		{"reciprocity", m.Reciprocity, TrustMatrixMax.Reciprocity},
	}
	for _, d := range dims {
		if d.val < 0 || d.val > d.max {
			return fmt.Errorf("%w: %s=%d (0-%d)", ErrTrustOutOfRange, d.name, d.val, d.max)
		}
	}
	return nil
}

// NewAssessment starts an assessment for a contact with the default seed values.
func NewAssessment(contactID string) RelationshipAssessment {
	return RelationshipAssessment{
		ContactID:   contactID,
		TrustMatrix: DefaultTrustMatrix(),
		Temperature: 50,
		Mood:        MoodNeutral,
		Weather:     WeatherClear,
		ValueExchange: ValueExchange{
			TimeInvested:  60,
			ValueReceived: ValueMedium,
		},
	}
}

// ApplyAssessmentToContact returns the contact updated by an assessment logged on date.
func ApplyAssessmentToContact(c Contact, a RelationshipAssessment, date string) Contact {
	out := c.Clone()
	out.LastTrustScore = TrustScore(a.TrustMatrix)
	out.InteractionCount++
	out.LastInteractionDate = date
	return out
}
