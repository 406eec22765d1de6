// ABOUTME: Insight generation from the activity history
// ABOUTME: Any failure falls back to a fixed advisory list; callers never see an error

package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/opslog/models"
	"go.uber.org/zap"
)

const DefaultTimeout = 30 * time.Second

var ErrEmptyResponse = errors.New("model returned no insights")

// Fallback is shown whenever the model cannot produce insights.
var Fallback = []string{
	"SYSTEM ADVISORY: RE-ALIGN TRUST DIMENSIONS TO ACCELERATE RELATIONSHIP ROI.",
	"WEATHER FORECAST: CLEAR SKIES IN THE STRATEGIC NETWORK. EXECUTE HIGH-VALUE TOUCHPOINTS.",
	"OPTIMIZE VALUE EXCHANGE: TIME INVESTMENT WITHOUT TRUST GROWTH DETECTED IN CASUAL TIER.",
}

// Summarizer turns a digest into short advisory strings.
type Summarizer interface {
	Summarize(ctx context.Context, d Digest) ([]string, error)
	Name() string
}

// FallbackList returns a copy of the fallback insights.
func FallbackList() []string {
	return append([]string(nil), Fallback...)
}

// Generate asks the summarizer for insights and substitutes the fallback list on
// timeout, error or an empty answer.
func Generate(ctx context.Context, s Summarizer, state *models.UserState, timeout time.Duration, logger *zap.Logger) []string {
	if logger == nil {
		logger = zap.NewNop()
	}
	if s == nil {
		return FallbackList()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	out, err := s.Summarize(ctx, BuildDigest(state))
	if err == nil && len(out) == 0 {
		err = ErrEmptyResponse
	}
	if err != nil {
		logger.Warn("insight generation failed, using fallback",
			zap.String("provider", s.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return FallbackList()
	}

	logger.Debug("insights generated",
		zap.String("provider", s.Name()),
		zap.Int("count", len(out)),
		zap.Duration("elapsed", time.Since(start)))
	return out
}

type response struct {
	Insights []string `json:"insights"`
}

// parseResponse decodes the {"insights": [...]} contract, tolerating a fenced code block.
func parseResponse(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var r response
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &r); err != nil {
		return nil, fmt.Errorf("failed to decode insights: %w", err)
	}

	out := make([]string, 0, len(r.Insights))
	for _, s := range r.Insights {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyResponse
	}
	return out, nil
}

// Static always answers with the fallback list. It is used when no provider is configured.
type Static struct{}

func (Static) Summarize(context.Context, Digest) ([]string, error) {
	return FallbackList(), nil
}

func (Static) Name() string { return "static" }
