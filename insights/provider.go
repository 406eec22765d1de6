// ABOUTME: Chooses a summarizer from the configured provider name

package insights

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// New returns the summarizer for provider. A missing key degrades to Static.
func New(ctx context.Context, provider, apiKey, model string) (Summarizer, error) {
	switch strings.ToLower(provider) {
	case ProviderGemini:
		if apiKey == "" {
			return Static{}, nil
		}
		return NewGemini(ctx, apiKey, model)
	case ProviderOpenAI:
		if apiKey == "" {
			return Static{}, nil
		}
		return NewOpenAI(apiKey, model), nil
	case ProviderNone, "":
		return Static{}, nil
	}
	return nil, fmt.Errorf("unknown insights provider %q (gemini, openai, none)", provider)
}
