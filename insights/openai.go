// ABOUTME: OpenAI-backed summarizer using a chat completion
// ABOUTME: The prompt asks for the same JSON contract as the Gemini summarizer

package insights

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// CompletionsService defines the chat completion call used here.
type CompletionsService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

var _ Summarizer = (*OpenAI)(nil)

type OpenAI struct {
	completions CompletionsService
	model       openai.ChatModel
}

// NewOpenAI creates an OpenAI summarizer for the given API key.
func NewOpenAI(apiKey, model string) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return NewOpenAIWithService(client.Chat.Completions, model)
}

// NewOpenAIWithService wires an existing completions service, for tests.
func NewOpenAIWithService(svc CompletionsService, model string) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{completions: svc, model: openai.ChatModel(model)}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Summarize(ctx context.Context, d Digest) ([]string, error) {
	resp, err := o.completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a terse commercial strategy analyst. Answer with JSON only."),
			openai.UserMessage(d.Prompt()),
		}),
		Model: openai.F(o.model),
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}
	return parseResponse(resp.Choices[0].Message.Content)
}
