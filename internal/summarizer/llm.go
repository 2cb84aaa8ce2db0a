package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/bornholm/genai/llm"
	"github.com/bornholm/genai/llm/provider"
	"github.com/bornholm/genai/llm/provider/openai"
)

type chatCompleter interface {
	ChatCompletion(ctx context.Context, funcs ...llm.ChatCompletionOptionFunc) (llm.ChatCompletionResponse, error)
}

// LLMClient summarizes through an OpenAI-compatible chat completion API.
type LLMClient struct {
	client chatCompleter
}

func NewLLMClient(ctx context.Context, baseURL, apiKey, model string) (*LLMClient, error) {
	client, err := provider.Create(ctx,
		provider.WithChatCompletion(openai.Name, openai.Options{
			CommonOptions: provider.CommonOptions{
				BaseURL: baseURL,
				APIKey:  apiKey,
				Model:   model,
			},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}
	return &LLMClient{client: client}, nil
}

func (c *LLMClient) Summarize(ctx context.Context, items []Item) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("%w: no items", ErrSummarizationFailed)
	}

	completion, err := c.client.ChatCompletion(ctx,
		llm.WithMessages(
			llm.NewMessage(llm.RoleUser, BuildPrompt(items)),
		),
		llm.WithTemperature(temperature),
		llm.WithMaxCompletionTokens(maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarizationFailed, err)
	}

	text := strings.TrimSpace(completion.Message().Content())
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrSummarizationFailed)
	}
	return text, nil
}

var _ Summarizer = (*LLMClient)(nil)
