package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const DefaultCohereBaseURL = "https://api.cohere.ai"

// CohereClient calls the Cohere v1 generate endpoint.
type CohereClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewCohereClient(baseURL, apiKey, model string) *CohereClient {
	if baseURL == "" {
		baseURL = DefaultCohereBaseURL
	}
	if model == "" {
		model = "command"
	}
	return &CohereClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type generateRequest struct {
	Model             string   `json:"model"`
	Prompt            string   `json:"prompt"`
	MaxTokens         int      `json:"max_tokens"`
	Temperature       float64  `json:"temperature"`
	K                 int      `json:"k"`
	StopSequences     []string `json:"stop_sequences"`
	ReturnLikelihoods string   `json:"return_likelihoods"`
}

type generateResponse struct {
	Generations []struct {
		Text string `json:"text"`
	} `json:"generations"`
}

func (c *CohereClient) Summarize(ctx context.Context, items []Item) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("%w: no items", ErrSummarizationFailed)
	}

	body, err := json.Marshal(generateRequest{
		Model:             c.model,
		Prompt:            BuildPrompt(items),
		MaxTokens:         maxTokens,
		Temperature:       temperature,
		K:                 0,
		StopSequences:     []string{},
		ReturnLikelihoods: "NONE",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarizationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarizationFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarizationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.ErrorContext(ctx, "cohere generate failed", "status", resp.StatusCode, "body", string(snippet))
		return "", fmt.Errorf("%w: cohere returned status %d", ErrSummarizationFailed, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrSummarizationFailed, err)
	}
	if len(out.Generations) == 0 {
		return "", fmt.Errorf("%w: no generations", ErrSummarizationFailed)
	}

	text := strings.TrimSpace(out.Generations[0].Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty generation", ErrSummarizationFailed)
	}
	return text, nil
}

var _ Summarizer = (*CohereClient)(nil)
