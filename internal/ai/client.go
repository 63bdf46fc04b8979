// Package ai provides the external completion capability used by the
// prioritization service. The client is always passed in explicitly as a
// dependency so callers and tests can substitute a fake.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/config"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/errors"
)

// CompletionClient is the capability handle for the external language
// model. Complete sends a system and user instruction and returns the raw
// completion text. It blocks until the provider responds or the context
// is canceled; there are no partial or streaming results and no retry.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// CompleteFunc adapts a plain function to the CompletionClient interface.
// Tests use this to substitute canned completions.
type CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

// Complete calls f.
func (f CompleteFunc) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}

// GroqClient calls an OpenAI-compatible chat completions endpoint in JSON
// mode. Groq is the default provider; any endpoint speaking the same
// protocol works.
type GroqClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewGroqClient creates a completion client from configuration. The API
// key is resolved from the configured environment variable at
// construction time.
func NewGroqClient(cfg config.AIConfig) *GroqClient {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &GroqClient{
		apiKey:      cfg.APIKey(),
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      &http.Client{Timeout: timeout},
	}
}

// Model returns the configured model identifier.
func (c *GroqClient) Model() string {
	return c.model
}

// Complete sends a single chat completion request with JSON response
// formatting and returns the assistant's text. All failure modes surface
// as UpstreamError; the caller decides whether to re-issue the request.
func (c *GroqClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.NewUpstreamError("API key is not set", nil).
			WithModel(c.model).
			WithRetryable(false)
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    c.temperature,
		MaxTokens:      c.maxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.NewUpstreamError("failed to marshal request", err).WithModel(c.model)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.NewUpstreamError("failed to create request", err).WithModel(c.model)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", errors.NewUpstreamError("completion request failed", err).WithModel(c.model)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewUpstreamError("failed to read response", err).WithModel(c.model)
	}

	if resp.StatusCode != http.StatusOK {
		upstreamErr := errors.NewUpstreamError("completion request rejected", nil).
			WithModel(c.model).
			WithStatusCode(resp.StatusCode)
		// 4xx responses won't improve on a bare re-issue
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			upstreamErr = upstreamErr.WithRetryable(false)
		}
		return "", upstreamErr
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", errors.NewUpstreamError("failed to decode response", err).WithModel(c.model)
	}
	if apiResp.Error != nil {
		return "", errors.NewUpstreamError(apiResp.Error.Message, nil).WithModel(c.model)
	}
	if len(apiResp.Choices) == 0 {
		return "", errors.NewUpstreamError("response contains no choices", nil).WithModel(c.model)
	}

	return apiResp.Choices[0].Message.Content, nil
}

// defaultHTTPTimeout guards against a zero-valued config in direct
// construction paths.
const defaultHTTPTimeout = 60 * time.Second
