// OpenAI chat-completions adapter. The most conventional of the three
// backends: Bearer auth, model in the body, choices array in the response.
// Reasoning effort passes through as the reasoning_effort field.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// OpenAIDefaultBaseURL is the OpenAI API endpoint. Generate appends
// /chat/completions. Any OpenAI-compatible endpoint works here.
const OpenAIDefaultBaseURL = "https://api.openai.com/v1"

// OpenAIClient implements Client against the chat completions API.
type OpenAIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// OpenAIOption configures an OpenAIClient.
type OpenAIOption func(*OpenAIClient)

// WithOpenAIBaseURL overrides the default API base URL (proxies, tests,
// compatible endpoints).
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(c *OpenAIClient) { c.baseURL = url }
}

// WithOpenAIHTTPClient overrides the default HTTP client.
func WithOpenAIHTTPClient(hc *http.Client) OpenAIOption {
	return func(c *OpenAIClient) { c.httpClient = hc }
}

// NewOpenAIClient creates an OpenAI adapter with the given default model.
func NewOpenAIClient(apiKey, model string, opts ...OpenAIOption) *OpenAIClient {
	c := &OpenAIClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    OpenAIDefaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ─── internal OpenAI JSON types ──────────────────────────────────────────────

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model           string          `json:"model"`
	Messages        []openAIMessage `json:"messages"`
	Temperature     float32         `json:"temperature,omitempty"`
	MaxTokens       int             `json:"max_completion_tokens,omitempty"`
	ReasoningEffort string          `json:"reasoning_effort,omitempty"`
}

type openAIChoice struct {
	Message      openAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type openAIUsage struct {
	TotalTokens int `json:"total_tokens"`
}

type openAIResponse struct {
	Choices []openAIChoice `json:"choices"`
	Usage   openAIUsage    `json:"usage"`
}

// ─── Client implementation ───────────────────────────────────────────────────

// Provider returns ProviderOpenAI.
func (c *OpenAIClient) Provider() Provider { return ProviderOpenAI }

// Generate performs a non-streaming call to /chat/completions.
func (c *OpenAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	body, err := json.Marshal(openAIRequest{
		Model:           model,
		Messages:        []openAIMessage{{Role: "user", Content: req.Prompt}},
		Temperature:     req.Params.Temperature,
		MaxTokens:       req.Params.MaxTokens,
		ReasoningEffort: req.Params.ReasoningEffort,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai: status %d: %s", resp.StatusCode, string(respBody))
	}

	var or openAIResponse
	if err := json.Unmarshal(respBody, &or); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if len(or.Choices) == 0 {
		return nil, errors.New("openai: empty choices in response")
	}

	return &GenerateResponse{
		Text:   or.Choices[0].Message.Content,
		Tokens: or.Usage.TotalTokens,
	}, nil
}
