// Anthropic Messages API adapter. Differences from the other backends:
//   - Auth uses x-api-key plus a required anthropic-version header
//   - max_tokens is mandatory; we default it when the route leaves it unset
//   - The response is an array of content blocks, not a choices list
//   - Reasoning effort maps to the extended-thinking budget
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

const (
	// AnthropicDefaultBaseURL is the Anthropic API endpoint. Generate
	// appends /v1/messages.
	AnthropicDefaultBaseURL = "https://api.anthropic.com"

	anthropicVersion = "2023-06-01"

	// anthropicDefaultMaxTokens is used when the route does not pin a
	// budget. The API rejects requests without max_tokens.
	anthropicDefaultMaxTokens = 4096

	// anthropicThinkingBudget is the extended-thinking token budget used
	// when a route asks for high reasoning effort.
	anthropicThinkingBudget = 8192

	// anthropicThinkingHeadroom is the visible-output allowance kept above
	// the thinking budget. The API requires budget_tokens strictly less
	// than max_tokens; thinking tokens count against max_tokens, so the
	// headroom is what remains for the actual answer.
	anthropicThinkingHeadroom = 4096
)

// AnthropicClient implements Client against the Anthropic Messages API.
type AnthropicClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// AnthropicOption configures an AnthropicClient.
type AnthropicOption func(*AnthropicClient)

// WithAnthropicBaseURL overrides the default API base URL (proxies, tests).
func WithAnthropicBaseURL(url string) AnthropicOption {
	return func(c *AnthropicClient) { c.baseURL = url }
}

// WithAnthropicHTTPClient overrides the default HTTP client.
func WithAnthropicHTTPClient(hc *http.Client) AnthropicOption {
	return func(c *AnthropicClient) { c.httpClient = hc }
}

// NewAnthropicClient creates an Anthropic adapter with the given default model.
func NewAnthropicClient(apiKey, model string, opts ...AnthropicOption) *AnthropicClient {
	c := &AnthropicClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    AnthropicDefaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ─── internal Anthropic JSON types ───────────────────────────────────────────

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicThinking struct {
	Type         string `json:"type"`
	BudgetTokens int    `json:"budget_tokens"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float32            `json:"temperature,omitempty"`
	Thinking    *anthropicThinking `json:"thinking,omitempty"`
}

type anthropicContentBlock struct {
	Type string `json:"type"` // "text" or "thinking"
	Text string `json:"text,omitempty"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type anthropicResponse struct {
	Content    []anthropicContentBlock `json:"content"`
	StopReason string                  `json:"stop_reason"`
	Usage      anthropicUsage          `json:"usage"`
}

// ─── Client implementation ───────────────────────────────────────────────────

// Provider returns ProviderAnthropic.
func (c *AnthropicClient) Provider() Provider { return ProviderAnthropic }

// Generate performs a non-streaming call to /v1/messages.
func (c *AnthropicClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("anthropic: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("anthropic: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("anthropic: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anthropic: status %d: %s", resp.StatusCode, string(respBody))
	}

	var ar anthropicResponse
	if err := json.Unmarshal(respBody, &ar); err != nil {
		return nil, fmt.Errorf("anthropic: decode response: %w", err)
	}

	// Concatenate text blocks; skip thinking blocks.
	var text string
	for _, block := range ar.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return nil, errors.New("anthropic: no text content in response")
	}

	return &GenerateResponse{
		Text:   text,
		Tokens: ar.Usage.InputTokens + ar.Usage.OutputTokens,
	}, nil
}

// buildRequest maps the common request onto Anthropic's wire shape.
func (c *AnthropicClient) buildRequest(req GenerateRequest) anthropicRequest {
	model := req.Model
	if model == "" {
		model = c.model
	}

	maxTokens := req.Params.MaxTokens
	if maxTokens == 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	out := anthropicRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Messages:    []anthropicMessage{{Role: "user", Content: req.Prompt}},
		Temperature: req.Params.Temperature,
	}
	if req.Params.ReasoningEffort == EffortHigh {
		out.Thinking = &anthropicThinking{Type: "enabled", BudgetTokens: anthropicThinkingBudget}
		// budget_tokens must stay strictly below max_tokens.
		if out.MaxTokens <= anthropicThinkingBudget {
			out.MaxTokens = anthropicThinkingBudget + anthropicThinkingHeadroom
		}
	}
	return out
}
