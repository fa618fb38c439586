package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/HartBrook/lyra/internal/errors"
)

const (
	anthropicBaseURL   = "https://api.anthropic.com/v1"
	anthropicModel     = "claude-sonnet-4-20250514"
	anthropicMaxTokens = 1024
	anthropicVersion   = "2023-06-01"
	anthropicKeyEnv    = "ANTHROPIC_API_KEY"
)

// Anthropic handles communication with the Claude messages API.
type Anthropic struct {
	*settings
}

// NewAnthropic creates a Claude client.
// Without WithAPIKey it reads the key from ANTHROPIC_API_KEY.
func NewAnthropic(opts ...Option) (*Anthropic, error) {
	s := newSettings(anthropicBaseURL, anthropicModel, anthropicMaxTokens, opts)
	if err := s.resolveKey("Anthropic", anthropicKeyEnv); err != nil {
		return nil, err
	}
	return &Anthropic{settings: s}, nil
}

// Model returns the model the client sends requests to.
func (c *Anthropic) Model() string {
	return c.model
}

// anthropicMessage represents a message in the Claude API.
type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesRequest represents a request to the messages API.
type messagesRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature *float64           `json:"temperature,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

// contentBlock represents a content block in the response.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// messagesResponse represents a response from the messages API.
type messagesResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// anthropicError represents an error from the Claude API.
type anthropicError struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends prompt as a single user message.
func (c *Anthropic) Complete(ctx context.Context, prompt string) (string, error) {
	req := messagesRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		System:      c.system,
		Temperature: c.temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	resp, err := c.sendRequest(ctx, req)
	if err != nil {
		return "", err
	}

	var result string
	for _, block := range resp.Content {
		if block.Type == "text" {
			result += block.Text
		}
	}

	return result, nil
}

func (c *Anthropic) sendRequest(ctx context.Context, req messagesRequest) (*messagesResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.LLMRequestFailed("failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, errors.LLMRequestFailed("failed to create request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.LLMRequestFailed("API request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.LLMRequestFailed("failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr anthropicError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, errors.LLMRequestFailed(
				fmt.Sprintf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message),
				nil,
			)
		}
		return nil, errors.LLMRequestFailed(
			fmt.Sprintf("API returned status %d", resp.StatusCode),
			nil,
		)
	}

	var result messagesResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, errors.LLMRequestFailed("failed to decode response", err)
	}

	return &result, nil
}
