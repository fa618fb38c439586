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
	openAIBaseURL   = "https://api.openai.com/v1"
	openAIModel     = "gpt-4o"
	openAIMaxTokens = 600
	openAIKeyEnv    = "OPENAI_API_KEY"
)

// OpenAI handles communication with the chat completions API.
type OpenAI struct {
	*settings
}

// NewOpenAI creates an OpenAI client.
// Without WithAPIKey it reads the key from OPENAI_API_KEY.
func NewOpenAI(opts ...Option) (*OpenAI, error) {
	s := newSettings(openAIBaseURL, openAIModel, openAIMaxTokens, opts)
	if err := s.resolveKey("OpenAI", openAIKeyEnv); err != nil {
		return nil, err
	}
	return &OpenAI{settings: s}, nil
}

// Model returns the model the client sends requests to.
func (c *OpenAI) Model() string {
	return c.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type openAIError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Complete sends prompt as a single user message.
func (c *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	var messages []chatMessage
	if c.system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: c.system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	req := chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", errors.LLMRequestFailed("failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.LLMRequestFailed("failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.LLMRequestFailed("API request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.LLMRequestFailed("failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr openAIError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return "", errors.LLMRequestFailed(
				fmt.Sprintf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message),
				nil,
			)
		}
		return "", errors.LLMRequestFailed(
			fmt.Sprintf("API returned status %d", resp.StatusCode),
			nil,
		)
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", errors.LLMRequestFailed("failed to decode response", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.LLMRequestFailed("no choices in response", nil)
	}

	return result.Choices[0].Message.Content, nil
}
