// Package ai is a placeholder pass-through to OpenRouter. It carries no
// provider integration logic beyond forwarding a chat completion request.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wakanda-gov/platform/internal/config"
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResult is the reply surfaced to handlers.
type ChatResult struct {
	Model   string `json:"model"`
	Content string `json:"content"`
	Stubbed bool   `json:"stubbed"`
}

// Client forwards chat requests to OpenRouter. Without an API key it answers
// with a canned placeholder instead of failing, so the surrounding modules
// stay testable offline.
type Client struct {
	cfg        config.AIConfig
	httpClient *http.Client
}

// NewClient builds a client from config.
func NewClient(cfg config.AIConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Chat sends a chat completion request.
func (c *Client) Chat(ctx context.Context, model string, messages []Message) (*ChatResult, error) {
	if model == "" {
		model = c.cfg.DefaultModel
	}
	if c.cfg.APIKey == "" {
		return &ChatResult{
			Model:   model,
			Content: "AI integration is not configured; set OPENROUTER_API_KEY to enable live responses.",
			Stubbed: true,
		}, nil
	}

	payload, err := json.Marshal(map[string]any{
		"model":    model,
		"messages": messages,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("openrouter: status %d: %s", resp.StatusCode, body)
	}

	var decoded struct {
		Choices []struct {
			Message Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("openrouter: empty response")
	}
	return &ChatResult{Model: model, Content: decoded.Choices[0].Message.Content}, nil
}

// Models lists the models this deployment will accept.
func (c *Client) Models() []string {
	return []string{
		"openai/gpt-3.5-turbo",
		"openai/gpt-4",
		"anthropic/claude-3-haiku",
		"meta-llama/llama-3-8b-instruct",
	}
}
