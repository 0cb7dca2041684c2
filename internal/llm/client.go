// Package llm drives the language-model side of a review: a
// chat-completion client, prompt construction, and resilient parsing of
// model output into structured issues.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/retry"
)

// reviewTemperature is kept low for deterministic reviews.
const reviewTemperature = 0.3

const transportAttempts = 3

// CompletionRequest is one chat-style request to the model.
type CompletionRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Completer produces a text completion for a chat-style request.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Client is a Completer backed by an OpenAI-compatible chat-completions
// endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	backoff retry.BackoffFunc
	log     *zap.Logger
}

// NewClient creates a chat-completion client.
func NewClient(baseURL, apiKey, model string, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: 30 * time.Second},
		backoff: retry.Exponential(time.Second),
		log:     log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the request and returns the raw completion text.
// Rate limiting is retried with backoff; auth failures are not.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	var messages []chatMessage
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.User})

	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	var content string
	err = retry.Do(ctx, transportAttempts, c.backoff, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
		if err != nil {
			return retry.Permanent(fmt.Errorf("creating request: %w", err))
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.http.Do(httpReq)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return errors.New("rate limited")
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return retry.Permanent(fmt.Errorf("authentication failed (status %d)", resp.StatusCode))
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("completion API status %d: %s", resp.StatusCode, body)
		}

		var parsed chatResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
		if len(parsed.Choices) == 0 {
			return errors.New("completion returned no choices")
		}

		content = parsed.Choices[0].Message.Content
		return nil
	})

	return content, err
}
