// Package narrate turns detection results into a natural-language thumbnail
// analysis via the OpenAI chat-completions API.
package narrate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/outlierlens/outlierlens-go/internal/model"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4"

	systemPrompt = "You are an expert YouTube thumbnail analyst. Analyze the " +
		"information from Vision AI and create a comprehensive analysis of " +
		"what's happening in the thumbnail."
)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithModel overrides the completion model.
func WithModel(m string) ClientOption {
	return func(c *Client) {
		c.model = m
	}
}

// Client generates thumbnail narratives.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient HTTPClient
}

// NewClient creates a narrator client with the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Narrate describes what is happening in the thumbnail given its detection
// result and why it might be engaging.
func (c *Client) Narrate(ctx context.Context, det model.DetectionResult) (string, error) {
	detJSON, err := json.MarshalIndent(det, "", "  ")
	if err != nil {
		return "", fmt.Errorf("narrate: encode detection: %w", err)
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Based on this Vision AI analysis of a YouTube thumbnail, " +
				"describe what is happening in the thumbnail and why it might be engaging: " + string(detJSON)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("narrate: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("narrate: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("narrate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("narrate: read response: %w", err)
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", fmt.Errorf("narrate: parse response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if chat.Error != nil {
			return "", fmt.Errorf("narrate: %s", chat.Error.Message)
		}
		return "", fmt.Errorf("narrate: status %d", resp.StatusCode)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("narrate: empty completion")
	}

	return chat.Choices[0].Message.Content, nil
}
