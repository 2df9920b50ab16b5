// Package vision implements thumbnail detection via the Cloud Vision REST API.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/outlierlens/outlierlens-go/internal/model"
)

const defaultBaseURL = "https://vision.googleapis.com"

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

// Client annotates images with label, text, and object detection.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
}

// NewClient creates a Vision API client authenticated by API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type annotateRequest struct {
	Requests []annotateEntry `json:"requests"`
}

type annotateEntry struct {
	Image    imageContent `json:"image"`
	Features []feature    `json:"features"`
}

type imageContent struct {
	Content string `json:"content"`
}

type feature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type annotateResponse struct {
	Responses []struct {
		LabelAnnotations []struct {
			Description string `json:"description"`
		} `json:"labelAnnotations"`
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
		LocalizedObjectAnnotations []struct {
			Name string `json:"name"`
		} `json:"localizedObjectAnnotations"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// Detect runs label, text, and object detection over the image bytes and
// reduces the annotations to a DetectionResult.
func (c *Client) Detect(ctx context.Context, image []byte) (model.DetectionResult, error) {
	req := annotateRequest{
		Requests: []annotateEntry{{
			Image: imageContent{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []feature{
				{Type: "LABEL_DETECTION", MaxResults: 20},
				{Type: "TEXT_DETECTION"},
				{Type: "OBJECT_LOCALIZATION", MaxResults: 20},
			},
		}},
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return model.DetectionResult{}, fmt.Errorf("vision: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/images:annotate?key=%s", c.baseURL, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return model.DetectionResult{}, fmt.Errorf("vision: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return model.DetectionResult{}, fmt.Errorf("vision: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.DetectionResult{}, fmt.Errorf("vision: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.DetectionResult{}, fmt.Errorf("vision: status %d", resp.StatusCode)
	}

	var annotated annotateResponse
	if err := json.Unmarshal(body, &annotated); err != nil {
		return model.DetectionResult{}, fmt.Errorf("vision: parse response: %w", err)
	}
	if len(annotated.Responses) == 0 {
		return model.DetectionResult{}, fmt.Errorf("vision: empty response")
	}

	r := annotated.Responses[0]
	if r.Error != nil {
		return model.DetectionResult{}, fmt.Errorf("vision: %s", r.Error.Message)
	}

	result := model.DetectionResult{
		Labels:  make([]string, 0, len(r.LabelAnnotations)),
		Text:    []string{},
		Objects: make([]string, 0, len(r.LocalizedObjectAnnotations)),
	}
	for _, l := range r.LabelAnnotations {
		result.Labels = append(result.Labels, l.Description)
	}
	// The first text annotation carries the full detected block; the rest
	// are per-word fragments.
	if len(r.TextAnnotations) > 0 {
		result.Text = append(result.Text, r.TextAnnotations[0].Description)
	}
	for _, o := range r.LocalizedObjectAnnotations {
		result.Objects = append(result.Objects, o.Name)
	}
	return result, nil
}
