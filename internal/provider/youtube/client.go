// Package youtube implements the SearchProvider against the Data API v3.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/outlierlens/outlierlens-go/internal/model"
	"github.com/outlierlens/outlierlens-go/internal/provider"
)

const defaultBaseURL = "https://www.googleapis.com"

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

// Client is a key-authenticated YouTube Data API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
}

// NewClient creates a new YouTube API client with the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search issues one search.list query and returns the matching video IDs.
func (c *Client) Search(ctx context.Context, params provider.SearchParams) ([]string, error) {
	maxResults := params.MaxResults
	if maxResults <= 0 || maxResults > 50 {
		maxResults = 50
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("q", params.Query)
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("key", c.apiKey)
	if params.ChannelID != "" {
		q.Set("channelId", params.ChannelID)
	}
	if !params.PublishedAfter.IsZero() {
		q.Set("publishedAfter", params.PublishedAfter.UTC().Format("2006-01-02T15:04:05Z"))
	}

	body, err := c.doRequest(ctx, "search", c.baseURL+"/youtube/v3/search?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &provider.Error{Op: "search", Message: fmt.Sprintf("parse response: %v", err)}
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, nil
}

// FetchDetails resolves up to provider.MaxDetailBatch video IDs into full records.
func (c *Client) FetchDetails(ctx context.Context, ids []string) ([]model.Video, error) {
	if len(ids) == 0 {
		return []model.Video{}, nil
	}
	if len(ids) > provider.MaxDetailBatch {
		return nil, &provider.Error{Op: "videos", Message: fmt.Sprintf("too many ids in one batch: %d", len(ids))}
	}

	q := url.Values{}
	q.Set("part", "snippet,contentDetails,statistics")
	q.Set("id", joinIDs(ids))
	q.Set("key", c.apiKey)

	body, err := c.doRequest(ctx, "videos", c.baseURL+"/youtube/v3/videos?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var resp videosResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &provider.Error{Op: "videos", Message: fmt.Sprintf("parse response: %v", err)}
	}

	videos := make([]model.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		viewCount, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)

		thumbnail := item.Snippet.Thumbnails.High.URL
		if thumbnail == "" {
			thumbnail = item.Snippet.Thumbnails.Default.URL
		}

		videos = append(videos, model.Video{
			VideoID:      item.ID,
			Title:        item.Snippet.Title,
			ChannelID:    item.Snippet.ChannelID,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  publishedAt,
			ThumbnailURL: thumbnail,
			Duration:     item.ContentDetails.Duration,
			ViewCount:    viewCount,
		})
	}
	return videos, nil
}

func (c *Client) doRequest(ctx context.Context, op, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &provider.Error{Op: op, Message: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &provider.Error{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.Error{Op: op, StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		msg := "request failed"
		var apiErr errorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		return nil, &provider.Error{Op: op, StatusCode: resp.StatusCode, Message: msg}
	}

	return body, nil
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}
