// Package thumb downloads video thumbnails.
package thumb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FetchError reports a thumbnail download that did not return a 2xx status.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch thumbnail %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch thumbnail %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads thumbnail images over HTTP.
type Fetcher struct {
	httpClient HTTPClient
}

// NewFetcher creates a Fetcher. A nil client uses a default with a timeout.
func NewFetcher(httpClient HTTPClient) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fetcher{httpClient: httpClient}
}

// Fetch downloads the image at url and returns its bytes.
// Any non-2xx response is a FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}

// URLForVideo returns the standard high-quality thumbnail URL for a video ID.
func URLForVideo(videoID string) string {
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID)
}
