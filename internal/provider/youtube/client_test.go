package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/outlierlens/outlierlens-go/internal/provider"
)

func TestSearch_BuildsQueryAndParsesIDs(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/youtube/v3/search" {
			t.Errorf("path = %s, want /youtube/v3/search", r.URL.Path)
		}
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{"id": {"kind": "youtube#video", "videoId": "abc123"}},
				{"id": {"kind": "youtube#video", "videoId": "def456"}},
				{"id": {"kind": "youtube#channel"}}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	after := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)
	ids, err := client.Search(context.Background(), provider.SearchParams{
		Query:          "etf basics",
		ChannelID:      "UCchannel",
		PublishedAfter: after,
		MaxResults:     25,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(ids) != 2 || ids[0] != "abc123" || ids[1] != "def456" {
		t.Errorf("ids = %v, want [abc123 def456]", ids)
	}

	want := map[string]string{
		"part":           "snippet",
		"type":           "video",
		"q":              "etf basics",
		"maxResults":     "25",
		"key":            "test-key",
		"channelId":      "UCchannel",
		"publishedAfter": "2025-03-08T12:00:00Z",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestSearch_OmitsOptionalParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("channelId") {
			t.Error("channelId should be omitted for a generic search")
		}
		if r.URL.Query().Has("publishedAfter") {
			t.Error("publishedAfter should be omitted for an unrestricted window")
		}
		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	ids, err := client.Search(context.Background(), provider.SearchParams{Query: "q"})
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want empty", ids)
	}
}

func TestSearch_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": 403, "message": "quotaExceeded"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.Search(context.Background(), provider.SearchParams{Query: "q"})
	var provErr *provider.Error
	if !errors.As(err, &provErr) {
		t.Fatalf("err = %v, want *provider.Error", err)
	}
	if provErr.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", provErr.StatusCode)
	}
	if provErr.Message != "quotaExceeded" {
		t.Errorf("message = %q, want the API error message", provErr.Message)
	}
}

func TestFetchDetails_ParsesVideoRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/youtube/v3/videos" {
			t.Errorf("path = %s, want /youtube/v3/videos", r.URL.Path)
		}
		if got := r.URL.Query().Get("id"); got != "v1,v2" {
			t.Errorf("id = %q, want v1,v2", got)
		}
		w.Write([]byte(`{
			"items": [
				{
					"id": "v1",
					"snippet": {
						"title": "Market Crash Explained",
						"channelId": "UCchannel",
						"channelTitle": "Finance Channel",
						"publishedAt": "2025-03-01T10:00:00Z",
						"thumbnails": {
							"default": {"url": "https://i.ytimg.com/vi/v1/default.jpg"},
							"high": {"url": "https://i.ytimg.com/vi/v1/hqdefault.jpg"}
						}
					},
					"contentDetails": {"duration": "PT12M5S"},
					"statistics": {"viewCount": "123456"}
				},
				{
					"id": "v2",
					"snippet": {
						"title": "Quick Tip",
						"channelId": "UCchannel",
						"channelTitle": "Finance Channel",
						"publishedAt": "2025-03-02T10:00:00Z",
						"thumbnails": {
							"default": {"url": "https://i.ytimg.com/vi/v2/default.jpg"}
						}
					},
					"contentDetails": {"duration": "PT45S"},
					"statistics": {"viewCount": "9001"}
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	videos, err := client.FetchDetails(context.Background(), []string{"v1", "v2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(videos) != 2 {
		t.Fatalf("got %d videos, want 2", len(videos))
	}

	v1 := videos[0]
	if v1.VideoID != "v1" || v1.Title != "Market Crash Explained" {
		t.Errorf("unexpected first record: %+v", v1)
	}
	if v1.ViewCount != 123456 {
		t.Errorf("view count = %d, want 123456", v1.ViewCount)
	}
	if v1.Duration != "PT12M5S" {
		t.Errorf("duration = %q, want PT12M5S", v1.Duration)
	}
	if v1.ThumbnailURL != "https://i.ytimg.com/vi/v1/hqdefault.jpg" {
		t.Errorf("thumbnail = %q, want the high-res variant", v1.ThumbnailURL)
	}
	if v1.PublishedAt.IsZero() {
		t.Error("publishedAt should be parsed")
	}

	// No high-res thumbnail: fall back to default.
	if videos[1].ThumbnailURL != "https://i.ytimg.com/vi/v2/default.jpg" {
		t.Errorf("thumbnail fallback = %q, want the default variant", videos[1].ThumbnailURL)
	}
}

func TestFetchDetails_EmptyAndOversizedBatches(t *testing.T) {
	client := NewClient("test-key", WithBaseURL("http://127.0.0.1:0"))

	videos, err := client.FetchDetails(context.Background(), nil)
	if err != nil {
		t.Fatalf("empty batch: %v", err)
	}
	if len(videos) != 0 {
		t.Errorf("empty batch returned %d videos", len(videos))
	}

	oversized := make([]string, provider.MaxDetailBatch+1)
	for i := range oversized {
		oversized[i] = "v"
	}
	if _, err := client.FetchDetails(context.Background(), oversized); err == nil {
		t.Error("oversized batch should be rejected before any request")
	}
}
