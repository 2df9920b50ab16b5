package model

import "time"

// Category is the duration-based bucket a video is scored against.
type Category string

const (
	CategoryShort   Category = "short"
	CategoryRegular Category = "regular"
)

// Video represents a single search result with its computed fields.
// Category and OutlierScore are always set together by the scoring pass
// that produced the containing batch; a video is never scored in isolation
// from its channel+category peers.
type Video struct {
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	ChannelID    string    `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`
	PublishedAt  time.Time `json:"publishedAt"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Duration     string    `json:"duration"`
	ViewCount    int64     `json:"viewCount"`
	Category     Category  `json:"category"`
	OutlierScore float64   `json:"outlierScore"`
}
