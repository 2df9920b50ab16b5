package model

import (
	"fmt"
	"time"
)

// SearchMode selects between a global query and a channel-group query.
type SearchMode string

const (
	ModeGeneric SearchMode = "generic"
	ModeGrouped SearchMode = "grouped"
)

// ParseSearchMode maps a query parameter to a SearchMode.
// An empty value defaults to generic.
func ParseSearchMode(s string) (SearchMode, error) {
	switch s {
	case "", string(ModeGeneric):
		return ModeGeneric, nil
	case string(ModeGrouped):
		return ModeGrouped, nil
	}
	return "", fmt.Errorf("unknown search mode %q", s)
}

// TimeWindow restricts a search to videos published after now minus the window.
type TimeWindow string

const (
	WindowNone TimeWindow = "none"
	Window24h  TimeWindow = "24h"
	Window48h  TimeWindow = "48h"
	Window7d   TimeWindow = "7d"
	Window15d  TimeWindow = "15d"
	Window1m   TimeWindow = "1m"
)

var windowDurations = map[TimeWindow]time.Duration{
	Window24h: 24 * time.Hour,
	Window48h: 48 * time.Hour,
	Window7d:  7 * 24 * time.Hour,
	Window15d: 15 * 24 * time.Hour,
	Window1m:  30 * 24 * time.Hour,
}

// ParseTimeWindow maps a query parameter to a TimeWindow.
// An empty value means no time restriction.
func ParseTimeWindow(s string) (TimeWindow, error) {
	switch w := TimeWindow(s); w {
	case "", WindowNone:
		return WindowNone, nil
	case Window24h, Window48h, Window7d, Window15d, Window1m:
		return w, nil
	}
	return "", fmt.Errorf("unknown time window %q", s)
}

// Since returns the publishedAfter cutoff for the window relative to now.
// The zero time means unrestricted.
func (w TimeWindow) Since(now time.Time) time.Time {
	d, ok := windowDurations[w]
	if !ok {
		return time.Time{}
	}
	return now.Add(-d)
}

// SearchRequest carries every parameter that influences a search result.
// All four fields feed the cache fingerprint.
type SearchRequest struct {
	Query  string     `json:"query"`
	Mode   SearchMode `json:"mode"`
	Window TimeWindow `json:"window"`
	Group  string     `json:"group"`
}

// SearchFailure reports a channel whose sub-query failed during fan-out.
type SearchFailure struct {
	ChannelID string `json:"channelId"`
	Message   string `json:"message"`
}

// SearchResponse is the scored result set returned to the caller.
// Failures lists channels skipped during fan-out; Cached marks a TTL-cache hit.
type SearchResponse struct {
	Videos   []Video         `json:"videos"`
	Failures []SearchFailure `json:"failures,omitempty"`
	Cached   bool            `json:"cached"`
}
