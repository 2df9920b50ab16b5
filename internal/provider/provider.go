// Package provider defines the search-provider contract consumed by the
// aggregation engine.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/outlierlens/outlierlens-go/internal/model"
)

// MaxDetailBatch is the provider-imposed limit on IDs per detail lookup.
const MaxDetailBatch = 50

// SearchParams are the inputs to one logical provider query.
// ChannelID restricts the query to a single channel; the zero time in
// PublishedAfter means no time restriction.
type SearchParams struct {
	Query          string
	ChannelID      string
	PublishedAfter time.Time
	MaxResults     int
}

// SearchProvider issues queries and resolves IDs into full video records.
// FetchDetails accepts at most MaxDetailBatch IDs per call.
type SearchProvider interface {
	Search(ctx context.Context, params SearchParams) ([]string, error)
	FetchDetails(ctx context.Context, ids []string) ([]model.Video, error)
}

// Error is a provider transport or API failure, carrying the HTTP status
// code when one was received.
type Error struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %s: status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %s: %s", e.Op, e.Message)
}
