package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/outlierlens/outlierlens-go/internal/model"
	"github.com/outlierlens/outlierlens-go/internal/provider"
	"github.com/outlierlens/outlierlens-go/internal/registry"
	"github.com/outlierlens/outlierlens-go/pkg/fingerprint"
)

// DefaultFanoutParallelism bounds concurrent per-channel sub-queries.
const DefaultFanoutParallelism = 4

// CacheError reports a search-cache store failure. Store errors are fatal
// for the search and are never downgraded to a miss.
type CacheError struct {
	Op  string // "get" or "put"
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("search cache %s: %v", e.Op, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }

// SearchCache is the TTL cache consulted before any provider call.
// Get returns nil, nil for both missing and expired entries; an error means
// the store itself is unavailable and is fatal for the search.
type SearchCache interface {
	Get(ctx context.Context, fingerprint string) ([]byte, error)
	Put(ctx context.Context, fingerprint string, payload []byte) error
}

// SearchLog records searches that reached the provider.
type SearchLog interface {
	Record(ctx context.Context, query, mode string) error
}

// SearchService is the fan-out aggregator: cache check, per-channel
// provider queries, detail resolution, classification, and outlier scoring.
type SearchService struct {
	cache     SearchCache
	provider  provider.SearchProvider
	registry  *registry.Registry
	searchLog SearchLog
	parallel  int
	now       func() time.Time
}

func NewSearchService(cache SearchCache, p provider.SearchProvider, reg *registry.Registry, searchLog SearchLog, parallel int) *SearchService {
	if parallel <= 0 {
		parallel = DefaultFanoutParallelism
	}
	return &SearchService{
		cache:     cache,
		provider:  p,
		registry:  reg,
		searchLog: searchLog,
		parallel:  parallel,
		now:       time.Now,
	}
}

// Search runs one aggregation call. A valid cache entry short-circuits all
// provider calls. On a miss the result set is fetched, classified, scored,
// written through to the cache, and returned.
//
// Grouped mode isolates per-channel failures: channels that fail are
// reported in Failures while the rest of the fan-out proceeds. Generic mode
// has a single sub-query, so its failure is fatal for the call. Cache store
// errors are always fatal and never downgraded to a miss.
func (s *SearchService) Search(ctx context.Context, req model.SearchRequest) (*model.SearchResponse, error) {
	fp := fingerprint.Search(req.Query, string(req.Mode), string(req.Window), req.Group)

	cached, err := s.cache.Get(ctx, fp)
	if err != nil {
		return nil, &CacheError{Op: "get", Err: err}
	}
	if cached != nil {
		var videos []model.Video
		if err := json.Unmarshal(cached, &videos); err != nil {
			return nil, fmt.Errorf("search cache: decode payload: %w", err)
		}
		return &model.SearchResponse{Videos: videos, Cached: true}, nil
	}

	publishedAfter := req.Window.Since(s.now())

	var ids []string
	var failures []model.SearchFailure

	switch req.Mode {
	case model.ModeGrouped:
		channels, err := s.registry.Resolve(req.Group)
		if err != nil {
			return nil, err
		}
		ids, failures = s.fanOut(ctx, req.Query, publishedAfter, channels)
	default:
		ids, err = s.provider.Search(ctx, provider.SearchParams{
			Query:          req.Query,
			PublishedAfter: publishedAfter,
			MaxResults:     provider.MaxDetailBatch,
		})
		if err != nil {
			return nil, err
		}
	}

	videos, detailFailures, err := s.resolveDetails(ctx, dedupe(ids), req.Mode)
	if err != nil {
		return nil, err
	}
	failures = append(failures, detailFailures...)

	for i := range videos {
		videos[i].Category = Classify(videos[i].Duration)
	}
	videos = Score(videos)

	if s.searchLog != nil {
		if err := s.searchLog.Record(ctx, req.Query, string(req.Mode)); err != nil {
			log.Printf("search: audit log error: %v", err)
		}
	}

	payload, err := json.Marshal(videos)
	if err != nil {
		return nil, fmt.Errorf("search cache: encode payload: %w", err)
	}
	if err := s.cache.Put(ctx, fp, payload); err != nil {
		return nil, &CacheError{Op: "put", Err: err}
	}

	return &model.SearchResponse{Videos: videos, Failures: failures, Cached: false}, nil
}

// fanOut issues one sub-query per channel, bounded by the parallelism
// limit, and joins all of them before returning. Sub-query results are
// concatenated in channel order so output is deterministic for a given
// provider state.
func (s *SearchService) fanOut(ctx context.Context, query string, publishedAfter time.Time, channels []string) ([]string, []model.SearchFailure) {
	perChannel := make([][]string, len(channels))
	perErr := make([]error, len(channels))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.parallel)

	for i, channelID := range channels {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, channelID string) {
			defer wg.Done()
			defer func() { <-sem }()

			ids, err := s.provider.Search(ctx, provider.SearchParams{
				Query:          query,
				ChannelID:      channelID,
				PublishedAfter: publishedAfter,
				MaxResults:     provider.MaxDetailBatch,
			})
			if err != nil {
				perErr[i] = err
				return
			}
			perChannel[i] = ids
		}(i, channelID)
	}
	wg.Wait()

	var ids []string
	var failures []model.SearchFailure
	for i, channelID := range channels {
		if perErr[i] != nil {
			log.Printf("search: channel %s failed: %v", channelID, perErr[i])
			failures = append(failures, model.SearchFailure{
				ChannelID: channelID,
				Message:   perErr[i].Error(),
			})
			continue
		}
		ids = append(ids, perChannel[i]...)
	}
	return ids, failures
}

// resolveDetails fetches full records for the IDs in provider-imposed
// chunks. A failed chunk is fatal in generic mode and reported-but-skipped
// in grouped mode, matching the per-channel failure policy.
func (s *SearchService) resolveDetails(ctx context.Context, ids []string, mode model.SearchMode) ([]model.Video, []model.SearchFailure, error) {
	videos := make([]model.Video, 0, len(ids))
	var failures []model.SearchFailure

	for start := 0; start < len(ids); start += provider.MaxDetailBatch {
		end := min(start+provider.MaxDetailBatch, len(ids))

		chunk, err := s.provider.FetchDetails(ctx, ids[start:end])
		if err != nil {
			if mode != model.ModeGrouped {
				return nil, nil, err
			}
			log.Printf("search: detail chunk %d-%d failed: %v", start, end, err)
			failures = append(failures, model.SearchFailure{Message: "detail lookup: " + err.Error()})
			continue
		}
		videos = append(videos, chunk...)
	}

	return videos, failures, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
