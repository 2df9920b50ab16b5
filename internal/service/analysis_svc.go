package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/outlierlens/outlierlens-go/internal/model"
)

// EnrichmentError reports a failed vision or narration step. Nothing is
// cached when it occurs, so the next request retries from scratch.
type EnrichmentError struct {
	Stage string // "detect" or "narrate"
	Err   error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("enrichment %s: %v", e.Stage, e.Err)
}

func (e *EnrichmentError) Unwrap() error { return e.Err }

// AnalysisStore is the permanent per-video record store.
// Get returns nil, nil when no record exists.
type AnalysisStore interface {
	Get(ctx context.Context, videoID string) (*model.AnalysisRecord, error)
	Put(ctx context.Context, rec *model.AnalysisRecord) error
}

// ThumbnailFetcher downloads thumbnail bytes.
type ThumbnailFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Detector runs label/text/object detection over image bytes.
type Detector interface {
	Detect(ctx context.Context, image []byte) (model.DetectionResult, error)
}

// Narrator turns a detection result into narrative text.
type Narrator interface {
	Narrate(ctx context.Context, det model.DetectionResult) (string, error)
}

// AnalysisService computes thumbnail analyses exactly once per video.
type AnalysisService struct {
	store    AnalysisStore
	cache    *CacheService
	fetcher  ThumbnailFetcher
	detector Detector
	narrator Narrator
}

func NewAnalysisService(store AnalysisStore, cache *CacheService, fetcher ThumbnailFetcher, detector Detector, narrator Narrator) *AnalysisService {
	return &AnalysisService{
		store:    store,
		cache:    cache,
		fetcher:  fetcher,
		detector: detector,
		narrator: narrator,
	}
}

// GetOrCompute returns the stored analysis for a video, computing and
// persisting it on first request. Repeat calls never re-run the pipeline.
// A failed fetch or pipeline step returns its typed error and persists
// nothing, so a later call starts clean.
func (s *AnalysisService) GetOrCompute(ctx context.Context, videoID, thumbnailURL string) (*model.AnalysisRecord, error) {
	// Hot layer first, then the permanent store.
	if rec := s.hotGet(ctx, videoID); rec != nil {
		return rec, nil
	}

	rec, err := s.store.Get(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		s.hotSet(ctx, rec)
		return rec, nil
	}

	image, err := s.fetcher.Fetch(ctx, thumbnailURL)
	if err != nil {
		return nil, err
	}

	detection, err := s.detector.Detect(ctx, image)
	if err != nil {
		return nil, &EnrichmentError{Stage: "detect", Err: err}
	}

	narrative, err := s.narrator.Narrate(ctx, detection)
	if err != nil {
		return nil, &EnrichmentError{Stage: "narrate", Err: err}
	}

	rec = &model.AnalysisRecord{
		VideoID:   videoID,
		Detection: detection,
		Narrative: narrative,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return nil, err
	}

	// Put is first-write-wins; read back so a concurrent winner's record is
	// what every caller returns.
	stored, err := s.store.Get(ctx, videoID)
	if err == nil && stored != nil {
		rec = stored
	}

	s.hotSet(ctx, rec)
	return rec, nil
}

func (s *AnalysisService) hotGet(ctx context.Context, videoID string) *model.AnalysisRecord {
	if s.cache == nil {
		return nil
	}
	rec, err := s.cache.GetAnalysis(ctx, videoID)
	if err != nil {
		log.Printf("analysis: hot cache get error: %v", err)
		return nil
	}
	return rec
}

func (s *AnalysisService) hotSet(ctx context.Context, rec *model.AnalysisRecord) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetAnalysis(ctx, rec); err != nil {
		log.Printf("analysis: hot cache set error: %v", err)
	}
}
