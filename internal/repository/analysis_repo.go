package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/outlierlens/outlierlens-go/internal/model"
)

// AnalysisRepo is the permanent per-video thumbnail-analysis store.
// Records never expire and are never partially written.
type AnalysisRepo struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepo(pool *pgxpool.Pool) *AnalysisRepo {
	return &AnalysisRepo{pool: pool}
}

// Get returns the stored record for a video, or nil, nil when none exists.
func (r *AnalysisRepo) Get(ctx context.Context, videoID string) (*model.AnalysisRecord, error) {
	var rec model.AnalysisRecord
	var detection []byte
	err := r.pool.QueryRow(ctx, `
		SELECT video_id, detection, narrative, created_at
		FROM thumbnail_analyses
		WHERE video_id = $1`,
		videoID).Scan(&rec.VideoID, &detection, &rec.Narrative, &rec.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("analysis get: %w", err)
	}

	if err := json.Unmarshal(detection, &rec.Detection); err != nil {
		return nil, fmt.Errorf("analysis get: decode detection: %w", err)
	}
	return &rec, nil
}

// Put persists a record unless one already exists for the video. When two
// concurrent computations race, the first persisted record wins and both
// callers read it back.
func (r *AnalysisRepo) Put(ctx context.Context, rec *model.AnalysisRecord) error {
	detection, err := json.Marshal(rec.Detection)
	if err != nil {
		return fmt.Errorf("analysis put: encode detection: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO thumbnail_analyses (video_id, detection, narrative, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (video_id) DO NOTHING`,
		rec.VideoID, detection, rec.Narrative)
	if err != nil {
		return fmt.Errorf("analysis put: %w", err)
	}
	return nil
}

// Count returns the number of stored analyses.
func (r *AnalysisRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM thumbnail_analyses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("analysis count: %w", err)
	}
	return n, nil
}
