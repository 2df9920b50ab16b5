package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/outlierlens/outlierlens-go/internal/model"
)

// AnalysisHotTTL bounds the Redis hot layer in front of the permanent
// analysis store. Records never expire in Postgres; this only limits how
// long a hot copy is served without touching the database.
const AnalysisHotTTL = 15 * time.Minute

// CacheService provides a Redis cache-aside layer for analysis lookups.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops and reads fall through to Postgres).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, hot cache disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, hot cache disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, hot cache disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, hot cache enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetAnalysis retrieves a hot analysis record. Returns nil if not cached or
// the cache is disabled.
func (c *CacheService) GetAnalysis(ctx context.Context, videoID string) (*model.AnalysisRecord, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, analysisKey(videoID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec model.AnalysisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// SetAnalysis stores an analysis record in the hot layer.
func (c *CacheService) SetAnalysis(ctx context.Context, rec *model.AnalysisRecord) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, analysisKey(rec.VideoID), b, AnalysisHotTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func analysisKey(videoID string) string {
	return fmt.Sprintf("analysis:%s", videoID)
}
