package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchCacheTTL is how long a cached search result stays valid.
const SearchCacheTTL = time.Hour

// CacheRepo is the TTL-bounded search-result cache backed by Postgres.
// Entries are written wholesale by single-statement upserts, so a concurrent
// reader never observes a partially written row.
type CacheRepo struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

func NewCacheRepo(pool *pgxpool.Pool) *CacheRepo {
	return &CacheRepo{pool: pool, ttl: SearchCacheTTL}
}

// Get returns the payload for a fingerprint, or nil when no entry exists or
// the entry has aged past the TTL. Callers cannot distinguish the two cases.
// Any storage error is returned as-is; it is never treated as a miss.
func (r *CacheRepo) Get(ctx context.Context, fingerprint string) ([]byte, error) {
	var payload []byte
	var createdAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT payload, created_at FROM search_cache WHERE fingerprint = $1`,
		fingerprint).Scan(&payload, &createdAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("search cache get: %w", err)
	}

	if !fresh(createdAt, time.Now(), r.ttl) {
		return nil, nil
	}
	return payload, nil
}

// Put creates or replaces the entry for a fingerprint. Last writer wins.
func (r *CacheRepo) Put(ctx context.Context, fingerprint string, payload []byte) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO search_cache (fingerprint, payload, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (fingerprint)
		DO UPDATE SET payload = EXCLUDED.payload, created_at = NOW()`,
		fingerprint, payload)
	if err != nil {
		return fmt.Errorf("search cache put: %w", err)
	}
	return nil
}

// PurgeExpired deletes entries older than the TTL and returns how many were
// removed. Expiry correctness never depends on this; Get already treats
// stale rows as absent.
func (r *CacheRepo) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM search_cache WHERE created_at < NOW() - make_interval(secs => $1)`,
		r.ttl.Seconds())
	if err != nil {
		return 0, fmt.Errorf("search cache purge: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Count returns the number of stored entries, fresh or not.
func (r *CacheRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM search_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("search cache count: %w", err)
	}
	return n, nil
}

// fresh reports whether an entry created at createdAt is still valid at now.
// Kept as a pure helper so the TTL boundary is testable without a database.
func fresh(createdAt, now time.Time, ttl time.Duration) bool {
	return now.Sub(createdAt) < ttl
}
