package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchLogRepo records every search that reached the provider (cache hits
// are not logged). Audit only; nothing reads it on the request path.
type SearchLogRepo struct {
	pool *pgxpool.Pool
}

func NewSearchLogRepo(pool *pgxpool.Pool) *SearchLogRepo {
	return &SearchLogRepo{pool: pool}
}

// Record inserts one search entry.
func (r *SearchLogRepo) Record(ctx context.Context, query, mode string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO searches (id, query, mode, created_at)
		VALUES ($1, $2, $3, NOW())`,
		uuid.NewString(), query, mode)
	if err != nil {
		return fmt.Errorf("search log record: %w", err)
	}
	return nil
}

// Count returns the number of recorded searches.
func (r *SearchLogRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM searches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("search log count: %w", err)
	}
	return n, nil
}
