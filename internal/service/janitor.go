package service

import (
	"context"
	"log"
	"time"

	"github.com/outlierlens/outlierlens-go/internal/repository"
)

// Janitor is a periodic background job that deletes expired search-cache
// rows. Reads already treat stale rows as absent; this only keeps the table
// from growing without bound.
type Janitor struct {
	cache    *repository.CacheRepo
	interval time.Duration
	stopCh   chan struct{}
}

// NewJanitor creates a janitor that ticks every interval.
func NewJanitor(cache *repository.CacheRepo, interval time.Duration) *Janitor {
	return &Janitor{
		cache:    cache,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic purge loop.
// It runs one tick immediately, then every interval.
func (j *Janitor) Start(ctx context.Context) {
	log.Printf("janitor: starting (interval=%s)", j.interval)

	// Run once immediately on startup
	j.tick(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.tick(ctx)
		case <-ctx.Done():
			log.Println("janitor: stopping (context cancelled)")
			return
		case <-j.stopCh:
			log.Println("janitor: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the janitor to stop.
func (j *Janitor) Stop() {
	close(j.stopCh)
}

func (j *Janitor) tick(ctx context.Context) {
	start := time.Now()

	purged, err := j.cache.PurgeExpired(ctx)
	if err != nil {
		log.Printf("janitor: error: %v", err)
		return
	}

	if purged > 0 {
		log.Printf("janitor: tick complete, %d expired entries purged (%s)",
			purged, time.Since(start).Round(time.Millisecond))
	}
}
