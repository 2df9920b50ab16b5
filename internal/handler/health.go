package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// HealthHandler serves liveness and readiness probes. The database is a hard
// dependency; the analysis hot cache is optional and only reported.
type HealthHandler struct {
	pool    *pgxpool.Pool
	hot     *redis.Client
	version string
	startAt time.Time
}

// NewHealthHandler creates a health handler. hot may be nil when the hot
// cache is disabled.
func NewHealthHandler(pool *pgxpool.Pool, hot *redis.Client, version string) *HealthHandler {
	return &HealthHandler{
		pool:    pool,
		hot:     hot,
		version: version,
		startAt: time.Now(),
	}
}

// Live handles GET /health/live — liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready — readiness probe.
// Only the database gates readiness: search and analysis both fail without
// it. A down or disabled hot cache is reported but keeps the service ready,
// since reads fall through to Postgres.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	dbCheck := pingCheck(ctx, h.pool.Ping)

	status := "ready"
	code := fiber.StatusOK
	if dbCheck["status"] != "up" {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": fiber.Map{
			"database":  dbCheck,
			"hot_cache": hotCacheCheck(ctx, h.hot),
		},
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"version":        h.version,
	})
}

// pingCheck runs one dependency ping and reports its status and latency.
func pingCheck(ctx context.Context, ping func(context.Context) error) fiber.Map {
	start := time.Now()
	err := ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}

// hotCacheCheck reports the Redis hot layer. A nil client means the layer
// was never enabled (no URL, or the startup ping failed), matching the no-op
// behavior of the cache service.
func hotCacheCheck(ctx context.Context, rdb *redis.Client) fiber.Map {
	if rdb == nil {
		return fiber.Map{"status": "disabled"}
	}
	return pingCheck(ctx, func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
}
