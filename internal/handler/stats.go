package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/outlierlens/outlierlens-go/internal/middleware"
	"github.com/outlierlens/outlierlens-go/internal/repository"
)

type StatsHandler struct {
	cache     *repository.CacheRepo
	analyses  *repository.AnalysisRepo
	searchLog *repository.SearchLogRepo
}

func NewStatsHandler(cache *repository.CacheRepo, analyses *repository.AnalysisRepo, searchLog *repository.SearchLogRepo) *StatsHandler {
	return &StatsHandler{cache: cache, analyses: analyses, searchLog: searchLog}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	searches, err := h.searchLog.Count(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	cacheEntries, err := h.cache.Count(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	analyses, err := h.analyses.Count(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	return c.JSON(fiber.Map{
		"searches":     searches,
		"cacheEntries": cacheEntries,
		"analyses":     analyses,
	})
}
