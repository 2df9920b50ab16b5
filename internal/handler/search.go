package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/outlierlens/outlierlens-go/internal/middleware"
	"github.com/outlierlens/outlierlens-go/internal/model"
	"github.com/outlierlens/outlierlens-go/internal/provider"
	"github.com/outlierlens/outlierlens-go/internal/registry"
	"github.com/outlierlens/outlierlens-go/internal/service"
)

type SearchHandler struct {
	svc *service.SearchService
}

func NewSearchHandler(svc *service.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Search handles GET /api/search?q=&mode=&window=&group=
func (h *SearchHandler) Search(c fiber.Ctx) error {
	query, msg := middleware.ValidateQuery(fiber.Query[string](c, "q"))
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_QUERY", msg)
	}

	mode, err := model.ParseSearchMode(fiber.Query[string](c, "mode"))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_MODE", err.Error())
	}

	window, err := model.ParseTimeWindow(fiber.Query[string](c, "window"))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_WINDOW", err.Error())
	}

	group, msg := middleware.ValidateGroup(fiber.Query[string](c, "group"))
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_GROUP", msg)
	}

	resp, err := h.svc.Search(c.Context(), model.SearchRequest{
		Query:  query,
		Mode:   mode,
		Window: window,
		Group:  group,
	})
	if err != nil {
		var provErr *provider.Error
		var cacheErr *service.CacheError
		switch {
		case errors.As(err, &provErr):
			return middleware.ErrorResponse(c, fiber.StatusBadGateway, "PROVIDER_UNAVAILABLE", provErr.Message)
		case errors.Is(err, registry.ErrUnknownGroup):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_GROUP", err.Error())
		case errors.As(err, &cacheErr):
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "CACHE_UNAVAILABLE", "Search cache unavailable")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Search failed")
	}

	Metrics.SearchesTotal.WithLabelValues(string(mode)).Inc()
	if resp.Cached {
		Metrics.CacheHits.Inc()
	} else {
		Metrics.CacheMisses.Inc()
	}
	Metrics.ProviderFailures.Add(float64(len(resp.Failures)))

	return c.JSON(resp)
}
