package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/outlierlens/outlierlens-go/internal/middleware"
	"github.com/outlierlens/outlierlens-go/internal/service"
	"github.com/outlierlens/outlierlens-go/internal/thumb"
)

type AnalysisHandler struct {
	svc *service.AnalysisService
}

func NewAnalysisHandler(svc *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

// Analyze handles POST /api/videos/:videoId/analysis?thumbnailUrl=
// Returns the stored record when one exists; otherwise runs the enrichment
// pipeline once and persists the result.
func (h *AnalysisHandler) Analyze(c fiber.Ctx) error {
	videoID, msg := middleware.ValidateVideoID(c.Params("videoId"))
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VIDEO_ID", msg)
	}

	thumbnailURL, msg := middleware.ValidateThumbnailURL(fiber.Query[string](c, "thumbnailUrl"))
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_THUMBNAIL_URL", msg)
	}
	if thumbnailURL == "" {
		thumbnailURL = thumb.URLForVideo(videoID)
	}

	rec, err := h.svc.GetOrCompute(c.Context(), videoID, thumbnailURL)
	if err != nil {
		var fetchErr *thumb.FetchError
		var enrichErr *service.EnrichmentError
		switch {
		case errors.As(err, &fetchErr):
			return middleware.ErrorResponse(c, fiber.StatusBadGateway, "FETCH_FAILED", "Failed to download thumbnail")
		case errors.As(err, &enrichErr):
			return middleware.ErrorResponse(c, fiber.StatusBadGateway, "ENRICHMENT_FAILED", "Thumbnail analysis failed")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to analyze thumbnail")
	}

	Metrics.AnalysesTotal.Inc()
	return c.JSON(rec)
}
