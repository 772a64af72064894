package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"offerPilot/domain"
	"offerPilot/pkg/logger"
	"offerPilot/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate    *validator.Validate
		recoService RecommendationService
		curated     CuratedService
	}

	RecommendationService interface {
		Panels(ctx context.Context, userID uint, surface string) ([]domain.OfferPanel, error)
		DebugPanels(ctx context.Context, userID uint, surface string) ([]domain.DebugPanel, error)
	}

	CuratedService interface {
		FallbackPanel(ctx context.Context, surface string, limit int) (domain.OfferPanel, error)
	}

	PanelsQuery struct {
		Surface string `query:"surface" validate:"required"`
		N       int    `query:"n"`
	}
)

func NewRecommendationHandler(recoService RecommendationService, curated CuratedService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:    validator.New(),
		recoService: recoService,
		curated:     curated,
	}
}

// GET /api/v1/recommendations/panels?surface=home
func (h *RecommendationHandler) Panels(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q PanelsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.N <= 0 {
		q.N = 3
	}

	start := time.Now()
	metrics.PanelsRequests.Inc()

	panels, err := h.recoService.Panels(c.Request().Context(), userID, q.Surface)
	metrics.PanelsLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, domain.ErrEmptyWindow) {
			return h.fallback(c, q.Surface, q.N)
		}
		return h.panelError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(panels))
}

// fallback serves curated offers when the user has no usable history.
func (h *RecommendationHandler) fallback(c echo.Context, surface string, limit int) error {
	panel, err := h.curated.FallbackPanel(c.Request().Context(), surface, limit)
	if err != nil {
		logger.Warn("curated fallback failed", "surface", surface, "error", err)
		return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: "insufficient history"})
	}
	if len(panel.Offers) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: "insufficient history"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK([]domain.OfferPanel{panel}))
}

func (h *RecommendationHandler) panelError(c echo.Context, err error) error {
	var schemaErr *domain.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: schemaErr.Error()})
	case errors.Is(err, domain.ErrEncoderUnavailable):
		return c.JSON(http.StatusBadGateway, ResponseError{Message: "encoder unavailable"})
	default:
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
}

// GET /api/v1/recommendations/debug?surface=home
func (h *RecommendationHandler) Debug(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q PanelsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	panels, err := h.recoService.DebugPanels(c.Request().Context(), userID, q.Surface)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyWindow) {
			return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: "insufficient history"})
		}
		return h.panelError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(panels))
}
