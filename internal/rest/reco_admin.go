package rest

import (
	"context"
	"net/http"

	"offerPilot/business/recommend"
	"offerPilot/domain"

	"github.com/labstack/echo/v4"
)

type CuratedAdminService interface {
	SetOffers(ctx context.Context, surface string, offers []domain.CuratedOffer) error
}

type RecoAdminHandler struct {
	cfgRepo recommend.ConfigRepository
	curated CuratedAdminService
}

func NewRecoAdminHandler(cfgRepo recommend.ConfigRepository, curated CuratedAdminService) *RecoAdminHandler {
	return &RecoAdminHandler{
		cfgRepo: cfgRepo,
		curated: curated,
	}
}

// GET /api/v1/admin/reco/config?surface=home
func (h *RecoAdminHandler) GetConfig(c echo.Context) error {
	ctx := c.Request().Context()
	surface := c.QueryParam("surface")
	if surface == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "surface is required",
		})
	}

	cfg, ok, err := h.cfgRepo.GetConfig(ctx, surface)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "config not found",
		})
	}

	return c.JSON(http.StatusOK, cfg)
}

// PUT /api/v1/admin/reco/config
// body: RecoConfig JSON
func (h *RecoAdminHandler) UpsertConfig(c echo.Context) error {
	ctx := c.Request().Context()

	var body domain.RecoConfig
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}
	if body.Surface == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "surface is required",
		})
	}

	if err := h.cfgRepo.UpsertConfig(ctx, body); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
	})
}

// PUT /api/v1/admin/reco/curated?surface=home
// body: [{ "vendor_id": "...", "score": 0.9 }, ...]
func (h *RecoAdminHandler) SetCuratedOffers(c echo.Context) error {
	ctx := c.Request().Context()
	surface := c.QueryParam("surface")
	if surface == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "surface is required",
		})
	}

	var body []domain.CuratedOffer
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}

	if err := h.curated.SetOffers(ctx, surface, body); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
	})
}
