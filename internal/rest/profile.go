package rest

import (
	"context"
	"errors"
	"net/http"

	"offerPilot/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ProfileHandler struct {
		validate       *validator.Validate
		profileService ProfileService
	}

	ProfileService interface {
		Summarize(ctx context.Context, userID uint, windowDays, topNCategories, topNMerchants int) (domain.ProfileSummary, error)
	}

	ProfileSummaryQuery struct {
		WindowDays    int `query:"window_days"`
		TopCategories int `query:"top_categories"`
		TopMerchants  int `query:"top_merchants"`
	}
)

func NewProfileHandler(profileService ProfileService) *ProfileHandler {
	return &ProfileHandler{
		validate:       validator.New(),
		profileService: profileService,
	}
}

// GET /api/v1/profile/summary?window_days=30
func (h *ProfileHandler) Summary(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q ProfileSummaryQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.WindowDays <= 0 {
		q.WindowDays = 30
	}
	if q.TopCategories <= 0 {
		q.TopCategories = 3
	}
	if q.TopMerchants <= 0 {
		q.TopMerchants = 5
	}

	summary, err := h.profileService.Summarize(c.Request().Context(), userID, q.WindowDays, q.TopCategories, q.TopMerchants)
	if err != nil {
		var schemaErr *domain.SchemaError
		switch {
		case errors.Is(err, domain.ErrEmptyWindow):
			return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: "insufficient history"})
		case errors.As(err, &schemaErr):
			return c.JSON(http.StatusBadRequest, ResponseError{Message: schemaErr.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}
