package rest

import (
	"context"
	"net/http"
	"time"

	"offerPilot/domain"
	"offerPilot/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type (
	SavingsService interface {
		RecordRedemption(ctx context.Context, redemption domain.Redemption) (domain.Redemption, error)
		Summary(ctx context.Context, userID uint) (domain.SavingsSummary, error)
	}

	SavingsHandler struct {
		validate       *validator.Validate
		savingsService SavingsService
	}

	RedemptionRequest struct {
		VendorID    string          `json:"vendor_id" validate:"required"`
		VendorName  string          `json:"vendor_name" validate:"required"`
		OfferType   string          `json:"offer_type" validate:"required"`
		PaidAmount  decimal.Decimal `json:"paid_amount"`
		AmountSaved decimal.Decimal `json:"amount_saved"`
		RedeemedAt  *time.Time      `json:"redeemed_at"`
	}
)

func NewSavingsHandler(savingsService SavingsService) *SavingsHandler {
	return &SavingsHandler{
		validate:       validator.New(),
		savingsService: savingsService,
	}
}

// POST /api/v1/redemptions
func (h *SavingsHandler) RecordRedemption(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req RedemptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	redemption := domain.Redemption{
		UserID:      userID,
		VendorID:    req.VendorID,
		VendorName:  req.VendorName,
		OfferType:   domain.OfferType(req.OfferType),
		PaidAmount:  req.PaidAmount,
		AmountSaved: req.AmountSaved,
	}
	if req.RedeemedAt != nil {
		redemption.RedeemedAt = *req.RedeemedAt
	}

	created, err := h.savingsService.RecordRedemption(c.Request().Context(), redemption)
	if err != nil {
		logger.Error("Failed to record redemption", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

// GET /api/v1/savings/summary
func (h *SavingsHandler) Summary(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	summary, err := h.savingsService.Summary(c.Request().Context(), userID)
	if err != nil {
		logger.Error("Failed to build savings summary", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}
