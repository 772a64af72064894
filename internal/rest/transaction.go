package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"offerPilot/domain"
	"offerPilot/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	TransactionStore interface {
		CreateBatch(ctx context.Context, txns []domain.Transaction) (int, error)
		DeleteByUser(ctx context.Context, userID uint) error
	}

	FeedParser interface {
		ParseTransactions(reader io.Reader, userID uint) ([]domain.Transaction, error)
	}

	TransactionHandler struct {
		store   TransactionStore
		parser  FeedParser
		timeout time.Duration
	}
)

func NewTransactionHandler(store TransactionStore, parser FeedParser) *TransactionHandler {
	return &TransactionHandler{
		store:   store,
		parser:  parser,
		timeout: 60 * time.Second,
	}
}

// POST /api/v1/transactions/import?user_id=123, multipart field "file"
// with a transaction feed CSV.
func (h *TransactionHandler) ImportFeed(c echo.Context) error {
	userIDStr := c.QueryParam("user_id")
	if userIDStr == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "user_id is required"})
	}
	userID64, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user_id"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "file is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	defer src.Close()

	txns, err := h.parser.ParseTransactions(src, uint(userID64))
	if err != nil {
		var schemaErr *domain.SchemaError
		if errors.As(err, &schemaErr) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: schemaErr.Error()})
		}
		logger.Error("Failed to parse transaction feed", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	count, err := h.store.CreateBatch(ctx, txns)
	if err != nil {
		logger.Error("Failed to store transaction feed", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"imported": count,
	}))
}

// DELETE /api/v1/transactions?user_id=123
func (h *TransactionHandler) DeleteByUser(c echo.Context) error {
	userIDStr := c.QueryParam("user_id")
	if userIDStr == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "user_id is required"})
	}
	userID64, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user_id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.store.DeleteByUser(ctx, uint(userID64)); err != nil {
		logger.Error("Failed to delete transactions", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("transactions deleted"))
}
