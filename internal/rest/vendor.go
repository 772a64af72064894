package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"offerPilot/domain"
	"offerPilot/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CatalogService interface {
	GetAllVendors(ctx context.Context) ([]domain.Vendor, error)
	GetVendorByID(ctx context.Context, vendorID string) (domain.Vendor, error)
	SaveVendor(ctx context.Context, vendor *domain.Vendor) error
	DeleteVendor(ctx context.Context, vendorID string) error
	ImportCatalog(ctx context.Context, reader io.Reader) (int, error)
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
}

type VendorHandler struct {
	catalogService CatalogService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewVendorHandler(catalogService CatalogService) *VendorHandler {
	return &VendorHandler{
		catalogService: catalogService,
		validator:      validator.New(),
		timeout:        30 * time.Second,
	}
}

type SaveVendorRequest struct {
	VendorID   string              `json:"vendor_id"`
	VendorName string              `json:"vendor_name" validate:"required"`
	Category   string              `json:"category" validate:"required"`
	Tags       []string            `json:"tags"`
	Offer      domain.OfferDetails `json:"offer_details"`
}

func (h *VendorHandler) GetAllVendors(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	vendors, err := h.catalogService.GetAllVendors(ctx)
	if err != nil {
		logger.Error("Failed to find all vendors", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(vendors))
}

func (h *VendorHandler) GetVendorByID(c echo.Context) error {
	vendorID := c.Param("id")
	if vendorID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "vendor id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	vendor, err := h.catalogService.GetVendorByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, domain.ErrVendorNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "vendor not found"})
		}
		logger.Error("Failed to find vendor", "vendor_id", vendorID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(vendor))
}

func (h *VendorHandler) SaveVendor(c echo.Context) error {
	var req SaveVendorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	vendor := domain.Vendor{
		VendorID:   req.VendorID,
		VendorName: req.VendorName,
		Category:   req.Category,
		Tags:       req.Tags,
		Offer:      req.Offer,
	}
	if err := h.catalogService.SaveVendor(ctx, &vendor); err != nil {
		logger.Error("Failed to save vendor", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(vendor))
}

func (h *VendorHandler) DeleteVendor(c echo.Context) error {
	vendorID := c.Param("id")
	if vendorID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "vendor id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.catalogService.DeleteVendor(ctx, vendorID); err != nil {
		if errors.Is(err, domain.ErrVendorNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "vendor not found"})
		}
		logger.Error("Failed to delete vendor", "vendor_id", vendorID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("vendor deleted"))
}

// POST /api/v1/vendors/import, multipart field "file" with a JSONL dump.
func (h *VendorHandler) ImportCatalog(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "file is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	count, err := h.catalogService.ImportCatalog(ctx, src)
	if err != nil {
		var schemaErr *domain.SchemaError
		if errors.As(err, &schemaErr) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: schemaErr.Error()})
		}
		logger.Error("Failed to import vendor catalog", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"imported": count,
	}))
}

func (h *VendorHandler) GetAllCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.catalogService.GetAllCategories(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(categories))
}
