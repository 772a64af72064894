package catalog

import (
	"context"
	"fmt"
	"io"

	"offerPilot/domain"
	"offerPilot/pkg/logger"
)

// VendorRepository is the persistence contract for the vendor catalog.
type VendorRepository interface {
	Upsert(ctx context.Context, vendor *domain.Vendor) error
	UpsertBatch(ctx context.Context, vendors []domain.Vendor) (int, error)
	FindAll(ctx context.Context) ([]domain.Vendor, error)
	FindByVendorID(ctx context.Context, vendorID string) (domain.Vendor, error)
	Delete(ctx context.Context, vendorID string) error
}

// CategoryRepository keeps the taxonomy table in sync with catalog imports.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
	EnsureNames(ctx context.Context, names []string) error
}

// Parser turns a newline-delimited JSON dump into vendors.
type Parser interface {
	ParseVendors(reader io.Reader) ([]domain.Vendor, error)
}

type Service struct {
	vendorRepo   VendorRepository
	categoryRepo CategoryRepository
	parser       Parser
}

func NewService(vendorRepo VendorRepository, categoryRepo CategoryRepository, parser Parser) *Service {
	return &Service{
		vendorRepo:   vendorRepo,
		categoryRepo: categoryRepo,
		parser:       parser,
	}
}

func (s *Service) GetAllVendors(ctx context.Context) ([]domain.Vendor, error) {
	return s.vendorRepo.FindAll(ctx)
}

func (s *Service) GetVendorByID(ctx context.Context, vendorID string) (domain.Vendor, error) {
	return s.vendorRepo.FindByVendorID(ctx, vendorID)
}

func (s *Service) SaveVendor(ctx context.Context, vendor *domain.Vendor) error {
	if vendor.VendorName == "" {
		return domain.NewSchemaError("vendor_name")
	}

	if err := s.vendorRepo.Upsert(ctx, vendor); err != nil {
		return err
	}

	return s.syncCategories(ctx, []domain.Vendor{*vendor})
}

func (s *Service) DeleteVendor(ctx context.Context, vendorID string) error {
	return s.vendorRepo.Delete(ctx, vendorID)
}

// ImportCatalog parses a JSONL dump and upserts every vendor in it.
// Returns the number of vendors imported.
func (s *Service) ImportCatalog(ctx context.Context, reader io.Reader) (int, error) {
	vendors, err := s.parser.ParseVendors(reader)
	if err != nil {
		return 0, fmt.Errorf("failed to parse vendor catalog: %w", err)
	}
	if len(vendors) == 0 {
		return 0, nil
	}

	count, err := s.vendorRepo.UpsertBatch(ctx, vendors)
	if err != nil {
		return 0, fmt.Errorf("failed to store vendor catalog: %w", err)
	}

	if err := s.syncCategories(ctx, vendors); err != nil {
		logger.Warn("category sync after import failed", "error", err)
	}

	logger.Info("vendor catalog imported", "vendors", count)

	return count, nil
}

func (s *Service) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

func (s *Service) syncCategories(ctx context.Context, vendors []domain.Vendor) error {
	seen := map[string]struct{}{}
	var names []string
	for _, v := range vendors {
		if v.Category == "" {
			continue
		}
		if _, ok := seen[v.Category]; ok {
			continue
		}
		seen[v.Category] = struct{}{}
		names = append(names, v.Category)
	}
	if len(names) == 0 {
		return nil
	}

	return s.categoryRepo.EnsureNames(ctx, names)
}
