package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"offerPilot/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VendorRepository struct {
	DB *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{
		DB: db,
	}
}

// decodeOffer hydrates the jsonb offer column into the struct field.
func decodeOffer(v *domain.Vendor) {
	if len(v.OfferRaw) > 0 {
		_ = json.Unmarshal(v.OfferRaw, &v.Offer)
	}
}

func encodeOffer(v *domain.Vendor) error {
	raw, err := json.Marshal(v.Offer)
	if err != nil {
		return fmt.Errorf("marshal offer details: %w", err)
	}
	v.OfferRaw = raw
	return nil
}

func (r *VendorRepository) Upsert(ctx context.Context, vendor *domain.Vendor) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := encodeOffer(vendor); err != nil {
		return err
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "vendor_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"vendor_name",
				"category",
				"offer_details",
				"tags",
				"updated_at",
			}),
		}).
		Create(vendor).Error
	if err != nil {
		return fmt.Errorf("failed to upsert vendor: %w", err)
	}

	return nil
}

func (r *VendorRepository) UpsertBatch(ctx context.Context, vendors []domain.Vendor) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	count := 0
	for i := range vendors {
		if err := r.Upsert(ctx, &vendors[i]); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func (r *VendorRepository) FindAll(ctx context.Context) ([]domain.Vendor, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var vendors []domain.Vendor
	if err := r.DB.WithContext(ctx).Order("id").Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("failed to find vendors: %w", err)
	}

	for i := range vendors {
		decodeOffer(&vendors[i])
	}

	return vendors, nil
}

func (r *VendorRepository) FindByVendorID(ctx context.Context, vendorID string) (domain.Vendor, error) {
	if err := ctx.Err(); err != nil {
		return domain.Vendor{}, fmt.Errorf("context error: %w", err)
	}

	var vendor domain.Vendor
	err := r.DB.WithContext(ctx).Where("vendor_id = ?", vendorID).First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Vendor{}, domain.ErrVendorNotFound
		}
		return domain.Vendor{}, fmt.Errorf("failed to find vendor: %w", err)
	}

	decodeOffer(&vendor)
	return vendor, nil
}

func (r *VendorRepository) FindByVendorIDs(ctx context.Context, vendorIDs []string) ([]domain.Vendor, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var vendors []domain.Vendor
	err := r.DB.WithContext(ctx).Where("vendor_id IN ?", vendorIDs).Find(&vendors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find vendors: %w", err)
	}

	for i := range vendors {
		decodeOffer(&vendors[i])
	}

	return vendors, nil
}

func (r *VendorRepository) Delete(ctx context.Context, vendorID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("vendor_id = ?", vendorID).Delete(&domain.Vendor{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete vendor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrVendorNotFound
	}

	return nil
}

// Version changes whenever a vendor row is added, updated or removed; the
// embedding snapshot uses it to decide when to rebuild.
func (r *VendorRepository) Version(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	var row struct {
		Count   int64
		MaxID   int64
		Updated int64
	}
	err := r.DB.WithContext(ctx).
		Model(&domain.Vendor{}).
		Select("COUNT(*) AS count, COALESCE(MAX(id), 0) AS max_id, COALESCE(MAX(EXTRACT(EPOCH FROM updated_at))::bigint, 0) AS updated").
		Scan(&row).Error
	if err != nil {
		return "", fmt.Errorf("failed to read catalog version: %w", err)
	}

	return fmt.Sprintf("%d:%d:%d", row.Count, row.MaxID, row.Updated), nil
}
