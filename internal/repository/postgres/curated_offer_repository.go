package postgres

import (
	"context"
	"fmt"

	"offerPilot/business/curated"
	"offerPilot/domain"

	"gorm.io/gorm"
)

type CuratedOfferRepository struct {
	DB *gorm.DB
}

var _ curated.CuratedOfferRepository = (*CuratedOfferRepository)(nil)

func NewCuratedOfferRepository(db *gorm.DB) *CuratedOfferRepository {
	return &CuratedOfferRepository{DB: db}
}

func (r *CuratedOfferRepository) GetBySurface(ctx context.Context, surface string, limit int) ([]domain.CuratedOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var offers []domain.CuratedOffer
	q := r.DB.WithContext(ctx).
		Where("surface = ?", surface).
		Order("score DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to get curated offers: %w", err)
	}

	return offers, nil
}

// Replace swaps the curated list for a surface in one transaction so readers
// never observe a half-written list.
func (r *CuratedOfferRepository) Replace(ctx context.Context, surface string, offers []domain.CuratedOffer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("surface = ?", surface).Delete(&domain.CuratedOffer{}).Error; err != nil {
			return fmt.Errorf("failed to clear curated offers: %w", err)
		}
		for i := range offers {
			offers[i].Surface = surface
		}
		if len(offers) == 0 {
			return nil
		}
		if err := tx.Create(&offers).Error; err != nil {
			return fmt.Errorf("failed to insert curated offers: %w", err)
		}
		return nil
	})
}
