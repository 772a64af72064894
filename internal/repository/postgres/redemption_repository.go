package postgres

import (
	"context"
	"fmt"

	"offerPilot/business/savings"
	"offerPilot/domain"

	"gorm.io/gorm"
)

type RedemptionRepository struct {
	DB *gorm.DB
}

var _ savings.RedemptionRepository = (*RedemptionRepository)(nil)

func NewRedemptionRepository(db *gorm.DB) *RedemptionRepository {
	return &RedemptionRepository{DB: db}
}

func (r *RedemptionRepository) Create(ctx context.Context, redemption *domain.Redemption) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(redemption).Error; err != nil {
		return fmt.Errorf("failed to create redemption: %w", err)
	}

	return nil
}

func (r *RedemptionRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Redemption, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var redemptions []domain.Redemption
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("redeemed_at ASC").
		Find(&redemptions).Error; err != nil {
		return nil, fmt.Errorf("failed to get redemptions: %w", err)
	}

	return redemptions, nil
}
