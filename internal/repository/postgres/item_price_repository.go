package postgres

import (
	"context"
	"errors"
	"fmt"

	"offerPilot/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemPriceRepository struct {
	DB *gorm.DB
}

func NewItemPriceRepository(db *gorm.DB) *ItemPriceRepository {
	return &ItemPriceRepository{DB: db}
}

// GetAveragePrice reports (price, true) when a reference price is known for
// the item category and (zero, false) when it is not.
func (r *ItemPriceRepository) GetAveragePrice(ctx context.Context, itemCategory string) (decimal.Decimal, bool, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, false, fmt.Errorf("context error: %w", err)
	}

	var price domain.ItemPrice
	err := r.DB.WithContext(ctx).
		Where("item_category = ?", itemCategory).
		First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to get item price: %w", err)
	}

	return price.AvgPrice, true, nil
}

func (r *ItemPriceRepository) Upsert(ctx context.Context, price domain.ItemPrice) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_category"}},
			DoUpdates: clause.AssignmentColumns([]string{"avg_price"}),
		}).
		Create(&price).Error
}
