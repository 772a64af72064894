package postgres

import (
	"context"
	"fmt"

	"offerPilot/business/catalog"
	"offerPilot/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository struct {
	DB *gorm.DB
}

var _ catalog.CategoryRepository = (*CategoryRepository)(nil)

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var categories []domain.Category
	err := r.DB.WithContext(ctx).Order("category ASC").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	return categories, nil
}

// EnsureNames inserts any taxonomy names not yet present. Existing rows are
// left untouched.
func (r *CategoryRepository) EnsureNames(ctx context.Context, names []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(names) == 0 {
		return nil
	}

	rows := make([]domain.Category, 0, len(names))
	for _, name := range names {
		rows = append(rows, domain.Category{Name: name})
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category"}},
			DoNothing: true,
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to ensure categories: %w", err)
	}

	return nil
}
