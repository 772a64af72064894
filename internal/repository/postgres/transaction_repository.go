package postgres

import (
	"context"
	"fmt"

	"offerPilot/domain"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	DB *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{
		DB: db,
	}
}

// FindByUser returns the user's transactions ordered by timestamp
// ascending, oldest first.
func (r *TransactionRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var txns []domain.Transaction
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("ts ASC").
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}

	return txns, nil
}

func (r *TransactionRepository) CreateBatch(ctx context.Context, txns []domain.Transaction) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}
	if len(txns) == 0 {
		return 0, nil
	}

	if err := r.DB.WithContext(ctx).CreateInBatches(txns, 500).Error; err != nil {
		return 0, fmt.Errorf("failed to insert transactions: %w", err)
	}

	return len(txns), nil
}

func (r *TransactionRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Transaction{}).Error; err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}

	return nil
}
