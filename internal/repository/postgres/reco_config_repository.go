package postgres

import (
	"context"
	"errors"

	"offerPilot/business/recommend"
	"offerPilot/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecoConfigRepository struct {
	DB *gorm.DB
}

var _ recommend.ConfigRepository = (*RecoConfigRepository)(nil)

func NewRecoConfigRepository(db *gorm.DB) *RecoConfigRepository {
	return &RecoConfigRepository{DB: db}
}

func (r *RecoConfigRepository) GetConfig(ctx context.Context, surface string) (domain.RecoConfig, bool, error) {
	var cfg domain.RecoConfig

	err := r.DB.WithContext(ctx).
		Where("surface = ?", surface).
		First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RecoConfig{}, false, nil
	}
	if err != nil {
		return domain.RecoConfig{}, false, err
	}

	return cfg, true, nil
}

func (r *RecoConfigRepository) UpsertConfig(ctx context.Context, cfg domain.RecoConfig) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "surface"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"window_days",
				"anchor_count",
				"panel_size",
				"tau_days",
				"exclude_recent",
				"w_similarity",
				"w_value",
				"w_novelty",
				"w_anchor_freq",
				"w_anchor_spend",
			}),
		}).
		Create(&cfg).Error
}
