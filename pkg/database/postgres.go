package database

import (
	"fmt"

	"offerPilot/domain"
	"offerPilot/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitPostgres opens the gorm connection and migrates the schema.
func InitPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Vendor{},
		&domain.Transaction{},
		&domain.RecoConfig{},
		&domain.CuratedOffer{},
		&domain.Redemption{},
		&domain.ItemPrice{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
