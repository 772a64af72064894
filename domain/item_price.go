package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemPrice is the reference price for an item category, used to value
// free_item and buy_one_get_one offers.
type ItemPrice struct {
	ItemCategory string          `gorm:"column:item_category;primaryKey;type:text" json:"item_category"`
	AvgPrice     decimal.Decimal `gorm:"column:avg_price;type:numeric" json:"avg_price"`
	UpdatedAt    time.Time       `gorm:"column:updated_at" json:"-"`
}

func (ItemPrice) TableName() string {
	return "item_prices"
}
