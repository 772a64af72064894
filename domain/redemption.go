package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CREATE TABLE public.redemptions (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id      BIGINT NOT NULL,
//     vendor_id    TEXT NOT NULL,
//     vendor_name  TEXT NOT NULL,
//     offer_type   TEXT NOT NULL,
//     paid_amount  NUMERIC NOT NULL,
//     amount_saved NUMERIC NOT NULL,
//     redeemed_at  TIMESTAMPTZ NOT NULL
// );

// Redemption records one use of a recommended offer.
type Redemption struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"column:user_id;index;not null" json:"user_id"`
	VendorID    string          `gorm:"column:vendor_id;type:text;not null" json:"vendor_id"`
	VendorName  string          `gorm:"column:vendor_name;type:text;not null" json:"vendor_name"`
	OfferType   OfferType       `gorm:"column:offer_type;type:text;not null" json:"offer_type"`
	PaidAmount  decimal.Decimal `gorm:"column:paid_amount;type:numeric" json:"paid_amount"`
	AmountSaved decimal.Decimal `gorm:"column:amount_saved;type:numeric" json:"amount_saved"`
	RedeemedAt  time.Time       `gorm:"column:redeemed_at" json:"redeemed_at"`
}

func (Redemption) TableName() string {
	return "redemptions"
}

type VendorSavings struct {
	VendorName string          `json:"vendor_name"`
	Saved      decimal.Decimal `json:"saved"`
}

type MonthlySavings struct {
	Month string          `json:"month"` // "2026-01"
	Saved decimal.Decimal `json:"saved"`
}

type SavingsSummary struct {
	TotalSaved      decimal.Decimal  `json:"total_saved"`
	TotalPaid       decimal.Decimal  `json:"total_paid"`
	RedemptionCount int              `json:"redemption_count"`
	ByVendor        []VendorSavings  `json:"by_vendor"`
	ByMonth         []MonthlySavings `json:"by_month"`
}
