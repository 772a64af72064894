package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OfferType string

const (
	OfferPercentageDiscount OfferType = "percentage_discount"
	OfferFixedDiscount      OfferType = "fixed_discount"
	OfferFixedVoucher       OfferType = "fixed_voucher"
	OfferPointsForCash      OfferType = "points_for_cash"
	OfferFreeItem           OfferType = "free_item"
	OfferBuyOneGetOne       OfferType = "buy_one_get_one"
)

type OfferDetails struct {
	OfferType    OfferType        `json:"offer_type"`
	OfferValue   decimal.Decimal  `json:"offer_value"`
	Description  string           `json:"offer_description"`
	PointsCost   *decimal.Decimal `json:"points_cost,omitempty"`
	ItemCategory string           `json:"item_category,omitempty"`
}

// CREATE TABLE public.vendors (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     vendor_id       TEXT UNIQUE NOT NULL,
//     vendor_name     TEXT NOT NULL,
//     category        TEXT NOT NULL,
//     offer_details   JSONB NOT NULL,
//     tags            JSONB,
//     created_at      TIMESTAMPTZ DEFAULT NOW(),
//     updated_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Vendor struct {
	ID         uint64                      `gorm:"primaryKey;autoIncrement" json:"-"`
	VendorID   string                      `gorm:"column:vendor_id;uniqueIndex;type:text" json:"vendor_id"`
	VendorName string                      `gorm:"column:vendor_name;type:text" json:"vendor_name"`
	Category   string                      `gorm:"column:category;type:text" json:"category"`
	OfferRaw   []byte                      `gorm:"column:offer_details;type:jsonb" json:"-"`
	Offer      OfferDetails                `gorm:"-" json:"offer_details"`
	Tags       datatypes.JSONSlice[string] `gorm:"column:tags;type:jsonb" json:"tags"`
	CreatedAt  time.Time                   `gorm:"column:created_at" json:"-"`
	UpdatedAt  time.Time                   `gorm:"column:updated_at" json:"-"`
}

func (Vendor) TableName() string {
	return "vendors"
}

// EmbedBlob is the text handed to the semantic encoder for this vendor.
func (v Vendor) EmbedBlob() string {
	parts := []string{
		v.VendorName,
		v.Category,
		v.Offer.Description,
		strings.Join(v.Tags, " "),
	}
	return strings.Join(parts, " | ")
}
