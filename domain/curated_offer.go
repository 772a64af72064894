package domain

// CuratedOffer is a hand-picked fallback row served when a user has no
// usable transaction history for a surface.
type CuratedOffer struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Surface  string  `gorm:"column:surface;not null;index" json:"surface"`
	VendorID string  `gorm:"column:vendor_id;type:text;not null" json:"vendor_id"`
	Score    float64 `gorm:"column:score;not null" json:"score"`
}

func (CuratedOffer) TableName() string {
	return "curated_offers"
}
