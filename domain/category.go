package domain

import (
	"time"
)

// CREATE TABLE public.categories (
//     category_id    BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     category       TEXT NOT NULL,
//     created_at     TIMESTAMPTZ DEFAULT NOW()
// );

// Category is the catalog taxonomy used by the explore view filters.
// Vendor and transaction categories are free text matched against Name.
type Category struct {
	CategoryID uint64    `gorm:"primaryKey;column:category_id;autoIncrement"`
	Name       string    `gorm:"column:category;type:text;uniqueIndex;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Category) TableName() string {
	return "categories"
}
