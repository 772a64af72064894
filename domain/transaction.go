package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CREATE TABLE public.transactions (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id         BIGINT NOT NULL,
//     ts              TIMESTAMPTZ NOT NULL,
//     merchant_name   TEXT NOT NULL,
//     category        TEXT NOT NULL,
//     amount          NUMERIC NOT NULL,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

// Transaction is one purchase record from the feed. Amount keeps the feed
// sign convention: negative = money spent, positive = inflow.
type Transaction struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint            `gorm:"column:user_id;index" json:"user_id"`
	Timestamp    time.Time       `gorm:"column:ts;index" json:"timestamp"`
	MerchantName string          `gorm:"column:merchant_name;type:text" json:"merchant_name"`
	Category     string          `gorm:"column:category;type:text" json:"category"`
	Amount       decimal.Decimal `gorm:"column:amount;type:numeric" json:"amount"`
	CreatedAt    time.Time       `gorm:"column:created_at" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// SpendAmount returns the amount in the engine convention, positive = spent.
func (t Transaction) SpendAmount() decimal.Decimal {
	return t.Amount.Neg()
}
