package domain

import "github.com/shopspring/decimal"

type CategoryRank struct {
	Category      string `json:"category"`
	FrequencyRank int    `json:"frequency_rank"`
	SpendRank     int    `json:"spend_rank"`
}

type FrequentMerchant struct {
	Merchant string `json:"merchant"`
	Category string `json:"category"`
}

// ProfileSummary is recomputed per request; it has no persisted identity.
type ProfileSummary struct {
	WindowDays          int                        `json:"window_days"`
	TopCategories       []CategoryRank             `json:"top_categories"`
	FrequentMerchants   []FrequentMerchant         `json:"frequent_merchants"`
	AvgSpendPerCategory map[string]decimal.Decimal `json:"avg_spend_per_category"`
	SpendingVelocity    float64                    `json:"spending_velocity"`
	TypicalTimeBuckets  []string                   `json:"typical_time_buckets"`
}
