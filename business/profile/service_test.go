package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"offerPilot/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// base is a Monday; hour 9 lands in the weekday-morning bucket.
var base = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func txn(ts time.Time, merchant, category string, spent float64) domain.Transaction {
	return domain.Transaction{
		Timestamp:    ts,
		MerchantName: merchant,
		Category:     category,
		Amount:       decimal.NewFromFloat(-spent),
	}
}

func TestBuildSummary_EmptyWindow(t *testing.T) {
	_, err := BuildSummary(nil, 30, 3, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyWindow)
}

func TestBuildSummary_AllTransactionsOutsideWindow(t *testing.T) {
	txns := []domain.Transaction{
		txn(base, "Cafe Uno", "coffee", 4.50),
		txn(base.AddDate(0, 0, -90), "Old Shop", "books", 20),
	}

	// the old transaction alone would survive a window anchored on itself,
	// so the window anchors on the newest timestamp
	summary, err := BuildSummary(txns, 30, 3, 5)
	require.NoError(t, err)
	assert.Len(t, summary.TopCategories, 1)
	assert.Equal(t, "coffee", summary.TopCategories[0].Category)
}

func TestBuildSummary_SchemaErrors(t *testing.T) {
	cases := []struct {
		name  string
		txn   domain.Transaction
		field string
	}{
		{
			name:  "zero timestamp",
			txn:   domain.Transaction{MerchantName: "X", Category: "food"},
			field: "timestamp",
		},
		{
			name:  "missing merchant",
			txn:   domain.Transaction{Timestamp: base, Category: "food"},
			field: "merchant_name",
		},
		{
			name:  "missing category",
			txn:   domain.Transaction{Timestamp: base, MerchantName: "X"},
			field: "category",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildSummary([]domain.Transaction{tc.txn}, 30, 3, 5)
			require.Error(t, err)

			var schemaErr *domain.SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, tc.field, schemaErr.Field)
		})
	}
}

func TestBuildSummary_RanksAndAverages(t *testing.T) {
	txns := []domain.Transaction{
		// groceries: 3 txns, 90 total
		txn(base, "FreshMart", "groceries", 30),
		txn(base.AddDate(0, 0, -1), "FreshMart", "groceries", 30),
		txn(base.AddDate(0, 0, -2), "GreenGrocer", "groceries", 30),
		// coffee: 2 txns, 9 total
		txn(base.AddDate(0, 0, -3), "Cafe Uno", "coffee", 4.50),
		txn(base.AddDate(0, 0, -4), "Cafe Uno", "coffee", 4.50),
		// electronics: 1 txn, 500 total
		txn(base.AddDate(0, 0, -5), "TechWorld", "electronics", 500),
	}

	summary, err := BuildSummary(txns, 30, 3, 5)
	require.NoError(t, err)

	require.Len(t, summary.TopCategories, 3)
	assert.Equal(t, domain.CategoryRank{Category: "groceries", FrequencyRank: 1, SpendRank: 2}, summary.TopCategories[0])
	assert.Equal(t, domain.CategoryRank{Category: "coffee", FrequencyRank: 2, SpendRank: 3}, summary.TopCategories[1])
	assert.Equal(t, domain.CategoryRank{Category: "electronics", FrequencyRank: 3, SpendRank: 1}, summary.TopCategories[2])

	assert.True(t, summary.AvgSpendPerCategory["groceries"].Equal(decimal.NewFromInt(30)))
	assert.True(t, summary.AvgSpendPerCategory["coffee"].Equal(decimal.NewFromFloat(4.50)))
	assert.True(t, summary.AvgSpendPerCategory["electronics"].Equal(decimal.NewFromInt(500)))

	// 6 txns / 30 days
	assert.Equal(t, 0.2, summary.SpendingVelocity)
}

func TestBuildSummary_DenseRanksShareValues(t *testing.T) {
	txns := []domain.Transaction{
		txn(base, "A", "alpha", 10),
		txn(base, "A", "alpha", 10),
		txn(base, "B", "beta", 10),
		txn(base, "B", "beta", 10),
		txn(base, "C", "gamma", 5),
	}

	summary, err := BuildSummary(txns, 30, 3, 5)
	require.NoError(t, err)

	require.Len(t, summary.TopCategories, 3)
	// alpha and beta tie on frequency 2 and spend 20: same ranks, first-seen order
	assert.Equal(t, "alpha", summary.TopCategories[0].Category)
	assert.Equal(t, "beta", summary.TopCategories[1].Category)
	assert.Equal(t, summary.TopCategories[0].FrequencyRank, summary.TopCategories[1].FrequencyRank)
	assert.Equal(t, summary.TopCategories[0].SpendRank, summary.TopCategories[1].SpendRank)
	// gamma is dense rank 2, not 3
	assert.Equal(t, 2, summary.TopCategories[2].FrequencyRank)
	assert.Equal(t, 2, summary.TopCategories[2].SpendRank)
}

func TestBuildSummary_FrequentMerchants(t *testing.T) {
	txns := []domain.Transaction{
		txn(base, "Cafe Uno", "coffee", 4),
		txn(base, "Cafe Uno", "coffee", 4),
		txn(base, "Cafe Uno", "coffee", 4),
		txn(base, "FreshMart", "groceries", 30),
		txn(base, "FreshMart", "groceries", 30),
		txn(base, "TechWorld", "electronics", 500),
	}

	summary, err := BuildSummary(txns, 30, 3, 2)
	require.NoError(t, err)

	require.Len(t, summary.FrequentMerchants, 2)
	assert.Equal(t, domain.FrequentMerchant{Merchant: "Cafe Uno", Category: "coffee"}, summary.FrequentMerchants[0])
	assert.Equal(t, domain.FrequentMerchant{Merchant: "FreshMart", Category: "groceries"}, summary.FrequentMerchants[1])
}

func TestBuildSummary_TimeBuckets(t *testing.T) {
	monday9 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)     // weekday morning
	saturday19 := time.Date(2026, 3, 7, 19, 0, 0, 0, time.UTC) // weekend evening
	tuesday13 := time.Date(2026, 3, 3, 13, 0, 0, 0, time.UTC)  // weekday afternoon

	txns := []domain.Transaction{
		txn(monday9, "A", "coffee", 4),
		txn(monday9.AddDate(0, 0, 7), "A", "coffee", 4),
		txn(monday9.AddDate(0, 0, 14), "A", "coffee", 4),
		txn(saturday19, "B", "dining", 25),
		txn(saturday19.AddDate(0, 0, 7), "B", "dining", 25),
		txn(tuesday13, "C", "groceries", 30),
	}

	summary, err := BuildSummary(txns, 30, 3, 5)
	require.NoError(t, err)

	require.Len(t, summary.TypicalTimeBuckets, 2)
	assert.Equal(t, "weekday mornings", summary.TypicalTimeBuckets[0])
	assert.Equal(t, "weekend evenings", summary.TypicalTimeBuckets[1])
}

func TestHourBucket(t *testing.T) {
	assert.Equal(t, "night", hourBucket(4))
	assert.Equal(t, "morning", hourBucket(5))
	assert.Equal(t, "morning", hourBucket(11))
	assert.Equal(t, "afternoon", hourBucket(12))
	assert.Equal(t, "afternoon", hourBucket(17))
	assert.Equal(t, "evening", hourBucket(18))
	assert.Equal(t, "evening", hourBucket(21))
	assert.Equal(t, "night", hourBucket(22))
}

type stubTxnRepo struct {
	txns []domain.Transaction
	err  error
}

func (s *stubTxnRepo) FindByUser(_ context.Context, _ uint) ([]domain.Transaction, error) {
	return s.txns, s.err
}

func TestSummarize_DefaultsApplied(t *testing.T) {
	repo := &stubTxnRepo{txns: []domain.Transaction{txn(base, "Cafe Uno", "coffee", 4.50)}}
	svc := NewService(repo)

	summary, err := svc.Summarize(context.Background(), 1, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultWindowDays, summary.WindowDays)
}

func TestSummarize_RepoError(t *testing.T) {
	repo := &stubTxnRepo{err: errors.New("db down")}
	svc := NewService(repo)

	_, err := svc.Summarize(context.Background(), 1, 30, 3, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
