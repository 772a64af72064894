package recommend

import (
	"errors"
	"math"
	"testing"
	"time"

	"offerPilot/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchorBase = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func anchorTxn(daysAgo int, merchant, category string, spent float64) domain.Transaction {
	return domain.Transaction{
		Timestamp:    anchorBase.AddDate(0, 0, -daysAgo),
		MerchantName: merchant,
		Category:     category,
		Amount:       decimal.NewFromFloat(-spent),
	}
}

func TestSelectAnchors_Empty(t *testing.T) {
	anchors, err := SelectAnchors(nil, 5, 7, 0.6, 0.4)
	require.NoError(t, err)
	assert.Empty(t, anchors)
}

func TestSelectAnchors_ZeroTimestamp(t *testing.T) {
	txns := []domain.Transaction{{MerchantName: "X", Category: "food"}}

	_, err := SelectAnchors(txns, 5, 7, 0.6, 0.4)
	require.Error(t, err)

	var schemaErr *domain.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "timestamp", schemaErr.Field)
}

func TestSelectAnchors_RecencyDecay(t *testing.T) {
	// same merchant volume, but one is recent and one is old
	txns := []domain.Transaction{
		anchorTxn(0, "Fresh", "groceries", 50),
		anchorTxn(30, "Stale", "books", 50),
	}

	anchors, err := SelectAnchors(txns, 5, 3, 0.6, 0.4)
	require.NoError(t, err)

	require.Len(t, anchors, 2)
	assert.Equal(t, "Fresh", anchors[0].Merchant)
	assert.Equal(t, "Stale", anchors[1].Merchant)
	assert.Greater(t, anchors[0].Score, anchors[1].Score)
	// the most recent merchant dominates both normalized components
	assert.InDelta(t, 1.0, anchors[0].Score, 1e-9)
}

func TestSelectAnchors_WeightMatchesTau(t *testing.T) {
	txns := []domain.Transaction{
		anchorTxn(0, "Today", "coffee", 10),
		anchorTxn(1, "Yesterday", "dining", 10),
	}

	anchors, err := SelectAnchors(txns, 5, 3, 1.0, 0.0)
	require.NoError(t, err)

	require.Len(t, anchors, 2)
	// freq-only score: exp(-1/3) normalized against exp(0)
	assert.InDelta(t, math.Exp(-1.0/3.0), anchors[1].Score, 1e-9)
}

func TestSelectAnchors_CategoryDedup(t *testing.T) {
	txns := []domain.Transaction{
		anchorTxn(0, "Cafe Uno", "coffee", 5),
		anchorTxn(0, "Cafe Uno", "coffee", 5),
		anchorTxn(0, "Cafe Due", "coffee", 5),
		anchorTxn(1, "FreshMart", "groceries", 40),
		anchorTxn(2, "TechWorld", "electronics", 300),
	}

	anchors, err := SelectAnchors(txns, 5, 7, 0.6, 0.4)
	require.NoError(t, err)

	categories := make(map[string]int)
	for _, a := range anchors {
		categories[a.Category]++
	}
	assert.Len(t, anchors, 3)
	for category, n := range categories {
		assert.Equal(t, 1, n, "category %s appears more than once", category)
	}
	// only one coffee merchant survives, the stronger one
	assert.NotContains(t, merchantNames(anchors), "Cafe Due")
}

func TestSelectAnchors_CapAtK(t *testing.T) {
	txns := []domain.Transaction{
		anchorTxn(0, "A", "c1", 10),
		anchorTxn(1, "B", "c2", 10),
		anchorTxn(2, "C", "c3", 10),
		anchorTxn(3, "D", "c4", 10),
	}

	anchors, err := SelectAnchors(txns, 2, 7, 0.6, 0.4)
	require.NoError(t, err)
	assert.Len(t, anchors, 2)
}

func TestSelectAnchors_OrderedByScore(t *testing.T) {
	txns := []domain.Transaction{
		anchorTxn(10, "Rare", "books", 5),
		anchorTxn(0, "Daily", "coffee", 5),
		anchorTxn(0, "Daily", "coffee", 5),
		anchorTxn(1, "Weekly", "groceries", 80),
	}

	anchors, err := SelectAnchors(txns, 5, 7, 0.6, 0.4)
	require.NoError(t, err)

	require.NotEmpty(t, anchors)
	for i := 1; i < len(anchors); i++ {
		assert.GreaterOrEqual(t, anchors[i-1].Score, anchors[i].Score)
	}
}

func merchantNames(anchors []domain.AnchorMerchant) []string {
	names := make([]string, 0, len(anchors))
	for _, a := range anchors {
		names = append(names, a.Merchant)
	}
	return names
}
