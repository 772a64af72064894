package csvfeed

import (
	"errors"
	"strings"
	"testing"
	"time"

	"offerPilot/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactions_Basic(t *testing.T) {
	feed := strings.Join([]string{
		"timestamp,merchant_name,category,amount",
		"2026-03-02 09:15:00,Cafe Uno,coffee,-4.50",
		"2026-03-03T13:00:00,FreshMart,groceries,-32.10",
	}, "\n")

	txns, err := NewRepository().ParseTransactions(strings.NewReader(feed), 7)
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, uint(7), txns[0].UserID)
	assert.Equal(t, "Cafe Uno", txns[0].MerchantName)
	assert.Equal(t, "coffee", txns[0].Category)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC), txns[0].Timestamp)
	// feed sign convention kept: spend stays negative
	assert.True(t, txns[0].Amount.Equal(decimal.NewFromFloat(-4.50)))
	assert.True(t, txns[0].SpendAmount().Equal(decimal.NewFromFloat(4.50)))
}

func TestParseTransactions_ExtraColumnsIgnored(t *testing.T) {
	feed := strings.Join([]string{
		"id,timestamp,merchant_name,category,amount,notes",
		"1,2026-03-02,Cafe Uno,coffee,-4.50,morning run",
	}, "\n")

	txns, err := NewRepository().ParseTransactions(strings.NewReader(feed), 1)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Cafe Uno", txns[0].MerchantName)
}

func TestParseTransactions_MissingHeader(t *testing.T) {
	feed := strings.Join([]string{
		"timestamp,merchant_name,amount",
		"2026-03-02,Cafe Uno,-4.50",
	}, "\n")

	_, err := NewRepository().ParseTransactions(strings.NewReader(feed), 1)
	require.Error(t, err)

	var schemaErr *domain.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "category", schemaErr.Field)
}

func TestParseTransactions_BadFields(t *testing.T) {
	cases := []struct {
		name  string
		row   string
		field string
	}{
		{"bad timestamp", "not-a-date,Cafe Uno,coffee,-4.50", "timestamp"},
		{"empty merchant", "2026-03-02,,coffee,-4.50", "merchant_name"},
		{"empty category", "2026-03-02,Cafe Uno,,-4.50", "category"},
		{"bad amount", "2026-03-02,Cafe Uno,coffee,lots", "amount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			feed := "timestamp,merchant_name,category,amount\n" + tc.row

			_, err := NewRepository().ParseTransactions(strings.NewReader(feed), 1)
			require.Error(t, err)

			var schemaErr *domain.SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, tc.field, schemaErr.Field)
		})
	}
}

func TestParseTransactions_RFC3339(t *testing.T) {
	feed := "timestamp,merchant_name,category,amount\n" +
		"2026-03-02T09:15:00Z,Cafe Uno,coffee,-4.50"

	txns, err := NewRepository().ParseTransactions(strings.NewReader(feed), 1)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, 9, txns[0].Timestamp.Hour())
}
