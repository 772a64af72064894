package csvfeed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"offerPilot/domain"

	"github.com/shopspring/decimal"
)

// Column order of the transaction feed. Exports commonly carry extra
// columns; those are ignored as long as the four required headers exist.
var requiredColumns = []string{"timestamp", "merchant_name", "category", "amount"}

// Repository parses transaction feed CSV exports. Amounts keep the feed
// sign convention, negative = money spent.
type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// timestampLayouts are tried in order; feeds mix RFC 3339 and plain
// date-time exports.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// ParseTransactions reads the whole feed, assigning every row to userID.
// A missing required header or an unparseable required field is a
// SchemaError.
func (r *Repository) ParseTransactions(reader io.Reader, userID uint) ([]domain.Transaction, error) {
	cr := csv.NewReader(reader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, domain.NewSchemaError(col)
		}
	}

	var txns []domain.Transaction
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}

		txn, err := parseRecord(record, colIdx, userID)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, nil
}

func parseRecord(record []string, colIdx map[string]int, userID uint) (domain.Transaction, error) {
	field := func(name string) string {
		idx := colIdx[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	rawTS := field("timestamp")
	if rawTS == "" {
		return domain.Transaction{}, domain.NewSchemaError("timestamp")
	}
	ts, err := parseTimestamp(rawTS)
	if err != nil {
		return domain.Transaction{}, domain.NewSchemaError("timestamp")
	}

	merchant := field("merchant_name")
	if merchant == "" {
		return domain.Transaction{}, domain.NewSchemaError("merchant_name")
	}

	category := field("category")
	if category == "" {
		return domain.Transaction{}, domain.NewSchemaError("category")
	}

	amount, err := decimal.NewFromString(field("amount"))
	if err != nil {
		return domain.Transaction{}, domain.NewSchemaError("amount")
	}

	return domain.Transaction{
		UserID:       userID,
		Timestamp:    ts,
		MerchantName: merchant,
		Category:     category,
		Amount:       amount,
	}, nil
}
