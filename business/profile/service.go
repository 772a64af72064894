package profile

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"offerPilot/domain"

	"github.com/shopspring/decimal"
)

const (
	DefaultWindowDays     = 30
	DefaultTopNCategories = 3
	DefaultTopNMerchants  = 5
)

type TransactionRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.Transaction, error)
}

type Service struct {
	txnRepo TransactionRepository
}

func NewService(txnRepo TransactionRepository) *Service {
	return &Service{txnRepo: txnRepo}
}

// Summarize loads the user's transactions and reduces them into a profile.
func (s *Service) Summarize(
	ctx context.Context,
	userID uint,
	windowDays int,
	topNCategories int,
	topNMerchants int,
) (domain.ProfileSummary, error) {

	if err := ctx.Err(); err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("context error: %w", err)
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if topNCategories <= 0 {
		topNCategories = DefaultTopNCategories
	}
	if topNMerchants <= 0 {
		topNMerchants = DefaultTopNMerchants
	}

	txns, err := s.txnRepo.FindByUser(ctx, userID)
	if err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("load transactions: %w", err)
	}

	return BuildSummary(txns, windowDays, topNCategories, topNMerchants)
}

// BuildSummary reduces a transaction window into category and merchant
// statistics plus a spend baseline. Amounts arrive in the feed convention
// (negative = spend) and are inverted before aggregation.
func BuildSummary(
	txns []domain.Transaction,
	windowDays int,
	topNCategories int,
	topNMerchants int,
) (domain.ProfileSummary, error) {

	if len(txns) == 0 {
		return domain.ProfileSummary{}, fmt.Errorf("%w (window=%dd)", domain.ErrEmptyWindow, windowDays)
	}

	if err := checkSchema(txns); err != nil {
		return domain.ProfileSummary{}, err
	}

	maxTS := txns[0].Timestamp
	for _, t := range txns[1:] {
		if t.Timestamp.After(maxTS) {
			maxTS = t.Timestamp
		}
	}

	cutoff := maxTS.AddDate(0, 0, -windowDays)
	window := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if !t.Timestamp.Before(cutoff) {
			window = append(window, t)
		}
	}
	if len(window) == 0 {
		return domain.ProfileSummary{}, fmt.Errorf("%w (window=%dd)", domain.ErrEmptyWindow, windowDays)
	}

	catStats := aggregateCategories(window)
	assignDenseRanks(catStats)

	topCategories := topCategoriesByFrequency(catStats, topNCategories)
	frequentMerchants := frequentMerchants(window, topNMerchants)

	avgSpend := make(map[string]decimal.Decimal, len(catStats))
	for _, cs := range catStats {
		avgSpend[cs.category] = cs.spend.Div(decimal.NewFromInt(int64(cs.frequency))).Round(2)
	}

	days := windowDays
	if days < 1 {
		days = 1
	}
	velocity := math.Round(float64(len(window))/float64(days)*10) / 10

	return domain.ProfileSummary{
		WindowDays:          windowDays,
		TopCategories:       topCategories,
		FrequentMerchants:   frequentMerchants,
		AvgSpendPerCategory: avgSpend,
		SpendingVelocity:    velocity,
		TypicalTimeBuckets:  typicalTimeBuckets(window),
	}, nil
}

func checkSchema(txns []domain.Transaction) error {
	for _, t := range txns {
		if t.Timestamp.IsZero() {
			return domain.NewSchemaError("timestamp")
		}
		if t.MerchantName == "" {
			return domain.NewSchemaError("merchant_name")
		}
		if t.Category == "" {
			return domain.NewSchemaError("category")
		}
	}
	return nil
}

type categoryStat struct {
	category  string
	frequency int
	spend     decimal.Decimal // spend-positive sum

	frequencyRank int
	spendRank     int
}

// aggregateCategories keeps first-seen order so rank ties stay stable.
func aggregateCategories(txns []domain.Transaction) []*categoryStat {
	index := make(map[string]*categoryStat)
	stats := make([]*categoryStat, 0)

	for _, t := range txns {
		cs, ok := index[t.Category]
		if !ok {
			cs = &categoryStat{category: t.Category, spend: decimal.Zero}
			index[t.Category] = cs
			stats = append(stats, cs)
		}
		cs.frequency++
		cs.spend = cs.spend.Add(t.SpendAmount())
	}

	return stats
}

// assignDenseRanks gives 1 to the best value; equal values share a rank.
func assignDenseRanks(stats []*categoryStat) {
	freqValues := make([]int, 0, len(stats))
	seenFreq := make(map[int]bool)
	for _, cs := range stats {
		if !seenFreq[cs.frequency] {
			seenFreq[cs.frequency] = true
			freqValues = append(freqValues, cs.frequency)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(freqValues)))
	freqRank := make(map[int]int, len(freqValues))
	for i, v := range freqValues {
		freqRank[v] = i + 1
	}

	spendValues := make([]decimal.Decimal, 0, len(stats))
	seenSpend := make(map[string]bool)
	for _, cs := range stats {
		key := cs.spend.String()
		if !seenSpend[key] {
			seenSpend[key] = true
			spendValues = append(spendValues, cs.spend)
		}
	}
	sort.Slice(spendValues, func(i, j int) bool {
		return spendValues[i].GreaterThan(spendValues[j])
	})
	spendRank := make(map[string]int, len(spendValues))
	for i, v := range spendValues {
		spendRank[v.String()] = i + 1
	}

	for _, cs := range stats {
		cs.frequencyRank = freqRank[cs.frequency]
		cs.spendRank = spendRank[cs.spend.String()]
	}
}

// topCategoriesByFrequency selects by frequency alone; ties keep the
// first-seen order.
func topCategoriesByFrequency(stats []*categoryStat, topN int) []domain.CategoryRank {
	ordered := make([]*categoryStat, len(stats))
	copy(ordered, stats)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].frequency > ordered[j].frequency
	})

	if topN > len(ordered) {
		topN = len(ordered)
	}

	out := make([]domain.CategoryRank, 0, topN)
	for _, cs := range ordered[:topN] {
		out = append(out, domain.CategoryRank{
			Category:      cs.category,
			FrequencyRank: cs.frequencyRank,
			SpendRank:     cs.spendRank,
		})
	}
	return out
}

func frequentMerchants(txns []domain.Transaction, topN int) []domain.FrequentMerchant {
	type merchantStat struct {
		merchant string
		category string
		count    int
	}

	index := make(map[string]*merchantStat)
	stats := make([]*merchantStat, 0)
	for _, t := range txns {
		key := t.MerchantName + "\x00" + t.Category
		ms, ok := index[key]
		if !ok {
			ms = &merchantStat{merchant: t.MerchantName, category: t.Category}
			index[key] = ms
			stats = append(stats, ms)
		}
		ms.count++
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].count > stats[j].count
	})

	if topN > len(stats) {
		topN = len(stats)
	}

	out := make([]domain.FrequentMerchant, 0, topN)
	for _, ms := range stats[:topN] {
		out = append(out, domain.FrequentMerchant{
			Merchant: ms.merchant,
			Category: ms.category,
		})
	}
	return out
}

func hourBucket(h int) string {
	switch {
	case h >= 5 && h <= 11:
		return "morning"
	case h >= 12 && h <= 17:
		return "afternoon"
	case h >= 18 && h <= 21:
		return "evening"
	default:
		return "night"
	}
}

func dayType(t time.Time) string {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return "weekend"
	default:
		return "weekday"
	}
}

// typicalTimeBuckets reports the two most frequent (day-type, time-bucket)
// combinations as labels like "weekday mornings".
func typicalTimeBuckets(txns []domain.Transaction) []string {
	type combo struct {
		label string
		count int
	}

	index := make(map[string]*combo)
	combos := make([]*combo, 0)
	for _, t := range txns {
		label := fmt.Sprintf("%s %ss", dayType(t.Timestamp), hourBucket(t.Timestamp.Hour()))
		c, ok := index[label]
		if !ok {
			c = &combo{label: label}
			index[label] = c
			combos = append(combos, c)
		}
		c.count++
	}

	sort.SliceStable(combos, func(i, j int) bool {
		return combos[i].count > combos[j].count
	})

	n := 2
	if n > len(combos) {
		n = len(combos)
	}
	out := make([]string, 0, n)
	for _, c := range combos[:n] {
		out = append(out, c.label)
	}
	return out
}
