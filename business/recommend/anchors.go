package recommend

import (
	"math"
	"sort"

	"offerPilot/domain"
)

// SelectAnchors picks up to k category-distinct anchor merchants from the
// user's history. Transactions are weighted by exp(-ageDays/tauDays) before
// aggregating per (merchant, category), so recent activity dominates.
// Categories, not merchants, are the dedup key: topical breadth wins over
// raw popularity even when one category carries most of the volume.
func SelectAnchors(
	txns []domain.Transaction,
	k int,
	tauDays float64,
	wFreq float64,
	wSpend float64,
) ([]domain.AnchorMerchant, error) {

	if len(txns) == 0 {
		return []domain.AnchorMerchant{}, nil
	}
	if k <= 0 {
		k = defaultAnchorCount
	}
	if tauDays <= 0 {
		tauDays = defaultTauDays
	}

	maxTS := txns[0].Timestamp
	for _, t := range txns {
		if t.Timestamp.IsZero() {
			return nil, domain.NewSchemaError("timestamp")
		}
		if t.Timestamp.After(maxTS) {
			maxTS = t.Timestamp
		}
	}

	type group struct {
		merchant string
		category string
		freq     float64 // sum of recency weights
		spend    float64 // sum of weight * |amount|
		score    float64
	}

	index := make(map[string]*group)
	groups := make([]*group, 0)

	for _, t := range txns {
		ageDays := int(maxTS.Sub(t.Timestamp).Hours() / 24)
		weight := math.Exp(-float64(ageDays) / tauDays)

		key := t.MerchantName + "\x00" + t.Category
		g, ok := index[key]
		if !ok {
			g = &group{merchant: t.MerchantName, category: t.Category}
			index[key] = g
			groups = append(groups, g)
		}
		g.freq += weight
		g.spend += weight * t.Amount.Abs().InexactFloat64()
	}

	var maxFreq, maxSpend float64
	for _, g := range groups {
		if g.freq > maxFreq {
			maxFreq = g.freq
		}
		if g.spend > maxSpend {
			maxSpend = g.spend
		}
	}

	for _, g := range groups {
		var freqNorm, spendNorm float64
		if maxFreq > 0 {
			freqNorm = g.freq / maxFreq
		}
		if maxSpend > 0 {
			spendNorm = g.spend / maxSpend
		}
		g.score = wFreq*freqNorm + wSpend*spendNorm
	}

	// stable sort keeps first-seen order on ties
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].score > groups[j].score
	})

	anchors := make([]domain.AnchorMerchant, 0, k)
	seenCategories := make(map[string]bool)
	for _, g := range groups {
		if seenCategories[g.category] {
			continue
		}
		anchors = append(anchors, domain.AnchorMerchant{
			Merchant: g.merchant,
			Category: g.category,
			Score:    g.score,
		})
		seenCategories[g.category] = true
		if len(anchors) == k {
			break
		}
	}

	return anchors, nil
}
