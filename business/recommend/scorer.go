package recommend

import (
	"context"
	"fmt"
	"strings"

	"offerPilot/domain"

	"github.com/shopspring/decimal"
)

// ScoreResult carries the unordered candidate list for one anchor.
// Filtered reports whether the anchor's category filter was kept; false
// means the scorer fell back to the whole catalog to fill the panel.
type ScoreResult struct {
	Candidates []domain.ScoredCandidate
	Filtered   bool
}

type scoredEntry struct {
	candidate  domain.ScoredCandidate
	similarity float64
	valueNorm  float64
	novelty    float64
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// scoreVendorsForAnchor embeds the anchor text once, then runs the
// category-filtered pass and, when it cannot fill a panel, the
// unrestricted pass.
func (s *Service) scoreVendorsForAnchor(
	ctx context.Context,
	anchor domain.AnchorMerchant,
	snap *catalogSnapshot,
	summary domain.ProfileSummary,
	purchased map[string]bool,
	lookup PriceFunc,
	cfg Config,
) (ScoreResult, error) {

	anchorBlob := anchor.Merchant + " | " + anchor.Category
	vecs, err := s.embedder.Embed(ctx, []string{anchorBlob})
	if err != nil {
		return ScoreResult{}, fmt.Errorf("embed anchor %q: %w", anchor.Merchant, err)
	}
	if len(vecs) != 1 {
		return ScoreResult{}, fmt.Errorf("%w: got %d vectors for anchor text", domain.ErrEncoderUnavailable, len(vecs))
	}
	anchorVec := vecs[0]

	entries := collectScores(anchorVec, anchor, snap, summary, purchased, lookup, cfg, anchor.Category)
	filtered := true
	if len(entries) < cfg.PanelSize {
		entries = collectScores(anchorVec, anchor, snap, summary, purchased, lookup, cfg, "")
		filtered = false
	}

	candidates := make([]domain.ScoredCandidate, 0, len(entries))
	for _, e := range entries {
		candidates = append(candidates, e.candidate)
	}

	return ScoreResult{Candidates: candidates, Filtered: filtered}, nil
}

// collectScores runs one scoring pass over the catalog. categoryFilter ""
// means no restriction.
func collectScores(
	anchorVec []float64,
	anchor domain.AnchorMerchant,
	snap *catalogSnapshot,
	summary domain.ProfileSummary,
	purchased map[string]bool,
	lookup PriceFunc,
	cfg Config,
	categoryFilter string,
) []scoredEntry {

	one := decimal.NewFromInt(1)
	entries := make([]scoredEntry, 0, len(snap.vendors))

	for i, vendor := range snap.vendors {
		// a panel never recommends its own anchor
		if strings.EqualFold(vendor.VendorName, anchor.Merchant) {
			continue
		}
		if categoryFilter != "" && vendor.Category != categoryFilter {
			continue
		}

		sim := dot(anchorVec, snap.vectors[i])

		saving := EstimateSaving(vendor.Offer, vendor.Category, summary.AvgSpendPerCategory, lookup)

		catAvg, ok := summary.AvgSpendPerCategory[vendor.Category]
		if !ok {
			catAvg = one
		}

		var valueNorm float64
		if !catAvg.IsZero() {
			valueNorm = saving.Div(catAvg).InexactFloat64()
			if valueNorm > 1.0 {
				valueNorm = 1.0
			}
			if valueNorm < 0 {
				valueNorm = 0
			}
		}

		novelty := 1.0
		if purchased[strings.ToLower(vendor.VendorName)] {
			novelty = 0.0
		}

		score := cfg.WSimilarity*sim + cfg.WValue*valueNorm + cfg.WNovelty*novelty

		entries = append(entries, scoredEntry{
			candidate: domain.ScoredCandidate{
				VendorID:   vendor.VendorID,
				VendorName: vendor.VendorName,
				OfferType:  vendor.Offer.OfferType,
				Score:      score,
			},
			similarity: sim,
			valueNorm:  valueNorm,
			novelty:    novelty,
		})
	}

	return entries
}
