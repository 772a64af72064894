package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"offerPilot/business/profile"
	"offerPilot/domain"
	"offerPilot/pkg/logger"
)

// DebugPanels returns the per-candidate score components for every anchor,
// for inspection and offline tuning. Candidates come back sorted by final
// score, before diversity re-ranking.
func (s *Service) DebugPanels(ctx context.Context, userID uint, surface string) ([]domain.DebugPanel, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	cfg := s.loadConfig(ctx, surface)

	txns, err := s.loadTransactions(ctx, userID, cfg)
	if err != nil {
		return nil, err
	}

	summary, err := profile.BuildSummary(txns, cfg.WindowDays, cfg.TopNCategories, cfg.TopNMerchants)
	if err != nil {
		return nil, err
	}

	anchors, err := SelectAnchors(txns, cfg.AnchorCount, cfg.TauDays, cfg.WAnchorFreq, cfg.WAnchorSpend)
	if err != nil {
		return nil, err
	}

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	purchasedSet := make(map[string]bool, len(txns))
	for _, t := range txns {
		purchasedSet[strings.ToLower(t.MerchantName)] = true
	}
	lookup := s.priceFunc(ctx)
	tid := TraceIDFromContext(ctx)

	out := make([]domain.DebugPanel, 0, len(anchors))
	for _, anchor := range anchors {
		anchorBlob := anchor.Merchant + " | " + anchor.Category
		vecs, err := s.embedder.Embed(ctx, []string{anchorBlob})
		if err != nil || len(vecs) != 1 {
			logger.Warn("debug anchor embed failed",
				"trace_id", tid,
				"merchant", anchor.Merchant,
				"error", err,
			)
			continue
		}

		entries := collectScores(vecs[0], anchor, snap, summary, purchasedSet, lookup, cfg, anchor.Category)
		filtered := true
		if len(entries) < cfg.PanelSize {
			entries = collectScores(vecs[0], anchor, snap, summary, purchasedSet, lookup, cfg, "")
			filtered = false
		}

		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].candidate.Score > entries[j].candidate.Score
		})

		candidates := make([]domain.DebugCandidate, 0, len(entries))
		for _, e := range entries {
			candidates = append(candidates, domain.DebugCandidate{
				VendorID:   e.candidate.VendorID,
				VendorName: e.candidate.VendorName,
				OfferType:  e.candidate.OfferType,
				Similarity: e.similarity,
				ValueNorm:  e.valueNorm,
				Novelty:    e.novelty,
				FinalScore: e.candidate.Score,
			})
		}

		out = append(out, domain.DebugPanel{
			Anchor:     anchor,
			Filtered:   filtered,
			Candidates: candidates,
		})
	}

	return out, nil
}
