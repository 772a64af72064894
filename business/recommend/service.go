package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"offerPilot/business/profile"
	"offerPilot/domain"
	"offerPilot/pkg/logger"

	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.Transaction, error)
}

// PriceRepository backs the free_item / buy_one_get_one valuation hook.
type PriceRepository interface {
	GetAveragePrice(ctx context.Context, itemCategory string) (decimal.Decimal, bool, error)
}

type Service struct {
	txnRepo    TransactionRepository
	cfgRepo    ConfigRepository    // nil-able
	priceRepo  PriceRepository     // nil-able
	catalog    *Catalog
	embedder   Embedder
	defaultCfg Config
}

func NewService(
	txnRepo TransactionRepository,
	cfgRepo ConfigRepository,
	priceRepo PriceRepository,
	catalog *Catalog,
	embedder Embedder,
	defaultCfg Config,
) *Service {
	return &Service{
		txnRepo:    txnRepo,
		cfgRepo:    cfgRepo,
		priceRepo:  priceRepo,
		catalog:    catalog,
		embedder:   embedder,
		defaultCfg: defaultCfg,
	}
}

// Panels runs the full pipeline for one user and surface: profile summary,
// anchor selection, per-anchor vendor scoring, diversity re-ranking, panel
// assembly. One panel per anchor, ordered by anchor score descending.
// A failing anchor is logged and skipped; it never aborts the others.
func (s *Service) Panels(ctx context.Context, userID uint, surface string) ([]domain.OfferPanel, error) {
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

	purchased := purchasedMerchants(txns)
	lookup := s.priceFunc(ctx)
	tid := TraceIDFromContext(ctx)

	panels := make([]domain.OfferPanel, 0, len(anchors))
	for _, anchor := range anchors {
		result, err := s.scoreVendorsForAnchor(ctx, anchor, snap, summary, purchased, lookup, cfg)
		if err != nil {
			// no partial panel for a failed anchor; the rest still ship
			logger.Warn("anchor scoring failed",
				"trace_id", tid,
				"merchant", anchor.Merchant,
				"category", anchor.Category,
				"error", err,
			)
			AnchorFailuresTotal.Inc()
			continue
		}
		if !result.Filtered {
			UnfilteredFallbackTotal.Inc()
		}

		selected := SelectDiverse(result.Candidates, cfg.PanelSize)

		offers := make([]domain.PanelOffer, 0, len(selected))
		for _, c := range selected {
			offers = append(offers, domain.PanelOffer{
				VendorID:   c.VendorID,
				VendorName: c.VendorName,
			})
		}

		panels = append(panels, domain.OfferPanel{
			Reason:         fmt.Sprintf("Because you bought at %s", anchor.Merchant),
			AnchorMerchant: anchor.Merchant,
			Category:       anchor.Category,
			Offers:         offers,
		})
	}

	PanelsBuiltTotal.WithLabelValues(surface).Add(float64(len(panels)))

	logger.Debug("panels built",
		"trace_id", tid,
		"user_id", userID,
		"surface", surface,
		"anchors", len(anchors),
		"panels", len(panels),
	)

	return panels, nil
}

// Summary exposes the profile step on its own for the profile endpoint.
func (s *Service) Summary(ctx context.Context, userID uint, surface string) (domain.ProfileSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("context error: %w", err)
	}

	cfg := s.loadConfig(ctx, surface)

	txns, err := s.loadTransactions(ctx, userID, cfg)
	if err != nil {
		return domain.ProfileSummary{}, err
	}

	return profile.BuildSummary(txns, cfg.WindowDays, cfg.TopNCategories, cfg.TopNMerchants)
}

// loadTransactions fetches the user's history and applies the backtesting
// exclusion of the most recent N transactions.
func (s *Service) loadTransactions(ctx context.Context, userID uint, cfg Config) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	if cfg.ExcludeRecent > 0 && len(txns) > 0 {
		sort.SliceStable(txns, func(i, j int) bool {
			return txns[i].Timestamp.Before(txns[j].Timestamp)
		})
		keep := len(txns) - cfg.ExcludeRecent
		if keep < 0 {
			keep = 0
		}
		txns = txns[:keep]
	}

	return txns, nil
}

func purchasedMerchants(txns []domain.Transaction) map[string]bool {
	set := make(map[string]bool, len(txns))
	for _, t := range txns {
		set[strings.ToLower(t.MerchantName)] = true
	}
	return set
}

// priceFunc adapts the price repository into the pure lookup the value
// estimator expects; repository errors read as "no price known".
func (s *Service) priceFunc(ctx context.Context) PriceFunc {
	if s.priceRepo == nil {
		return nil
	}
	return func(itemCategory string) (decimal.Decimal, bool) {
		price, ok, err := s.priceRepo.GetAveragePrice(ctx, itemCategory)
		if err != nil || !ok {
			return decimal.Zero, false
		}
		return price, true
	}
}
