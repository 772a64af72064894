package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"offerPilot/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTxnRepo struct {
	txns []domain.Transaction
	err  error
}

func (s *stubTxnRepo) FindByUser(_ context.Context, _ uint) ([]domain.Transaction, error) {
	return s.txns, s.err
}

type stubCfgRepo struct {
	cfg domain.RecoConfig
	ok  bool
}

func (s *stubCfgRepo) GetConfig(_ context.Context, _ string) (domain.RecoConfig, bool, error) {
	return s.cfg, s.ok, nil
}

func (s *stubCfgRepo) UpsertConfig(_ context.Context, _ domain.RecoConfig) error {
	return nil
}

type stubVendorRepo struct {
	vendors []domain.Vendor
	version string
}

func (s *stubVendorRepo) FindAll(_ context.Context) ([]domain.Vendor, error) {
	return s.vendors, nil
}

func (s *stubVendorRepo) Version(_ context.Context) (string, error) {
	return s.version, nil
}

// stubEmbedder maps any text mentioning a known category onto that
// category's axis, so same-category texts have dot product 1 and
// cross-category texts 0.
type stubEmbedder struct {
	failFor map[string]bool
}

func (e *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, 0, len(texts))
	for _, text := range texts {
		if e.failFor[text] {
			return nil, errors.New("encoder down")
		}
		switch {
		case strings.Contains(text, "coffee"):
			out = append(out, []float64{1, 0, 0})
		case strings.Contains(text, "groceries"):
			out = append(out, []float64{0, 1, 0})
		default:
			out = append(out, []float64{0, 0, 1})
		}
	}
	return out, nil
}

func pctOffer(value float64) domain.OfferDetails {
	return domain.OfferDetails{OfferType: domain.OfferPercentageDiscount, OfferValue: decimal.NewFromFloat(value)}
}

func testVendors() []domain.Vendor {
	return []domain.Vendor{
		{VendorID: "v1", VendorName: "Cafe Uno", Category: "coffee", Offer: pctOffer(20)},
		{VendorID: "v2", VendorName: "Bean Palace", Category: "coffee", Offer: pctOffer(30)},
		{VendorID: "v3", VendorName: "Brew Bros", Category: "coffee", Offer: pctOffer(20)},
		{VendorID: "v4", VendorName: "Roast House", Category: "coffee", Offer: pctOffer(10)},
		{VendorID: "v5", VendorName: "GreenGrocer", Category: "groceries", Offer: domain.OfferDetails{
			OfferType:  domain.OfferFixedDiscount,
			OfferValue: decimal.NewFromInt(10),
		}},
	}
}

func testTransactions() []domain.Transaction {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	spend := func(daysAgo int, merchant, category string, amount float64) domain.Transaction {
		return domain.Transaction{
			Timestamp:    now.AddDate(0, 0, -daysAgo),
			MerchantName: merchant,
			Category:     category,
			Amount:       decimal.NewFromFloat(-amount),
		}
	}
	return []domain.Transaction{
		spend(0, "Cafe Uno", "coffee", 5),
		spend(1, "Cafe Uno", "coffee", 5),
		spend(2, "Cafe Uno", "coffee", 5),
		spend(3, "Bean Palace", "coffee", 5),
		spend(1, "FreshMart", "groceries", 40),
		spend(2, "FreshMart", "groceries", 40),
	}
}

func newTestService(txnRepo *stubTxnRepo, embedder *stubEmbedder, panelSize int) *Service {
	cfgRepo := &stubCfgRepo{
		cfg: domain.RecoConfig{
			Surface:     "home",
			WindowDays:  30,
			AnchorCount: 2,
			PanelSize:   panelSize,
			TauDays:     7,
		},
		ok: true,
	}
	catalog := NewCatalog(&stubVendorRepo{vendors: testVendors(), version: "v1"}, embedder, nil)
	return NewService(txnRepo, cfgRepo, nil, catalog, embedder, DefaultConfig())
}

func TestPanels_EndToEnd(t *testing.T) {
	svc := newTestService(&stubTxnRepo{txns: testTransactions()}, &stubEmbedder{}, 2)

	panels, err := svc.Panels(context.Background(), 1, "home")
	require.NoError(t, err)
	require.Len(t, panels, 2)

	// groceries anchor wins on spend, coffee anchor follows
	assert.Equal(t, "FreshMart", panels[0].AnchorMerchant)
	assert.Equal(t, "groceries", panels[0].Category)
	assert.Equal(t, "Because you bought at FreshMart", panels[0].Reason)

	assert.Equal(t, "Cafe Uno", panels[1].AnchorMerchant)
	assert.Equal(t, "coffee", panels[1].Category)
	assert.Equal(t, "Because you bought at Cafe Uno", panels[1].Reason)

	// coffee panel: the anchor never recommends itself, novel vendors
	// outrank the already-visited Bean Palace
	require.Len(t, panels[1].Offers, 2)
	assert.Equal(t, "Brew Bros", panels[1].Offers[0].VendorName)
	assert.Equal(t, "Roast House", panels[1].Offers[1].VendorName)
	for _, offer := range panels[1].Offers {
		assert.NotEqual(t, "Cafe Uno", offer.VendorName)
	}
}

func TestPanels_UnfilteredFallbackFillsSparseCategory(t *testing.T) {
	svc := newTestService(&stubTxnRepo{txns: testTransactions()}, &stubEmbedder{}, 2)

	panels, err := svc.Panels(context.Background(), 1, "home")
	require.NoError(t, err)
	require.Len(t, panels, 2)

	// only one groceries vendor exists, so the panel is topped up from the
	// whole catalog; the in-category vendor still ranks first
	require.Len(t, panels[0].Offers, 2)
	assert.Equal(t, "GreenGrocer", panels[0].Offers[0].VendorName)
	assert.Equal(t, "Brew Bros", panels[0].Offers[1].VendorName)
}

func TestPanels_EmptyHistory(t *testing.T) {
	svc := newTestService(&stubTxnRepo{}, &stubEmbedder{}, 2)

	_, err := svc.Panels(context.Background(), 1, "home")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyWindow)
}

func TestPanels_AnchorFailureDoesNotAbortOthers(t *testing.T) {
	embedder := &stubEmbedder{failFor: map[string]bool{"FreshMart | groceries": true}}
	svc := newTestService(&stubTxnRepo{txns: testTransactions()}, embedder, 2)

	panels, err := svc.Panels(context.Background(), 1, "home")
	require.NoError(t, err)

	// the groceries anchor failed to embed; the coffee panel still ships
	require.Len(t, panels, 1)
	assert.Equal(t, "Cafe Uno", panels[0].AnchorMerchant)
}

func TestPanels_Deterministic(t *testing.T) {
	svc := newTestService(&stubTxnRepo{txns: testTransactions()}, &stubEmbedder{}, 2)

	first, err := svc.Panels(context.Background(), 1, "home")
	require.NoError(t, err)
	second, err := svc.Panels(context.Background(), 1, "home")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPanels_ExcludeRecentDropsEverything(t *testing.T) {
	txnRepo := &stubTxnRepo{txns: testTransactions()}
	cfgRepo := &stubCfgRepo{
		cfg: domain.RecoConfig{
			Surface:       "backtest",
			WindowDays:    30,
			AnchorCount:   2,
			PanelSize:     2,
			TauDays:       7,
			ExcludeRecent: 100,
		},
		ok: true,
	}
	embedder := &stubEmbedder{}
	catalog := NewCatalog(&stubVendorRepo{vendors: testVendors(), version: "v1"}, embedder, nil)
	svc := NewService(txnRepo, cfgRepo, nil, catalog, embedder, DefaultConfig())

	_, err := svc.Panels(context.Background(), 1, "backtest")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyWindow)
}

func TestDebugPanels_ExposesComponents(t *testing.T) {
	svc := newTestService(&stubTxnRepo{txns: testTransactions()}, &stubEmbedder{}, 2)

	panels, err := svc.DebugPanels(context.Background(), 1, "home")
	require.NoError(t, err)
	require.Len(t, panels, 2)

	// sparse groceries category fell back to the full catalog
	assert.False(t, panels[0].Filtered)
	assert.True(t, panels[1].Filtered)

	for _, panel := range panels {
		require.NotEmpty(t, panel.Candidates)
		for i, c := range panel.Candidates {
			assert.GreaterOrEqual(t, c.Similarity, 0.0)
			assert.LessOrEqual(t, c.Similarity, 1.0)
			assert.GreaterOrEqual(t, c.ValueNorm, 0.0)
			assert.LessOrEqual(t, c.ValueNorm, 1.0)
			assert.Contains(t, []float64{0, 1}, c.Novelty)

			expected := 0.6*c.Similarity + 0.25*c.ValueNorm + 0.15*c.Novelty
			assert.InDelta(t, expected, c.FinalScore, 1e-9)

			if i > 0 {
				assert.GreaterOrEqual(t, panel.Candidates[i-1].FinalScore, c.FinalScore)
			}
		}
	}
}

func TestSummary_UsesSurfaceConfig(t *testing.T) {
	svc := newTestService(&stubTxnRepo{txns: testTransactions()}, &stubEmbedder{}, 2)

	summary, err := svc.Summary(context.Background(), 1, "home")
	require.NoError(t, err)
	assert.Equal(t, 30, summary.WindowDays)
	assert.NotEmpty(t, summary.TopCategories)
}
