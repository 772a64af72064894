package curated

import (
	"context"
	"fmt"

	"offerPilot/domain"
)

type CuratedOfferRepository interface {
	GetBySurface(ctx context.Context, surface string, limit int) ([]domain.CuratedOffer, error)
	Replace(ctx context.Context, surface string, offers []domain.CuratedOffer) error
}

type VendorReader interface {
	FindByVendorIDs(ctx context.Context, vendorIDs []string) ([]domain.Vendor, error)
}

// Service serves hand-picked fallback offers for users without enough
// transaction history to drive the engine.
type Service struct {
	repo    CuratedOfferRepository
	vendors VendorReader
}

func NewService(repo CuratedOfferRepository, vendors VendorReader) *Service {
	return &Service{repo: repo, vendors: vendors}
}

// FallbackPanel returns one panel of curated offers for the surface, or an
// empty panel when nothing is curated.
func (s *Service) FallbackPanel(ctx context.Context, surface string, limit int) (domain.OfferPanel, error) {
	if err := ctx.Err(); err != nil {
		return domain.OfferPanel{}, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 6
	}

	rows, err := s.repo.GetBySurface(ctx, surface, limit)
	if err != nil {
		return domain.OfferPanel{}, fmt.Errorf("load curated offers: %w", err)
	}

	panel := domain.OfferPanel{
		Reason:         "Popular offers to get you started",
		AnchorMerchant: "",
		Category:       "featured",
		Offers:         []domain.PanelOffer{},
	}
	if len(rows) == 0 {
		return panel, nil
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.VendorID)
	}

	vendors, err := s.vendors.FindByVendorIDs(ctx, ids)
	if err != nil {
		return domain.OfferPanel{}, fmt.Errorf("load curated vendors: %w", err)
	}

	byID := make(map[string]domain.Vendor, len(vendors))
	for _, v := range vendors {
		byID[v.VendorID] = v
	}

	// preserve curated score order; drop rows whose vendor disappeared
	for _, r := range rows {
		v, ok := byID[r.VendorID]
		if !ok {
			continue
		}
		panel.Offers = append(panel.Offers, domain.PanelOffer{
			VendorID:   v.VendorID,
			VendorName: v.VendorName,
		})
	}

	return panel, nil
}

// SetOffers replaces the curated list for a surface.
func (s *Service) SetOffers(ctx context.Context, surface string, offers []domain.CuratedOffer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if surface == "" {
		return fmt.Errorf("surface is required")
	}
	for i := range offers {
		offers[i].Surface = surface
	}
	return s.repo.Replace(ctx, surface, offers)
}
