package curated

import (
	"context"
	"testing"

	"offerPilot/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCuratedRepo struct {
	rows     []domain.CuratedOffer
	replaced map[string][]domain.CuratedOffer
}

func (s *stubCuratedRepo) GetBySurface(_ context.Context, _ string, limit int) ([]domain.CuratedOffer, error) {
	if limit > 0 && limit < len(s.rows) {
		return s.rows[:limit], nil
	}
	return s.rows, nil
}

func (s *stubCuratedRepo) Replace(_ context.Context, surface string, offers []domain.CuratedOffer) error {
	if s.replaced == nil {
		s.replaced = map[string][]domain.CuratedOffer{}
	}
	s.replaced[surface] = offers
	return nil
}

type stubVendorReader struct {
	vendors []domain.Vendor
}

func (s *stubVendorReader) FindByVendorIDs(_ context.Context, ids []string) ([]domain.Vendor, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []domain.Vendor{}
	for _, v := range s.vendors {
		if want[v.VendorID] {
			out = append(out, v)
		}
	}
	return out, nil
}

func TestFallbackPanel_Empty(t *testing.T) {
	svc := NewService(&stubCuratedRepo{}, &stubVendorReader{})

	panel, err := svc.FallbackPanel(context.Background(), "home", 3)
	require.NoError(t, err)
	assert.Equal(t, "Popular offers to get you started", panel.Reason)
	assert.Equal(t, "featured", panel.Category)
	assert.Empty(t, panel.Offers)
}

func TestFallbackPanel_PreservesCuratedOrder(t *testing.T) {
	repo := &stubCuratedRepo{rows: []domain.CuratedOffer{
		{Surface: "home", VendorID: "v2", Score: 0.9},
		{Surface: "home", VendorID: "v1", Score: 0.5},
	}}
	vendors := &stubVendorReader{vendors: []domain.Vendor{
		{VendorID: "v1", VendorName: "Cafe Uno"},
		{VendorID: "v2", VendorName: "GreenGrocer"},
	}}
	svc := NewService(repo, vendors)

	panel, err := svc.FallbackPanel(context.Background(), "home", 5)
	require.NoError(t, err)

	require.Len(t, panel.Offers, 2)
	assert.Equal(t, "GreenGrocer", panel.Offers[0].VendorName)
	assert.Equal(t, "Cafe Uno", panel.Offers[1].VendorName)
}

func TestFallbackPanel_DropsMissingVendors(t *testing.T) {
	repo := &stubCuratedRepo{rows: []domain.CuratedOffer{
		{Surface: "home", VendorID: "gone", Score: 0.9},
		{Surface: "home", VendorID: "v1", Score: 0.5},
	}}
	vendors := &stubVendorReader{vendors: []domain.Vendor{
		{VendorID: "v1", VendorName: "Cafe Uno"},
	}}
	svc := NewService(repo, vendors)

	panel, err := svc.FallbackPanel(context.Background(), "home", 5)
	require.NoError(t, err)

	require.Len(t, panel.Offers, 1)
	assert.Equal(t, "Cafe Uno", panel.Offers[0].VendorName)
}

func TestSetOffers(t *testing.T) {
	repo := &stubCuratedRepo{}
	svc := NewService(repo, &stubVendorReader{})

	err := svc.SetOffers(context.Background(), "home", []domain.CuratedOffer{
		{VendorID: "v1", Score: 0.8},
	})
	require.NoError(t, err)

	require.Len(t, repo.replaced["home"], 1)
	assert.Equal(t, "home", repo.replaced["home"][0].Surface)
}

func TestSetOffers_RequiresSurface(t *testing.T) {
	svc := NewService(&stubCuratedRepo{}, &stubVendorReader{})

	err := svc.SetOffers(context.Background(), "", nil)
	assert.Error(t, err)
}
