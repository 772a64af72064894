package recommend

import (
	"testing"

	"offerPilot/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestEstimateSaving_PercentageDiscount(t *testing.T) {
	offer := domain.OfferDetails{OfferType: domain.OfferPercentageDiscount, OfferValue: d(20)}
	avg := map[string]decimal.Decimal{"groceries": d(50)}

	saving := EstimateSaving(offer, "groceries", avg, nil)
	assert.True(t, saving.Equal(d(10)), "got %s", saving)
}

func TestEstimateSaving_FixedDiscountCappedAtAvgSpend(t *testing.T) {
	avg := map[string]decimal.Decimal{"coffee": d(5)}

	small := domain.OfferDetails{OfferType: domain.OfferFixedDiscount, OfferValue: d(2)}
	assert.True(t, EstimateSaving(small, "coffee", avg, nil).Equal(d(2)))

	large := domain.OfferDetails{OfferType: domain.OfferFixedVoucher, OfferValue: d(50)}
	assert.True(t, EstimateSaving(large, "coffee", avg, nil).Equal(d(5)))
}

func TestEstimateSaving_PointsForCash(t *testing.T) {
	offer := domain.OfferDetails{OfferType: domain.OfferPointsForCash, OfferValue: d(7.5)}

	// cash value passes through regardless of category spend
	saving := EstimateSaving(offer, "unknown", map[string]decimal.Decimal{}, nil)
	assert.True(t, saving.Equal(d(7.5)))
}

func TestEstimateSaving_FreeItemUsesPriceLookup(t *testing.T) {
	offer := domain.OfferDetails{OfferType: domain.OfferFreeItem, ItemCategory: "pastry"}
	avg := map[string]decimal.Decimal{"coffee": d(5)}

	lookup := func(itemCategory string) (decimal.Decimal, bool) {
		if itemCategory == "pastry" {
			return d(3.20), true
		}
		return decimal.Zero, false
	}

	saving := EstimateSaving(offer, "coffee", avg, lookup)
	assert.True(t, saving.Equal(d(3.20)))
}

func TestEstimateSaving_FreeItemFallsBackToAvgSpend(t *testing.T) {
	avg := map[string]decimal.Decimal{"coffee": d(5)}

	noPrice := domain.OfferDetails{OfferType: domain.OfferBuyOneGetOne, ItemCategory: "pastry"}
	lookup := func(string) (decimal.Decimal, bool) { return decimal.Zero, false }
	assert.True(t, EstimateSaving(noPrice, "coffee", avg, lookup).Equal(d(5)))

	noLookup := domain.OfferDetails{OfferType: domain.OfferFreeItem, ItemCategory: "pastry"}
	assert.True(t, EstimateSaving(noLookup, "coffee", avg, nil).Equal(d(5)))
}

func TestEstimateSaving_UnknownOfferType(t *testing.T) {
	offer := domain.OfferDetails{OfferType: "mystery_box", OfferValue: d(10)}
	avg := map[string]decimal.Decimal{"coffee": d(5)}

	assert.True(t, EstimateSaving(offer, "coffee", avg, nil).IsZero())
}

func TestEstimateSaving_UnknownCategoryYieldsZero(t *testing.T) {
	offer := domain.OfferDetails{OfferType: domain.OfferPercentageDiscount, OfferValue: d(20)}

	saving := EstimateSaving(offer, "never-seen", map[string]decimal.Decimal{}, nil)
	assert.True(t, saving.IsZero())
}

func TestEstimateSaving_NegativeClampedToZero(t *testing.T) {
	offer := domain.OfferDetails{OfferType: domain.OfferPointsForCash, OfferValue: d(-5)}

	saving := EstimateSaving(offer, "coffee", map[string]decimal.Decimal{}, nil)
	assert.True(t, saving.IsZero())
}
