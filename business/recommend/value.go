package recommend

import (
	"offerPilot/domain"

	"github.com/shopspring/decimal"
)

// PriceFunc resolves the typical price of an item category for free_item
// and buy_one_get_one offers. The bool reports whether a price was found.
type PriceFunc func(itemCategory string) (decimal.Decimal, bool)

var oneHundred = decimal.NewFromInt(100)

// EstimateSaving converts an offer's structured terms into an expected
// monetary saving. Pure and total: unknown offer types and unknown
// categories yield zero, never an error.
func EstimateSaving(
	offer domain.OfferDetails,
	category string,
	avgSpend map[string]decimal.Decimal,
	lookup PriceFunc,
) decimal.Decimal {

	avg := avgSpend[category] // zero when unknown

	var saving decimal.Decimal

	switch offer.OfferType {
	case domain.OfferPercentageDiscount:
		saving = avg.Mul(offer.OfferValue).Div(oneHundred)

	case domain.OfferFixedDiscount, domain.OfferFixedVoucher:
		// cap at typical spend so a large voucher isn't over-credited
		saving = decimal.Min(offer.OfferValue, avg)

	case domain.OfferPointsForCash:
		// already a cash amount
		saving = offer.OfferValue

	case domain.OfferFreeItem, domain.OfferBuyOneGetOne:
		if lookup != nil && offer.ItemCategory != "" {
			if price, ok := lookup(offer.ItemCategory); ok {
				saving = price
				break
			}
		}
		saving = avg

	default:
		return decimal.Zero
	}

	if saving.IsNegative() {
		return decimal.Zero
	}
	return saving
}
