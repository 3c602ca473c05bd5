// Package pricing derives line-item totals from a catalog snapshot, a
// selection set and a quantity-tiered offer schedule. Every function is
// pure: no I/O, no shared state, identical inputs always yield identical
// results, so callers may recompute on every state change.
package pricing

import (
	"math"

	"github.com/tijara/storefront-service/internal/model"
)

// Quote is the computed price breakdown for one configured line.
type Quote struct {
	RawTotal   float64            `json:"raw_total"`
	Discount   float64            `json:"discount"`
	FinalTotal float64            `json:"final_total"`
	UnitPrice  float64            `json:"unit_price"`
	Offer      *model.UpsellOffer `json:"offer,omitempty"`
}

// ApplicableOffer picks the active offer with the largest MinQuantity
// still <= quantity. Ties on MinQuantity go to the lowest SortOrder,
// then the lowest id. Returns nil when no offer qualifies.
func ApplicableOffer(offers []model.UpsellOffer, quantity int) *model.UpsellOffer {
	var best *model.UpsellOffer
	for i := range offers {
		o := &offers[i]
		if !o.IsActive || o.MinQuantity > quantity {
			continue
		}
		if best == nil ||
			o.MinQuantity > best.MinQuantity ||
			(o.MinQuantity == best.MinQuantity &&
				(o.SortOrder < best.SortOrder ||
					(o.SortOrder == best.SortOrder && o.ID < best.ID))) {
			best = o
		}
	}
	return best
}

// ComputeQuote prices quantity items of product under sel.
//
// Per-item price is base price plus the modifiers of the options selected
// at that index; a missing selection contributes zero. The applicable
// offer is then applied to the raw total: percentage values are clamped
// to [0,100] at compute time so the final total can never go negative,
// and fixed amounts clamp at zero. Unit price amortizes the final total
// equally across items even when items carry different modifiers.
func ComputeQuote(product model.Product, variants []model.Variant, sel SelectionSet, offers []model.UpsellOffer, quantity int) Quote {
	if quantity <= 0 {
		return Quote{}
	}

	rawTotal := 0.0
	for i := 0; i < quantity; i++ {
		rawTotal += itemPrice(product, variants, sel[i])
	}

	offer := ApplicableOffer(offers, quantity)
	finalTotal := rawTotal
	if offer != nil {
		switch offer.DiscountType {
		case model.DiscountPercentage:
			pct := offer.DiscountValue
			if pct < 0 {
				pct = 0
			}
			if pct > 100 {
				pct = 100
			}
			finalTotal = rawTotal * (1 - pct/100)
		case model.DiscountFixed:
			finalTotal = math.Max(0, rawTotal-offer.DiscountValue)
		}
	}

	return Quote{
		RawTotal:   rawTotal,
		Discount:   rawTotal - finalTotal,
		FinalTotal: finalTotal,
		UnitPrice:  finalTotal / float64(quantity),
		Offer:      offer,
	}
}

// CartItems expands a configured line into one entry per physical item,
// each with quantity 1 and the amortized post-discount unit price, plus
// the per-item chosen options with their modifiers.
func CartItems(product model.Product, variants []model.Variant, sel SelectionSet, offers []model.UpsellOffer, quantity int) []model.CartItem {
	if quantity <= 0 {
		return nil
	}

	quote := ComputeQuote(product, variants, sel, offers, quantity)

	items := make([]model.CartItem, 0, quantity)
	for i := 0; i < quantity; i++ {
		item := model.CartItem{
			ProductID: product.ID,
			UnitPrice: quote.UnitPrice,
			Quantity:  1,
		}
		for _, v := range variants {
			optionID, ok := selectedOption(sel[i], v.ID)
			if !ok {
				continue
			}
			item.Variants = append(item.Variants, model.CartItemVariant{
				VariantID:     v.ID,
				OptionID:      optionID,
				PriceModifier: optionModifier(v, optionID),
			})
		}
		items = append(items, item)
	}
	return items
}

// Round2 rounds to two fraction digits for presentation. Internal
// computation stays unrounded.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func itemPrice(product model.Product, variants []model.Variant, choices map[string]string) float64 {
	price := product.Price
	for _, v := range variants {
		optionID, ok := selectedOption(choices, v.ID)
		if !ok {
			continue
		}
		price += optionModifier(v, optionID)
	}
	return price
}

func selectedOption(choices map[string]string, variantID string) (string, bool) {
	if choices == nil {
		return "", false
	}
	optionID, ok := choices[variantID]
	if !ok || optionID == "" {
		return "", false
	}
	return optionID, true
}

func optionModifier(v model.Variant, optionID string) float64 {
	for _, opt := range v.Options {
		if opt.ID == optionID {
			return opt.PriceModifier
		}
	}
	return 0
}
