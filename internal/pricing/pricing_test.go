package pricing

import (
	"math"
	"testing"

	"github.com/tijara/storefront-service/internal/model"
)

func offer(id string, minQty int, dtype model.DiscountType, value float64, active bool, sortOrder int) model.UpsellOffer {
	o := model.UpsellOffer{
		MinQuantity:   minQty,
		DiscountType:  dtype,
		DiscountValue: value,
		IsActive:      active,
		SortOrder:     sortOrder,
	}
	o.ID = id
	return o
}

func TestApplicableOffer_BestTier(t *testing.T) {
	offers := []model.UpsellOffer{
		offer("o2", 2, model.DiscountPercentage, 5, true, 0),
		offer("o3", 3, model.DiscountPercentage, 10, true, 1),
		offer("o5", 5, model.DiscountPercentage, 20, true, 2),
	}

	got := ApplicableOffer(offers, 4)
	if got == nil {
		t.Fatal("expected an applicable offer, got nil")
	}
	if got.ID != "o3" {
		t.Fatalf("expected threshold-3 offer, got %s (min_quantity=%d)", got.ID, got.MinQuantity)
	}
}

func TestApplicableOffer_NoneQualifies(t *testing.T) {
	offers := []model.UpsellOffer{
		offer("o5", 5, model.DiscountFixed, 10, true, 0),
	}
	if got := ApplicableOffer(offers, 4); got != nil {
		t.Fatalf("expected nil, got offer %s", got.ID)
	}
}

func TestApplicableOffer_IgnoresInactive(t *testing.T) {
	offers := []model.UpsellOffer{
		offer("inactive", 3, model.DiscountPercentage, 50, false, 0),
		offer("active", 2, model.DiscountPercentage, 5, true, 1),
	}
	got := ApplicableOffer(offers, 3)
	if got == nil || got.ID != "active" {
		t.Fatalf("expected the active threshold-2 offer, got %+v", got)
	}
}

func TestApplicableOffer_TieBreakBySortOrderThenID(t *testing.T) {
	offers := []model.UpsellOffer{
		offer("b", 3, model.DiscountPercentage, 10, true, 2),
		offer("a", 3, model.DiscountPercentage, 15, true, 1),
	}
	got := ApplicableOffer(offers, 3)
	if got == nil || got.ID != "a" {
		t.Fatalf("expected lowest sort_order to win the tie, got %+v", got)
	}

	offers = []model.UpsellOffer{
		offer("z", 3, model.DiscountPercentage, 10, true, 1),
		offer("a", 3, model.DiscountPercentage, 15, true, 1),
	}
	got = ApplicableOffer(offers, 3)
	if got == nil || got.ID != "a" {
		t.Fatalf("expected lowest id to win the tie, got %+v", got)
	}
}

func TestComputeQuote_PercentageExample(t *testing.T) {
	product := model.Product{Price: 100}
	offers := []model.UpsellOffer{
		offer("o", 3, model.DiscountPercentage, 15, true, 0),
	}

	q := ComputeQuote(product, nil, Reconcile(nil, nil, 3), offers, 3)

	if q.RawTotal != 300 {
		t.Fatalf("raw total: got %v, want 300", q.RawTotal)
	}
	if Round2(q.FinalTotal) != 255.00 {
		t.Fatalf("final total: got %v, want 255.00", q.FinalTotal)
	}
	if Round2(q.UnitPrice) != 85.00 {
		t.Fatalf("unit price: got %v, want 85.00", q.UnitPrice)
	}
}

func TestComputeQuote_FixedDiscountClampsAtZero(t *testing.T) {
	product := model.Product{Price: 10}
	offers := []model.UpsellOffer{
		offer("o", 1, model.DiscountFixed, 15, true, 0),
	}

	q := ComputeQuote(product, nil, Reconcile(nil, nil, 1), offers, 1)
	if q.FinalTotal != 0 {
		t.Fatalf("final total: got %v, want 0", q.FinalTotal)
	}
	if q.FinalTotal < 0 {
		t.Fatal("final total must never be negative")
	}
}

func TestComputeQuote_PercentageOver100Clamped(t *testing.T) {
	product := model.Product{Price: 50}
	offers := []model.UpsellOffer{
		offer("o", 1, model.DiscountPercentage, 150, true, 0),
	}

	q := ComputeQuote(product, nil, Reconcile(nil, nil, 2), offers, 2)
	if q.FinalTotal != 0 {
		t.Fatalf("final total: got %v, want 0 (value clamped to 100%%)", q.FinalTotal)
	}
}

func TestComputeQuote_VariantModifier(t *testing.T) {
	product := model.Product{Price: 50}
	size := variantWith("size", true, opt("s", "S", 0, false), opt("l", "L", 5, false))

	sel := SelectionSet{0: {"size": "l"}}
	q := ComputeQuote(product, []model.Variant{size}, sel, nil, 1)
	if q.FinalTotal != 55 {
		t.Fatalf("total: got %v, want 55", q.FinalTotal)
	}
}

func TestComputeQuote_MissingSelectionContributesZero(t *testing.T) {
	product := model.Product{Price: 50}
	size := variantWith("size", true, opt("s", "S", 0, false), opt("l", "L", 5, false))

	q := ComputeQuote(product, []model.Variant{size}, SelectionSet{}, nil, 1)
	if q.FinalTotal != 50 {
		t.Fatalf("total: got %v, want 50 (missing modifier treated as 0)", q.FinalTotal)
	}
}

func TestComputeQuote_MixedModifiersAmortized(t *testing.T) {
	product := model.Product{Price: 100}
	size := variantWith("size", true, opt("s", "S", 0, false), opt("l", "L", 10, false))

	sel := SelectionSet{
		0: {"size": "s"},
		1: {"size": "l"},
	}
	q := ComputeQuote(product, []model.Variant{size}, sel, nil, 2)
	if q.RawTotal != 210 {
		t.Fatalf("raw total: got %v, want 210", q.RawTotal)
	}
	if q.UnitPrice != 105 {
		t.Fatalf("unit price: got %v, want 105 (equal amortization)", q.UnitPrice)
	}
}

func TestComputeQuote_Idempotent(t *testing.T) {
	product := model.Product{Price: 33.33}
	color := variantWith("color", true, opt("red", "#f00", 1.5, true), opt("blue", "#00f", -0.25, false))
	offers := []model.UpsellOffer{
		offer("o", 2, model.DiscountPercentage, 7.5, true, 0),
	}
	sel := Reconcile(nil, []model.Variant{color}, 3)

	first := ComputeQuote(product, []model.Variant{color}, sel, offers, 3)
	second := ComputeQuote(product, []model.Variant{color}, sel, offers, 3)

	if math.Float64bits(first.FinalTotal) != math.Float64bits(second.FinalTotal) ||
		math.Float64bits(first.RawTotal) != math.Float64bits(second.RawTotal) ||
		math.Float64bits(first.UnitPrice) != math.Float64bits(second.UnitPrice) {
		t.Fatalf("recomputation differed: %+v vs %+v", first, second)
	}
}

func TestComputeQuote_ZeroQuantity(t *testing.T) {
	q := ComputeQuote(model.Product{Price: 10}, nil, nil, nil, 0)
	if q.RawTotal != 0 || q.FinalTotal != 0 || q.UnitPrice != 0 {
		t.Fatalf("zero quantity should produce an empty quote, got %+v", q)
	}
}

func TestCartItems_OneEntryPerPhysicalItem(t *testing.T) {
	product := model.Product{Price: 100}
	product.ID = "p1"
	size := variantWith("size", true, opt("s", "S", 0, true), opt("l", "L", 10, false))
	offers := []model.UpsellOffer{
		offer("o", 3, model.DiscountPercentage, 15, true, 0),
	}

	sel := Reconcile(nil, []model.Variant{size}, 3)
	sel[2]["size"] = "l"

	items := CartItems(product, []model.Variant{size}, sel, offers, 3)
	if len(items) != 3 {
		t.Fatalf("expected 3 cart entries, got %d", len(items))
	}
	for i, item := range items {
		if item.Quantity != 1 {
			t.Fatalf("entry %d: quantity must be 1, got %d", i, item.Quantity)
		}
		if item.ProductID != "p1" {
			t.Fatalf("entry %d: product id %q", i, item.ProductID)
		}
		if len(item.Variants) != 1 {
			t.Fatalf("entry %d: expected 1 variant record, got %d", i, len(item.Variants))
		}
	}
	if items[2].Variants[0].OptionID != "l" || items[2].Variants[0].PriceModifier != 10 {
		t.Fatalf("entry 2 should carry the L option with modifier 10, got %+v", items[2].Variants[0])
	}

	// All entries share the amortized unit price.
	want := ComputeQuote(product, []model.Variant{size}, sel, offers, 3).UnitPrice
	for i, item := range items {
		if item.UnitPrice != want {
			t.Fatalf("entry %d: unit price %v, want %v", i, item.UnitPrice, want)
		}
	}
}
