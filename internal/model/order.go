package model

// CartItem is one physical item produced by the quote flow. Quantity is
// always 1: a bulk purchase emits one entry per item so each carries its
// own post-discount unit price.
type CartItem struct {
	ProductID string            `json:"product_id"`
	UnitPrice float64           `json:"unit_price"`
	Quantity  int               `json:"quantity"`
	Variants  []CartItemVariant `json:"variants"`
}

type CartItemVariant struct {
	VariantID     string  `json:"variant_id"`
	OptionID      string  `json:"option_id"`
	PriceModifier float64 `json:"price_modifier"`
}
