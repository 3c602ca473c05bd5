package model

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// UpsellOffer is a quantity-threshold discount rule attached to a product.
type UpsellOffer struct {
	BaseModel
	StoreID       string        `db:"store_id" json:"store_id"`
	ProductID     string        `db:"product_id" json:"product_id"`
	MinQuantity   int           `db:"min_quantity" json:"min_quantity"`
	DiscountType  DiscountType  `db:"discount_type" json:"discount_type"`
	DiscountValue float64       `db:"discount_value" json:"discount_value"`
	Label         LocalizedText `db:"label" json:"label"`
	Badge         LocalizedText `db:"badge" json:"badge"`
	IsActive      bool          `db:"is_active" json:"is_active"`
	SortOrder     int           `db:"sort_order" json:"sort_order"`
}
