package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type ProductStatus string

const (
	ProductDraft    ProductStatus = "draft"
	ProductActive   ProductStatus = "active"
	ProductArchived ProductStatus = "archived"
)

type DisplayType string

const (
	DisplayButtons     DisplayType = "buttons"
	DisplayDropdown    DisplayType = "dropdown"
	DisplayColorSwatch DisplayType = "color_swatch"
	DisplayImageSwatch DisplayType = "image_swatch"
)

type OptionType string

const (
	OptionText  OptionType = "text"
	OptionColor OptionType = "color"
	OptionImage OptionType = "image"
)

type Product struct {
	BaseModel
	StoreID        string        `db:"store_id" json:"store_id"`
	Name           LocalizedText `db:"name" json:"name"`
	Description    LocalizedText `db:"description" json:"description"`
	Price          float64       `db:"price" json:"price"`
	CompareAtPrice *float64      `db:"compare_at_price" json:"compare_at_price"` // Nullable
	StockQuantity  int           `db:"stock_quantity" json:"stock_quantity"`
	TrackInventory bool          `db:"track_inventory" json:"track_inventory"`
	Status         ProductStatus `db:"status" json:"status"`
	Images         StringSlice   `db:"images" json:"images"`
	SortOrder      int           `db:"sort_order" json:"sort_order"`
	Variants       []Variant     `db:"-" json:"variants"` // Joined data
	Offers         []UpsellOffer `db:"-" json:"offers"`   // Joined data
}

// Variant is one selectable attribute axis of a product (e.g. Color).
type Variant struct {
	BaseModel
	ProductID   string          `db:"product_id" json:"product_id"`
	Name        LocalizedText   `db:"name" json:"name"`
	DisplayType DisplayType     `db:"display_type" json:"display_type"`
	OptionType  OptionType      `db:"option_type" json:"option_type"`
	Required    bool            `db:"required" json:"required"`
	SortOrder   int             `db:"sort_order" json:"sort_order"`
	Options     []VariantOption `db:"-" json:"options"` // Joined, sorted by sort_order
}

// DefaultOption returns the option to use when initializing a selection:
// the first option flagged is_default, else the option at index 0 of the
// stored (already sorted) list. ok is false when the variant has no options.
func (v Variant) DefaultOption() (VariantOption, bool) {
	if len(v.Options) == 0 {
		return VariantOption{}, false
	}
	for _, opt := range v.Options {
		if opt.IsDefault {
			return opt, true
		}
	}
	return v.Options[0], true
}

type VariantOption struct {
	BaseModel
	VariantID     string        `db:"variant_id" json:"variant_id"`
	Label         LocalizedText `db:"label" json:"label"`
	Value         string        `db:"value" json:"value"` // hex code, URL, or text token
	PriceModifier float64       `db:"price_modifier" json:"price_modifier"`
	IsDefault     bool          `db:"is_default" json:"is_default"`
	SortOrder     int           `db:"sort_order" json:"sort_order"`
}

// StringSlice maps a jsonb array column onto []string.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("string slice: cannot scan %T", src)
	}
}
