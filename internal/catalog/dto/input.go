package dto

import "github.com/tijara/storefront-service/internal/model"

type CreateProductInput struct {
	StoreID        string
	Name           model.LocalizedText
	Description    model.LocalizedText
	Price          float64
	CompareAtPrice float64
	StockQuantity  int
	TrackInventory bool
	Status         string
	Images         []string
	SortOrder      int
}

type UpdateProductInput struct {
	ID             string
	StoreID        string
	Name           model.LocalizedText
	Description    model.LocalizedText
	Price          float64
	CompareAtPrice float64
	StockQuantity  int
	TrackInventory bool
	Status         string
	Images         []string
	SortOrder      int
}

type CreateVariantInput struct {
	StoreID     string
	ProductID   string
	Name        model.LocalizedText
	DisplayType string
	OptionType  string
	Required    bool
	SortOrder   int
}

type UpdateVariantInput struct {
	ID          string
	StoreID     string
	ProductID   string
	Name        model.LocalizedText
	DisplayType string
	OptionType  string
	Required    bool
	SortOrder   int
}

type CreateOptionInput struct {
	StoreID       string
	ProductID     string
	VariantID     string
	Label         model.LocalizedText
	Value         string
	PriceModifier float64
	IsDefault     bool
	SortOrder     int
}

type UpdateOptionInput struct {
	ID            string
	StoreID       string
	ProductID     string
	VariantID     string
	Label         model.LocalizedText
	Value         string
	PriceModifier float64
	IsDefault     bool
	SortOrder     int
}

type CreateOfferInput struct {
	StoreID       string
	ProductID     string
	MinQuantity   int
	DiscountType  string
	DiscountValue float64
	Label         model.LocalizedText
	Badge         model.LocalizedText
	IsActive      bool
	SortOrder     int
}

type UpdateOfferInput struct {
	ID            string
	StoreID       string
	ProductID     string
	MinQuantity   int
	DiscountType  string
	DiscountValue float64
	Label         model.LocalizedText
	Badge         model.LocalizedText
	IsActive      bool
	SortOrder     int
}
