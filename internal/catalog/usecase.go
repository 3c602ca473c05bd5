package catalog

import (
	"context"

	"github.com/tijara/storefront-service/internal/catalog/dto"
	"github.com/tijara/storefront-service/internal/model"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, storeID, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, storeID, id string) error

	// Variant ops
	AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.Variant, error)
	UpdateVariant(ctx context.Context, input *dto.UpdateVariantInput) (*model.Variant, error)
	DeleteVariant(ctx context.Context, storeID, productID, variantID string) error
	ListVariants(ctx context.Context, storeID, productID string) ([]model.Variant, error)

	// Option ops
	AddOption(ctx context.Context, input *dto.CreateOptionInput) (*model.VariantOption, error)
	UpdateOption(ctx context.Context, input *dto.UpdateOptionInput) (*model.VariantOption, error)
	DeleteOption(ctx context.Context, storeID, productID, variantID, optionID string) error

	// Upsell offer ops
	AddOffer(ctx context.Context, input *dto.CreateOfferInput) (*model.UpsellOffer, error)
	UpdateOffer(ctx context.Context, input *dto.UpdateOfferInput) (*model.UpsellOffer, error)
	DeleteOffer(ctx context.Context, storeID, productID, offerID string) error
	ListOffers(ctx context.Context, storeID, productID string) ([]model.UpsellOffer, error)

	// Snapshot loads the immutable pricing-session input: the product with
	// sorted variants/options and its active offers.
	Snapshot(ctx context.Context, storeID, productID string) (*model.Product, error)
}
