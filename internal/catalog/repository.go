package catalog

import (
	"context"

	"github.com/tijara/storefront-service/internal/catalog/dto"
	"github.com/tijara/storefront-service/internal/model"
)

type Repository interface {
	CreateProduct(ctx context.Context, p *model.Product) error
	FindProductByID(ctx context.Context, storeID, id string) (*model.Product, error)
	FindProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, storeID, id string) error

	CreateVariant(ctx context.Context, v *model.Variant) error
	FindVariantByID(ctx context.Context, id string) (*model.Variant, error)
	FindVariants(ctx context.Context, productID string) ([]model.Variant, error)
	UpdateVariant(ctx context.Context, v *model.Variant) error
	DeleteVariant(ctx context.Context, id string) error

	CreateOption(ctx context.Context, o *model.VariantOption) error
	FindOptionByID(ctx context.Context, id string) (*model.VariantOption, error)
	FindOptions(ctx context.Context, variantID string) ([]model.VariantOption, error)
	UpdateOption(ctx context.Context, o *model.VariantOption) error
	DeleteOption(ctx context.Context, id string) error
	// ClearDefault unsets is_default on every option of the variant except
	// excludeID, in the same transaction as the flagging write.
	SetDefaultOption(ctx context.Context, variantID, optionID string) error

	CreateOffer(ctx context.Context, o *model.UpsellOffer) error
	FindOfferByID(ctx context.Context, id string) (*model.UpsellOffer, error)
	FindOffers(ctx context.Context, productID string, activeOnly bool) ([]model.UpsellOffer, error)
	UpdateOffer(ctx context.Context, o *model.UpsellOffer) error
	DeleteOffer(ctx context.Context, id string) error
}
