package storefront

import (
	"context"

	"github.com/tijara/storefront-service/internal/model"
)

type StoreRepository interface {
	FindStoreBySlug(ctx context.Context, slug string) (*model.Store, error)
}
