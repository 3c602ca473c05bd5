package builder

import (
	"context"

	"github.com/tijara/storefront-service/internal/model"
)

type Repository interface {
	CreatePage(ctx context.Context, p *model.Page) error
	FindPageByID(ctx context.Context, storeID, id string) (*model.Page, error)
	FindPageBySlug(ctx context.Context, storeID, slug string) (*model.Page, error)
	FindPages(ctx context.Context, storeID string) ([]model.Page, error)
	// ReplacePage persists the page with its full block list in one write.
	ReplacePage(ctx context.Context, p *model.Page) error
	DeletePage(ctx context.Context, storeID, id string) error
}
