package builder

import (
	"context"

	"github.com/tijara/storefront-service/internal/builder/dto"
	"github.com/tijara/storefront-service/internal/model"
)

type UseCase interface {
	CreatePage(ctx context.Context, input *dto.CreatePageInput) (*model.Page, error)
	GetPage(ctx context.Context, storeID, slug string) (*model.Page, error)
	ListPages(ctx context.Context, storeID string) ([]model.Page, error)
	DeletePage(ctx context.Context, storeID, pageID string) error

	// SaveBlocks replaces the page's entire block list (create, delete and
	// reorder are all expressed as whole-list replacement).
	SaveBlocks(ctx context.Context, storeID, pageID string, blocks []model.ContentBlock) (*model.Page, error)

	// UpdateBlockContent merges one editable field for one language,
	// leaving the other language's sub-value untouched.
	UpdateBlockContent(ctx context.Context, input *dto.UpdateBlockContentInput) (*model.Page, error)

	// UpdateBlockSettings shallow-merges setting keys into the block.
	UpdateBlockSettings(ctx context.Context, input *dto.UpdateBlockSettingsInput) (*model.Page, error)

	// ReorderBlocks rewrites the list in the order of the given block ids.
	ReorderBlocks(ctx context.Context, storeID, pageID string, blockIDs []string) (*model.Page, error)

	RemoveBlock(ctx context.Context, storeID, pageID, blockID string) (*model.Page, error)
}
