package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tijara/storefront-service/internal/builder"
	"github.com/tijara/storefront-service/internal/builder/dto"
	"github.com/tijara/storefront-service/internal/model"
	"github.com/tijara/storefront-service/pkg/cache"
	"github.com/tijara/storefront-service/pkg/logger"
	"go.uber.org/zap"
)

var (
	ErrPageNotFound  = errors.New("page not found")
	ErrBlockNotFound = errors.New("block not found")
	ErrSlugTaken     = errors.New("slug already in use")
)

type builderUseCase struct {
	repo   builder.Repository
	cache  *cache.RedisClient
	logger logger.Logger
}

func NewBuilderUseCase(repo builder.Repository, cache *cache.RedisClient, log logger.Logger) builder.UseCase {
	return &builderUseCase{repo: repo, cache: cache, logger: log}
}

func (uc *builderUseCase) CreatePage(ctx context.Context, input *dto.CreatePageInput) (*model.Page, error) {
	existing, err := uc.repo.FindPageBySlug(ctx, input.StoreID, input.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	now := time.Now()
	page := &model.Page{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		StoreID:   input.StoreID,
		Slug:      input.Slug,
		Title:     input.Title,
		Blocks:    normalizeBlocks(input.Blocks),
	}

	if err := uc.repo.CreatePage(ctx, page); err != nil {
		return nil, err
	}

	uc.invalidatePage(ctx, page.StoreID, page.Slug)
	return page, nil
}

func (uc *builderUseCase) GetPage(ctx context.Context, storeID, slug string) (*model.Page, error) {
	page, err := uc.repo.FindPageBySlug(ctx, storeID, slug)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrPageNotFound
	}
	return page, nil
}

func (uc *builderUseCase) ListPages(ctx context.Context, storeID string) ([]model.Page, error) {
	return uc.repo.FindPages(ctx, storeID)
}

func (uc *builderUseCase) DeletePage(ctx context.Context, storeID, pageID string) error {
	page, err := uc.repo.FindPageByID(ctx, storeID, pageID)
	if err != nil {
		return err
	}
	if page == nil {
		return nil // Already deleted
	}

	if err := uc.repo.DeletePage(ctx, storeID, pageID); err != nil {
		return err
	}
	uc.invalidatePage(ctx, storeID, page.Slug)
	return nil
}

func (uc *builderUseCase) SaveBlocks(ctx context.Context, storeID, pageID string, blocks []model.ContentBlock) (*model.Page, error) {
	page, err := uc.repo.FindPageByID(ctx, storeID, pageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrPageNotFound
	}

	page.Blocks = normalizeBlocks(blocks)
	return uc.persist(ctx, page)
}

func (uc *builderUseCase) UpdateBlockContent(ctx context.Context, input *dto.UpdateBlockContentInput) (*model.Page, error) {
	page, err := uc.repo.FindPageByID(ctx, input.StoreID, input.PageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrPageNotFound
	}

	idx := blockIndex(page.Blocks, input.BlockID)
	if idx < 0 {
		return nil, ErrBlockNotFound
	}

	block := &page.Blocks[idx]
	if block.Content == nil {
		block.Content = make(map[string]model.LocalizedText)
	}
	// Partial merge: only the active language's sub-value changes.
	text := block.Content[input.Field]
	text.Set(input.Lang, input.Value)
	block.Content[input.Field] = text

	return uc.persist(ctx, page)
}

func (uc *builderUseCase) UpdateBlockSettings(ctx context.Context, input *dto.UpdateBlockSettingsInput) (*model.Page, error) {
	page, err := uc.repo.FindPageByID(ctx, input.StoreID, input.PageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrPageNotFound
	}

	idx := blockIndex(page.Blocks, input.BlockID)
	if idx < 0 {
		return nil, ErrBlockNotFound
	}

	block := &page.Blocks[idx]
	if block.Settings == nil {
		block.Settings = make(map[string]interface{})
	}
	for k, v := range input.Settings {
		block.Settings[k] = v
	}

	return uc.persist(ctx, page)
}

func (uc *builderUseCase) ReorderBlocks(ctx context.Context, storeID, pageID string, blockIDs []string) (*model.Page, error) {
	page, err := uc.repo.FindPageByID(ctx, storeID, pageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrPageNotFound
	}
	if len(blockIDs) != len(page.Blocks) {
		return nil, fmt.Errorf("reorder list has %d ids, page has %d blocks", len(blockIDs), len(page.Blocks))
	}

	byID := make(map[string]model.ContentBlock, len(page.Blocks))
	for _, b := range page.Blocks {
		byID[b.ID] = b
	}

	reordered := make(model.BlockList, 0, len(blockIDs))
	for _, id := range blockIDs {
		b, ok := byID[id]
		if !ok {
			return nil, ErrBlockNotFound
		}
		reordered = append(reordered, b)
	}

	page.Blocks = reordered
	return uc.persist(ctx, page)
}

func (uc *builderUseCase) RemoveBlock(ctx context.Context, storeID, pageID, blockID string) (*model.Page, error) {
	page, err := uc.repo.FindPageByID(ctx, storeID, pageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrPageNotFound
	}

	idx := blockIndex(page.Blocks, blockID)
	if idx < 0 {
		return nil, ErrBlockNotFound
	}

	page.Blocks = append(page.Blocks[:idx], page.Blocks[idx+1:]...)
	return uc.persist(ctx, page)
}

func (uc *builderUseCase) persist(ctx context.Context, page *model.Page) (*model.Page, error) {
	page.UpdatedAt = time.Now()
	if err := uc.repo.ReplacePage(ctx, page); err != nil {
		return nil, err
	}
	uc.invalidatePage(ctx, page.StoreID, page.Slug)
	return page, nil
}

func (uc *builderUseCase) invalidatePage(ctx context.Context, storeID, slug string) {
	if uc.cache == nil {
		return
	}
	pattern := fmt.Sprintf("storefront:page:%s:%s:*", storeID, slug)
	if err := uc.cache.DeletePattern(ctx, pattern); err != nil {
		uc.logger.Error("page cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

// normalizeBlocks assigns ids to new blocks and guarantees id uniqueness
// within the list (later duplicates get fresh ids).
func normalizeBlocks(blocks []model.ContentBlock) model.BlockList {
	seen := make(map[string]bool, len(blocks))
	out := make(model.BlockList, len(blocks))
	for i, b := range blocks {
		if b.ID == "" || seen[b.ID] {
			b.ID = uuid.New().String()
		}
		seen[b.ID] = true
		out[i] = b
	}
	return out
}

func blockIndex(blocks model.BlockList, id string) int {
	for i, b := range blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
