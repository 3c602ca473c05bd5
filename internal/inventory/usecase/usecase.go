package usecase

import (
	"context"
	"fmt"

	"github.com/tijara/storefront-service/internal/inventory"
	"github.com/tijara/storefront-service/internal/inventory/dto"
	"github.com/tijara/storefront-service/internal/model"
	"github.com/tijara/storefront-service/pkg/cache"
	"github.com/tijara/storefront-service/pkg/logger"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	cache  *cache.RedisClient
	logger logger.Logger
}

func NewInventoryUseCase(repo inventory.Repository, cache *cache.RedisClient, log logger.Logger) inventory.UseCase {
	return &inventoryUseCase{repo: repo, cache: cache, logger: log}
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryMovement, error) {
	if input.QuantityChange == 0 {
		return nil, fmt.Errorf("quantity_change must be non-zero")
	}

	movement, err := uc.repo.AdjustStock(ctx, input)
	if err != nil {
		return nil, err
	}

	// Stock lives on the product row, so cached snapshots and listings
	// are stale after an adjustment.
	uc.invalidateProduct(ctx, input.StoreID, input.ProductID)

	return movement, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, storeID, productID string, limit int) ([]model.InventoryMovement, error) {
	return uc.repo.FindMovements(ctx, storeID, productID, limit)
}

func (uc *inventoryUseCase) invalidateProduct(ctx context.Context, storeID, productID string) {
	if uc.cache == nil {
		return
	}
	uc.cache.Client.Del(ctx, fmt.Sprintf("catalog:snapshot:%s:%s", storeID, productID))
	pattern := fmt.Sprintf("catalog:list:%s:*", storeID)
	if err := uc.cache.DeletePattern(ctx, pattern); err != nil {
		uc.logger.Error("stock cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
