package inventory

import (
	"context"

	"github.com/tijara/storefront-service/internal/inventory/dto"
	"github.com/tijara/storefront-service/internal/model"
)

type UseCase interface {
	// AdjustStock applies a signed stock change to a tracked product and
	// records a movement row. Fails when the change would drive stock
	// below zero.
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryMovement, error)
	ListMovements(ctx context.Context, storeID, productID string, limit int) ([]model.InventoryMovement, error)
}
