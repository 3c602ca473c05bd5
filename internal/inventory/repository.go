package inventory

import (
	"context"

	"github.com/tijara/storefront-service/internal/inventory/dto"
	"github.com/tijara/storefront-service/internal/model"
)

type Repository interface {
	// AdjustStock updates products.stock_quantity and inserts the
	// movement row in one transaction.
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryMovement, error)
	FindMovements(ctx context.Context, storeID, productID string, limit int) ([]model.InventoryMovement, error)
}
