package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/tijara/storefront-service/internal/inventory/dto"
	"github.com/tijara/storefront-service/internal/model"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrNotTracked        = errors.New("product does not track inventory")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryMovement, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin adjust stock")
	}
	defer tx.Rollback()

	var row struct {
		StockQuantity  int  `db:"stock_quantity"`
		TrackInventory bool `db:"track_inventory"`
	}
	err = tx.GetContext(ctx, &row,
		`SELECT stock_quantity, track_inventory FROM products WHERE id = $1 AND store_id = $2 FOR UPDATE`,
		input.ProductID, input.StoreID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrap(err, "lock product row")
	}
	if !row.TrackInventory {
		return nil, ErrNotTracked
	}

	after := row.StockQuantity + input.QuantityChange
	if after < 0 {
		return nil, errors.Wrapf(ErrInsufficientStock,
			"product %s: have %d, change %d", input.ProductID, row.StockQuantity, input.QuantityChange)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE products SET stock_quantity = $1, updated_at = NOW() WHERE id = $2 AND store_id = $3`,
		after, input.ProductID, input.StoreID); err != nil {
		return nil, errors.Wrap(err, "update stock")
	}

	movement := &model.InventoryMovement{
		ID:             uuid.New().String(),
		StoreID:        input.StoreID,
		ProductID:      input.ProductID,
		MovementType:   movementType(input.QuantityChange),
		QuantityChange: input.QuantityChange,
		QuantityBefore: row.StockQuantity,
		QuantityAfter:  after,
		Notes:          input.Reason,
		CreatedAt:      time.Now(),
	}
	if input.ReferenceType != "" {
		movement.ReferenceType = &input.ReferenceType
	}
	if input.ReferenceID != "" {
		movement.ReferenceID = &input.ReferenceID
	}
	if input.UserID != "" {
		movement.CreatedBy = &input.UserID
	}

	query := `
        INSERT INTO inventory_movements (
            id, store_id, product_id, movement_type, quantity_change,
            quantity_before, quantity_after, reference_type, reference_id,
            notes, created_by, created_at
        )
        VALUES (
            :id, :store_id, :product_id, :movement_type, :quantity_change,
            :quantity_before, :quantity_after, :reference_type, :reference_id,
            :notes, :created_by, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, movement); err != nil {
		return nil, errors.Wrap(err, "insert movement")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit adjust stock")
	}
	return movement, nil
}

func (r *PGRepository) FindMovements(ctx context.Context, storeID, productID string, limit int) ([]model.InventoryMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(
		`SELECT * FROM inventory_movements WHERE store_id = $1 AND product_id = $2 ORDER BY created_at DESC LIMIT %d`,
		limit)

	var movements []model.InventoryMovement
	err := r.DB.SelectContext(ctx, &movements, query, storeID, productID)
	return movements, errors.Wrap(err, "list movements")
}

func movementType(change int) string {
	if change < 0 {
		return "deduction"
	}
	return "addition"
}
