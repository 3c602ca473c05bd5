package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/tijara/storefront-service/internal/auth"
	"github.com/tijara/storefront-service/internal/inventory"
	"github.com/tijara/storefront-service/internal/inventory/dto"
	invrepo "github.com/tijara/storefront-service/internal/inventory/repository"
	"github.com/tijara/storefront-service/pkg/logger"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.Logger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, logger: log}
}

type adjustRequest struct {
	QuantityChange int    `json:"quantity_change"`
	Reason         string `json:"reason"`
}

func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var req adjustRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	movement, err := h.uc.AdjustStock(c.Context(), &dto.AdjustStockInput{
		StoreID:        auth.GetStoreID(c),
		ProductID:      c.Params("product_id"),
		QuantityChange: req.QuantityChange,
		Reason:         req.Reason,
		ReferenceType:  "manual",
		UserID:         auth.GetUserID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, invrepo.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, invrepo.ErrNotTracked), errors.Is(err, invrepo.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.Error("inventory handler: adjust stock", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(movement)
}

func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	movements, err := h.uc.ListMovements(c.Context(), auth.GetStoreID(c), c.Params("product_id"), limit)
	if err != nil {
		h.logger.Error("inventory handler: list movements", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"items": movements})
}
