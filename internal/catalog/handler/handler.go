package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tijara/storefront-service/internal/auth"
	"github.com/tijara/storefront-service/internal/catalog"
	"github.com/tijara/storefront-service/internal/catalog/dto"
	"github.com/tijara/storefront-service/internal/catalog/usecase"
	"github.com/tijara/storefront-service/internal/model"
	"github.com/tijara/storefront-service/pkg/logger"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.Logger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: log}
}

type productRequest struct {
	Name           model.LocalizedText `json:"name"`
	Description    model.LocalizedText `json:"description"`
	Price          float64             `json:"price"`
	CompareAtPrice float64             `json:"compare_at_price"`
	StockQuantity  int                 `json:"stock_quantity"`
	TrackInventory bool                `json:"track_inventory"`
	Status         string              `json:"status"`
	Images         []string            `json:"images"`
	SortOrder      int                 `json:"sort_order"`
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	p, err := h.uc.CreateProduct(c.Context(), &dto.CreateProductInput{
		StoreID:        auth.GetStoreID(c),
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		StockQuantity:  req.StockQuantity,
		TrackInventory: req.TrackInventory,
		Status:         req.Status,
		Images:         req.Images,
		SortOrder:      req.SortOrder,
	})
	if err != nil {
		return h.fail(c, err, "create product")
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(c.Context(), auth.GetStoreID(c), c.Params("product_id"))
	if err != nil {
		return h.fail(c, err, "get product")
	}
	if p == nil {
		return notFound(c, "product not found")
	}
	return c.JSON(p)
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	products, total, err := h.uc.ListProducts(c.Context(), &dto.ProductFilters{
		StoreID:     auth.GetStoreID(c),
		Status:      c.Query("status"),
		SearchQuery: c.Query("q"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		return h.fail(c, err, "list products")
	}
	return c.JSON(fiber.Map{"items": products, "total": total})
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	p, err := h.uc.UpdateProduct(c.Context(), &dto.UpdateProductInput{
		ID:             c.Params("product_id"),
		StoreID:        auth.GetStoreID(c),
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		StockQuantity:  req.StockQuantity,
		TrackInventory: req.TrackInventory,
		Status:         req.Status,
		Images:         req.Images,
		SortOrder:      req.SortOrder,
	})
	if err != nil {
		return h.fail(c, err, "update product")
	}
	return c.JSON(p)
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.uc.DeleteProduct(c.Context(), auth.GetStoreID(c), c.Params("product_id")); err != nil {
		return h.fail(c, err, "delete product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ---- variants ----

type variantRequest struct {
	Name        model.LocalizedText `json:"name"`
	DisplayType string              `json:"display_type"`
	OptionType  string              `json:"option_type"`
	Required    bool                `json:"required"`
	SortOrder   int                 `json:"sort_order"`
}

func (h *CatalogHandler) AddVariant(c *fiber.Ctx) error {
	var req variantRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	v, err := h.uc.AddVariant(c.Context(), &dto.CreateVariantInput{
		StoreID:     auth.GetStoreID(c),
		ProductID:   c.Params("product_id"),
		Name:        req.Name,
		DisplayType: req.DisplayType,
		OptionType:  req.OptionType,
		Required:    req.Required,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return h.fail(c, err, "add variant")
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *CatalogHandler) UpdateVariant(c *fiber.Ctx) error {
	var req variantRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	v, err := h.uc.UpdateVariant(c.Context(), &dto.UpdateVariantInput{
		ID:          c.Params("variant_id"),
		StoreID:     auth.GetStoreID(c),
		ProductID:   c.Params("product_id"),
		Name:        req.Name,
		DisplayType: req.DisplayType,
		OptionType:  req.OptionType,
		Required:    req.Required,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return h.fail(c, err, "update variant")
	}
	return c.JSON(v)
}

func (h *CatalogHandler) DeleteVariant(c *fiber.Ctx) error {
	err := h.uc.DeleteVariant(c.Context(), auth.GetStoreID(c), c.Params("product_id"), c.Params("variant_id"))
	if err != nil {
		return h.fail(c, err, "delete variant")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) ListVariants(c *fiber.Ctx) error {
	variants, err := h.uc.ListVariants(c.Context(), auth.GetStoreID(c), c.Params("product_id"))
	if err != nil {
		return h.fail(c, err, "list variants")
	}
	return c.JSON(fiber.Map{"items": variants})
}

// ---- options ----

type optionRequest struct {
	Label         model.LocalizedText `json:"label"`
	Value         string              `json:"value"`
	PriceModifier float64             `json:"price_modifier"`
	IsDefault     bool                `json:"is_default"`
	SortOrder     int                 `json:"sort_order"`
}

func (h *CatalogHandler) AddOption(c *fiber.Ctx) error {
	var req optionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	o, err := h.uc.AddOption(c.Context(), &dto.CreateOptionInput{
		StoreID:       auth.GetStoreID(c),
		ProductID:     c.Params("product_id"),
		VariantID:     c.Params("variant_id"),
		Label:         req.Label,
		Value:         req.Value,
		PriceModifier: req.PriceModifier,
		IsDefault:     req.IsDefault,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		return h.fail(c, err, "add option")
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (h *CatalogHandler) UpdateOption(c *fiber.Ctx) error {
	var req optionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	o, err := h.uc.UpdateOption(c.Context(), &dto.UpdateOptionInput{
		ID:            c.Params("option_id"),
		StoreID:       auth.GetStoreID(c),
		ProductID:     c.Params("product_id"),
		VariantID:     c.Params("variant_id"),
		Label:         req.Label,
		Value:         req.Value,
		PriceModifier: req.PriceModifier,
		IsDefault:     req.IsDefault,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		return h.fail(c, err, "update option")
	}
	return c.JSON(o)
}

func (h *CatalogHandler) DeleteOption(c *fiber.Ctx) error {
	err := h.uc.DeleteOption(c.Context(), auth.GetStoreID(c),
		c.Params("product_id"), c.Params("variant_id"), c.Params("option_id"))
	if err != nil {
		return h.fail(c, err, "delete option")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ---- offers ----

type offerRequest struct {
	MinQuantity   int                 `json:"min_quantity"`
	DiscountType  string              `json:"discount_type"`
	DiscountValue float64             `json:"discount_value"`
	Label         model.LocalizedText `json:"label"`
	Badge         model.LocalizedText `json:"badge"`
	IsActive      bool                `json:"is_active"`
	SortOrder     int                 `json:"sort_order"`
}

func (h *CatalogHandler) AddOffer(c *fiber.Ctx) error {
	var req offerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	o, err := h.uc.AddOffer(c.Context(), &dto.CreateOfferInput{
		StoreID:       auth.GetStoreID(c),
		ProductID:     c.Params("product_id"),
		MinQuantity:   req.MinQuantity,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Label:         req.Label,
		Badge:         req.Badge,
		IsActive:      req.IsActive,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		return h.fail(c, err, "add offer")
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (h *CatalogHandler) UpdateOffer(c *fiber.Ctx) error {
	var req offerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	o, err := h.uc.UpdateOffer(c.Context(), &dto.UpdateOfferInput{
		ID:            c.Params("offer_id"),
		StoreID:       auth.GetStoreID(c),
		ProductID:     c.Params("product_id"),
		MinQuantity:   req.MinQuantity,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Label:         req.Label,
		Badge:         req.Badge,
		IsActive:      req.IsActive,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		return h.fail(c, err, "update offer")
	}
	return c.JSON(o)
}

func (h *CatalogHandler) DeleteOffer(c *fiber.Ctx) error {
	err := h.uc.DeleteOffer(c.Context(), auth.GetStoreID(c), c.Params("product_id"), c.Params("offer_id"))
	if err != nil {
		return h.fail(c, err, "delete offer")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) ListOffers(c *fiber.Ctx) error {
	offers, err := h.uc.ListOffers(c.Context(), auth.GetStoreID(c), c.Params("product_id"))
	if err != nil {
		return h.fail(c, err, "list offers")
	}
	return c.JSON(fiber.Map{"items": offers})
}

// ---- error mapping ----

func (h *CatalogHandler) fail(c *fiber.Ctx, err error, op string) error {
	switch {
	case errors.Is(err, usecase.ErrProductNotFound),
		errors.Is(err, usecase.ErrVariantNotFound),
		errors.Is(err, usecase.ErrOptionNotFound),
		errors.Is(err, usecase.ErrOfferNotFound):
		return notFound(c, err.Error())
	}
	h.logger.Error("catalog handler: "+op, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}
