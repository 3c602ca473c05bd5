package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tijara/storefront-service/internal/auth"
	"github.com/tijara/storefront-service/internal/builder"
	"github.com/tijara/storefront-service/internal/builder/dto"
	"github.com/tijara/storefront-service/internal/builder/usecase"
	"github.com/tijara/storefront-service/internal/model"
	"github.com/tijara/storefront-service/pkg/logger"
	"go.uber.org/zap"
)

type BuilderHandler struct {
	uc     builder.UseCase
	logger logger.Logger
}

func NewBuilderHandler(uc builder.UseCase, log logger.Logger) *BuilderHandler {
	return &BuilderHandler{uc: uc, logger: log}
}

type createPageRequest struct {
	Slug   string               `json:"slug"`
	Title  model.LocalizedText  `json:"title"`
	Blocks []model.ContentBlock `json:"blocks"`
}

func (h *BuilderHandler) CreatePage(c *fiber.Ctx) error {
	var req createPageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.Slug == "" {
		return badRequest(c, "slug is required")
	}

	page, err := h.uc.CreatePage(c.Context(), &dto.CreatePageInput{
		StoreID: auth.GetStoreID(c),
		Slug:    req.Slug,
		Title:   req.Title,
		Blocks:  req.Blocks,
	})
	if err != nil {
		return h.fail(c, err, "create page")
	}
	return c.Status(fiber.StatusCreated).JSON(page)
}

func (h *BuilderHandler) ListPages(c *fiber.Ctx) error {
	pages, err := h.uc.ListPages(c.Context(), auth.GetStoreID(c))
	if err != nil {
		return h.fail(c, err, "list pages")
	}
	return c.JSON(fiber.Map{"items": pages})
}

func (h *BuilderHandler) GetPage(c *fiber.Ctx) error {
	page, err := h.uc.GetPage(c.Context(), auth.GetStoreID(c), c.Params("slug"))
	if err != nil {
		return h.fail(c, err, "get page")
	}
	return c.JSON(page)
}

func (h *BuilderHandler) DeletePage(c *fiber.Ctx) error {
	if err := h.uc.DeletePage(c.Context(), auth.GetStoreID(c), c.Params("page_id")); err != nil {
		return h.fail(c, err, "delete page")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type saveBlocksRequest struct {
	Blocks []model.ContentBlock `json:"blocks"`
}

func (h *BuilderHandler) SaveBlocks(c *fiber.Ctx) error {
	var req saveBlocksRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	page, err := h.uc.SaveBlocks(c.Context(), auth.GetStoreID(c), c.Params("page_id"), req.Blocks)
	if err != nil {
		return h.fail(c, err, "save blocks")
	}
	return c.JSON(page)
}

type updateContentRequest struct {
	Lang  string `json:"lang"`
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *BuilderHandler) UpdateBlockContent(c *fiber.Ctx) error {
	var req updateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.Lang != model.LangAR && req.Lang != model.LangEN {
		return badRequest(c, "lang must be ar or en")
	}
	if req.Field == "" {
		return badRequest(c, "field is required")
	}

	page, err := h.uc.UpdateBlockContent(c.Context(), &dto.UpdateBlockContentInput{
		StoreID: auth.GetStoreID(c),
		PageID:  c.Params("page_id"),
		BlockID: c.Params("block_id"),
		Lang:    req.Lang,
		Field:   req.Field,
		Value:   req.Value,
	})
	if err != nil {
		return h.fail(c, err, "update block content")
	}
	return c.JSON(page)
}

type updateSettingsRequest struct {
	Settings map[string]interface{} `json:"settings"`
}

func (h *BuilderHandler) UpdateBlockSettings(c *fiber.Ctx) error {
	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	page, err := h.uc.UpdateBlockSettings(c.Context(), &dto.UpdateBlockSettingsInput{
		StoreID:  auth.GetStoreID(c),
		PageID:   c.Params("page_id"),
		BlockID:  c.Params("block_id"),
		Settings: req.Settings,
	})
	if err != nil {
		return h.fail(c, err, "update block settings")
	}
	return c.JSON(page)
}

type reorderRequest struct {
	BlockIDs []string `json:"block_ids"`
}

func (h *BuilderHandler) ReorderBlocks(c *fiber.Ctx) error {
	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	page, err := h.uc.ReorderBlocks(c.Context(), auth.GetStoreID(c), c.Params("page_id"), req.BlockIDs)
	if err != nil {
		return h.fail(c, err, "reorder blocks")
	}
	return c.JSON(page)
}

func (h *BuilderHandler) RemoveBlock(c *fiber.Ctx) error {
	page, err := h.uc.RemoveBlock(c.Context(), auth.GetStoreID(c), c.Params("page_id"), c.Params("block_id"))
	if err != nil {
		return h.fail(c, err, "remove block")
	}
	return c.JSON(page)
}

func (h *BuilderHandler) fail(c *fiber.Ctx, err error, op string) error {
	switch {
	case errors.Is(err, usecase.ErrPageNotFound), errors.Is(err, usecase.ErrBlockNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecase.ErrSlugTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	h.logger.Error("builder handler: "+op, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
