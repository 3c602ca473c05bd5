package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/tijara/storefront-service/config"
	"github.com/tijara/storefront-service/internal/builder"
	"github.com/tijara/storefront-service/internal/builder/render"
	builderuc "github.com/tijara/storefront-service/internal/builder/usecase"
	"github.com/tijara/storefront-service/internal/catalog"
	catalogdto "github.com/tijara/storefront-service/internal/catalog/dto"
	cataloguc "github.com/tijara/storefront-service/internal/catalog/usecase"
	"github.com/tijara/storefront-service/internal/model"
	"github.com/tijara/storefront-service/internal/pricing"
	"github.com/tijara/storefront-service/internal/storefront"
	"github.com/tijara/storefront-service/pkg/cache"
	"github.com/tijara/storefront-service/pkg/logger"
	"go.uber.org/zap"
)

// StorefrontHandler serves the public, unauthenticated surface: the
// rendered page, product listings and price quotes.
type StorefrontHandler struct {
	stores   storefront.StoreRepository
	catalog  catalog.UseCase
	builder  builder.UseCase
	cache    *cache.RedisClient
	logger   logger.Logger
	cacheCfg config.CacheConfig
}

func NewStorefrontHandler(
	stores storefront.StoreRepository,
	catalogUC catalog.UseCase,
	builderUC builder.UseCase,
	cache *cache.RedisClient,
	log logger.Logger,
	cacheCfg config.CacheConfig,
) *StorefrontHandler {
	return &StorefrontHandler{
		stores:   stores,
		catalog:  catalogUC,
		builder:  builderUC,
		cache:    cache,
		logger:   log,
		cacheCfg: cacheCfg,
	}
}

// GetPage renders a storefront page. The rendered HTML is cached per
// (store, page, language) and invalidated when the page is saved.
func (h *StorefrontHandler) GetPage(c *fiber.Ctx) error {
	store, err := h.resolveStore(c)
	if err != nil || store == nil {
		return h.storeError(c, err)
	}

	pageSlug := c.Params("page", "home")
	lang := h.lang(c, store)

	cacheKey := fmt.Sprintf("storefront:page:%s:%s:%s", store.ID, pageSlug, lang)
	if h.cache != nil {
		if cached, err := h.cache.Client.Get(c.Context(), cacheKey).Result(); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.SendString(cached)
		}
	}

	page, err := h.builder.GetPage(c.Context(), store.ID, pageSlug)
	if err != nil {
		if errors.Is(err, builderuc.ErrPageNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "page not found"})
		}
		h.logger.Error("storefront: get page", zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	html := render.Render(page.Blocks, lang)
	if h.cache != nil {
		h.cache.Client.Set(c.Context(), cacheKey, html, h.cacheCfg.PageTTL)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// ListProducts lists the store's active products. Search and list
// caching are handled by the catalog layer.
func (h *StorefrontHandler) ListProducts(c *fiber.Ctx) error {
	store, err := h.resolveStore(c)
	if err != nil || store == nil {
		return h.storeError(c, err)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "24"))

	products, total, err := h.catalog.ListProducts(c.Context(), &catalogdto.ProductFilters{
		StoreID:     store.ID,
		Status:      string(model.ProductActive),
		SearchQuery: c.Query("q"),
		SortBy:      c.Query("sort_by", "sort_order"),
		SortOrder:   c.Query("sort_order", "asc"),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		h.logger.Error("storefront: list products", zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{"items": products, "total": total})
}

// GetProduct returns the full configuration snapshot a product page
// needs: variants with options and active offers.
func (h *StorefrontHandler) GetProduct(c *fiber.Ctx) error {
	store, err := h.resolveStore(c)
	if err != nil || store == nil {
		return h.storeError(c, err)
	}

	p, err := h.catalog.Snapshot(c.Context(), store.ID, c.Params("product_id"))
	if err != nil {
		if errors.Is(err, cataloguc.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		h.logger.Error("storefront: product snapshot", zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if p.Status != model.ProductActive {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}

	return c.JSON(p)
}

// maxQuoteQuantity bounds a single quote line. The engine allocates one
// selection map and one cart entry per physical item, and this endpoint
// is unauthenticated, so quantity must be capped before pricing runs.
const maxQuoteQuantity = 1000

type quoteRequest struct {
	Quantity   int                          `json:"quantity"`
	Selections map[string]map[string]string `json:"selections"` // item index -> variant id -> option id
}

type quoteResponse struct {
	RawTotal        float64              `json:"raw_total"`
	Discount        float64              `json:"discount"`
	FinalTotal      float64              `json:"final_total"`
	UnitPrice       float64              `json:"unit_price"`
	Offer           *model.UpsellOffer   `json:"offer,omitempty"`
	Selections      pricing.SelectionSet `json:"selections"`
	MissingRequired []pricing.Missing    `json:"missing_required"`
	Items           []model.CartItem     `json:"items"`
}

// Quote prices a configured line: reconciles the submitted selections
// against the product's variants, computes the total with the best
// applicable offer, and emits one cart entry per physical item. Missing
// required selections are reported, not rejected; the checkout flow
// decides what to do with them.
func (h *StorefrontHandler) Quote(c *fiber.Ctx) error {
	store, err := h.resolveStore(c)
	if err != nil || store == nil {
		return h.storeError(c, err)
	}

	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantity must be at least 1"})
	}
	if req.Quantity > maxQuoteQuantity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("quantity must not exceed %d", maxQuoteQuantity),
		})
	}

	p, err := h.catalog.Snapshot(c.Context(), store.ID, c.Params("product_id"))
	if err != nil {
		if errors.Is(err, cataloguc.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		h.logger.Error("storefront: quote snapshot", zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	prev := make(pricing.SelectionSet, len(req.Selections))
	for key, choices := range req.Selections {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "selection indices must be non-negative integers"})
		}
		prev[idx] = choices
	}

	sel := pricing.Reconcile(prev, p.Variants, req.Quantity)
	quote := pricing.ComputeQuote(*p, p.Variants, sel, p.Offers, req.Quantity)
	missing := pricing.MissingRequired(sel, p.Variants, req.Quantity)
	items := pricing.CartItems(*p, p.Variants, sel, p.Offers, req.Quantity)

	// Rounding happens here, at the presentation boundary only.
	return c.JSON(quoteResponse{
		RawTotal:        pricing.Round2(quote.RawTotal),
		Discount:        pricing.Round2(quote.Discount),
		FinalTotal:      pricing.Round2(quote.FinalTotal),
		UnitPrice:       pricing.Round2(quote.UnitPrice),
		Offer:           quote.Offer,
		Selections:      sel,
		MissingRequired: missing,
		Items:           items,
	})
}

func (h *StorefrontHandler) resolveStore(c *fiber.Ctx) (*model.Store, error) {
	return h.stores.FindStoreBySlug(c.Context(), c.Params("slug"))
}

func (h *StorefrontHandler) storeError(c *fiber.Ctx, err error) error {
	if err != nil {
		h.logger.Error("storefront: resolve store", zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "store not found"})
}

func (h *StorefrontHandler) lang(c *fiber.Ctx, store *model.Store) string {
	lang := c.Query("lang", store.DefaultLocale)
	if lang != model.LangAR && lang != model.LangEN {
		lang = model.LangEN
	}
	return lang
}
