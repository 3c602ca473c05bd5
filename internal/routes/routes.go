package routes

import (
	"github.com/gofiber/fiber/v2"
	builderhandler "github.com/tijara/storefront-service/internal/builder/handler"
	cataloghandler "github.com/tijara/storefront-service/internal/catalog/handler"
	inventoryhandler "github.com/tijara/storefront-service/internal/inventory/handler"
	storefronthandler "github.com/tijara/storefront-service/internal/storefront/handler"
)

type Handlers struct {
	Catalog    *cataloghandler.CatalogHandler
	Builder    *builderhandler.BuilderHandler
	Inventory  *inventoryhandler.InventoryHandler
	Storefront *storefronthandler.StorefrontHandler
}

// Register wires every route. Dashboard routes under /api/v1 are guarded
// by authMiddleware; the /store surface is public.
func Register(app *fiber.App, h Handlers, authMiddleware fiber.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Dashboard (store owner) API
	api := app.Group("/api/v1", authMiddleware)

	products := api.Group("/products")
	products.Post("/", h.Catalog.CreateProduct)
	products.Get("/", h.Catalog.ListProducts)
	products.Get("/:product_id", h.Catalog.GetProduct)
	products.Put("/:product_id", h.Catalog.UpdateProduct)
	products.Delete("/:product_id", h.Catalog.DeleteProduct)

	variants := products.Group("/:product_id/variants")
	variants.Post("/", h.Catalog.AddVariant)
	variants.Get("/", h.Catalog.ListVariants)
	variants.Put("/:variant_id", h.Catalog.UpdateVariant)
	variants.Delete("/:variant_id", h.Catalog.DeleteVariant)

	options := variants.Group("/:variant_id/options")
	options.Post("/", h.Catalog.AddOption)
	options.Put("/:option_id", h.Catalog.UpdateOption)
	options.Delete("/:option_id", h.Catalog.DeleteOption)

	offers := products.Group("/:product_id/offers")
	offers.Post("/", h.Catalog.AddOffer)
	offers.Get("/", h.Catalog.ListOffers)
	offers.Put("/:offer_id", h.Catalog.UpdateOffer)
	offers.Delete("/:offer_id", h.Catalog.DeleteOffer)

	inventory := products.Group("/:product_id/inventory")
	inventory.Post("/adjust", h.Inventory.AdjustStock)
	inventory.Get("/movements", h.Inventory.ListMovements)

	pages := api.Group("/pages")
	pages.Post("/", h.Builder.CreatePage)
	pages.Get("/", h.Builder.ListPages)
	pages.Get("/by-slug/:slug", h.Builder.GetPage)
	pages.Delete("/:page_id", h.Builder.DeletePage)
	pages.Put("/:page_id/blocks", h.Builder.SaveBlocks)
	pages.Put("/:page_id/blocks/order", h.Builder.ReorderBlocks)
	pages.Patch("/:page_id/blocks/:block_id/content", h.Builder.UpdateBlockContent)
	pages.Patch("/:page_id/blocks/:block_id/settings", h.Builder.UpdateBlockSettings)
	pages.Delete("/:page_id/blocks/:block_id", h.Builder.RemoveBlock)

	// Public storefront
	store := app.Group("/store/:slug")
	store.Get("/", h.Storefront.GetPage)
	store.Get("/pages/:page", h.Storefront.GetPage)
	store.Get("/products", h.Storefront.ListProducts)
	store.Get("/products/:product_id", h.Storefront.GetProduct)
	store.Post("/products/:product_id/quote", h.Storefront.Quote)
}
