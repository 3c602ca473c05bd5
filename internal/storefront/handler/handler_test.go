package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/tijara/storefront-service/config"
	"github.com/tijara/storefront-service/internal/builder"
	"github.com/tijara/storefront-service/internal/catalog"
	"github.com/tijara/storefront-service/internal/model"
	"go.uber.org/zap"
)

type testLogger struct{}

func (testLogger) Debug(string, ...zap.Field) {}
func (testLogger) Info(string, ...zap.Field)  {}
func (testLogger) Warn(string, ...zap.Field)  {}
func (testLogger) Error(string, ...zap.Field) {}
func (testLogger) Fatal(string, ...zap.Field) {}
func (testLogger) Sync() error                { return nil }

type stubStoreRepo struct{}

func (stubStoreRepo) FindStoreBySlug(_ context.Context, slug string) (*model.Store, error) {
	if slug != "demo" {
		return nil, nil
	}
	return &model.Store{
		BaseModel:     model.BaseModel{ID: "store-1"},
		Slug:          "demo",
		DefaultLocale: model.LangEN,
		IsActive:      true,
	}, nil
}

// stubCatalog embeds the interface so only Snapshot needs a real body.
type stubCatalog struct {
	catalog.UseCase
}

func (stubCatalog) Snapshot(_ context.Context, storeID, productID string) (*model.Product, error) {
	return &model.Product{
		BaseModel: model.BaseModel{ID: productID},
		StoreID:   storeID,
		Price:     50,
		Status:    model.ProductActive,
	}, nil
}

type stubBuilder struct {
	builder.UseCase
}

func quoteApp() *fiber.App {
	h := NewStorefrontHandler(stubStoreRepo{}, stubCatalog{}, stubBuilder{}, nil, testLogger{}, config.CacheConfig{})
	app := fiber.New()
	app.Post("/store/:slug/products/:product_id/quote", h.Quote)
	return app
}

func postQuote(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/store/demo/products/prod-1/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestQuoteRejectsZeroQuantity(t *testing.T) {
	app := quoteApp()
	if code := postQuote(t, app, `{"quantity":0}`); code != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestQuoteRejectsExcessiveQuantity(t *testing.T) {
	// The endpoint is public and the engine allocates per item, so an
	// attacker-chosen quantity must be bounded before pricing runs.
	app := quoteApp()
	if code := postQuote(t, app, `{"quantity":2000000}`); code != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestQuoteAcceptsBoundedQuantity(t *testing.T) {
	app := quoteApp()
	if code := postQuote(t, app, `{"quantity":3}`); code != fiber.StatusOK {
		t.Errorf("status = %d, want 200", code)
	}
	if code := postQuote(t, app, `{"quantity":1000}`); code != fiber.StatusOK {
		t.Errorf("quantity at the cap should price, status = %d", code)
	}
}
