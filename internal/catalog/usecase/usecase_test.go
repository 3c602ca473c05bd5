package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/tijara/storefront-service/config"
	"github.com/tijara/storefront-service/internal/catalog"
	"github.com/tijara/storefront-service/internal/catalog/dto"
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

// fakeCatalogRepo keeps everything in maps. SetDefaultOption mimics the
// transactional clear-then-set the Postgres repository performs.
type fakeCatalogRepo struct {
	products map[string]*model.Product
	variants map[string]*model.Variant
	options  map[string]*model.VariantOption
	offers   map[string]*model.UpsellOffer

	defaultCalls []string // "variantID/optionID" per SetDefaultOption call
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		products: make(map[string]*model.Product),
		variants: make(map[string]*model.Variant),
		options:  make(map[string]*model.VariantOption),
		offers:   make(map[string]*model.UpsellOffer),
	}
}

func (r *fakeCatalogRepo) CreateProduct(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeCatalogRepo) FindProductByID(_ context.Context, storeID, id string) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.StoreID != storeID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeCatalogRepo) FindProducts(_ context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.StoreID == filters.StoreID {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (r *fakeCatalogRepo) UpdateProduct(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeCatalogRepo) DeleteProduct(_ context.Context, storeID, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeCatalogRepo) CreateVariant(_ context.Context, v *model.Variant) error {
	r.variants[v.ID] = v
	return nil
}

func (r *fakeCatalogRepo) FindVariantByID(_ context.Context, id string) (*model.Variant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeCatalogRepo) FindVariants(_ context.Context, productID string) ([]model.Variant, error) {
	var out []model.Variant
	for _, v := range r.variants {
		if v.ProductID == productID {
			cp := *v
			for _, o := range r.options {
				if o.VariantID == v.ID {
					cp.Options = append(cp.Options, *o)
				}
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) UpdateVariant(_ context.Context, v *model.Variant) error {
	r.variants[v.ID] = v
	return nil
}

func (r *fakeCatalogRepo) DeleteVariant(_ context.Context, id string) error {
	delete(r.variants, id)
	return nil
}

func (r *fakeCatalogRepo) CreateOption(_ context.Context, o *model.VariantOption) error {
	cp := *o
	r.options[o.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) FindOptionByID(_ context.Context, id string) (*model.VariantOption, error) {
	o, ok := r.options[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeCatalogRepo) FindOptions(_ context.Context, variantID string) ([]model.VariantOption, error) {
	var out []model.VariantOption
	for _, o := range r.options {
		if o.VariantID == variantID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) UpdateOption(_ context.Context, o *model.VariantOption) error {
	cp := *o
	r.options[o.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) DeleteOption(_ context.Context, id string) error {
	delete(r.options, id)
	return nil
}

func (r *fakeCatalogRepo) SetDefaultOption(_ context.Context, variantID, optionID string) error {
	r.defaultCalls = append(r.defaultCalls, variantID+"/"+optionID)
	for _, o := range r.options {
		if o.VariantID == variantID {
			o.IsDefault = o.ID == optionID
		}
	}
	return nil
}

func (r *fakeCatalogRepo) CreateOffer(_ context.Context, o *model.UpsellOffer) error {
	r.offers[o.ID] = o
	return nil
}

func (r *fakeCatalogRepo) FindOfferByID(_ context.Context, id string) (*model.UpsellOffer, error) {
	o, ok := r.offers[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeCatalogRepo) FindOffers(_ context.Context, productID string, activeOnly bool) ([]model.UpsellOffer, error) {
	var out []model.UpsellOffer
	for _, o := range r.offers {
		if o.ProductID != productID {
			continue
		}
		if activeOnly && !o.IsActive {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeCatalogRepo) UpdateOffer(_ context.Context, o *model.UpsellOffer) error {
	r.offers[o.ID] = o
	return nil
}

func (r *fakeCatalogRepo) DeleteOffer(_ context.Context, id string) error {
	delete(r.offers, id)
	return nil
}

var _ catalog.Repository = (*fakeCatalogRepo)(nil)

func seedProduct(r *fakeCatalogRepo) *model.Product {
	p := &model.Product{
		BaseModel: model.BaseModel{ID: "prod-1"},
		StoreID:   "store-1",
		Name:      model.LocalizedText{EN: "Shirt"},
		Price:     100,
		Status:    model.ProductActive,
	}
	r.products[p.ID] = p
	return p
}

func seedVariant(r *fakeCatalogRepo, id string) *model.Variant {
	v := &model.Variant{
		BaseModel: model.BaseModel{ID: id},
		ProductID: "prod-1",
		Required:  true,
	}
	r.variants[v.ID] = v
	return v
}

func newTestUC(repo *fakeCatalogRepo) catalog.UseCase {
	return NewCatalogUseCase(repo, nil, nil, testLogger{}, config.CacheConfig{})
}

func TestAddOptionDefaultClearsSiblings(t *testing.T) {
	repo := newFakeCatalogRepo()
	seedProduct(repo)
	seedVariant(repo, "var-1")
	uc := newTestUC(repo)
	ctx := context.Background()

	first, err := uc.AddOption(ctx, &dto.CreateOptionInput{
		StoreID: "store-1", ProductID: "prod-1", VariantID: "var-1",
		Value: "S", IsDefault: true,
	})
	if err != nil {
		t.Fatalf("AddOption: %v", err)
	}
	second, err := uc.AddOption(ctx, &dto.CreateOptionInput{
		StoreID: "store-1", ProductID: "prod-1", VariantID: "var-1",
		Value: "M", IsDefault: true,
	})
	if err != nil {
		t.Fatalf("AddOption: %v", err)
	}

	if repo.options[first.ID].IsDefault {
		t.Error("first option should have lost its default flag")
	}
	if !repo.options[second.ID].IsDefault {
		t.Error("second option should be the default")
	}
	if len(repo.defaultCalls) != 2 {
		t.Errorf("SetDefaultOption calls = %d, want 2", len(repo.defaultCalls))
	}
}

func TestAddOptionNonDefaultSkipsClear(t *testing.T) {
	repo := newFakeCatalogRepo()
	seedProduct(repo)
	seedVariant(repo, "var-1")
	uc := newTestUC(repo)

	if _, err := uc.AddOption(context.Background(), &dto.CreateOptionInput{
		StoreID: "store-1", ProductID: "prod-1", VariantID: "var-1", Value: "S",
	}); err != nil {
		t.Fatalf("AddOption: %v", err)
	}
	if len(repo.defaultCalls) != 0 {
		t.Errorf("SetDefaultOption should not run for non-default options")
	}
}

func TestAddVariantRequiresOwnedProduct(t *testing.T) {
	repo := newFakeCatalogRepo()
	seedProduct(repo)
	uc := newTestUC(repo)

	_, err := uc.AddVariant(context.Background(), &dto.CreateVariantInput{
		StoreID: "other-store", ProductID: "prod-1",
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("cross-store write must fail as not found, got %v", err)
	}
}

func TestAddVariantDefaults(t *testing.T) {
	repo := newFakeCatalogRepo()
	seedProduct(repo)
	uc := newTestUC(repo)

	v, err := uc.AddVariant(context.Background(), &dto.CreateVariantInput{
		StoreID: "store-1", ProductID: "prod-1",
	})
	if err != nil {
		t.Fatalf("AddVariant: %v", err)
	}
	if v.DisplayType != model.DisplayButtons {
		t.Errorf("DisplayType = %q, want buttons", v.DisplayType)
	}
	if v.OptionType != model.OptionText {
		t.Errorf("OptionType = %q, want text", v.OptionType)
	}
}

func TestUpdateVariantDefaultsEmptyEnums(t *testing.T) {
	repo := newFakeCatalogRepo()
	seedProduct(repo)
	v := seedVariant(repo, "var-1")
	v.DisplayType = model.DisplayDropdown
	v.OptionType = model.OptionColor
	uc := newTestUC(repo)

	updated, err := uc.UpdateVariant(context.Background(), &dto.UpdateVariantInput{
		ID: "var-1", StoreID: "store-1", ProductID: "prod-1",
	})
	if err != nil {
		t.Fatalf("UpdateVariant: %v", err)
	}
	if updated.DisplayType != model.DisplayButtons {
		t.Errorf("empty display_type must fall back to buttons, got %q", updated.DisplayType)
	}
	if updated.OptionType != model.OptionText {
		t.Errorf("empty option_type must fall back to text, got %q", updated.OptionType)
	}
}

func TestSearchMustClausesIncludeStatus(t *testing.T) {
	must := searchMustClauses(&dto.ProductFilters{
		StoreID:     "store-1",
		Status:      string(model.ProductActive),
		SearchQuery: "shirt",
	})

	var statusClause map[string]interface{}
	for _, clause := range must {
		if term, ok := clause["term"].(map[string]interface{}); ok {
			if v, ok := term["status"]; ok {
				statusClause = map[string]interface{}{"status": v}
			}
		}
	}
	if statusClause == nil {
		t.Fatal("search query must filter on status so drafts stay hidden")
	}
	if statusClause["status"] != "active" {
		t.Errorf("status clause = %v", statusClause["status"])
	}
}

func TestSearchMustClausesOmitEmptyStatus(t *testing.T) {
	must := searchMustClauses(&dto.ProductFilters{StoreID: "store-1", SearchQuery: "shirt"})
	for _, clause := range must {
		if term, ok := clause["term"].(map[string]interface{}); ok {
			if _, ok := term["status"]; ok {
				t.Fatal("no status filter requested, none should be emitted")
			}
		}
	}
}

func TestAddOfferValidation(t *testing.T) {
	repo := newFakeCatalogRepo()
	seedProduct(repo)
	uc := newTestUC(repo)
	ctx := context.Background()

	if _, err := uc.AddOffer(ctx, &dto.CreateOfferInput{
		StoreID: "store-1", ProductID: "prod-1",
		MinQuantity: 0, DiscountType: "percentage", DiscountValue: 10,
	}); err == nil {
		t.Error("min_quantity 0 should be rejected")
	}

	if _, err := uc.AddOffer(ctx, &dto.CreateOfferInput{
		StoreID: "store-1", ProductID: "prod-1",
		MinQuantity: 2, DiscountType: "bogus", DiscountValue: 10,
	}); err == nil {
		t.Error("unknown discount_type should be rejected")
	}

	if _, err := uc.AddOffer(ctx, &dto.CreateOfferInput{
		StoreID: "store-1", ProductID: "prod-1",
		MinQuantity: 2, DiscountType: "fixed", DiscountValue: 10, IsActive: true,
	}); err != nil {
		t.Errorf("valid offer rejected: %v", err)
	}
}

func TestSnapshotAssembly(t *testing.T) {
	repo := newFakeCatalogRepo()
	seedProduct(repo)
	seedVariant(repo, "var-1")
	repo.options["opt-1"] = &model.VariantOption{
		BaseModel: model.BaseModel{ID: "opt-1"},
		VariantID: "var-1",
		Value:     "S",
	}
	repo.offers["off-active"] = &model.UpsellOffer{
		BaseModel: model.BaseModel{ID: "off-active"},
		StoreID:   "store-1", ProductID: "prod-1",
		MinQuantity: 2, DiscountType: model.DiscountPercentage, DiscountValue: 10,
		IsActive: true,
	}
	repo.offers["off-paused"] = &model.UpsellOffer{
		BaseModel: model.BaseModel{ID: "off-paused"},
		StoreID:   "store-1", ProductID: "prod-1",
		MinQuantity: 5, DiscountType: model.DiscountPercentage, DiscountValue: 25,
		IsActive: false,
	}
	uc := newTestUC(repo)

	snap, err := uc.Snapshot(context.Background(), "store-1", "prod-1")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Variants) != 1 || len(snap.Variants[0].Options) != 1 {
		t.Errorf("variants = %+v", snap.Variants)
	}
	if len(snap.Offers) != 1 || snap.Offers[0].ID != "off-active" {
		t.Errorf("snapshot must carry only active offers, got %+v", snap.Offers)
	}
}

func TestSnapshotUnknownProduct(t *testing.T) {
	uc := newTestUC(newFakeCatalogRepo())
	if _, err := uc.Snapshot(context.Background(), "store-1", "nope"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}
