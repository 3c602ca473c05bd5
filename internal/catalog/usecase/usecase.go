package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tijara/storefront-service/config"
	"github.com/tijara/storefront-service/internal/catalog"
	"github.com/tijara/storefront-service/internal/catalog/dto"
	"github.com/tijara/storefront-service/internal/model"
	"github.com/tijara/storefront-service/pkg/cache"
	"github.com/tijara/storefront-service/pkg/logger"
	"github.com/tijara/storefront-service/pkg/search"
	"go.uber.org/zap"
)

const productsIndex = "products"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrOptionNotFound  = errors.New("option not found")
	ErrOfferNotFound   = errors.New("offer not found")
)

type catalogUseCase struct {
	repo     catalog.Repository
	cache    *cache.RedisClient
	es       *search.Client
	logger   logger.Logger
	cacheCfg config.CacheConfig
}

func NewCatalogUseCase(repo catalog.Repository, cache *cache.RedisClient, es *search.Client, log logger.Logger, cacheCfg config.CacheConfig) catalog.UseCase {
	return &catalogUseCase{
		repo:     repo,
		cache:    cache,
		es:       es,
		logger:   log,
		cacheCfg: cacheCfg,
	}
}

// ---- products ----

func (uc *catalogUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	id := uuid.New().String()
	now := time.Now()

	status := model.ProductStatus(input.Status)
	if status == "" {
		status = model.ProductDraft
	}

	var compareAt *float64
	if input.CompareAtPrice > 0 {
		v := input.CompareAtPrice
		compareAt = &v
	}

	p := &model.Product{
		BaseModel:      model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		StoreID:        input.StoreID,
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		CompareAtPrice: compareAt,
		StockQuantity:  input.StockQuantity,
		TrackInventory: input.TrackInventory,
		Status:         status,
		Images:         input.Images,
		SortOrder:      input.SortOrder,
	}

	if err := uc.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateProduct(context.Background(), p.StoreID, p.ID)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, storeID, id string) (*model.Product, error) {
	return uc.repo.FindProductByID(ctx, storeID, id)
}

func (uc *catalogUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, err := uc.listCacheKey(filters)
	if err != nil || uc.cache == nil {
		cacheKey = ""
	}
	if cacheKey != "" {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var result struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return result.Products, result.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"bool": map[string]interface{}{
					"must": searchMustClauses(filters),
				},
			},
			"from": (filters.Page - 1) * filters.PageSize,
		}
		if filters.PageSize > 0 {
			q["size"] = filters.PageSize
		}

		res, err := uc.es.Search(ctx, productsIndex, q)
		if err == nil {
			var esProducts []model.Product
			for _, hit := range res.Hits.Hits {
				var p model.Product
				if err := json.Unmarshal(hit.Source, &p); err == nil {
					esProducts = append(esProducts, p)
				}
			}
			return esProducts, res.Hits.Total.Value, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindProducts(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" {
		cacheData := struct {
			Products []model.Product
			Count    int
		}{Products: products, Count: count}
		if data, err := json.Marshal(cacheData); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, uc.cacheCfg.ListTTL)
		}
	}

	return products, count, nil
}

func (uc *catalogUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindProductByID(ctx, input.StoreID, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	p.Name = input.Name
	p.Description = input.Description
	p.Price = input.Price
	p.StockQuantity = input.StockQuantity
	p.TrackInventory = input.TrackInventory
	p.Images = input.Images
	p.SortOrder = input.SortOrder
	if input.Status != "" {
		// Status transitions are free-form.
		p.Status = model.ProductStatus(input.Status)
	}
	if input.CompareAtPrice > 0 {
		v := input.CompareAtPrice
		p.CompareAtPrice = &v
	} else {
		p.CompareAtPrice = nil
	}

	p.UpdatedAt = time.Now()
	if err := uc.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateProduct(context.Background(), p.StoreID, p.ID)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *catalogUseCase) DeleteProduct(ctx context.Context, storeID, id string) error {
	p, err := uc.repo.FindProductByID(ctx, storeID, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil // Already deleted
	}

	if err := uc.repo.DeleteProduct(ctx, storeID, id); err != nil {
		return err
	}

	go uc.invalidateProduct(context.Background(), storeID, id)
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productsIndex, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}

	return nil
}

// ---- variants ----

func (uc *catalogUseCase) AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.Variant, error) {
	if err := uc.ensureProduct(ctx, input.StoreID, input.ProductID); err != nil {
		return nil, err
	}

	now := time.Now()
	v := &model.Variant{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID:   input.ProductID,
		Name:        input.Name,
		DisplayType: model.DisplayType(input.DisplayType),
		OptionType:  model.OptionType(input.OptionType),
		Required:    input.Required,
		SortOrder:   input.SortOrder,
	}
	if v.DisplayType == "" {
		v.DisplayType = model.DisplayButtons
	}
	if v.OptionType == "" {
		v.OptionType = model.OptionText
	}

	if err := uc.repo.CreateVariant(ctx, v); err != nil {
		return nil, err
	}

	go uc.invalidateProduct(context.Background(), input.StoreID, input.ProductID)
	return v, nil
}

func (uc *catalogUseCase) UpdateVariant(ctx context.Context, input *dto.UpdateVariantInput) (*model.Variant, error) {
	if err := uc.ensureProduct(ctx, input.StoreID, input.ProductID); err != nil {
		return nil, err
	}

	v, err := uc.repo.FindVariantByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if v == nil || v.ProductID != input.ProductID {
		return nil, ErrVariantNotFound
	}

	v.Name = input.Name
	v.DisplayType = model.DisplayType(input.DisplayType)
	v.OptionType = model.OptionType(input.OptionType)
	if v.DisplayType == "" {
		v.DisplayType = model.DisplayButtons
	}
	if v.OptionType == "" {
		v.OptionType = model.OptionText
	}
	v.Required = input.Required
	v.SortOrder = input.SortOrder
	v.UpdatedAt = time.Now()

	if err := uc.repo.UpdateVariant(ctx, v); err != nil {
		return nil, err
	}

	go uc.invalidateProduct(context.Background(), input.StoreID, input.ProductID)
	return v, nil
}

func (uc *catalogUseCase) DeleteVariant(ctx context.Context, storeID, productID, variantID string) error {
	if err := uc.ensureProduct(ctx, storeID, productID); err != nil {
		return err
	}

	v, err := uc.repo.FindVariantByID(ctx, variantID)
	if err != nil {
		return err
	}
	if v == nil || v.ProductID != productID {
		return ErrVariantNotFound
	}

	if err := uc.repo.DeleteVariant(ctx, variantID); err != nil {
		return err
	}

	go uc.invalidateProduct(context.Background(), storeID, productID)
	return nil
}

func (uc *catalogUseCase) ListVariants(ctx context.Context, storeID, productID string) ([]model.Variant, error) {
	if err := uc.ensureProduct(ctx, storeID, productID); err != nil {
		return nil, err
	}
	return uc.repo.FindVariants(ctx, productID)
}

// ---- options ----

func (uc *catalogUseCase) AddOption(ctx context.Context, input *dto.CreateOptionInput) (*model.VariantOption, error) {
	if err := uc.ensureVariant(ctx, input.StoreID, input.ProductID, input.VariantID); err != nil {
		return nil, err
	}

	now := time.Now()
	o := &model.VariantOption{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		VariantID:     input.VariantID,
		Label:         input.Label,
		Value:         input.Value,
		PriceModifier: input.PriceModifier,
		IsDefault:     input.IsDefault,
		SortOrder:     input.SortOrder,
	}

	if err := uc.repo.CreateOption(ctx, o); err != nil {
		return nil, err
	}
	if input.IsDefault {
		if err := uc.repo.SetDefaultOption(ctx, input.VariantID, o.ID); err != nil {
			return nil, err
		}
	}

	go uc.invalidateProduct(context.Background(), input.StoreID, input.ProductID)
	return o, nil
}

func (uc *catalogUseCase) UpdateOption(ctx context.Context, input *dto.UpdateOptionInput) (*model.VariantOption, error) {
	if err := uc.ensureVariant(ctx, input.StoreID, input.ProductID, input.VariantID); err != nil {
		return nil, err
	}

	o, err := uc.repo.FindOptionByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if o == nil || o.VariantID != input.VariantID {
		return nil, ErrOptionNotFound
	}

	o.Label = input.Label
	o.Value = input.Value
	o.PriceModifier = input.PriceModifier
	o.IsDefault = input.IsDefault
	o.SortOrder = input.SortOrder
	o.UpdatedAt = time.Now()

	if err := uc.repo.UpdateOption(ctx, o); err != nil {
		return nil, err
	}
	if input.IsDefault {
		if err := uc.repo.SetDefaultOption(ctx, input.VariantID, o.ID); err != nil {
			return nil, err
		}
	}

	go uc.invalidateProduct(context.Background(), input.StoreID, input.ProductID)
	return o, nil
}

func (uc *catalogUseCase) DeleteOption(ctx context.Context, storeID, productID, variantID, optionID string) error {
	if err := uc.ensureVariant(ctx, storeID, productID, variantID); err != nil {
		return err
	}

	o, err := uc.repo.FindOptionByID(ctx, optionID)
	if err != nil {
		return err
	}
	if o == nil || o.VariantID != variantID {
		return ErrOptionNotFound
	}

	if err := uc.repo.DeleteOption(ctx, optionID); err != nil {
		return err
	}

	go uc.invalidateProduct(context.Background(), storeID, productID)
	return nil
}

// ---- offers ----

func (uc *catalogUseCase) AddOffer(ctx context.Context, input *dto.CreateOfferInput) (*model.UpsellOffer, error) {
	if err := uc.ensureProduct(ctx, input.StoreID, input.ProductID); err != nil {
		return nil, err
	}
	if input.MinQuantity < 1 {
		return nil, errors.New("min_quantity must be at least 1")
	}
	if input.DiscountType != string(model.DiscountPercentage) && input.DiscountType != string(model.DiscountFixed) {
		return nil, errors.New("discount_type must be percentage or fixed")
	}

	now := time.Now()
	o := &model.UpsellOffer{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		StoreID:       input.StoreID,
		ProductID:     input.ProductID,
		MinQuantity:   input.MinQuantity,
		DiscountType:  model.DiscountType(input.DiscountType),
		DiscountValue: input.DiscountValue,
		Label:         input.Label,
		Badge:         input.Badge,
		IsActive:      input.IsActive,
		SortOrder:     input.SortOrder,
	}

	if err := uc.repo.CreateOffer(ctx, o); err != nil {
		return nil, err
	}

	go uc.invalidateProduct(context.Background(), input.StoreID, input.ProductID)
	return o, nil
}

func (uc *catalogUseCase) UpdateOffer(ctx context.Context, input *dto.UpdateOfferInput) (*model.UpsellOffer, error) {
	if err := uc.ensureProduct(ctx, input.StoreID, input.ProductID); err != nil {
		return nil, err
	}

	o, err := uc.repo.FindOfferByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if o == nil || o.ProductID != input.ProductID {
		return nil, ErrOfferNotFound
	}
	if input.MinQuantity < 1 {
		return nil, errors.New("min_quantity must be at least 1")
	}

	o.MinQuantity = input.MinQuantity
	o.DiscountType = model.DiscountType(input.DiscountType)
	o.DiscountValue = input.DiscountValue
	o.Label = input.Label
	o.Badge = input.Badge
	o.IsActive = input.IsActive
	o.SortOrder = input.SortOrder
	o.UpdatedAt = time.Now()

	if err := uc.repo.UpdateOffer(ctx, o); err != nil {
		return nil, err
	}

	go uc.invalidateProduct(context.Background(), input.StoreID, input.ProductID)
	return o, nil
}

func (uc *catalogUseCase) DeleteOffer(ctx context.Context, storeID, productID, offerID string) error {
	if err := uc.ensureProduct(ctx, storeID, productID); err != nil {
		return err
	}

	o, err := uc.repo.FindOfferByID(ctx, offerID)
	if err != nil {
		return err
	}
	if o == nil || o.ProductID != productID {
		return ErrOfferNotFound
	}

	if err := uc.repo.DeleteOffer(ctx, offerID); err != nil {
		return err
	}

	go uc.invalidateProduct(context.Background(), storeID, productID)
	return nil
}

func (uc *catalogUseCase) ListOffers(ctx context.Context, storeID, productID string) ([]model.UpsellOffer, error) {
	if err := uc.ensureProduct(ctx, storeID, productID); err != nil {
		return nil, err
	}
	return uc.repo.FindOffers(ctx, productID, false)
}

// ---- snapshot ----

// Snapshot assembles the immutable input for a pricing session: the
// product with its sorted variants/options and active offers. Cached in
// Redis and invalidated on every catalog write touching the product.
func (uc *catalogUseCase) Snapshot(ctx context.Context, storeID, productID string) (*model.Product, error) {
	key := snapshotKey(storeID, productID)
	if uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, key).Result(); err == nil {
			var cached model.Product
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	p, err := uc.repo.FindProductByID(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	variants, err := uc.repo.FindVariants(ctx, productID)
	if err != nil {
		return nil, err
	}
	offers, err := uc.repo.FindOffers(ctx, productID, true)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	p.Offers = offers

	if uc.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			uc.cache.Client.Set(ctx, key, data, uc.cacheCfg.SnapshotTTL)
		}
	}

	return p, nil
}

// ---- helpers ----

func (uc *catalogUseCase) ensureProduct(ctx context.Context, storeID, productID string) error {
	p, err := uc.repo.FindProductByID(ctx, storeID, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}
	return nil
}

func (uc *catalogUseCase) ensureVariant(ctx context.Context, storeID, productID, variantID string) error {
	if err := uc.ensureProduct(ctx, storeID, productID); err != nil {
		return err
	}
	v, err := uc.repo.FindVariantByID(ctx, variantID)
	if err != nil {
		return err
	}
	if v == nil || v.ProductID != productID {
		return ErrVariantNotFound
	}
	return nil
}

// searchMustClauses builds the bool/must filters for the product search
// query. Status must be applied here too, not just in the SQL fallback,
// or the public listing would surface draft and archived products.
func searchMustClauses(filters *dto.ProductFilters) []map[string]interface{} {
	must := []map[string]interface{}{
		{
			"query_string": map[string]interface{}{
				"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
				"fields": []string{"name.ar^3", "name.en^3", "description.ar", "description.en"},
			},
		},
		{
			"term": map[string]interface{}{
				"store_id": filters.StoreID,
			},
		},
	}
	if filters.Status != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{
				"status": filters.Status,
			},
		})
	}
	return must
}

func (uc *catalogUseCase) listCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("catalog:list:%s:%x", filters.StoreID, md5.Sum(data)), nil
}

func snapshotKey(storeID, productID string) string {
	return fmt.Sprintf("catalog:snapshot:%s:%s", storeID, productID)
}

func (uc *catalogUseCase) invalidateProduct(ctx context.Context, storeID, productID string) {
	if uc.cache == nil {
		return
	}
	uc.cache.Client.Del(ctx, snapshotKey(storeID, productID))
	pattern := fmt.Sprintf("catalog:list:%s:*", storeID)
	if err := uc.cache.DeletePattern(ctx, pattern); err != nil {
		uc.logger.Error("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

func (uc *catalogUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"store_id": { "type": "keyword" },
				"name": {
					"properties": {
						"ar": { "type": "text" },
						"en": { "type": "text" }
					}
				},
				"description": {
					"properties": {
						"ar": { "type": "text" },
						"en": { "type": "text" }
					}
				},
				"price": { "type": "double" },
				"status": { "type": "keyword" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productsIndex, mapping)

	if err := uc.es.Index(ctx, productsIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}
