package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/tijara/storefront-service/internal/catalog/dto"
	"github.com/tijara/storefront-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// ---- products ----

func (r *PGRepository) CreateProduct(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, store_id, name, description, price, compare_at_price,
            stock_quantity, track_inventory, status, images, sort_order,
            created_at, updated_at
        )
        VALUES (
            :id, :store_id, :name, :description, :price, :compare_at_price,
            :stock_quantity, :track_inventory, :status, :images, :sort_order,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "create product")
}

func (r *PGRepository) FindProductByID(ctx context.Context, storeID, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 AND store_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find product")
	}
	return &product, nil
}

func (r *PGRepository) FindProducts(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{"store_id = :store_id"}
	args := map[string]interface{}{"store_id": f.StoreID}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name->>'ar' ILIKE :search OR name->>'en' ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	// Whitelist sortable fields to keep user input out of the ORDER BY.
	orderBy := "created_at DESC"
	if f.SortBy != "" {
		switch f.SortBy {
		case "name":
			orderBy = "name->>'en'"
		case "price":
			orderBy = "price"
		case "sort_order":
			orderBy = "sort_order"
		case "created_at":
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "prepare list products")
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, errors.Wrap(err, "list products")
	}

	return products, count, nil
}

func (r *PGRepository) UpdateProduct(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            description = :description,
            price = :price,
            compare_at_price = :compare_at_price,
            stock_quantity = :stock_quantity,
            track_inventory = :track_inventory,
            status = :status,
            images = :images,
            sort_order = :sort_order,
            updated_at = :updated_at
        WHERE id = :id AND store_id = :store_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "update product")
}

func (r *PGRepository) DeleteProduct(ctx context.Context, storeID, id string) error {
	// Variants, options and offers cascade via FK constraints.
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1 AND store_id = $2", id, storeID)
	return errors.Wrap(err, "delete product")
}

// ---- variants ----

func (r *PGRepository) CreateVariant(ctx context.Context, v *model.Variant) error {
	query := `
        INSERT INTO variants (id, product_id, name, display_type, option_type, required, sort_order, created_at, updated_at)
        VALUES (:id, :product_id, :name, :display_type, :option_type, :required, :sort_order, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return errors.Wrap(err, "create variant")
}

func (r *PGRepository) FindVariantByID(ctx context.Context, id string) (*model.Variant, error) {
	var v model.Variant
	err := r.DB.GetContext(ctx, &v, `SELECT * FROM variants WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find variant")
	}
	return &v, nil
}

// FindVariants returns the product's variants ordered by sort_order with
// their options loaded and ordered the same way. The option order matters:
// index 0 is the default fallback for selection initialization.
func (r *PGRepository) FindVariants(ctx context.Context, productID string) ([]model.Variant, error) {
	var variants []model.Variant
	err := r.DB.SelectContext(ctx, &variants,
		`SELECT * FROM variants WHERE product_id = $1 ORDER BY sort_order ASC, created_at ASC`, productID)
	if err != nil {
		return nil, errors.Wrap(err, "list variants")
	}
	if len(variants) == 0 {
		return variants, nil
	}

	ids := make([]string, len(variants))
	for i, v := range variants {
		ids[i] = v.ID
	}

	query, args, err := sqlx.In(
		`SELECT * FROM variant_options WHERE variant_id IN (?) ORDER BY sort_order ASC, created_at ASC`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "build options query")
	}

	var options []model.VariantOption
	if err := r.DB.SelectContext(ctx, &options, r.DB.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "list variant options")
	}

	byVariant := make(map[string][]model.VariantOption, len(variants))
	for _, opt := range options {
		byVariant[opt.VariantID] = append(byVariant[opt.VariantID], opt)
	}
	for i := range variants {
		variants[i].Options = byVariant[variants[i].ID]
	}
	return variants, nil
}

func (r *PGRepository) UpdateVariant(ctx context.Context, v *model.Variant) error {
	query := `
        UPDATE variants
        SET name = :name,
            display_type = :display_type,
            option_type = :option_type,
            required = :required,
            sort_order = :sort_order,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return errors.Wrap(err, "update variant")
}

func (r *PGRepository) DeleteVariant(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM variants WHERE id = $1", id)
	return errors.Wrap(err, "delete variant")
}

// ---- variant options ----

func (r *PGRepository) CreateOption(ctx context.Context, o *model.VariantOption) error {
	query := `
        INSERT INTO variant_options (id, variant_id, label, value, price_modifier, is_default, sort_order, created_at, updated_at)
        VALUES (:id, :variant_id, :label, :value, :price_modifier, :is_default, :sort_order, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return errors.Wrap(err, "create option")
}

func (r *PGRepository) FindOptionByID(ctx context.Context, id string) (*model.VariantOption, error) {
	var o model.VariantOption
	err := r.DB.GetContext(ctx, &o, `SELECT * FROM variant_options WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find option")
	}
	return &o, nil
}

func (r *PGRepository) FindOptions(ctx context.Context, variantID string) ([]model.VariantOption, error) {
	var options []model.VariantOption
	err := r.DB.SelectContext(ctx, &options,
		`SELECT * FROM variant_options WHERE variant_id = $1 ORDER BY sort_order ASC, created_at ASC`, variantID)
	return options, errors.Wrap(err, "list options")
}

func (r *PGRepository) UpdateOption(ctx context.Context, o *model.VariantOption) error {
	query := `
        UPDATE variant_options
        SET label = :label,
            value = :value,
            price_modifier = :price_modifier,
            is_default = :is_default,
            sort_order = :sort_order,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return errors.Wrap(err, "update option")
}

func (r *PGRepository) DeleteOption(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM variant_options WHERE id = $1", id)
	return errors.Wrap(err, "delete option")
}

// SetDefaultOption flags one option as default and clears the flag on its
// siblings inside a single transaction, so at most one default survives.
func (r *PGRepository) SetDefaultOption(ctx context.Context, variantID, optionID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin set default")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE variant_options SET is_default = false WHERE variant_id = $1 AND id != $2`,
		variantID, optionID); err != nil {
		return errors.Wrap(err, "clear defaults")
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE variant_options SET is_default = true WHERE id = $1 AND variant_id = $2`,
		optionID, variantID); err != nil {
		return errors.Wrap(err, "set default")
	}

	return errors.Wrap(tx.Commit(), "commit set default")
}

// ---- upsell offers ----

func (r *PGRepository) CreateOffer(ctx context.Context, o *model.UpsellOffer) error {
	query := `
        INSERT INTO upsell_offers (
            id, store_id, product_id, min_quantity, discount_type, discount_value,
            label, badge, is_active, sort_order, created_at, updated_at
        )
        VALUES (
            :id, :store_id, :product_id, :min_quantity, :discount_type, :discount_value,
            :label, :badge, :is_active, :sort_order, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return errors.Wrap(err, "create offer")
}

func (r *PGRepository) FindOfferByID(ctx context.Context, id string) (*model.UpsellOffer, error) {
	var o model.UpsellOffer
	err := r.DB.GetContext(ctx, &o, `SELECT * FROM upsell_offers WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find offer")
	}
	return &o, nil
}

func (r *PGRepository) FindOffers(ctx context.Context, productID string, activeOnly bool) ([]model.UpsellOffer, error) {
	query := `SELECT * FROM upsell_offers WHERE product_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY min_quantity ASC, sort_order ASC, id ASC`

	var offers []model.UpsellOffer
	err := r.DB.SelectContext(ctx, &offers, query, productID)
	return offers, errors.Wrap(err, "list offers")
}

func (r *PGRepository) UpdateOffer(ctx context.Context, o *model.UpsellOffer) error {
	query := `
        UPDATE upsell_offers
        SET min_quantity = :min_quantity,
            discount_type = :discount_type,
            discount_value = :discount_value,
            label = :label,
            badge = :badge,
            is_active = :is_active,
            sort_order = :sort_order,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return errors.Wrap(err, "update offer")
}

func (r *PGRepository) DeleteOffer(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM upsell_offers WHERE id = $1", id)
	return errors.Wrap(err, "delete offer")
}
