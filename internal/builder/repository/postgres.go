package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/tijara/storefront-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreatePage(ctx context.Context, p *model.Page) error {
	query := `
        INSERT INTO pages (id, store_id, slug, title, blocks, created_at, updated_at)
        VALUES (:id, :store_id, :slug, :title, :blocks, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "create page")
}

func (r *PGRepository) FindPageByID(ctx context.Context, storeID, id string) (*model.Page, error) {
	var page model.Page
	err := r.DB.GetContext(ctx, &page,
		`SELECT * FROM pages WHERE id = $1 AND store_id = $2 LIMIT 1`, id, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find page")
	}
	return &page, nil
}

func (r *PGRepository) FindPageBySlug(ctx context.Context, storeID, slug string) (*model.Page, error) {
	var page model.Page
	err := r.DB.GetContext(ctx, &page,
		`SELECT * FROM pages WHERE store_id = $1 AND slug = $2 LIMIT 1`, storeID, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find page by slug")
	}
	return &page, nil
}

func (r *PGRepository) FindPages(ctx context.Context, storeID string) ([]model.Page, error) {
	var pages []model.Page
	err := r.DB.SelectContext(ctx, &pages,
		`SELECT * FROM pages WHERE store_id = $1 ORDER BY slug ASC`, storeID)
	return pages, errors.Wrap(err, "list pages")
}

// ReplacePage writes the whole block list as one jsonb value; block
// create/update/delete/reorder all come through here.
func (r *PGRepository) ReplacePage(ctx context.Context, p *model.Page) error {
	query := `
        UPDATE pages
        SET slug = :slug,
            title = :title,
            blocks = :blocks,
            updated_at = :updated_at
        WHERE id = :id AND store_id = :store_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "replace page")
}

func (r *PGRepository) DeletePage(ctx context.Context, storeID, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM pages WHERE id = $1 AND store_id = $2`, id, storeID)
	return errors.Wrap(err, "delete page")
}
