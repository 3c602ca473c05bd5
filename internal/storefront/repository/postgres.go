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

func (r *PGRepository) FindStoreBySlug(ctx context.Context, slug string) (*model.Store, error) {
	var store model.Store
	err := r.DB.GetContext(ctx, &store,
		`SELECT * FROM stores WHERE slug = $1 AND is_active = true LIMIT 1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find store by slug")
	}
	return &store, nil
}
