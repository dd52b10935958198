package store

import (
	"context"
	"errors"
	"io"
	"log"

	"vendora/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const storeColumns = `id::text, slug, name, status, plan, subscription_expiry, view_count, created_at`

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	const q = `
SELECT ` + storeColumns + `
FROM stores
WHERE slug = $1
`
	return r.getOne(ctx, q, slug)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	const q = `
SELECT ` + storeColumns + `
FROM stores
WHERE id = $1
`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) getOne(ctx context.Context, query, arg string) (*domain.Store, error) {
	var s domain.Store
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&s.ID,
		&s.Slug,
		&s.Name,
		&s.Status,
		&s.Plan,
		&s.SubscriptionExpiry,
		&s.ViewCount,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("store repo: get %s error=%v", arg, err)
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) IncrementViewCount(ctx context.Context, storeID string) error {
	const q = `
UPDATE stores
SET view_count = view_count + 1
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, q, storeID)
	if err != nil {
		r.logger.Printf("store repo: increment views store_id=%s error=%v", storeID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
