package product

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

func (r *postgresRepo) ListActiveByStore(ctx context.Context, storeID string, limit int) ([]domain.Product, error) {
	q := `
SELECT id::text, store_id::text, name, slug, COALESCE(description, ''), price_kobo, stock_quantity, is_active, category_id::text, created_at
FROM products
WHERE store_id = $1 AND is_active
ORDER BY created_at DESC
`
	args := []any{storeID}
	if limit > 0 {
		q += "LIMIT $2\n"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list store_id=%s error=%v", storeID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.Slug, &p.Description, &p.PriceKobo, &p.StockQuantity, &p.IsActive, &p.CategoryID, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows store_id=%s error=%v", storeID, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) ListMarketplaceCandidates(ctx context.Context, limit int) ([]domain.MarketplaceProduct, error) {
	q := `
SELECT p.id::text, p.store_id::text, p.name, p.slug, COALESCE(p.description, ''), p.price_kobo, p.stock_quantity, p.is_active, p.category_id::text, p.created_at,
       s.slug, s.name, s.status, s.plan, s.subscription_expiry
FROM products p
JOIN stores s ON s.id = p.store_id
WHERE p.is_active
  AND s.status = 'active'
  AND s.plan IN ('premium', 'diamond')
  AND (s.subscription_expiry IS NULL OR s.subscription_expiry >= now())
ORDER BY p.created_at DESC
`
	var args []any
	if limit > 0 {
		q += "LIMIT $1\n"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: marketplace candidates error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.MarketplaceProduct
	for rows.Next() {
		var p domain.MarketplaceProduct
		if err := rows.Scan(
			&p.ID, &p.StoreID, &p.Name, &p.Slug, &p.Description, &p.PriceKobo, &p.StockQuantity, &p.IsActive, &p.CategoryID, &p.CreatedAt,
			&p.StoreSlug, &p.StoreName, &p.StoreStatus, &p.StorePlan, &p.StoreExpiry,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: marketplace candidate rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: marketplace candidates count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id::text, store_id::text, name, slug, COALESCE(description, ''), price_kobo, stock_quantity, is_active, category_id::text, created_at
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.StoreID, &p.Name, &p.Slug, &p.Description, &p.PriceKobo, &p.StockQuantity, &p.IsActive, &p.CategoryID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}
