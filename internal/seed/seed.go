package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type storeSeed struct {
	Slug   string
	Name   string
	Status string
	Plan   string
	Expiry *time.Time
}

type productSeed struct {
	Slug          string
	Name          string
	Description   string
	PriceKobo     int64
	StockQuantity int
}

// Apply inserts demo stores and products covering every plan and
// visibility state. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	lapsed := time.Now().AddDate(0, -1, 0)
	paidUp := time.Now().AddDate(0, 6, 0)

	stores := map[storeSeed][]productSeed{
		{Slug: "lagos-threads", Name: "Lagos Threads", Status: "active", Plan: "premium", Expiry: &paidUp}: {
			{Slug: "ankara-shirt", Name: "Ankara Shirt", Description: "Hand-finished ankara print shirt", PriceKobo: 2000000, StockQuantity: 12},
			{Slug: "aso-oke-cap", Name: "Aso Oke Cap", Description: "Woven aso oke cap", PriceKobo: 550000, StockQuantity: 30},
			{Slug: "adire-tote", Name: "Adire Tote", Description: "Indigo adire tote bag", PriceKobo: 800000, StockQuantity: 0},
		},
		{Slug: "abuja-gadgets", Name: "Abuja Gadgets", Status: "active", Plan: "diamond", Expiry: &paidUp}: {
			{Slug: "power-bank", Name: "20Ah Power Bank", Description: "Dual-port fast charge", PriceKobo: 1500000, StockQuantity: 25},
			{Slug: "earbuds", Name: "Wireless Earbuds", Description: "Noise isolating earbuds", PriceKobo: 950000, StockQuantity: 40},
		},
		{Slug: "corner-kiosk", Name: "Corner Kiosk", Status: "active", Plan: "free"}: {
			{Slug: "notebook", Name: "Notebook", PriceKobo: 120000, StockQuantity: 100},
			{Slug: "biro-pack", Name: "Biro Pack", PriceKobo: 50000, StockQuantity: 200},
			{Slug: "ruler", Name: "Ruler", PriceKobo: 30000, StockQuantity: 80},
			{Slug: "eraser", Name: "Eraser", PriceKobo: 20000, StockQuantity: 60},
			{Slug: "sharpener", Name: "Sharpener", PriceKobo: 25000, StockQuantity: 60},
			{Slug: "crayons", Name: "Crayon Set", PriceKobo: 90000, StockQuantity: 45},
		},
		{Slug: "lapsed-luxury", Name: "Lapsed Luxury", Status: "active", Plan: "premium", Expiry: &lapsed}: {
			{Slug: "leather-belt", Name: "Leather Belt", PriceKobo: 1200000, StockQuantity: 10},
		},
		{Slug: "blocked-bazaar", Name: "Blocked Bazaar", Status: "banned", Plan: "diamond", Expiry: &paidUp}: {
			{Slug: "mystery-box", Name: "Mystery Box", PriceKobo: 500000, StockQuantity: 5},
		},
	}

	for store, products := range stores {
		storeID, err := ensureStore(ctx, pool, store)
		if err != nil {
			return fmt.Errorf("ensure store %s: %w", store.Slug, err)
		}
		for _, p := range products {
			if err := upsertProduct(ctx, pool, storeID, p); err != nil {
				return fmt.Errorf("upsert product %s/%s: %w", store.Slug, p.Slug, err)
			}
		}
	}

	return seedBalances(ctx, pool)
}

func ensureStore(ctx context.Context, pool *pgxpool.Pool, s storeSeed) (string, error) {
	const q = `
INSERT INTO stores (slug, name, status, plan, subscription_expiry)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    status = EXCLUDED.status,
    plan = EXCLUDED.plan,
    subscription_expiry = EXCLUDED.subscription_expiry
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, s.Slug, s.Name, s.Status, s.Plan, s.Expiry).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, storeID string, p productSeed) error {
	const q = `
INSERT INTO products (store_id, slug, name, description, price_kobo, stock_quantity, is_active)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, TRUE)
ON CONFLICT (store_id, slug) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_kobo = EXCLUDED.price_kobo,
    stock_quantity = EXCLUDED.stock_quantity
`
	_, err := pool.Exec(ctx, q, storeID, p.Slug, p.Name, p.Description, p.PriceKobo, p.StockQuantity)
	return err
}

func seedBalances(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
INSERT INTO loyalty_balances (shopper_id, balance_kobo)
VALUES ($1, $2)
ON CONFLICT (shopper_id) DO UPDATE SET balance_kobo = EXCLUDED.balance_kobo
`
	if _, err := pool.Exec(ctx, q, "demo-shopper", int64(500000)); err != nil {
		return fmt.Errorf("seed balance: %w", err)
	}
	return nil
}
