package product

import (
	"context"

	"vendora/internal/domain"
)

type Repository interface {
	// ListActiveByStore returns a store's active products newest-first.
	// A limit <= 0 means no limit.
	ListActiveByStore(ctx context.Context, storeID string, limit int) ([]domain.Product, error)
	// ListMarketplaceCandidates returns active products of active,
	// paid-plan, unexpired stores, newest-first, joined with a summary
	// of the owning store. limit bounds the raw candidate pool, not the
	// curated output.
	ListMarketplaceCandidates(ctx context.Context, limit int) ([]domain.MarketplaceProduct, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}
