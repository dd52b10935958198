package store

import (
	"context"

	"vendora/internal/domain"
)

type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	// IncrementViewCount is best-effort analytics; callers treat a
	// failure as loggable, not fatal.
	IncrementViewCount(ctx context.Context, storeID string) error
}
