package gate

import (
	"context"
	"time"

	"vendora/internal/domain"
)

// Service resolves what a visitor may see for a single storefront. The
// visibility check always runs before any catalog query so that a
// banned or locked store never leaks products through the listing.
type Service struct {
	stores   storeRepo
	products productRepo
	now      func() time.Time
}

type storeRepo interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
}

type productRepo interface {
	ListActiveByStore(ctx context.Context, storeID string, limit int) ([]domain.Product, error)
}

func New(stores storeRepo, products productRepo) *Service {
	return &Service{stores: stores, products: products, now: time.Now}
}

// Storefront is the page-level result: the store, its classified
// visibility, and — only when active — its listing.
type Storefront struct {
	Store      domain.Store
	Visibility domain.Visibility
	Listing    []domain.Product
}

// Storefront loads a store by slug and classifies it. Products are
// queried only on an active result; free-plan stores are truncated to
// the newest FreeListingLimit items, paid plans are unbounded.
func (s *Service) Storefront(ctx context.Context, slug string) (*Storefront, error) {
	store, err := s.stores.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	visibility := domain.ClassifyStore(*store, s.now())
	result := &Storefront{Store: *store, Visibility: visibility}
	if visibility != domain.VisibilityActive {
		return result, nil
	}

	limit := 0
	if store.Plan == domain.PlanFree {
		limit = domain.FreeListingLimit
	}
	listing, err := s.products.ListActiveByStore(ctx, store.ID, limit)
	if err != nil {
		return nil, err
	}
	result.Listing = listing
	return result, nil
}
