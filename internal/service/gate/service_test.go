package gate

import (
	"context"
	"errors"
	"testing"
	"time"

	"vendora/internal/domain"
)

type stubStoreRepo struct {
	store *domain.Store
	err   error
}

func (s *stubStoreRepo) GetBySlug(_ context.Context, _ string) (*domain.Store, error) {
	return s.store, s.err
}

type stubProductRepo struct {
	products  []domain.Product
	err       error
	calls     int
	lastStore string
	lastLimit int
}

func (s *stubProductRepo) ListActiveByStore(_ context.Context, storeID string, limit int) ([]domain.Product, error) {
	s.calls++
	s.lastStore = storeID
	s.lastLimit = limit
	return s.products, s.err
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestStorefrontNotFound(t *testing.T) {
	svc := New(&stubStoreRepo{err: domain.ErrNotFound}, &stubProductRepo{})
	_, err := svc.Storefront(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStorefrontBannedSkipsCatalogQuery(t *testing.T) {
	products := &stubProductRepo{}
	svc := New(&stubStoreRepo{store: &domain.Store{
		ID:                 "s1",
		Status:             domain.StoreStatusBanned,
		Plan:               domain.PlanDiamond,
		SubscriptionExpiry: timePtr(fixedNow().Add(time.Hour)),
	}}, products)
	svc.now = fixedNow

	got, err := svc.Storefront(context.Background(), "banned-store")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Visibility != domain.VisibilityBanned {
		t.Fatalf("expected banned, got %s", got.Visibility)
	}
	if got.Listing != nil {
		t.Fatalf("expected nil listing for banned store")
	}
	if products.calls != 0 {
		t.Fatalf("catalog must not be queried for a banned store")
	}
}

func TestStorefrontLockedSkipsCatalogQuery(t *testing.T) {
	products := &stubProductRepo{}
	svc := New(&stubStoreRepo{store: &domain.Store{
		ID:                 "s1",
		Status:             domain.StoreStatusActive,
		Plan:               domain.PlanPremium,
		SubscriptionExpiry: timePtr(fixedNow().Add(-time.Minute)),
	}}, products)
	svc.now = fixedNow

	got, err := svc.Storefront(context.Background(), "lapsed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Visibility != domain.VisibilityLocked {
		t.Fatalf("expected locked, got %s", got.Visibility)
	}
	if products.calls != 0 {
		t.Fatalf("catalog must not be queried for a locked store")
	}
}

func TestStorefrontFreePlanTruncatesListing(t *testing.T) {
	products := &stubProductRepo{products: []domain.Product{{ID: "p1"}}}
	svc := New(&stubStoreRepo{store: &domain.Store{ID: "s1", Status: domain.StoreStatusActive, Plan: domain.PlanFree}}, products)
	svc.now = fixedNow

	got, err := svc.Storefront(context.Background(), "free-store")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Visibility != domain.VisibilityActive {
		t.Fatalf("expected active, got %s", got.Visibility)
	}
	if products.lastStore != "s1" || products.lastLimit != domain.FreeListingLimit {
		t.Fatalf("expected listing query limited to %d, got store=%s limit=%d", domain.FreeListingLimit, products.lastStore, products.lastLimit)
	}
}

func TestStorefrontPaidPlanUnbounded(t *testing.T) {
	for _, plan := range []domain.Plan{domain.PlanPremium, domain.PlanDiamond} {
		products := &stubProductRepo{}
		svc := New(&stubStoreRepo{store: &domain.Store{ID: "s1", Status: domain.StoreStatusActive, Plan: plan}}, products)
		svc.now = fixedNow

		if _, err := svc.Storefront(context.Background(), "paid"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if products.lastLimit != 0 {
			t.Fatalf("plan %s: expected unbounded listing, got limit %d", plan, products.lastLimit)
		}
	}
}

func TestStorefrontListingError(t *testing.T) {
	products := &stubProductRepo{err: errors.New("boom")}
	svc := New(&stubStoreRepo{store: &domain.Store{ID: "s1", Status: domain.StoreStatusActive, Plan: domain.PlanFree}}, products)
	svc.now = fixedNow

	_, err := svc.Storefront(context.Background(), "free-store")
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected listing error, got %v", err)
	}
}
