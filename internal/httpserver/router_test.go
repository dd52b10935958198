package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"vendora/internal/domain"
	"vendora/internal/metrics"
	"vendora/internal/service/cart"
	"vendora/internal/service/curation"
	"vendora/internal/service/gate"
	"vendora/internal/service/view"
	"vendora/internal/session"
)

type fixtures struct {
	stores     map[string]*domain.Store
	products   map[string]*domain.Product
	candidates []domain.MarketplaceProduct
	balance    int64
	increments int
}

func (f *fixtures) GetBySlug(_ context.Context, slug string) (*domain.Store, error) {
	for _, s := range f.stores {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fixtures) GetByID(_ context.Context, id string) (*domain.Store, error) {
	if s, ok := f.stores[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fixtures) IncrementViewCount(_ context.Context, _ string) error {
	f.increments++
	return nil
}

func (f *fixtures) ListActiveByStore(_ context.Context, storeID string, limit int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if p.StoreID == storeID && p.IsActive {
			out = append(out, *p)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fixtures) ListMarketplaceCandidates(_ context.Context, limit int) ([]domain.MarketplaceProduct, error) {
	out := f.candidates
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fixtures) productByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

// productRepoFunc adapts fixtures to the cart service's product reader.
type productRepoFunc func(ctx context.Context, id string) (*domain.Product, error)

func (fn productRepoFunc) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return fn(ctx, id)
}

type balanceFunc func(ctx context.Context, shopperID string) (int64, error)

func (fn balanceFunc) Balance(ctx context.Context, shopperID string) (int64, error) {
	return fn(ctx, shopperID)
}

func newTestRouter(t *testing.T, f *fixtures) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := metrics.NewForTest()
	sessions := session.NewMemory()

	gateSvc := gate.New(f, f)
	curationSvc := curation.New(f, m, 10, 60, 12)
	cartSvc := cart.New(
		sessions,
		productRepoFunc(f.productByID),
		f,
		balanceFunc(func(context.Context, string) (int64, error) { return f.balance, nil }),
		nil,
	)
	counter := view.NewCounter(sessions, f, m, nil)

	router := gin.New()
	api := router.Group("/api")
	api.Use(sessionMiddleware(time.Hour))
	api.GET("/landing", landingHandler(curationSvc))
	api.GET("/marketplace", marketplaceHandler(curationSvc))
	api.GET("/stores/:slug", storefrontHandler(gateSvc, counter))
	api.GET("/cart", getCartHandler(cartSvc))
	api.POST("/cart/items", addCartItemHandler(cartSvc))
	api.PATCH("/cart/items/:productId", setCartQuantityHandler(cartSvc))
	api.DELETE("/cart/items/:productId", removeCartItemHandler(cartSvc))
	api.DELETE("/cart", clearCartHandler(cartSvc))
	api.PUT("/cart/coins", setUseCoinsHandler(cartSvc))
	return router
}

func testFixtures() *fixtures {
	return &fixtures{
		stores: map[string]*domain.Store{
			"s1": {ID: "s1", Slug: "lagos-threads", Name: "Lagos Threads", Status: domain.StoreStatusActive, Plan: domain.PlanPremium},
			"s2": {ID: "s2", Slug: "banned-store", Name: "Banned Store", Status: domain.StoreStatusBanned, Plan: domain.PlanDiamond},
		},
		products: map[string]*domain.Product{
			"p1": {ID: "p1", StoreID: "s1", Name: "Ankara Shirt", Slug: "ankara-shirt", PriceKobo: 20000, StockQuantity: 4, IsActive: true},
			"p2": {ID: "p2", StoreID: "s1", Name: "Cap", Slug: "cap", PriceKobo: 5000, StockQuantity: 0, IsActive: true},
		},
		balance: 5000,
	}
}

func doJSON(router *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSessionMiddlewareIssuesCookieOnce(t *testing.T) {
	router := newTestRouter(t, testFixtures())

	rec := doJSON(router, http.MethodGet, "/api/cart", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookie || cookies[0].Value == "" {
		t.Fatalf("expected a session cookie, got %+v", cookies)
	}

	rec = doJSON(router, http.MethodGet, "/api/cart", nil, cookies)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			t.Fatalf("cookie must not be reissued for a known session")
		}
	}
}

func TestStorefrontActive(t *testing.T) {
	f := testFixtures()
	router := newTestRouter(t, f)

	rec := doJSON(router, http.MethodGet, "/api/stores/lagos-threads", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var resp storefrontResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Visibility != string(domain.VisibilityActive) {
		t.Fatalf("expected active, got %s", resp.Visibility)
	}
	if len(resp.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(resp.Products))
	}
}

func TestStorefrontBannedIsStatic(t *testing.T) {
	router := newTestRouter(t, testFixtures())

	rec := doJSON(router, http.MethodGet, "/api/stores/banned-store", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp storefrontResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Visibility != string(domain.VisibilityBanned) {
		t.Fatalf("expected banned, got %s", resp.Visibility)
	}
	if len(resp.Products) != 0 {
		t.Fatalf("banned storefront must not carry products")
	}
	if resp.Store.Plan != "" || resp.Store.ViewCount != 0 {
		t.Fatalf("banned storefront leaks store details: %+v", resp.Store)
	}
}

func TestStorefrontNotFound(t *testing.T) {
	router := newTestRouter(t, testFixtures())
	rec := doJSON(router, http.MethodGet, "/api/stores/nope", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMarketplaceRespectsCaps(t *testing.T) {
	f := testFixtures()
	for i := 0; i < 30; i++ {
		f.candidates = append(f.candidates, domain.MarketplaceProduct{
			Product:     domain.Product{ID: fmt.Sprintf("mp%d", i), StoreID: "s1", IsActive: true},
			StoreSlug:   "lagos-threads",
			StoreName:   "Lagos Threads",
			StoreStatus: domain.StoreStatusActive,
			StorePlan:   domain.PlanPremium,
		})
	}
	router := newTestRouter(t, f)

	rec := doJSON(router, http.MethodGet, "/api/marketplace", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Products []marketplaceItem `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Products) != 10 {
		t.Fatalf("expected per-store cap of 10, got %d", len(resp.Products))
	}
}

func TestCartFlow(t *testing.T) {
	router := newTestRouter(t, testFixtures())

	rec := doJSON(router, http.MethodGet, "/api/cart", nil, nil)
	cookies := rec.Result().Cookies()

	rec = doJSON(router, http.MethodPost, "/api/cart/items", gin.H{"productId": "p1"}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(router, http.MethodPut, "/api/cart/coins", gin.H{"useCoins": true}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("coins: expected 200, got %d", rec.Code)
	}
	var snap cart.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Pricing.RedeemedKobo != 3000 || snap.Pricing.TotalKobo != 17000 {
		t.Fatalf("unexpected pricing %+v", snap.Pricing)
	}

	rec = doJSON(router, http.MethodPatch, "/api/cart/items/p1", gin.H{"quantity": 3}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("quantity: expected 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Count != 3 || snap.Pricing.SubtotalKobo != 60000 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	rec = doJSON(router, http.MethodDelete, "/api/cart", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Count != 0 || snap.Pricing.UseCoins {
		t.Fatalf("clear must empty the cart and reset coins: %+v", snap)
	}
}

func TestCartAddOutOfStock(t *testing.T) {
	router := newTestRouter(t, testFixtures())
	rec := doJSON(router, http.MethodPost, "/api/cart/items", gin.H{"productId": "p2"}, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCartQuantityForMissingItem(t *testing.T) {
	router := newTestRouter(t, testFixtures())
	rec := doJSON(router, http.MethodPatch, "/api/cart/items/ghost", gin.H{"quantity": 2}, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
