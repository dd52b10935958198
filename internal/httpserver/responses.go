package httpserver

import (
	"vendora/internal/domain"
	"vendora/internal/service/gate"
)

type storeView struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Plan      string `json:"plan,omitempty"`
	ViewCount int64  `json:"viewCount,omitempty"`
}

type productView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description,omitempty"`
	PriceKobo     int64  `json:"priceKobo"`
	StockQuantity int    `json:"stockQuantity"`
	InStock       bool   `json:"inStock"`
}

type marketplaceItem struct {
	productView
	StoreSlug string `json:"storeSlug"`
	StoreName string `json:"storeName"`
}

// storefrontResponse is the page contract: a banned or locked store is
// a static page state — store identity and visibility only, no
// catalog, no cart affordances.
type storefrontResponse struct {
	Store      storeView     `json:"store"`
	Visibility string        `json:"visibility"`
	Products   []productView `json:"products,omitempty"`
}

func toProductView(p domain.Product) productView {
	return productView{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		PriceKobo:     p.PriceKobo,
		StockQuantity: p.StockQuantity,
		InStock:       p.StockQuantity > 0,
	}
}

func toStorefrontResponse(sf gate.Storefront) storefrontResponse {
	resp := storefrontResponse{
		Store:      storeView{Slug: sf.Store.Slug, Name: sf.Store.Name},
		Visibility: string(sf.Visibility),
	}
	if sf.Visibility != domain.VisibilityActive {
		return resp
	}
	resp.Store.Plan = string(sf.Store.Plan)
	resp.Store.ViewCount = sf.Store.ViewCount
	products := make([]productView, 0, len(sf.Listing))
	for _, p := range sf.Listing {
		products = append(products, toProductView(p))
	}
	resp.Products = products
	return resp
}

func toMarketplaceItems(products []domain.MarketplaceProduct) []marketplaceItem {
	items := make([]marketplaceItem, 0, len(products))
	for _, p := range products {
		items = append(items, marketplaceItem{
			productView: toProductView(p.Product),
			StoreSlug:   p.StoreSlug,
			StoreName:   p.StoreName,
		})
	}
	return items
}
