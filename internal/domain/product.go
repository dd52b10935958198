package domain

import "time"

type Product struct {
	ID            string    `json:"id"`
	StoreID       string    `json:"storeId"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description,omitempty"`
	PriceKobo     int64     `json:"priceKobo"`
	StockQuantity int       `json:"stockQuantity"`
	IsActive      bool      `json:"isActive"`
	CategoryID    *string   `json:"categoryId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// MarketplaceProduct is a product joined with a summary of its owning
// store, as returned by the marketplace candidate query. The store
// fields are what the curation engine filters on.
type MarketplaceProduct struct {
	Product
	StoreSlug   string      `json:"storeSlug"`
	StoreName   string      `json:"storeName"`
	StoreStatus StoreStatus `json:"-"`
	StorePlan   Plan        `json:"-"`
	StoreExpiry *time.Time  `json:"-"`
}

// ExpiredStore reports whether the owning store's subscription lapsed
// strictly before now, evaluated per product at read time.
func (p MarketplaceProduct) ExpiredStore(now time.Time) bool {
	return p.StoreExpiry != nil && p.StoreExpiry.Before(now)
}
