package domain

import "time"

// CartLine is one product in a shopper's cart, snapshotted at add time.
// A cart may hold lines from many stores at once.
type CartLine struct {
	ProductID     string    `json:"productId"`
	StoreID       string    `json:"storeId"`
	ProductName   string    `json:"productName"`
	ProductSlug   string    `json:"productSlug"`
	StoreSlug     string    `json:"storeSlug"`
	StoreName     string    `json:"storeName"`
	PriceKobo     int64     `json:"priceKobo"`
	StockQuantity int       `json:"stockQuantity"`
	Quantity      int       `json:"quantity"`
	AddedAt       time.Time `json:"addedAt"`
}

// TotalKobo is the line subtotal.
func (l CartLine) TotalKobo() int64 {
	return l.PriceKobo * int64(l.Quantity)
}
