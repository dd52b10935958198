package cart

import (
	"time"

	"vendora/internal/domain"
)

// CoinDiscountPercent caps how much of an order may be paid with
// loyalty coins, independent of the shopper's balance.
const CoinDiscountPercent = 15

// Ledger is the shopper's in-progress order: an accumulator over cart
// lines with derived pricing. It holds no I/O; the session-backed
// Service loads and persists it.
type Ledger struct {
	lines []domain.CartLine
	now   func() time.Time
}

func NewLedger(lines []domain.CartLine) *Ledger {
	return &Ledger{lines: lines, now: time.Now}
}

// Add appends a line at quantity 1, or bumps the quantity when the
// product is already present. Stock is advisory here; enforcement
// belongs to checkout.
func (l *Ledger) Add(product domain.Product, store domain.Store) {
	for i := range l.lines {
		if l.lines[i].ProductID == product.ID {
			l.lines[i].Quantity++
			return
		}
	}
	l.lines = append(l.lines, domain.CartLine{
		ProductID:     product.ID,
		StoreID:       store.ID,
		ProductName:   product.Name,
		ProductSlug:   product.Slug,
		StoreSlug:     store.Slug,
		StoreName:     store.Name,
		PriceKobo:     product.PriceKobo,
		StockQuantity: product.StockQuantity,
		Quantity:      1,
		AddedAt:       l.now(),
	})
}

// Remove drops the line for productID. Removing an absent product is a
// no-op.
func (l *Ledger) Remove(productID string) {
	for i := range l.lines {
		if l.lines[i].ProductID == productID {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity sets a line's quantity, clamped to a minimum of 1. It
// reports whether the product was present.
func (l *Ledger) SetQuantity(productID string, qty int) bool {
	if qty < 1 {
		qty = 1
	}
	for i := range l.lines {
		if l.lines[i].ProductID == productID {
			l.lines[i].Quantity = qty
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (l *Ledger) Clear() {
	l.lines = nil
}

// Lines returns a copy of the cart lines.
func (l *Ledger) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(l.lines))
	copy(out, l.lines)
	return out
}

// Count is the total item quantity across lines.
func (l *Ledger) Count() int {
	total := 0
	for _, line := range l.lines {
		total += line.Quantity
	}
	return total
}

// SubtotalKobo is the undiscounted order total.
func (l *Ledger) SubtotalKobo() int64 {
	var total int64
	for _, line := range l.lines {
		total += line.TotalKobo()
	}
	return total
}

// Pricing is a cart's computed payable amounts for one read. It is
// never cached; every read recomputes from the lines and a freshly
// fetched balance, so no caller can push redemption past the cap.
type Pricing struct {
	SubtotalKobo    int64 `json:"subtotalKobo"`
	MaxDiscountKobo int64 `json:"maxDiscountKobo"`
	RedeemedKobo    int64 `json:"redeemedKobo"`
	TotalKobo       int64 `json:"totalKobo"`
	UseCoins        bool  `json:"useCoins"`
	BalanceKobo     int64 `json:"balanceKobo"`
}

// Pricing computes the payable amount under the capped discount rule:
// redeemed = min(balance, floor(subtotal * 15%)) when coins are opted
// in and the cart is non-empty, else 0.
func (l *Ledger) Pricing(balanceKobo int64, useCoins bool) Pricing {
	subtotal := l.SubtotalKobo()
	maxDiscount := subtotal * CoinDiscountPercent / 100

	if balanceKobo < 0 {
		balanceKobo = 0
	}
	var redeemed int64
	if useCoins && len(l.lines) > 0 {
		redeemed = min(balanceKobo, maxDiscount)
	}

	return Pricing{
		SubtotalKobo:    subtotal,
		MaxDiscountKobo: maxDiscount,
		RedeemedKobo:    redeemed,
		TotalKobo:       subtotal - redeemed,
		UseCoins:        useCoins,
		BalanceKobo:     balanceKobo,
	}
}
