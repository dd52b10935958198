package session

import (
	"context"

	"vendora/internal/domain"
)

// Store is the shopper-device key-value store. Two lifetimes live side
// by side: cart lines are durable across reloads, while view markers
// and the coin toggle expire with the session. The split is deliberate
// — a stale coin toggle or balance from an old session must never be
// applied before the source of truth is re-confirmed.
type Store interface {
	LoadCart(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	SaveCart(ctx context.Context, sessionID string, lines []domain.CartLine) error
	ClearCart(ctx context.Context, sessionID string) error

	HasViewMarker(ctx context.Context, sessionID, storeID string) (bool, error)
	SetViewMarker(ctx context.Context, sessionID, storeID string) error

	CoinToggle(ctx context.Context, sessionID string) (bool, error)
	SetCoinToggle(ctx context.Context, sessionID string, on bool) error
}
