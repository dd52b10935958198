package cart

import (
	"context"
	"errors"
	"io"
	"log"

	"vendora/internal/domain"
	"vendora/internal/session"
)

// ErrOutOfStock rejects adding a product with no stock. The ledger
// itself does not enforce stock; this is the add-affordance rule
// applied at the service boundary.
var ErrOutOfStock = errors.New("product out of stock")

// Service is the session-backed cart: lines live under a durable
// session key, the coin toggle under a session-scoped key, and the
// coin balance is re-read from the account system on every snapshot.
type Service struct {
	sessions session.Store
	products productRepo
	stores   storeRepo
	loyalty  loyaltyRepo
	logger   *log.Logger
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type storeRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Store, error)
}

type loyaltyRepo interface {
	Balance(ctx context.Context, shopperID string) (int64, error)
}

func New(sessions session.Store, products productRepo, stores storeRepo, loyalty loyaltyRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{sessions: sessions, products: products, stores: stores, loyalty: loyalty, logger: logger}
}

// Snapshot is the cart state returned from every read and mutation.
type Snapshot struct {
	Lines   []domain.CartLine `json:"lines"`
	Count   int               `json:"count"`
	Pricing Pricing           `json:"pricing"`
}

func (s *Service) load(ctx context.Context, sessionID string) (*Ledger, error) {
	lines, err := s.sessions.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return NewLedger(lines), nil
}

func (s *Service) snapshot(ctx context.Context, sessionID string, ledger *Ledger) (*Snapshot, error) {
	useCoins, err := s.sessions.CoinToggle(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	balance, err := s.loyalty.Balance(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Lines:   ledger.Lines(),
		Count:   ledger.Count(),
		Pricing: ledger.Pricing(balance, useCoins),
	}, nil
}

// Get returns the current cart snapshot with freshly computed pricing.
func (s *Service) Get(ctx context.Context, sessionID string) (*Snapshot, error) {
	ledger, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, sessionID, ledger)
}

// AddItem puts one unit of the product in the cart, snapshotting the
// product and its store at add time.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string) (*Snapshot, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.StockQuantity <= 0 {
		return nil, ErrOutOfStock
	}
	store, err := s.stores.GetByID(ctx, product.StoreID)
	if err != nil {
		return nil, err
	}

	ledger, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ledger.Add(*product, *store)
	if err := s.sessions.SaveCart(ctx, sessionID, ledger.Lines()); err != nil {
		return nil, err
	}
	return s.snapshot(ctx, sessionID, ledger)
}

// SetQuantity updates a line's quantity (clamped to >= 1).
func (s *Service) SetQuantity(ctx context.Context, sessionID, productID string, qty int) (*Snapshot, error) {
	ledger, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ledger.SetQuantity(productID, qty) {
		return nil, domain.ErrNotFound
	}
	if err := s.sessions.SaveCart(ctx, sessionID, ledger.Lines()); err != nil {
		return nil, err
	}
	return s.snapshot(ctx, sessionID, ledger)
}

// RemoveItem drops a line from the cart.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*Snapshot, error) {
	ledger, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ledger.Remove(productID)
	if err := s.sessions.SaveCart(ctx, sessionID, ledger.Lines()); err != nil {
		return nil, err
	}
	return s.snapshot(ctx, sessionID, ledger)
}

// Clear empties the cart and resets the coin toggle to its safe
// default.
func (s *Service) Clear(ctx context.Context, sessionID string) (*Snapshot, error) {
	if err := s.sessions.ClearCart(ctx, sessionID); err != nil {
		return nil, err
	}
	if err := s.sessions.SetCoinToggle(ctx, sessionID, false); err != nil {
		return nil, err
	}
	return s.snapshot(ctx, sessionID, NewLedger(nil))
}

// SetUseCoins flips the redemption opt-in for this session.
func (s *Service) SetUseCoins(ctx context.Context, sessionID string, on bool) (*Snapshot, error) {
	if err := s.sessions.SetCoinToggle(ctx, sessionID, on); err != nil {
		return nil, err
	}
	ledger, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, sessionID, ledger)
}
