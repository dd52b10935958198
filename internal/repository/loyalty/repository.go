package loyalty

import "context"

// Repository reads shopper coin balances from the account system of
// record. Balances are never cached by callers; every pricing read
// re-acquires the current value.
type Repository interface {
	Balance(ctx context.Context, shopperID string) (int64, error)
}
