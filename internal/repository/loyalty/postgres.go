package loyalty

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Balance(ctx context.Context, shopperID string) (int64, error) {
	const q = `
SELECT balance_kobo
FROM loyalty_balances
WHERE shopper_id = $1
`
	var balance int64
	err := r.pool.QueryRow(ctx, q, shopperID).Scan(&balance)
	if err != nil {
		// A shopper with no loyalty row simply has nothing to redeem.
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		r.logger.Printf("loyalty repo: balance shopper_id=%s error=%v", shopperID, err)
		return 0, err
	}
	return balance, nil
}
