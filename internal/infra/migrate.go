package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Balances and amounts use NUMERIC(38,18): exact fixed-point decimals, never
// floats. txid is indexed but deliberately not unique.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS wallets (
		id UUID PRIMARY KEY,
		label TEXT NOT NULL,
		balance NUMERIC(38,18) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_wallets_label ON wallets (label)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		wallet_id UUID NOT NULL REFERENCES wallets (id),
		txid TEXT NOT NULL,
		amount NUMERIC(38,18) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_txid ON transactions (txid)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_wallet ON transactions (wallet_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_wallet_amount ON transactions (wallet_id, amount)`,
}

// Migrate applies the wallets/transactions schema. Statements are idempotent
// so the command can run on every deploy.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
