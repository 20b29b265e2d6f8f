package transaction

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/walletbook/walletbook/internal/apperr"
	"github.com/walletbook/walletbook/internal/infra"
	"github.com/walletbook/walletbook/internal/wallet"
)

// Repository persists transaction records. Apply is the only write path: it
// creates the record and adjusts the owning wallet's balance as one atomic
// unit.
type Repository interface {
	Get(ctx context.Context, id string) (Transaction, error)
	List(ctx context.Context, q ListQuery) ([]Transaction, error)
	Apply(ctx context.Context, walletID, txid string, amount decimal.Decimal) (Receipt, error)
}

// PostgresRepository stores transactions in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Apply creates a transaction and moves the wallet balance by amount inside a
// single database transaction. The wallet row is locked with FOR UPDATE for
// the duration, so concurrent applies against the same wallet serialize and
// each one sees the previous one's committed balance. If anything fails before
// commit, the deferred rollback leaves both tables untouched.
func (r *PostgresRepository) Apply(ctx context.Context, walletID, txid string, amount decimal.Decimal) (Receipt, error) {
	wid, err := uuid.Parse(walletID)
	if err != nil {
		return Receipt{}, apperr.NotFound("wallet", walletID)
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Receipt{}, infra.TranslateError(err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var (
		w           wallet.Wallet
		idVal       uuid.UUID
		balanceText string
		createdAt   time.Time
	)
	row := tx.QueryRow(ctx, `SELECT id, label, balance::text, created_at
        FROM wallets WHERE id = $1 FOR UPDATE`, wid)
	if err := row.Scan(&idVal, &w.Label, &balanceText, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Receipt{}, apperr.NotFound("wallet", walletID)
		}
		return Receipt{}, infra.TranslateError(err)
	}
	w.ID = idVal.String()
	w.CreatedAt = createdAt.UTC()

	balance, err := decimal.NewFromString(balanceText)
	if err != nil {
		return Receipt{}, fmt.Errorf("decode balance: %w", err)
	}

	txn := Transaction{
		ID:        uuid.NewString(),
		WalletID:  w.ID,
		TxID:      txid,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := tx.Exec(ctx, `INSERT INTO transactions (id, wallet_id, txid, amount, created_at)
        VALUES ($1, $2, $3, $4, $5)`, uuid.MustParse(txn.ID), wid, txn.TxID, txn.Amount.String(), txn.CreatedAt); err != nil {
		return Receipt{}, infra.TranslateError(err)
	}

	newBalance := balance.Add(amount)
	if _, err := tx.Exec(ctx, `UPDATE wallets SET balance = $1 WHERE id = $2`,
		newBalance.String(), wid); err != nil {
		return Receipt{}, infra.TranslateError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Receipt{}, infra.TranslateError(err)
	}

	w.Balance = newBalance
	return Receipt{Transaction: txn, Wallet: w}, nil
}

// Get fetches a transaction by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Transaction, error) {
	txnID, err := uuid.Parse(id)
	if err != nil {
		return Transaction{}, apperr.NotFound("transaction", id)
	}
	row := r.db.QueryRow(ctx, `SELECT id, wallet_id, txid, amount::text, created_at
        FROM transactions WHERE id = $1`, txnID)
	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, apperr.NotFound("transaction", id)
		}
		return Transaction{}, infra.TranslateError(err)
	}
	return txn, nil
}

// List returns transactions matching the query, ordered and paginated.
func (r *PostgresRepository) List(ctx context.Context, q ListQuery) ([]Transaction, error) {
	column, desc, err := q.order()
	if err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.WalletID != "" {
		wid, err := uuid.Parse(q.WalletID)
		if err != nil {
			return nil, apperr.Validation("wallet_id", "must be a valid wallet identifier")
		}
		where = append(where, "wallet_id = "+arg(wid))
	}
	if q.TxID != "" {
		where = append(where, "txid = "+arg(q.TxID))
	}
	if q.TxIDContains != "" {
		where = append(where, "txid ILIKE "+arg("%"+q.TxIDContains+"%"))
	}
	if q.Search != "" {
		where = append(where, "txid ILIKE "+arg("%"+q.Search+"%"))
	}
	if q.AmountMin != nil {
		where = append(where, "amount >= "+arg(q.AmountMin.String()))
	}
	if q.AmountMax != nil {
		where = append(where, "amount <= "+arg(q.AmountMax.String()))
	}

	sql := "SELECT id, wallet_id, txid, amount::text, created_at FROM transactions"
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY " + column
	if desc {
		sql += " DESC"
	}
	limit, offset := q.window()
	sql += " LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.TranslateError(err)
	}
	defer rows.Close()

	txns := make([]Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.TranslateError(err)
	}
	return txns, nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var (
		txn        Transaction
		id         uuid.UUID
		walletID   uuid.UUID
		amountText string
		createdAt  time.Time
	)
	if err := row.Scan(&id, &walletID, &txn.TxID, &amountText, &createdAt); err != nil {
		return Transaction{}, err
	}
	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		return Transaction{}, fmt.Errorf("decode amount: %w", err)
	}
	txn.ID = id.String()
	txn.WalletID = walletID.String()
	txn.Amount = amount
	txn.CreatedAt = createdAt.UTC()
	return txn, nil
}
