package wallet

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
)

// Repository persists wallet records. Balance mutation is deliberately absent:
// only the transaction store's atomic apply may touch a balance.
type Repository interface {
	Create(ctx context.Context, wallet Wallet) error
	Get(ctx context.Context, id string) (Wallet, error)
	List(ctx context.Context, q ListQuery) ([]Wallet, error)
}

// PostgresRepository stores wallets in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a wallet record.
func (r *PostgresRepository) Create(ctx context.Context, wallet Wallet) error {
	walletID, err := uuid.Parse(wallet.ID)
	if err != nil {
		return fmt.Errorf("wallet id: %w", err)
	}
	_, err = r.db.Exec(ctx, `INSERT INTO wallets (id, label, balance, created_at)
        VALUES ($1, $2, $3, $4)`, walletID, wallet.Label, wallet.Balance.String(), wallet.CreatedAt.UTC())
	return infra.TranslateError(err)
}

// Get fetches a wallet by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Wallet, error) {
	walletID, err := uuid.Parse(id)
	if err != nil {
		return Wallet{}, apperr.NotFound("wallet", id)
	}
	row := r.db.QueryRow(ctx, `SELECT id, label, balance::text, created_at
        FROM wallets WHERE id = $1`, walletID)
	w, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, apperr.NotFound("wallet", id)
		}
		return Wallet{}, infra.TranslateError(err)
	}
	return w, nil
}

// List returns wallets matching the query, ordered and paginated.
func (r *PostgresRepository) List(ctx context.Context, q ListQuery) ([]Wallet, error) {
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

	if q.Label != "" {
		where = append(where, "label = "+arg(q.Label))
	}
	if q.LabelContains != "" {
		where = append(where, "label ILIKE "+arg("%"+q.LabelContains+"%"))
	}
	if q.Search != "" {
		where = append(where, "label ILIKE "+arg("%"+q.Search+"%"))
	}
	if q.BalanceMin != nil {
		where = append(where, "balance >= "+arg(q.BalanceMin.String()))
	}
	if q.BalanceMax != nil {
		where = append(where, "balance <= "+arg(q.BalanceMax.String()))
	}

	sql := "SELECT id, label, balance::text, created_at FROM wallets"
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

	wallets := make([]Wallet, 0)
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.TranslateError(err)
	}
	return wallets, nil
}

func scanWallet(row pgx.Row) (Wallet, error) {
	var (
		w           Wallet
		id          uuid.UUID
		balanceText string
		createdAt   time.Time
	)
	if err := row.Scan(&id, &w.Label, &balanceText, &createdAt); err != nil {
		return Wallet{}, err
	}
	balance, err := decimal.NewFromString(balanceText)
	if err != nil {
		return Wallet{}, fmt.Errorf("decode balance: %w", err)
	}
	w.ID = id.String()
	w.Balance = balance
	w.CreatedAt = createdAt.UTC()
	return w, nil
}
