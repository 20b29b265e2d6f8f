package transaction

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/walletbook/walletbook/internal/apperr"
	"github.com/walletbook/walletbook/internal/wallet"
)

// MemoryRepository keeps transactions in process memory, applying balance
// adjustments against an in-memory wallet repository. It backs unit tests and
// the development mode that runs without PostgreSQL.
type MemoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Transaction
	seq     []string
	wallets *wallet.MemoryRepository
}

// NewMemoryRepository constructs an in-memory repository bound to the given
// wallet store.
func NewMemoryRepository(wallets *wallet.MemoryRepository) *MemoryRepository {
	return &MemoryRepository{storage: make(map[string]Transaction), wallets: wallets}
}

// Apply adjusts the wallet balance and records the transaction under the
// repository lock, mirroring the all-or-nothing semantics of the Postgres
// implementation: a missing wallet leaves the transaction store untouched.
func (r *MemoryRepository) Apply(_ context.Context, walletID, txid string, amount decimal.Decimal) (Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, err := r.wallets.Adjust(walletID, amount)
	if err != nil {
		return Receipt{}, err
	}

	txn := Transaction{
		ID:        uuid.NewString(),
		WalletID:  w.ID,
		TxID:      txid,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	r.storage[txn.ID] = txn
	r.seq = append(r.seq, txn.ID)
	return Receipt{Transaction: txn, Wallet: w}, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	txn, ok := r.storage[id]
	if !ok {
		return Transaction{}, apperr.NotFound("transaction", id)
	}
	return txn, nil
}

func (r *MemoryRepository) List(_ context.Context, q ListQuery) ([]Transaction, error) {
	column, desc, err := q.order()
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	matched := make([]Transaction, 0, len(r.seq))
	for _, id := range r.seq {
		txn := r.storage[id]
		if q.WalletID != "" && txn.WalletID != q.WalletID {
			continue
		}
		if q.TxID != "" && txn.TxID != q.TxID {
			continue
		}
		if q.TxIDContains != "" && !containsFold(txn.TxID, q.TxIDContains) {
			continue
		}
		if q.Search != "" && !containsFold(txn.TxID, q.Search) {
			continue
		}
		if q.AmountMin != nil && txn.Amount.LessThan(*q.AmountMin) {
			continue
		}
		if q.AmountMax != nil && txn.Amount.GreaterThan(*q.AmountMax) {
			continue
		}
		matched = append(matched, txn)
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		less := lessByColumn(matched[i], matched[j], column)
		if desc {
			return lessByColumn(matched[j], matched[i], column)
		}
		return less
	})

	limit, offset := q.window()
	if offset >= len(matched) {
		return []Transaction{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return append([]Transaction(nil), matched[offset:end]...), nil
}

func lessByColumn(a, b Transaction, column string) bool {
	switch column {
	case "txid":
		return a.TxID < b.TxID
	case "amount":
		return a.Amount.LessThan(b.Amount)
	case "wallet_id":
		return a.WalletID < b.WalletID
	case "created_at":
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return a.ID < b.ID
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
