package wallet

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/walletbook/walletbook/internal/apperr"
)

// MemoryRepository keeps wallets in process memory. It backs unit tests and
// the development mode that runs without PostgreSQL.
type MemoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Wallet
	seq     []string
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{storage: make(map[string]Wallet)}
}

func (r *MemoryRepository) Create(_ context.Context, wallet Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[wallet.ID]; exists {
		return apperr.Validation("id", "wallet already exists")
	}
	r.storage[wallet.ID] = wallet
	r.seq = append(r.seq, wallet.ID)
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallet, ok := r.storage[id]
	if !ok {
		return Wallet{}, apperr.NotFound("wallet", id)
	}
	return wallet, nil
}

func (r *MemoryRepository) List(_ context.Context, q ListQuery) ([]Wallet, error) {
	column, desc, err := q.order()
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	matched := make([]Wallet, 0, len(r.seq))
	for _, id := range r.seq {
		w := r.storage[id]
		if q.Label != "" && w.Label != q.Label {
			continue
		}
		if q.LabelContains != "" && !containsFold(w.Label, q.LabelContains) {
			continue
		}
		if q.Search != "" && !containsFold(w.Label, q.Search) {
			continue
		}
		if q.BalanceMin != nil && w.Balance.LessThan(*q.BalanceMin) {
			continue
		}
		if q.BalanceMax != nil && w.Balance.GreaterThan(*q.BalanceMax) {
			continue
		}
		matched = append(matched, w)
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if desc {
			return lessByColumn(matched[j], matched[i], column)
		}
		return lessByColumn(matched[i], matched[j], column)
	})

	limit, offset := q.window()
	if offset >= len(matched) {
		return []Wallet{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return append([]Wallet(nil), matched[offset:end]...), nil
}

// Adjust applies a balance delta while holding the repository lock and returns
// the updated wallet. The in-memory transaction store calls it as its atomic
// unit; nothing else should mutate a balance.
func (r *MemoryRepository) Adjust(id string, delta decimal.Decimal) (Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wallet, ok := r.storage[id]
	if !ok {
		return Wallet{}, apperr.NotFound("wallet", id)
	}
	wallet.Balance = wallet.Balance.Add(delta)
	r.storage[id] = wallet
	return wallet, nil
}

func lessByColumn(a, b Wallet, column string) bool {
	switch column {
	case "label":
		return a.Label < b.Label
	case "balance":
		return a.Balance.LessThan(b.Balance)
	case "created_at":
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return a.ID < b.ID
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
