package transaction

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/walletbook/walletbook/internal/apperr"
)

// Service exposes transaction operations. All writes go through Apply; there
// is no standalone create.
type Service struct {
	repo Repository
}

// NewService builds a transaction service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ApplyInput captures a validated create-transaction request. Amount is a
// decimal string; positive credits, negative debits. TxID may be any string,
// including empty, and is not required to be unique.
type ApplyInput struct {
	WalletID string
	TxID     string
	Amount   string
}

// Apply validates the input and runs the balance-update procedure: create the
// transaction and adjust the wallet balance as one atomic unit. Validation
// failures abort before anything is written. There is no overdraft rule — a
// debit may take the balance negative.
func (s *Service) Apply(ctx context.Context, input ApplyInput) (Receipt, error) {
	if strings.TrimSpace(input.WalletID) == "" {
		return Receipt{}, apperr.Validation("wallet_id", "must not be empty")
	}
	raw := strings.TrimSpace(input.Amount)
	if raw == "" {
		return Receipt{}, apperr.Validation("amount", "must not be empty")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return Receipt{}, apperr.Validation("amount", "must be a decimal number")
	}

	return s.repo.Apply(ctx, input.WalletID, input.TxID, amount)
}

// Get retrieves a transaction by identifier.
func (s *Service) Get(ctx context.Context, id string) (Transaction, error) {
	return s.repo.Get(ctx, id)
}

// List returns transactions matching the query.
func (s *Service) List(ctx context.Context, q ListQuery) ([]Transaction, error) {
	return s.repo.List(ctx, q)
}
