package wallet

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/walletbook/walletbook/internal/apperr"
)

// Service exposes wallet operations on top of a Repository.
type Service struct {
	repo Repository
}

// NewService builds a wallet service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to create a wallet. Balance is a decimal
// string; empty means zero.
type CreateInput struct {
	Label   string
	Balance string
}

// Create validates the input and persists a new wallet.
func (s *Service) Create(ctx context.Context, input CreateInput) (Wallet, error) {
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return Wallet{}, apperr.Validation("label", "must not be empty")
	}

	balance := decimal.Zero
	if input.Balance != "" {
		parsed, err := decimal.NewFromString(input.Balance)
		if err != nil {
			return Wallet{}, apperr.Validation("balance", "must be a decimal number")
		}
		balance = parsed
	}

	wallet := Wallet{
		ID:        uuid.NewString(),
		Label:     label,
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, wallet); err != nil {
		return Wallet{}, err
	}
	return wallet, nil
}

// Get retrieves a wallet by identifier.
func (s *Service) Get(ctx context.Context, id string) (Wallet, error) {
	return s.repo.Get(ctx, id)
}

// List returns wallets matching the query.
func (s *Service) List(ctx context.Context, q ListQuery) ([]Wallet, error) {
	return s.repo.List(ctx, q)
}
