package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/walletbook/walletbook/internal/apperr"
)

func TestServiceCreateAndGet(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Label: "groceries", Balance: "10.00"})
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned wallet id")
	}

	fetched, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if fetched.Label != "groceries" {
		t.Fatalf("expected label groceries, got %q", fetched.Label)
	}
	// Numeric equality, independent of trailing-zero formatting.
	if !fetched.Balance.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected balance 10.00, got %s", fetched.Balance)
	}
	if !fetched.Balance.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("expected 10.00 to equal 10, got %s", fetched.Balance)
	}
}

func TestServiceCreateDefaultsBalanceToZero(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	w, err := svc.Create(context.Background(), CreateInput{Label: "empty"})
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	if !w.Balance.IsZero() {
		t.Fatalf("expected zero balance, got %s", w.Balance)
	}
}

func TestServiceCreateAllowsNegativeBalance(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	w, err := svc.Create(context.Background(), CreateInput{Label: "overdrawn", Balance: "-12.50"})
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	if !w.Balance.Equal(decimal.RequireFromString("-12.50")) {
		t.Fatalf("expected balance -12.50, got %s", w.Balance)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Label: "  "}); err == nil {
		t.Fatal("expected validation error for empty label")
	} else if ve, ok := apperr.AsValidation(err); !ok || ve.Field != "label" {
		t.Fatalf("expected label validation error, got %v", err)
	}

	if _, err := svc.Create(ctx, CreateInput{Label: "bad balance", Balance: "abc"}); err == nil {
		t.Fatal("expected validation error for non-decimal balance")
	} else if ve, ok := apperr.AsValidation(err); !ok || ve.Field != "balance" {
		t.Fatalf("expected balance validation error, got %v", err)
	}
}

func TestServiceGetNotFound(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func seedWallets(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()
	fixtures := []struct{ label, balance string }{
		{"Test Wallet 1", "99.50"},
		{"Test Wallet 2", "50.75"},
		{"Another Wallet", "0"},
		{"High Balance Wallet", "80.00"},
	}
	for _, f := range fixtures {
		if _, err := svc.Create(ctx, CreateInput{Label: f.label, Balance: f.balance}); err != nil {
			t.Fatalf("seed wallet %q: %v", f.label, err)
		}
	}
}

func TestServiceListBalanceRange(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	seedWallets(t, svc)
	ctx := context.Background()

	min := decimal.RequireFromString("50")
	wallets, err := svc.List(ctx, ListQuery{BalanceMin: &min})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(wallets) != 3 {
		t.Fatalf("expected 3 wallets with balance >= 50, got %d", len(wallets))
	}

	max := decimal.RequireFromString("80.00")
	wallets, err = svc.List(ctx, ListQuery{BalanceMin: &min, BalanceMax: &max})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(wallets) != 2 {
		t.Fatalf("expected 2 wallets in [50, 80], got %d", len(wallets))
	}
}

func TestServiceListLabelFilters(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	seedWallets(t, svc)
	ctx := context.Background()

	wallets, err := svc.List(ctx, ListQuery{Label: "Another Wallet"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(wallets) != 1 || wallets[0].Label != "Another Wallet" {
		t.Fatalf("unexpected exact-label result: %+v", wallets)
	}

	wallets, err = svc.List(ctx, ListQuery{LabelContains: "test wallet"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(wallets) != 2 {
		t.Fatalf("expected 2 wallets containing 'test wallet', got %d", len(wallets))
	}

	wallets, err = svc.List(ctx, ListQuery{Search: "High"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(wallets) != 1 || wallets[0].Label != "High Balance Wallet" {
		t.Fatalf("unexpected search result: %+v", wallets)
	}
}

func TestServiceListOrdering(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	seedWallets(t, svc)
	ctx := context.Background()

	wallets, err := svc.List(ctx, ListQuery{Sort: "balance"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(wallets); i++ {
		if wallets[i].Balance.LessThan(wallets[i-1].Balance) {
			t.Fatalf("wallets not ascending by balance: %s before %s", wallets[i-1].Balance, wallets[i].Balance)
		}
	}

	wallets, err = svc.List(ctx, ListQuery{Sort: "-balance"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !wallets[0].Balance.Equal(decimal.RequireFromString("99.50")) {
		t.Fatalf("expected highest balance first, got %s", wallets[0].Balance)
	}

	if _, err := svc.List(ctx, ListQuery{Sort: "secret"}); err == nil {
		t.Fatal("expected validation error for unknown sort field")
	}
}

func TestServiceListPagination(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	seedWallets(t, svc)
	ctx := context.Background()

	first, err := svc.List(ctx, ListQuery{Sort: "label", Page: 1, PageSize: 3})
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 wallets on page 1, got %d", len(first))
	}

	second, err := svc.List(ctx, ListQuery{Sort: "label", Page: 2, PageSize: 3})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected 1 wallet on page 2, got %d", len(second))
	}

	empty, err := svc.List(ctx, ListQuery{Page: 5, PageSize: 3})
	if err != nil {
		t.Fatalf("list past end: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page past end, got %d", len(empty))
	}
}
