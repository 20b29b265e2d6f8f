package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/walletbook/walletbook/internal/config"
	"github.com/walletbook/walletbook/internal/infra"
	"github.com/walletbook/walletbook/internal/logging"
	"github.com/walletbook/walletbook/internal/wallet"
)

const defaultCount = 50

var labelWords = []string{
	"savings", "holiday", "grocery", "payroll", "escrow", "travel",
	"emergency", "household", "hobby", "rainy-day", "gifts", "petty-cash",
	"subscriptions", "utilities", "tuition", "allowance",
}

// seed creates count wallets with random labels and two-decimal balances in
// [0, 99.99], mirroring the shape of typical production data.
func main() {
	count := defaultCount
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "usage: seed [count]\n")
			os.Exit(2)
		}
		count = n
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	pool, err := infra.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := wallet.NewPostgresRepository(pool)

	for i := 0; i < count; i++ {
		w := wallet.Wallet{
			ID:        uuid.NewString(),
			Label:     labelWords[rand.Intn(len(labelWords))],
			Balance:   decimal.New(int64(rand.Intn(10000)), -2),
			CreatedAt: time.Now().UTC(),
		}
		if err := repo.Create(ctx, w); err != nil {
			logger.Error("create wallet", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("seeded wallets", "count", count)
}
