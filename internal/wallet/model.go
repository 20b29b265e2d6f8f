package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is an account record holding a running balance under a free-text
// label. The balance always equals the initial balance plus the sum of all
// transaction amounts posted against the wallet; it is adjusted incrementally
// by the transaction store and never recomputed on read.
type Wallet struct {
	ID        string
	Label     string
	Balance   decimal.Decimal
	CreatedAt time.Time
}
