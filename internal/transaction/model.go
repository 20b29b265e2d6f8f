package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletbook/walletbook/internal/wallet"
)

// Transaction is an immutable record of a single credit (positive amount) or
// debit (negative amount) applied to one wallet. Records are only ever created
// through Service.Apply and are never updated or deleted.
type Transaction struct {
	ID        string
	WalletID  string
	TxID      string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// Receipt pairs a persisted transaction with the wallet snapshot taken after
// the balance adjustment committed.
type Receipt struct {
	Transaction Transaction
	Wallet      wallet.Wallet
}
