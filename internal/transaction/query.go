package transaction

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/walletbook/walletbook/internal/apperr"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ListQuery carries filter, ordering and pagination arguments for List. Zero
// values mean "not set".
type ListQuery struct {
	WalletID     string
	TxID         string
	TxIDContains string
	Search       string
	AmountMin    *decimal.Decimal
	AmountMax    *decimal.Decimal

	// Sort names one of id, txid, amount, wallet_id, created_at; a "-"
	// prefix flips the order to descending. Empty sorts by id ascending.
	Sort     string
	Page     int
	PageSize int
}

var sortable = map[string]string{
	"id":         "id",
	"txid":       "txid",
	"amount":     "amount",
	"wallet_id":  "wallet_id",
	"created_at": "created_at",
}

func (q ListQuery) order() (column string, desc bool, err error) {
	field := q.Sort
	if field == "" {
		return "id", false, nil
	}
	if strings.HasPrefix(field, "-") {
		desc = true
		field = field[1:]
	}
	column, ok := sortable[field]
	if !ok {
		return "", false, apperr.Validation("sort", "unknown sort field "+field)
	}
	return column, desc, nil
}

func (q ListQuery) window() (limit, offset int) {
	size := q.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	return size, (page - 1) * size
}
