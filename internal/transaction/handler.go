package transaction

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/walletbook/walletbook/internal/apperr"
	"github.com/walletbook/walletbook/internal/wallet"
)

// Handler exposes transaction HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a transaction HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	WalletID string `json:"wallet_id"`
	TxID     string `json:"txid"`
	Amount   string `json:"amount"`
}

type transactionResponse struct {
	ID        string    `json:"id"`
	WalletID  string    `json:"wallet_id"`
	TxID      string    `json:"txid"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(txn Transaction) transactionResponse {
	return transactionResponse{
		ID:        txn.ID,
		WalletID:  txn.WalletID,
		TxID:      txn.TxID,
		Amount:    txn.Amount.String(),
		CreatedAt: txn.CreatedAt,
	}
}

// Create posts a transaction against a wallet, returning the persisted record
// together with the updated wallet snapshot.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.service.Apply(c.UserContext(), ApplyInput{
		WalletID: req.WalletID,
		TxID:     req.TxID,
		Amount:   req.Amount,
	})
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transaction": toResponse(receipt.Transaction),
		"wallet":      wallet.NewPayload(receipt.Wallet),
	})
}

// Get returns a single transaction.
func (h *Handler) Get(c *fiber.Ctx) error {
	txn, err := h.service.Get(c.UserContext(), c.Params("transactionId"))
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(txn))
}

// List returns transactions matching the request's filter, sort and
// pagination query parameters.
func (h *Handler) List(c *fiber.Ctx) error {
	q := ListQuery{
		WalletID:     c.Query("wallet_id"),
		TxID:         c.Query("txid"),
		TxIDContains: c.Query("txid_contains"),
		Search:       c.Query("search"),
		Sort:         c.Query("sort"),
		Page:         c.QueryInt("page", 1),
		PageSize:     c.QueryInt("page_size", defaultPageSize),
	}

	var err error
	if q.AmountMin, err = decimalQuery(c, "amount_min"); err != nil {
		return err
	}
	if q.AmountMax, err = decimalQuery(c, "amount_max"); err != nil {
		return err
	}

	txns, err := h.service.List(c.UserContext(), q)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}

	data := make([]transactionResponse, 0, len(txns))
	for _, txn := range txns {
		data = append(data, toResponse(txn))
	}
	limit, _ := q.window()
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"data":      data,
		"page":      q.Page,
		"page_size": limit,
	})
}

func decimalQuery(c *fiber.Ctx, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, name+" must be a decimal number")
	}
	return &d, nil
}
