package wallet

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/walletbook/walletbook/internal/apperr"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Label   string `json:"label"`
	Balance string `json:"balance"`
}

// Payload shapes a wallet for JSON output. Balances serialize as strings to
// keep exact decimal representation on the wire.
type Payload struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPayload converts a wallet into its JSON shape.
func NewPayload(w Wallet) Payload {
	return Payload{
		ID:        w.ID,
		Label:     w.Label,
		Balance:   w.Balance.String(),
		CreatedAt: w.CreatedAt,
	}
}

// Create provisions a new wallet.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	wallet, err := h.service.Create(c.UserContext(), CreateInput{Label: req.Label, Balance: req.Balance})
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.Status(http.StatusCreated).JSON(NewPayload(wallet))
}

// Get returns a single wallet.
func (h *Handler) Get(c *fiber.Ctx) error {
	wallet, err := h.service.Get(c.UserContext(), c.Params("walletId"))
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(NewPayload(wallet))
}

// List returns wallets matching the request's filter, sort and pagination
// query parameters.
func (h *Handler) List(c *fiber.Ctx) error {
	q := ListQuery{
		Label:         c.Query("label"),
		LabelContains: c.Query("label_contains"),
		Search:        c.Query("search"),
		Sort:          c.Query("sort"),
		Page:          c.QueryInt("page", 1),
		PageSize:      c.QueryInt("page_size", defaultPageSize),
	}

	var err error
	if q.BalanceMin, err = decimalQuery(c, "balance_min"); err != nil {
		return err
	}
	if q.BalanceMax, err = decimalQuery(c, "balance_max"); err != nil {
		return err
	}

	wallets, err := h.service.List(c.UserContext(), q)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}

	data := make([]Payload, 0, len(wallets))
	for _, w := range wallets {
		data = append(data, NewPayload(w))
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
