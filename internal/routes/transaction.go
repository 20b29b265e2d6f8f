package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/walletbook/walletbook/internal/transaction"
)

// RegisterTransactionRoutes wires transaction-related endpoints. There are no
// update or delete routes: transactions are immutable once created.
func RegisterTransactionRoutes(r fiber.Router, h *transaction.Handler) {
	r.Post("/transactions", h.Create)
	r.Get("/transactions", h.List)
	r.Get("/transactions/:transactionId", h.Get)
}
