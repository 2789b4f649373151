package handlers

import (
	"github.com/gofiber/fiber/v2"

	"secureflow/internal/repositories"
	"secureflow/internal/utils/pagination"
	"secureflow/internal/utils/response"
)

type TransactionHandler struct {
	repo repositories.TransactionRepository
}

func NewTransactionHandler(repo repositories.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{repo: repo}
}

// List returns stored transactions, newest first, paginated.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	txs, total, err := h.repo.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, "failed to list transactions")
	}
	p.Total = total

	return c.JSON(pagination.Response(p, txs))
}

// Get returns one stored transaction by id.
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "invalid transaction id")
	}

	tx, err := h.repo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.FromError(c, err)
	}

	return c.JSON(tx)
}
