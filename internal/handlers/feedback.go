package handlers

import (
	"github.com/gofiber/fiber/v2"

	"secureflow/internal/services/feedback"
	"secureflow/internal/utils/response"
)

type FeedbackHandler struct {
	service feedback.Service
}

func NewFeedbackHandler(service feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type feedbackRequest struct {
	TransactionID *uint  `json:"transaction_id"`
	IsCorrect     *bool  `json:"is_correct"`
	Feedback      *bool  `json:"feedback"` // legacy key, same meaning
	Comments      string `json:"comments"`
}

// Submit records operator feedback against an existing transaction.
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req feedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid JSON body")
	}
	if req.TransactionID == nil {
		return response.BadRequest(c, "missing required field: transaction_id")
	}

	isCorrect := req.IsCorrect
	if isCorrect == nil {
		isCorrect = req.Feedback
	}
	if isCorrect == nil {
		return response.BadRequest(c, "missing required field: is_correct")
	}

	fb, err := h.service.Record(c.Context(), *req.TransactionID, *isCorrect, req.Comments)
	if err != nil {
		return response.FromError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fb)
}
