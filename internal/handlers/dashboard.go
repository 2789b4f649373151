package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"secureflow/internal/services/dashboard"
	"secureflow/internal/utils/response"
)

type DashboardHandler struct {
	service dashboard.Service
}

func NewDashboardHandler(service dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary returns the dashboard aggregates for the trailing window
// (?days=N, default 7).
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 {
		days = 7
	}

	data, err := h.service.Summary(c.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		return response.ServerError(c, "failed to compute dashboard data")
	}

	return c.JSON(data)
}
