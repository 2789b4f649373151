package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"secureflow/internal/repositories/cache"
	"secureflow/internal/services/model"
)

type HealthHandler struct {
	db         *gorm.DB
	modelCache *cache.ModelCache
	provider   *model.Provider
}

func NewHealthHandler(db *gorm.DB, modelCache *cache.ModelCache, provider *model.Provider) *HealthHandler {
	return &HealthHandler{db: db, modelCache: modelCache, provider: provider}
}

// Check reports service status and persistence connectivity. The model is
// reported as loaded only after its lazy initialization completed.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"

	dbStatus := "connected"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Context()) != nil {
		dbStatus = "unreachable"
		status = "degraded"
	}

	redisStatus := "connected"
	if err := h.modelCache.Ping(c.Context()); err != nil {
		redisStatus = "unreachable"
	}

	payload := fiber.Map{
		"status":       status,
		"model_loaded": h.provider.Loaded(),
		"services": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	}
	if v := h.provider.Version(); v != "" {
		payload["model_version"] = v
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(payload)
}
