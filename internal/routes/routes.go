// Package routes defines the API routing configuration.
// It constructs the repositories and services in dependency order and
// registers all HTTP routes.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"secureflow/internal/config"
	"secureflow/internal/handlers"
	"secureflow/internal/metrics"
	"secureflow/internal/repositories"
	"secureflow/internal/repositories/cache"
	"secureflow/internal/services/dashboard"
	"secureflow/internal/services/feature"
	"secureflow/internal/services/feedback"
	"secureflow/internal/services/model"
	"secureflow/internal/services/scoring"
)

// SetupRoutes wires the scoring engine and registers all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB, modelCache *cache.ModelCache) {
	// Repositories
	transactionRepo := repositories.NewTransactionRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)

	// Model provider: constructed once here, lazily trained on first use.
	modelCfg := model.DefaultConfig()
	modelCfg.Trees = config.GetIntEnv("MODEL_TREES", modelCfg.Trees)
	modelCfg.Contamination = config.GetFloatEnv("MODEL_CONTAMINATION", modelCfg.Contamination)
	provider := model.NewProvider(modelCfg, modelCache)

	// Scoring engine
	classifier := scoring.NewClassifier(
		config.GetFloatEnv("SCORE_THRESHOLD", 0.6),
		config.GetFloatEnv("SCORE_BAND_DELTA", 0.1),
	)
	engine := scoring.NewService(
		feature.NewNormalizer(),
		provider,
		classifier,
		scoring.NewExplainer(),
		transactionRepo,
		metrics.Collector{},
		scoring.Config{BatchWorkers: config.GetIntEnv("BATCH_WORKERS", 4)},
	)

	// Read-side services
	feedbackService := feedback.NewService(feedbackRepo, transactionRepo)
	dashboardService := dashboard.NewService(transactionRepo, feedbackRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, modelCache, provider)
	predictHandler := handlers.NewPredictHandler(engine)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	transactionHandler := handlers.NewTransactionHandler(transactionRepo)

	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)
	api.Post("/predict", predictHandler.Predict)
	api.Post("/predict-batch", predictHandler.PredictBatch)
	api.Post("/feedback", feedbackHandler.Submit)
	api.Get("/dashboard", dashboardHandler.Summary)
	api.Get("/transactions", transactionHandler.List)
	api.Get("/transactions/:id", transactionHandler.Get)
}
