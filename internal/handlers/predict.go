package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"secureflow/internal/services/feature"
	"secureflow/internal/services/scoring"
	"secureflow/internal/utils/response"
)

type PredictHandler struct {
	engine scoring.Service
}

func NewPredictHandler(engine scoring.Service) *PredictHandler {
	return &PredictHandler{engine: engine}
}

// Predict scores a single transaction and returns the persisted result.
func (h *PredictHandler) Predict(c *fiber.Ctx) error {
	var raw feature.RawTransaction
	if err := c.BodyParser(&raw); err != nil {
		return response.BadRequest(c, "invalid JSON body")
	}

	result, err := h.engine.ScoreTransaction(c.Context(), raw)
	if err != nil {
		return response.FromError(c, err)
	}

	return c.JSON(predictionPayload(result))
}

type batchRequest struct {
	Transactions []feature.RawTransaction `json:"transactions"`
}

// PredictBatch scores an ordered collection. Per-item failures are reported
// in their slot; the batch itself always succeeds.
func (h *PredictHandler) PredictBatch(c *fiber.Ctx) error {
	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid JSON body")
	}
	if req.Transactions == nil {
		return response.BadRequest(c, "missing transactions array")
	}

	items := h.engine.ScoreBatch(c.Context(), req.Transactions)

	results := make([]fiber.Map, len(items))
	for i, item := range items {
		if item.Err != nil {
			results[i] = fiber.Map{
				"index": item.Index,
				"error": item.Err.Error(),
			}
			continue
		}
		payload := predictionPayload(item.Result)
		payload["index"] = item.Index
		results[i] = payload
	}

	return c.JSON(fiber.Map{
		"results":         results,
		"total_processed": len(results),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

func predictionPayload(result *scoring.Result) fiber.Map {
	tx := result.Transaction
	return fiber.Map{
		"transaction_id":   tx.ID,
		"is_anomaly":       tx.IsAnomaly,
		"anomaly_score":    tx.AnomalyScore,
		"risk_tier":        result.Classification.Tier,
		"confidence":       result.Classification.Confidence,
		"shap_explanation": result.TopFactors,
		"timestamp":        tx.CreatedAt.UTC().Format(time.RFC3339),
	}
}
