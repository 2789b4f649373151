// Package feature maps inbound transaction payloads onto the fixed-order
// numeric vector consumed by the outlier model.
package feature

import (
	"math"
	"strings"

	apperrors "secureflow/internal/errors"
	"secureflow/internal/models"
)

// Feature names, in vector order. The order must match the order the model
// was fit with.
const (
	FeatureAmount           = "amount"
	FeatureHour             = "hour"
	FeatureDayOfWeek        = "day_of_week"
	FeatureMerchantCategory = "merchant_category"
	FeatureTransactionType  = "transaction_type"
)

// Names lists the feature names in vector order.
var Names = []string{
	FeatureAmount,
	FeatureHour,
	FeatureDayOfWeek,
	FeatureMerchantCategory,
	FeatureTransactionType,
}

// Count is the fixed vector width.
const Count = 5

// RawTransaction is an inbound payload before normalization. Required numeric
// fields are pointers so absence is distinguishable from zero. Categorical
// fields accept both historical shapes: numeric codes and lowercase labels.
type RawTransaction struct {
	Amount           *float64    `json:"amount"`
	Hour             *int        `json:"hour"`
	DayOfWeek        *int        `json:"day_of_week"`
	MerchantCategory interface{} `json:"merchant_category"`
	TransactionType  interface{} `json:"transaction_type"`
}

var merchantCategoryLabels = map[string]int{
	"grocery":       models.CategoryGrocery,
	"restaurant":    models.CategoryRestaurant,
	"gas":           models.CategoryGas,
	"retail":        models.CategoryRetail,
	"online":        models.CategoryOnline,
	"travel":        models.CategoryTravel,
	"entertainment": models.CategoryEntertainment,
	"healthcare":    models.CategoryHealthcare,
	"utilities":     models.CategoryUtilities,
	"other":         models.CategoryOther,
}

var transactionTypeLabels = map[string]int{
	"purchase":   models.TypePurchase,
	"withdrawal": models.TypeWithdrawal,
	"transfer":   models.TypeTransfer,
}

// Normalizer validates raw payloads and produces canonical feature vectors.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize validates the payload and returns the canonical feature vector.
// Errors name the offending field.
func (n *Normalizer) Normalize(raw RawTransaction) ([]float64, error) {
	if raw.Amount == nil {
		return nil, apperrors.MissingField(FeatureAmount)
	}
	if *raw.Amount < 0 || math.IsNaN(*raw.Amount) || math.IsInf(*raw.Amount, 0) {
		return nil, apperrors.Validation(FeatureAmount, "must be a non-negative number")
	}

	if raw.Hour == nil {
		return nil, apperrors.MissingField(FeatureHour)
	}
	if *raw.Hour < 0 || *raw.Hour > 23 {
		return nil, apperrors.Validation(FeatureHour, "must be in range 0-23")
	}

	if raw.DayOfWeek == nil {
		return nil, apperrors.MissingField(FeatureDayOfWeek)
	}
	if *raw.DayOfWeek < 0 || *raw.DayOfWeek > 6 {
		return nil, apperrors.Validation(FeatureDayOfWeek, "must be in range 0-6")
	}

	category, err := decodeCategorical(FeatureMerchantCategory, raw.MerchantCategory, merchantCategoryLabels, models.CategoryCount)
	if err != nil {
		return nil, err
	}

	txType, err := decodeCategorical(FeatureTransactionType, raw.TransactionType, transactionTypeLabels, models.TypeCount)
	if err != nil {
		return nil, err
	}

	return []float64{
		*raw.Amount,
		float64(*raw.Hour),
		float64(*raw.DayOfWeek),
		float64(category),
		float64(txType),
	}, nil
}

// decodeCategorical resolves the two historical payload shapes for
// categorical fields: a numeric code or a lowercase string label.
func decodeCategorical(field string, value interface{}, labels map[string]int, max int) (int, error) {
	switch v := value.(type) {
	case nil:
		return 0, apperrors.MissingField(field)
	case float64:
		if v != math.Trunc(v) {
			return 0, apperrors.Validation(field, "code must be an integer")
		}
		code := int(v)
		if code < 0 || code >= max {
			return 0, apperrors.Validation(field, "code out of range")
		}
		return code, nil
	case int:
		if v < 0 || v >= max {
			return 0, apperrors.Validation(field, "code out of range")
		}
		return v, nil
	case string:
		code, ok := labels[strings.ToLower(strings.TrimSpace(v))]
		if !ok {
			return 0, apperrors.Validation(field, "unknown label "+v)
		}
		return code, nil
	default:
		return 0, apperrors.Validation(field, "must be a numeric code or string label")
	}
}
