package models

import (
	"time"
)

// Merchant category codes. String-labeled payloads are mapped onto the same
// numeric encoding before scoring.
const (
	CategoryGrocery = iota
	CategoryRestaurant
	CategoryGas
	CategoryRetail
	CategoryOnline
	CategoryTravel
	CategoryEntertainment
	CategoryHealthcare
	CategoryUtilities
	CategoryOther

	CategoryCount = 10
)

// Transaction type codes.
const (
	TypePurchase = iota
	TypeWithdrawal
	TypeTransfer

	TypeCount = 3
)

// Transaction is a scored transaction record. Score fields are assigned once
// by the scoring engine at creation and never mutated afterward.
type Transaction struct {
	ID               uint        `gorm:"primarykey" json:"id"`
	Amount           float64     `gorm:"not null" json:"amount"`
	Hour             int         `gorm:"not null" json:"hour"`
	DayOfWeek        int         `gorm:"not null" json:"day_of_week"`
	MerchantCategory int         `gorm:"not null" json:"merchant_category"`
	TransactionType  int         `gorm:"not null" json:"transaction_type"`
	AnomalyScore     float64     `gorm:"not null" json:"anomaly_score"`
	IsAnomaly        bool        `gorm:"not null" json:"is_anomaly"`
	Explanation      Explanation `gorm:"type:jsonb" json:"shap_explanation"`
	CreatedAt        time.Time   `json:"timestamp"`
}

// Feedback is an operator judgment on a stored prediction. Immutable once
// created; any number of rows may reference one transaction.
type Feedback struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TransactionID uint      `gorm:"not null;index" json:"transaction_id"`
	IsCorrect     bool      `gorm:"not null" json:"is_correct"`
	Comments      string    `json:"comments,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
