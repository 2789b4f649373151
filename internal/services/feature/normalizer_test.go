package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func validRaw() RawTransaction {
	return RawTransaction{
		Amount:           floatPtr(50.25),
		Hour:             intPtr(14),
		DayOfWeek:        intPtr(1),
		MerchantCategory: float64(1),
		TransactionType:  float64(0),
	}
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name    string
		mutate  func(*RawTransaction)
		wantErr string
	}{
		{
			name:   "valid payload",
			mutate: func(*RawTransaction) {},
		},
		{
			name:    "missing amount",
			mutate:  func(r *RawTransaction) { r.Amount = nil },
			wantErr: "amount",
		},
		{
			name:    "negative amount",
			mutate:  func(r *RawTransaction) { r.Amount = floatPtr(-10) },
			wantErr: "amount",
		},
		{
			name:    "missing hour",
			mutate:  func(r *RawTransaction) { r.Hour = nil },
			wantErr: "hour",
		},
		{
			name:    "hour out of range",
			mutate:  func(r *RawTransaction) { r.Hour = intPtr(24) },
			wantErr: "hour",
		},
		{
			name:    "day of week out of range",
			mutate:  func(r *RawTransaction) { r.DayOfWeek = intPtr(7) },
			wantErr: "day_of_week",
		},
		{
			name:    "missing merchant category",
			mutate:  func(r *RawTransaction) { r.MerchantCategory = nil },
			wantErr: "merchant_category",
		},
		{
			name:    "merchant category code out of range",
			mutate:  func(r *RawTransaction) { r.MerchantCategory = float64(10) },
			wantErr: "merchant_category",
		},
		{
			name:    "fractional category code",
			mutate:  func(r *RawTransaction) { r.MerchantCategory = 1.5 },
			wantErr: "merchant_category",
		},
		{
			name:    "unknown category label",
			mutate:  func(r *RawTransaction) { r.MerchantCategory = "casino" },
			wantErr: "merchant_category",
		},
		{
			name:    "transaction type out of range",
			mutate:  func(r *RawTransaction) { r.TransactionType = float64(3) },
			wantErr: "transaction_type",
		},
		{
			name:    "unsupported categorical type",
			mutate:  func(r *RawTransaction) { r.TransactionType = []string{"purchase"} },
			wantErr: "transaction_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)

			vec, err := n.Normalize(raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, vec, Count)
		})
	}
}

func TestNormalizePayloadShapes(t *testing.T) {
	n := NewNormalizer()

	// Numeric-coded and string-labeled payloads must map to the same vector.
	coded := validRaw()
	coded.MerchantCategory = float64(1)
	coded.TransactionType = float64(0)

	labeled := validRaw()
	labeled.MerchantCategory = "restaurant"
	labeled.TransactionType = "Purchase"

	codedVec, err := n.Normalize(coded)
	require.NoError(t, err)
	labeledVec, err := n.Normalize(labeled)
	require.NoError(t, err)

	assert.Equal(t, codedVec, labeledVec)
}

func TestNormalizeDeterministic(t *testing.T) {
	n := NewNormalizer()
	raw := validRaw()

	first, err := n.Normalize(raw)
	require.NoError(t, err)
	second, err := n.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNormalizeVectorOrder(t *testing.T) {
	n := NewNormalizer()
	raw := RawTransaction{
		Amount:           floatPtr(100),
		Hour:             intPtr(3),
		DayOfWeek:        intPtr(6),
		MerchantCategory: "gas",
		TransactionType:  "transfer",
	}

	vec, err := n.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 3, 6, 2, 2}, vec)
}
