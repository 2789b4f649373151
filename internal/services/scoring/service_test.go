package scoring

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "secureflow/internal/errors"
	"secureflow/internal/models"
	"secureflow/internal/services/feature"
	"secureflow/internal/services/model"
)

type MockModel struct {
	mock.Mock
}

func (m *MockModel) Score(ctx context.Context, vec []float64) (float64, error) {
	args := m.Called(vec)
	return args.Get(0).(float64), args.Error(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(tx)
	if args.Error(0) == nil {
		tx.ID = 1
		tx.CreatedAt = time.Now()
	}
	return args.Error(0)
}

// memStore is an in-memory append-only store for pipeline tests.
type memStore struct {
	mu     sync.Mutex
	nextID uint
	txs    []*models.Transaction
}

func (s *memStore) Create(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	tx.ID = s.nextID
	tx.CreatedAt = time.Now()
	s.txs = append(s.txs, tx)
	return nil
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func rawPayload(amount float64, hour int) feature.RawTransaction {
	return feature.RawTransaction{
		Amount:           floatPtr(amount),
		Hour:             intPtr(hour),
		DayOfWeek:        intPtr(1),
		MerchantCategory: float64(0),
		TransactionType:  float64(0),
	}
}

func newEngine(m Model, store Store) Service {
	return NewService(
		feature.NewNormalizer(),
		m,
		NewClassifier(0.6, 0.1),
		NewExplainer(),
		store,
		nil,
		Config{BatchWorkers: 4},
	)
}

func TestScoreTransaction(t *testing.T) {
	tests := []struct {
		name        string
		raw         feature.RawTransaction
		setupMock   func(*MockModel, *MockStore)
		wantErr     string
		wantAnomaly bool
	}{
		{
			name: "anomalous transaction persisted",
			raw:  rawPayload(500, 3),
			setupMock: func(m *MockModel, s *MockStore) {
				m.On("Score", mock.Anything).Return(0.85, nil)
				s.On("Create", mock.Anything).Return(nil)
			},
			wantAnomaly: true,
		},
		{
			name: "normal transaction persisted",
			raw:  rawPayload(42, 15),
			setupMock: func(m *MockModel, s *MockStore) {
				m.On("Score", mock.Anything).Return(0.3, nil)
				s.On("Create", mock.Anything).Return(nil)
			},
			wantAnomaly: false,
		},
		{
			name:      "validation failure aborts before model",
			raw:       rawPayload(-10, 3),
			setupMock: func(m *MockModel, s *MockStore) {},
			wantErr:   "amount",
		},
		{
			name: "model failure aborts before store",
			raw:  rawPayload(42, 15),
			setupMock: func(m *MockModel, s *MockStore) {
				m.On("Score", mock.Anything).Return(0.0, apperrors.ModelUnavailable(errors.New("init failed")))
			},
			wantErr: "anomaly model failed to initialize",
		},
		{
			name: "store failure surfaces as persistence error",
			raw:  rawPayload(42, 15),
			setupMock: func(m *MockModel, s *MockStore) {
				m.On("Score", mock.Anything).Return(0.3, nil)
				s.On("Create", mock.Anything).Return(errors.New("connection reset"))
			},
			wantErr: "persistence failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockModel := new(MockModel)
			mockStore := new(MockStore)
			tt.setupMock(mockModel, mockStore)

			engine := newEngine(mockModel, mockStore)
			result, err := engine.ScoreTransaction(context.Background(), tt.raw)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantAnomaly, result.Transaction.IsAnomaly)
				assert.NotZero(t, result.Transaction.ID)
				assert.Len(t, result.Transaction.Explanation, feature.Count)
				assert.LessOrEqual(t, len(result.TopFactors), DefaultTopFactors)
			}

			mockModel.AssertExpectations(t)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestScoreTransactionErrorKinds(t *testing.T) {
	mockModel := new(MockModel)
	mockStore := new(MockStore)
	mockModel.On("Score", mock.Anything).Return(0.3, nil)
	mockStore.On("Create", mock.Anything).Return(errors.New("disk full"))

	engine := newEngine(mockModel, mockStore)
	_, err := engine.ScoreTransaction(context.Background(), rawPayload(42, 15))

	var derr *apperrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "PERSISTENCE_ERROR", derr.Code)
}

func TestScoreBatchOrderAndPartialFailure(t *testing.T) {
	mockModel := new(MockModel)
	mockModel.On("Score", mock.Anything).Return(0.4, nil)
	store := &memStore{}

	engine := newEngine(mockModel, store)

	amounts := []float64{10, 20, -10, 40, 50}
	raws := make([]feature.RawTransaction, len(amounts))
	for i, amount := range amounts {
		raws[i] = rawPayload(amount, 12)
	}

	items := engine.ScoreBatch(context.Background(), raws)

	require.Len(t, items, len(raws))
	for i, item := range items {
		assert.Equal(t, i, item.Index)
		if i == 2 {
			require.Error(t, item.Err)
			assert.Contains(t, item.Err.Error(), "amount")
			assert.Nil(t, item.Result)
			continue
		}
		require.NoError(t, item.Err)
		assert.Equal(t, amounts[i], item.Result.Transaction.Amount, "slot %d must match input %d", i, i)
	}
}

func TestScoreBatchMatchesSinglePath(t *testing.T) {
	mockModel := new(MockModel)
	mockModel.On("Score", mock.Anything).Return(0.7, nil)

	single := newEngine(mockModel, &memStore{})
	batch := newEngine(mockModel, &memStore{})

	raw := rawPayload(300, 2)
	standalone, err := single.ScoreTransaction(context.Background(), raw)
	require.NoError(t, err)

	items := batch.ScoreBatch(context.Background(), []feature.RawTransaction{raw})
	require.Len(t, items, 1)
	require.NoError(t, items[0].Err)

	got := items[0].Result
	assert.Equal(t, standalone.Transaction.AnomalyScore, got.Transaction.AnomalyScore)
	assert.Equal(t, standalone.Transaction.IsAnomaly, got.Transaction.IsAnomaly)
	assert.Equal(t, standalone.Transaction.Explanation, got.Transaction.Explanation)
	assert.Equal(t, standalone.Classification, got.Classification)
}

func TestScoreBatchEmpty(t *testing.T) {
	engine := newEngine(new(MockModel), &memStore{})
	items := engine.ScoreBatch(context.Background(), nil)
	assert.Empty(t, items)
}

// End-to-end scenarios against a real trained model.
func TestScoringScenarios(t *testing.T) {
	cfg := model.Config{
		Trees:         50,
		SampleSize:    128,
		Contamination: 0.1,
		Synthetic:     model.SyntheticConfig{NormalCount: 2000, AnomalyCount: 50, Seed: 42},
	}
	provider := model.NewProvider(cfg, nil)

	threshold, err := provider.CalibratedThreshold(context.Background())
	require.NoError(t, err)

	store := &memStore{}
	engine := NewService(
		feature.NewNormalizer(),
		provider,
		NewClassifier(threshold, 0.1),
		NewExplainer(),
		store,
		nil,
		Config{BatchWorkers: 2},
	)

	t.Run("high amount at unusual hour is flagged", func(t *testing.T) {
		raw := feature.RawTransaction{
			Amount:           floatPtr(1500),
			Hour:             intPtr(3),
			DayOfWeek:        intPtr(0),
			MerchantCategory: float64(1),
			TransactionType:  float64(0),
		}
		result, err := engine.ScoreTransaction(context.Background(), raw)
		require.NoError(t, err)

		assert.True(t, result.Transaction.IsAnomaly)
		assert.Contains(t, result.TopFactors, feature.FeatureAmount)
		assert.Contains(t, result.TopFactors, feature.FeatureHour)
	})

	t.Run("typical afternoon purchase passes", func(t *testing.T) {
		raw := feature.RawTransaction{
			Amount:           floatPtr(50.25),
			Hour:             intPtr(14),
			DayOfWeek:        intPtr(1),
			MerchantCategory: float64(0),
			TransactionType:  float64(0),
		}
		result, err := engine.ScoreTransaction(context.Background(), raw)
		require.NoError(t, err)

		assert.False(t, result.Transaction.IsAnomaly)
		assert.Less(t, result.Transaction.AnomalyScore, threshold)
	})

	t.Run("anomalous scores above typical", func(t *testing.T) {
		require.Len(t, store.txs, 2)
		assert.Greater(t, store.txs[0].AnomalyScore, store.txs[1].AnomalyScore)
	})
}
