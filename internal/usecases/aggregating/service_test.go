package aggregating

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/kpi"
	"go.uber.org/mock/gomock"
)

func newTestService(spendRepo *mocks.MockSpendRecordRepository) *Service {
	calculator := kpi.NewCalculator(decimal.NewFromInt(100))
	return NewService(calculator, spendRepo)
}

func record(date string, platform, campaign string, spend string, conversions int64) domain.SpendRecord {
	d, _ := time.Parse(time.DateOnly, date)
	return domain.SpendRecord{
		Date:        d,
		Platform:    platform,
		Account:     "acct_1",
		Campaign:    campaign,
		Country:     "US",
		Device:      "mobile",
		Spend:       decimal.RequireFromString(spend),
		Clicks:      10,
		Impressions: 100,
		Conversions: conversions,
	}
}

func TestService_Aggregate_PorPlataforma(t *testing.T) {
	service := newTestService(nil)

	records := []domain.SpendRecord{
		record("2025-06-01", "Meta", "camp_a", "60.00", 3),
		record("2025-06-02", "Meta", "camp_a", "40.00", 2),
		record("2025-06-01", "Google", "camp_b", "50.00", 0),
	}

	rows, err := service.Aggregate(records, domain.DimensionKey{domain.DimensionPlatform})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordenado por gasto decrescente: Meta (100) antes de Google (50)
	meta := rows[0]
	assert.Equal(t, []domain.DimensionValue{{Field: "platform", Value: "Meta"}}, meta.Dimensions)
	assert.Equal(t, "100", meta.TotalSpend.String())
	assert.Equal(t, int64(5), meta.TotalConversions)
	assert.Equal(t, 2, meta.DaysWithData)
	require.True(t, meta.CAC.Valid)
	assert.Equal(t, "20", meta.CAC.Decimal.String())
	require.True(t, meta.ROAS.Valid)
	assert.Equal(t, "5", meta.ROAS.Decimal.String())

	// Google não tem conversões: CAC ausente, não zero
	google := rows[1]
	assert.Equal(t, "Google", google.Dimensions[0].Value)
	assert.False(t, google.CAC.Valid)
	assert.True(t, google.ROAS.Valid)
	assert.Equal(t, "0", google.ROAS.Decimal.String())
}

func TestService_Aggregate_OrdemDosRegistrosNaoImporta(t *testing.T) {
	service := newTestService(nil)

	records := []domain.SpendRecord{
		record("2025-06-01", "Meta", "camp_a", "60.00", 3),
		record("2025-06-02", "Meta", "camp_a", "40.00", 2),
		record("2025-06-01", "Google", "camp_b", "50.00", 1),
	}
	reversed := []domain.SpendRecord{records[2], records[1], records[0]}

	key := domain.DimensionKey{domain.DimensionPlatform, domain.DimensionCampaign}

	rowsA, err := service.Aggregate(records, key)
	require.NoError(t, err)
	rowsB, err := service.Aggregate(reversed, key)
	require.NoError(t, err)

	assert.Equal(t, rowsA, rowsB)
}

func TestService_Aggregate_ChaveVaziaProduzUmaLinhaDeTotais(t *testing.T) {
	service := newTestService(nil)

	records := []domain.SpendRecord{
		record("2025-06-01", "Meta", "camp_a", "60.00", 3),
		record("2025-06-01", "Google", "camp_b", "40.00", 1),
	}

	rows, err := service.Aggregate(records, domain.DimensionKey{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Empty(t, rows[0].Dimensions)
	assert.Equal(t, "100", rows[0].TotalSpend.String())
	assert.Equal(t, int64(4), rows[0].TotalConversions)
	assert.Equal(t, 1, rows[0].DaysWithData)
}

func TestService_Aggregate_SemRegistrosRetornaListaVazia(t *testing.T) {
	service := newTestService(nil)

	rows, err := service.Aggregate(nil, domain.DimensionKey{domain.DimensionPlatform})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestService_Aggregate_TuplasDistintasParaGruposDistintos(t *testing.T) {
	service := newTestService(nil)

	records := []domain.SpendRecord{
		record("2025-06-01", "Meta", "camp_a", "10.00", 1),
		record("2025-06-01", "Meta", "camp_b", "10.00", 1),
		record("2025-06-01", "Google", "camp_a", "10.00", 1),
	}

	rows, err := service.Aggregate(records, domain.DimensionKey{domain.DimensionPlatform, domain.DimensionCampaign})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	seen := make(map[string]bool)
	for _, row := range rows {
		key := row.KeyString()
		assert.False(t, seen[key], "tupla duplicada: %s", key)
		seen[key] = true
	}
}

func TestService_Aggregate_DimensaoDesconhecida(t *testing.T) {
	service := newTestService(nil)

	_, err := service.Aggregate(nil, domain.DimensionKey{"moeda"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_AggregateFromStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSpendRecordRepository(ctrl)
	service := newTestService(mockRepo)

	startDate, _ := time.Parse(time.DateOnly, "2025-06-01")
	endDate, _ := time.Parse(time.DateOnly, "2025-06-30")

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		filters   map[string]string
		setup     func()
		wantErr   error
		wantRows  int
	}{
		{
			name:  "Busca e agrega registros do período",
			start: startDate,
			end:   endDate,
			setup: func() {
				mockRepo.EXPECT().
					FetchByDateRange(startDate, endDate, nil).
					Return([]domain.SpendRecord{
						record("2025-06-01", "Meta", "camp_a", "100.00", 5),
					}, nil)
			},
			wantRows: 1,
		},
		{
			name:    "Intervalo invertido é rejeitado sem tocar o repositório",
			start:   endDate,
			end:     startDate,
			wantErr: domain.ErrInvalidRange,
		},
		{
			name:    "Campo de filtro desconhecido é rejeitado",
			start:   startDate,
			end:     endDate,
			filters: map[string]string{"moeda": "BRL"},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			rows, err := service.AggregateFromStore(tt.start, tt.end, domain.DimensionKey{domain.DimensionPlatform}, tt.filters)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, rows, tt.wantRows)
		})
	}
}
