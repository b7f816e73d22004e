package ingesting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func validRecord() domain.SpendRecord {
	return domain.SpendRecord{
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Platform:    "Meta",
		Account:     "acct_1",
		Campaign:    "camp_a",
		Country:     "US",
		Device:      "mobile",
		Spend:       decimal.RequireFromString("100.00"),
		Clicks:      10,
		Impressions: 100,
		Conversions: 5,
	}
}

func TestService_Ingest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSpendRecordRepository(ctrl)
	service := NewService(mockRepo)

	mockRepo.EXPECT().
		BulkInsert(gomock.Any(), gomock.Any(), "ads_spend.csv").
		Return(2, nil)

	result, err := service.Ingest([]domain.SpendRecord{validRecord(), validRecord()}, "ads_spend.csv")
	require.NoError(t, err)

	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 2, result.RecordCount)
	assert.Equal(t, "ads_spend.csv", result.SourceFileName)
	assert.False(t, result.LoadDate.IsZero())
}

func TestService_Ingest_LoteInvalidoNaoTocaORepositorio(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSpendRecordRepository(ctrl)
	service := NewService(mockRepo)

	tests := []struct {
		name    string
		mutate  func(*domain.SpendRecord)
		records []domain.SpendRecord
	}{
		{
			name:    "Lote vazio",
			records: []domain.SpendRecord{},
		},
		{
			name:   "Spend negativo",
			mutate: func(r *domain.SpendRecord) { r.Spend = decimal.RequireFromString("-1.00") },
		},
		{
			name:   "Conversões negativas",
			mutate: func(r *domain.SpendRecord) { r.Conversions = -1 },
		},
		{
			name:   "Sem data",
			mutate: func(r *domain.SpendRecord) { r.Date = time.Time{} },
		},
		{
			name:   "Sem plataforma",
			mutate: func(r *domain.SpendRecord) { r.Platform = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := tt.records
			if tt.mutate != nil {
				record := validRecord()
				tt.mutate(&record)
				records = []domain.SpendRecord{validRecord(), record}
			}

			// Nenhuma chamada esperada no mock: lote inválido nunca chega ao banco
			result, err := service.Ingest(records, "ads_spend.csv")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, result)
		})
	}
}
