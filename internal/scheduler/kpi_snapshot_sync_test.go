package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/kpi"
	"go.uber.org/mock/gomock"
)

func TestKPISnapshotSyncService_processSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Mocks
	mockSpendRepo := mocks.NewMockSpendRecordRepository(ctrl)
	mockSnapshotRepo := mocks.NewMockKPISnapshotRepository(ctrl)

	calculator := kpi.NewCalculator(decimal.NewFromInt(100))
	aggregator := aggregating.NewService(calculator, mockSpendRepo)

	service := &KPISnapshotSyncService{
		aggregator:   aggregator,
		snapshotRepo: mockSnapshotRepo,
		config: KPISnapshotSyncConfig{
			LookbackDays:  7,
			RetentionDays: 365,
		},
	}

	startDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	records := []domain.SpendRecord{
		{
			Date:        startDate,
			Platform:    "Meta",
			Account:     "acct_1",
			Campaign:    "camp_a",
			Country:     "US",
			Device:      "mobile",
			Spend:       decimal.RequireFromString("100.00"),
			Conversions: 5,
		},
		{
			Date:        startDate,
			Platform:    "Google",
			Account:     "acct_1",
			Campaign:    "camp_b",
			Country:     "CA",
			Device:      "desktop",
			Spend:       decimal.RequireFromString("50.00"),
			Conversions: 0,
		},
	}

	mockSpendRepo.EXPECT().
		FetchByDateRange(startDate, endDate, nil).
		Return(records, nil)

	// Uma linha materializada por combinação completa de dimensões
	saved := make([]*domain.KPISnapshot, 0, 2)
	mockSnapshotRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		Times(2).
		Do(func(snapshot *domain.KPISnapshot) {
			saved = append(saved, snapshot)
		}).
		Return(nil)

	count, err := service.processSnapshots(startDate, endDate)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, saved, 2)

	// Ordenado por gasto: Meta primeiro
	meta := saved[0]
	assert.Equal(t, "Meta", meta.Platform)
	assert.Equal(t, "2025-06-01", meta.Date.Format(time.DateOnly))
	assert.Equal(t, "camp_a", meta.Campaign)
	require.True(t, meta.CAC.Valid)
	assert.Equal(t, "20", meta.CAC.Decimal.String())

	// Google sem conversões: CAC ausente no snapshot
	google := saved[1]
	assert.Equal(t, "Google", google.Platform)
	assert.False(t, google.CAC.Valid)
}

func TestKPISnapshotSyncService_applyRetention(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSnapshotRepo := mocks.NewMockKPISnapshotRepository(ctrl)

	service := &KPISnapshotSyncService{
		snapshotRepo: mockSnapshotRepo,
		config:       KPISnapshotSyncConfig{RetentionDays: 365},
	}

	mockSnapshotRepo.EXPECT().
		DeleteOlderThan(365).
		Return(int64(10), nil)

	service.applyRetention()
}

func TestKPISnapshotSyncService_applyRetention_Desabilitada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSnapshotRepo := mocks.NewMockKPISnapshotRepository(ctrl)

	service := &KPISnapshotSyncService{
		snapshotRepo: mockSnapshotRepo,
		config:       KPISnapshotSyncConfig{RetentionDays: 0},
	}

	// Retenção desabilitada: nenhuma chamada ao repositório
	service.applyRetention()
}

func TestKPISnapshotSyncService_GetStatusDuranteSincronizacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSpendRepo := mocks.NewMockSpendRecordRepository(ctrl)
	mockSnapshotRepo := mocks.NewMockKPISnapshotRepository(ctrl)

	mockSpendRepo.EXPECT().
		FetchByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.SpendRecord{}, nil).
		AnyTimes()
	mockSnapshotRepo.EXPECT().
		DeleteOlderThan(gomock.Any()).
		Return(int64(0), nil).
		AnyTimes()

	calculator := kpi.NewCalculator(decimal.NewFromInt(100))
	aggregator := aggregating.NewService(calculator, mockSpendRepo)

	service := &KPISnapshotSyncService{
		aggregator:   aggregator,
		snapshotRepo: mockSnapshotRepo,
		config: KPISnapshotSyncConfig{
			LookbackDays:  7,
			RetentionDays: 365,
		},
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		service.syncSnapshots()
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			status := service.GetStatus()
			assert.Contains(t, status, "last_sync_started_at")
			assert.Contains(t, status, "last_sync_completed_at")
		}
	}()
	wg.Wait()
}
