package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestListSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSnapshotRepo := mocks.NewMockKPISnapshotRepository(ctrl)

	startDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	snapshots := []*domain.KPISnapshot{
		{
			Date:             startDate,
			Platform:         "Meta",
			Account:          "acct_1",
			Campaign:         "camp_a",
			Country:          "US",
			Device:           "mobile",
			TotalSpend:       decimal.RequireFromString("100.00"),
			TotalConversions: 5,
			Revenue:          decimal.RequireFromString("500.00"),
			CAC:              domain.NewMetricFromInt(20),
			ROAS:             domain.NewMetricFromInt(5),
		},
	}

	mockSnapshotRepo.EXPECT().
		GetByDateRange(startDate, endDate).
		Return(snapshots, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/metrics/snapshots?start_date=2025-06-01&end_date=2025-06-07", nil)
	rec := httptest.NewRecorder()

	ListSnapshots(mockSnapshotRepo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response SnapshotListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.Equal(t, "2025-06-01", response.StartDate)
	assert.Equal(t, "2025-06-07", response.EndDate)
	assert.Equal(t, 1, response.RowCount)
	require.Len(t, response.Snapshots, 1)
	assert.Equal(t, "Meta", response.Snapshots[0].Platform)
	assert.True(t, response.Snapshots[0].CAC.Valid)
}

func TestListSnapshots_ParametrosInvalidos(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{
			name:  "sem datas",
			query: "",
		},
		{
			name:  "data mal formatada",
			query: "?start_date=01/06/2025&end_date=2025-06-07",
		},
		{
			name:  "intervalo invertido",
			query: "?start_date=2025-06-07&end_date=2025-06-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// Nenhuma chamada ao repositório é esperada
			mockSnapshotRepo := mocks.NewMockKPISnapshotRepository(ctrl)

			req := httptest.NewRequest(http.MethodGet, "/v1/metrics/snapshots"+tt.query, nil)
			rec := httptest.NewRecorder()

			ListSnapshots(mockSnapshotRepo).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
