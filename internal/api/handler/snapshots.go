package handler

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/ads-analytics-api/infrastructure/repository"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/ads-analytics-api/pkg/log"
	"github.com/vfg2006/ads-analytics-api/pkg/utils"
)

// SnapshotListResponse é a resposta da consulta às métricas materializadas
type SnapshotListResponse struct {
	StartDate string                `json:"start_date"`
	EndDate   string                `json:"end_date"`
	RowCount  int                   `json:"row_count"`
	Snapshots []*domain.KPISnapshot `json:"snapshots"`
}

// ListSnapshots lê da tabela kpi_metrics as linhas gravadas pelo job de
// sincronização, sem recalcular nada
func ListSnapshots(snapshotRepo repository.KPISnapshotRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			logger.WithError(err).Warn("snapshots: parâmetro start_date inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			logger.WithError(err).Warn("snapshots: parâmetro end_date inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		if startDate.After(endDate) {
			writeDomainError(w, errors.Wrap(domain.ErrInvalidRange, "data inicial posterior à final"))
			return
		}

		snapshots, err := snapshotRepo.GetByDateRange(startDate, endDate)
		if err != nil {
			logger.WithError(err).Error("snapshots: erro ao buscar métricas materializadas")
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, SnapshotListResponse{
			StartDate: startDate.Format(time.DateOnly),
			EndDate:   endDate.Format(time.DateOnly),
			RowCount:  len(snapshots),
			Snapshots: snapshots,
		})
	})
}
