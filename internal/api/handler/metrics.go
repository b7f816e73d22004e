package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/comparing"
	"github.com/vfg2006/ads-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/ads-analytics-api/pkg/log"
	"github.com/vfg2006/ads-analytics-api/pkg/utils"
)

// AggregateResponse é a resposta da agregação multidimensional
type AggregateResponse struct {
	StartDate  string                `json:"start_date"`
	EndDate    string                `json:"end_date"`
	Dimensions domain.DimensionKey   `json:"dimensions"`
	RowCount   int                   `json:"row_count"`
	Rows       []domain.AggregateRow `json:"rows"`
}

// CompareResponse é a resposta da comparação entre períodos
type CompareResponse struct {
	StartDate         string                 `json:"start_date"`
	EndDate           string                 `json:"end_date"`
	PreviousStartDate string                 `json:"previous_start_date"`
	PreviousEndDate   string                 `json:"previous_end_date"`
	Dimensions        domain.DimensionKey    `json:"dimensions"`
	RowCount          int                    `json:"row_count"`
	Rows              []domain.ComparisonRow `json:"rows"`
}

func AggregateMetrics(aggregator aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			logger.WithError(err).Warn("metrics: parâmetro start_date inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			logger.WithError(err).Warn("metrics: parâmetro end_date inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		dimensions := parseDimensions(r.URL.Query().Get("dimensions"))
		filters := parseFilters(r)

		logger.WithFields(log.Fields{
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
			"dimensions": dimensions,
		}).Debug("metrics: agregando métricas")

		rows, err := aggregator.AggregateFromStore(startDate, endDate, dimensions, filters)
		if err != nil {
			logger.WithError(err).Error("metrics: erro ao agregar métricas")
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, AggregateResponse{
			StartDate:  startDate.Format(time.DateOnly),
			EndDate:    endDate.Format(time.DateOnly),
			Dimensions: dimensions,
			RowCount:   len(rows),
			Rows:       rows,
		})
	})
}

func CompareMetrics(comparator comparing.Comparator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			logger.WithError(err).Warn("compare: parâmetro start_date inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			logger.WithError(err).Warn("compare: parâmetro end_date inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		currentRange := domain.DateRange{Start: startDate, End: endDate}

		// Sem o período anterior explícito, usa a janela adjacente de mesmo tamanho
		previousRange := currentRange.Previous()

		previousStart, err := utils.ParseOptionalDate(r.URL.Query().Get("previous_start_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}
		previousEnd, err := utils.ParseOptionalDate(r.URL.Query().Get("previous_end_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}
		if previousStart != nil {
			previousRange.Start = *previousStart
		}
		if previousEnd != nil {
			previousRange.End = *previousEnd
		}

		dimensions := parseDimensions(r.URL.Query().Get("dimensions"))
		filters := parseFilters(r)

		logger.WithFields(log.Fields{
			"start_date":          currentRange.Start.Format(time.DateOnly),
			"end_date":            currentRange.End.Format(time.DateOnly),
			"previous_start_date": previousRange.Start.Format(time.DateOnly),
			"previous_end_date":   previousRange.End.Format(time.DateOnly),
			"dimensions":          dimensions,
		}).Debug("compare: comparando períodos")

		rows, err := comparator.CompareFromStore(currentRange, previousRange, dimensions, filters)
		if err != nil {
			logger.WithError(err).Error("compare: erro ao comparar períodos")
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, CompareResponse{
			StartDate:         currentRange.Start.Format(time.DateOnly),
			EndDate:           currentRange.End.Format(time.DateOnly),
			PreviousStartDate: previousRange.Start.Format(time.DateOnly),
			PreviousEndDate:   previousRange.End.Format(time.DateOnly),
			Dimensions:        dimensions,
			RowCount:          len(rows),
			Rows:              rows,
		})
	})
}
