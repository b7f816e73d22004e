package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/ingesting"
	"github.com/vfg2006/ads-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/ads-analytics-api/pkg/log"
	"github.com/vfg2006/ads-analytics-api/pkg/utils"
)

// IngestRequest é o corpo do lote de ingestão
type IngestRequest struct {
	SourceFileName string              `json:"source_file_name,omitempty"`
	Records        []IngestRecordInput `json:"records"`
}

// IngestRecordInput é um registro de gasto no formato de entrada da API;
// spend vem como string para preservar a precisão decimal
type IngestRecordInput struct {
	Date        string `json:"date"`
	Platform    string `json:"platform"`
	Account     string `json:"account"`
	Campaign    string `json:"campaign"`
	Country     string `json:"country"`
	Device      string `json:"device"`
	Spend       string `json:"spend"`
	Clicks      int64  `json:"clicks"`
	Impressions int64  `json:"impressions"`
	Conversions int64  `json:"conversions"`
}

func IngestSpend(service ingesting.Ingester) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request IngestRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.WithError(err).Warn("ingest: corpo da requisição inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "corpo da requisição inválido", nil)
			return
		}

		records := make([]domain.SpendRecord, 0, len(request.Records))
		for i, input := range request.Records {
			record, err := recordFromInput(input)
			if err != nil {
				logger.WithFields(log.Fields{
					"index": i,
					"error": err.Error(),
				}).Warn("ingest: registro inválido no lote")
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), map[string]any{"index": i})
				return
			}
			records = append(records, record)
		}

		result, err := service.Ingest(records, request.SourceFileName)
		if err != nil {
			logger.WithError(err).Error("ingest: erro ao ingerir lote")
			writeDomainError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"batch_id":     result.BatchID,
			"record_count": result.RecordCount,
		}).Info("ingest: lote ingerido com sucesso")

		writeJSON(w, http.StatusCreated, result)
	})
}

func recordFromInput(input IngestRecordInput) (domain.SpendRecord, error) {
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return domain.SpendRecord{}, err
	}

	spend, err := decimal.NewFromString(input.Spend)
	if err != nil {
		return domain.SpendRecord{}, err
	}

	return domain.SpendRecord{
		Date:        date,
		Platform:    input.Platform,
		Account:     input.Account,
		Campaign:    input.Campaign,
		Country:     input.Country,
		Device:      input.Device,
		Spend:       spend,
		Clicks:      input.Clicks,
		Impressions: input.Impressions,
		Conversions: input.Conversions,
		LoadDate:    time.Now().UTC(),
	}, nil
}
