package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/comparing"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/resolving"
	"github.com/vfg2006/ads-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/ads-analytics-api/pkg/log"
	"github.com/vfg2006/ads-analytics-api/pkg/utils"
)

// AskRequest é o corpo da pergunta em linguagem natural. As datas são
// opcionais; quando presentes, vencem as inferidas do texto.
type AskRequest struct {
	Question          string            `json:"question"`
	StartDate         string            `json:"start_date,omitempty"`
	EndDate           string            `json:"end_date,omitempty"`
	PreviousStartDate string            `json:"previous_start_date,omitempty"`
	PreviousEndDate   string            `json:"previous_end_date,omitempty"`
	Filters           map[string]string `json:"filters,omitempty"`
}

// AskResponse é o resultado da pergunta: o template resolvido e os dados, ou
// as sugestões quando a pergunta não foi reconhecida
type AskResponse struct {
	Matched     bool               `json:"matched"`
	QueryName   string             `json:"query_name,omitempty"`
	Parameters  domain.QueryParams `json:"parameters"`
	RowCount    int                `json:"row_count"`
	Rows        any                `json:"rows,omitempty"`
	Suggestions []string           `json:"suggestions,omitempty"`
}

func AskQuestion(resolver resolving.Resolver, aggregator aggregating.Aggregator, comparator comparing.Comparator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request AskRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.WithError(err).Warn("ask: corpo da requisição inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "corpo da requisição inválido", nil)
			return
		}

		supplied, err := suppliedParamsFromRequest(&request)
		if err != nil {
			logger.WithError(err).Warn("ask: datas inválidas na requisição")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		resolution, err := resolver.Resolve(request.Question, *supplied, time.Now())
		if err != nil {
			logger.WithError(err).Warn("ask: erro ao resolver pergunta")
			writeDomainError(w, err)
			return
		}

		if !resolution.Matched {
			logger.WithField("question", request.Question).Info("ask: pergunta não reconhecida")
			writeJSON(w, http.StatusOK, AskResponse{
				Matched:     false,
				Suggestions: resolution.Suggestions,
			})
			return
		}

		logger.WithFields(log.Fields{
			"question":   request.Question,
			"query_name": resolution.Template.Name,
			"start_date": resolution.Params.StartDate.Format(time.DateOnly),
			"end_date":   resolution.Params.EndDate.Format(time.DateOnly),
		}).Info("ask: pergunta resolvida")

		rows, rowCount, err := executeResolution(resolution, aggregator, comparator)
		if err != nil {
			logger.WithFields(log.Fields{
				"query_name": resolution.Template.Name,
				"error":      err.Error(),
			}).Error("ask: erro ao executar consulta resolvida")
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, AskResponse{
			Matched:    true,
			QueryName:  resolution.Template.Name,
			Parameters: resolution.Params,
			RowCount:   rowCount,
			Rows:       rows,
		})
	})
}

// executeResolution executa o template resolvido: comparação de períodos usa
// o comparador, todo o resto é agregação simples
func executeResolution(resolution *resolving.Resolution, aggregator aggregating.Aggregator, comparator comparing.Comparator) (any, int, error) {
	params := resolution.Params
	template := resolution.Template

	if template.Comparison {
		currentRange := domain.DateRange{Start: params.StartDate, End: params.EndDate}
		previousRange := currentRange.Previous()
		if params.PreviousStartDate != nil {
			previousRange.Start = *params.PreviousStartDate
		}
		if params.PreviousEndDate != nil {
			previousRange.End = *params.PreviousEndDate
		}

		rows, err := comparator.CompareFromStore(currentRange, previousRange, template.Dimensions, params.Filters)
		if err != nil {
			return nil, 0, err
		}
		return rows, len(rows), nil
	}

	rows, err := aggregator.AggregateFromStore(params.StartDate, params.EndDate, template.Dimensions, params.Filters)
	if err != nil {
		return nil, 0, err
	}
	return rows, len(rows), nil
}

func suppliedParamsFromRequest(request *AskRequest) (*resolving.SuppliedParams, error) {
	startDate, err := utils.ParseOptionalDate(request.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := utils.ParseOptionalDate(request.EndDate)
	if err != nil {
		return nil, err
	}
	previousStart, err := utils.ParseOptionalDate(request.PreviousStartDate)
	if err != nil {
		return nil, err
	}
	previousEnd, err := utils.ParseOptionalDate(request.PreviousEndDate)
	if err != nil {
		return nil, err
	}

	return &resolving.SuppliedParams{
		StartDate:         startDate,
		EndDate:           endDate,
		PreviousStartDate: previousStart,
		PreviousEndDate:   previousEnd,
		Filters:           request.Filters,
	}, nil
}
