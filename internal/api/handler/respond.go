package handler

import (
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/ads-analytics-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON serializa a resposta com o status informado
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.L.WithError(err).Error("erro ao serializar resposta")
	}
}

// writeDomainError traduz os erros do domínio para os códigos da API
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidInput):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrTemplateNotFound):
		apiErrors.WriteError(w, apiErrors.ErrTemplateNotFound, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
	}
}

// parseDimensions interpreta o parâmetro dimensions (lista separada por vírgula)
func parseDimensions(raw string) domain.DimensionKey {
	if raw == "" {
		return domain.DimensionKey{}
	}

	fields := strings.Split(raw, ",")
	key := make(domain.DimensionKey, 0, len(fields))
	for _, field := range fields {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			key = append(key, trimmed)
		}
	}
	return key
}

// parseFilters extrai os filtros de igualdade suportados da query string
func parseFilters(r *http.Request) map[string]string {
	filters := make(map[string]string)
	for _, field := range []string{
		domain.DimensionPlatform,
		domain.DimensionAccount,
		domain.DimensionCampaign,
		domain.DimensionCountry,
		domain.DimensionDevice,
	} {
		if value := r.URL.Query().Get(field); value != "" {
			filters[field] = value
		}
	}

	if len(filters) == 0 {
		return nil
	}
	return filters
}
