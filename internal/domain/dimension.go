package domain

import (
	"time"

	"github.com/pkg/errors"
)

// Dimensões reconhecidas para agrupamento e filtros
const (
	DimensionDate     = "date"
	DimensionPlatform = "platform"
	DimensionAccount  = "account"
	DimensionCampaign = "campaign"
	DimensionCountry  = "country"
	DimensionDevice   = "device"
)

var groupableDimensions = map[string]bool{
	DimensionDate:     true,
	DimensionPlatform: true,
	DimensionAccount:  true,
	DimensionCampaign: true,
	DimensionCountry:  true,
	DimensionDevice:   true,
}

// IsGroupableDimension retorna verdadeiro se o campo pode ser usado como dimensão
func IsGroupableDimension(field string) bool {
	return groupableDimensions[field]
}

// DimensionKey é um conjunto ordenado de dimensões de agrupamento. A ordem de
// inserção determina a ordem das colunas no resultado; duplicatas são proibidas.
// Uma chave vazia agrupa tudo em uma única linha de totais.
type DimensionKey []string

// Validate verifica se todas as dimensões são conhecidas e não há duplicatas
func (k DimensionKey) Validate() error {
	seen := make(map[string]bool, len(k))
	for _, field := range k {
		if !groupableDimensions[field] {
			return errors.Wrapf(ErrInvalidInput, "dimensão desconhecida: %q", field)
		}
		if seen[field] {
			return errors.Wrapf(ErrInvalidInput, "dimensão duplicada: %q", field)
		}
		seen[field] = true
	}
	return nil
}

// ValuesFor extrai os valores do registro na ordem da chave
func (k DimensionKey) ValuesFor(record SpendRecord) []string {
	values := make([]string, 0, len(k))
	for _, field := range k {
		values = append(values, dimensionValue(record, field))
	}
	return values
}

func dimensionValue(record SpendRecord, field string) string {
	switch field {
	case DimensionDate:
		return record.Date.Format(time.DateOnly)
	case DimensionPlatform:
		return record.Platform
	case DimensionAccount:
		return record.Account
	case DimensionCampaign:
		return record.Campaign
	case DimensionCountry:
		return record.Country
	case DimensionDevice:
		return record.Device
	}
	return ""
}

// DimensionValue é um par campo/valor de uma linha agregada. Mantido como
// slice ordenado (e não mapa) para preservar a ordem das colunas da chave.
type DimensionValue struct {
	Field string `json:"field"`
	Value string `json:"value"`
}
