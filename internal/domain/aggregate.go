package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AggregateRow é uma linha de resultado agregado: os valores da chave de
// dimensões mais os totais e KPIs do grupo. Calculada sob demanda por
// consulta, nunca persistida pelo núcleo.
type AggregateRow struct {
	Dimensions       []DimensionValue `json:"dimensions"`
	TotalSpend       decimal.Decimal  `json:"total_spend"`
	TotalConversions int64            `json:"total_conversions"`
	TotalClicks      int64            `json:"total_clicks"`
	TotalImpressions int64            `json:"total_impressions"`
	DaysWithData     int              `json:"days_with_data"`
	Revenue          decimal.Decimal  `json:"revenue"`
	CAC              Metric           `json:"cac"`
	ROAS             Metric           `json:"roas"`
}

// KeyTuple retorna os valores da chave na ordem das dimensões
func (r *AggregateRow) KeyTuple() []string {
	values := make([]string, 0, len(r.Dimensions))
	for _, dv := range r.Dimensions {
		values = append(values, dv.Value)
	}
	return values
}

// KeyString retorna a tupla da chave como string única, para junções e ordenação
func (r *AggregateRow) KeyString() string {
	return strings.Join(r.KeyTuple(), "\x1f")
}

// KPISnapshot é uma linha materializada da tabela kpi_metrics, gravada pelo
// job de sincronização sobre o conjunto completo de dimensões
type KPISnapshot struct {
	Date             time.Time       `json:"date"`
	Platform         string          `json:"platform"`
	Account          string          `json:"account"`
	Campaign         string          `json:"campaign"`
	Country          string          `json:"country"`
	Device           string          `json:"device"`
	TotalSpend       decimal.Decimal `json:"total_spend"`
	TotalConversions int64           `json:"total_conversions"`
	Revenue          decimal.Decimal `json:"revenue"`
	CAC              Metric          `json:"cac"`
	ROAS             Metric          `json:"roas"`
	CreatedAt        time.Time       `json:"created_at,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at,omitempty"`
}
