package aggregating

import (
	"time"

	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

// Aggregator define a interface de agregação multidimensional de métricas
type Aggregator interface {
	// Aggregate agrupa registros já carregados pela chave de dimensões
	Aggregate(records []domain.SpendRecord, key domain.DimensionKey) ([]domain.AggregateRow, error)

	// AggregateFromStore busca os registros do período no repositório e agrega
	AggregateFromStore(startDate, endDate time.Time, key domain.DimensionKey, filters map[string]string) ([]domain.AggregateRow, error)
}
