package comparing

import (
	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

// Comparator define a interface de comparação de métricas entre períodos
type Comparator interface {
	// Compare agrega os dois conjuntos de registros pela mesma chave e
	// emparelha as linhas por junção externa completa
	Compare(current, previous []domain.SpendRecord, key domain.DimensionKey) ([]domain.ComparisonRow, error)

	// CompareFromStore busca os dois períodos no repositório e compara
	CompareFromStore(currentRange, previousRange domain.DateRange, key domain.DimensionKey, filters map[string]string) ([]domain.ComparisonRow, error)
}
