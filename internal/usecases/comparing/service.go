package comparing

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/aggregating"
)

// Casas decimais da variação percentual
const percentPlaces = 2

var hundred = decimal.NewFromInt(100)

// Service compara os agregados de dois períodos, linha a linha, por chave de
// dimensões. A junção é externa completa: chave presente em só um período
// ganha o outro lado zerado (totais) ou ausente (razões).
type Service struct {
	aggregator aggregating.Aggregator
	trendEps   decimal.Decimal
}

// NewService cria um comparador com o limiar de estabilidade da tendência
// (variação percentual abaixo do limiar, em módulo, conta como estável)
func NewService(aggregator aggregating.Aggregator, trendEps decimal.Decimal) *Service {
	return &Service{
		aggregator: aggregator,
		trendEps:   trendEps,
	}
}

// CompareFromStore busca os dois períodos no repositório e compara
func (s *Service) CompareFromStore(currentRange, previousRange domain.DateRange, key domain.DimensionKey, filters map[string]string) ([]domain.ComparisonRow, error) {
	current, err := s.aggregator.AggregateFromStore(currentRange.Start, currentRange.End, key, filters)
	if err != nil {
		return nil, err
	}

	previous, err := s.aggregator.AggregateFromStore(previousRange.Start, previousRange.End, key, filters)
	if err != nil {
		return nil, err
	}

	return s.join(current, previous), nil
}

// Compare agrega os dois conjuntos de registros pela mesma chave e emparelha
func (s *Service) Compare(current, previous []domain.SpendRecord, key domain.DimensionKey) ([]domain.ComparisonRow, error) {
	currentRows, err := s.aggregator.Aggregate(current, key)
	if err != nil {
		return nil, err
	}

	previousRows, err := s.aggregator.Aggregate(previous, key)
	if err != nil {
		return nil, err
	}

	return s.join(currentRows, previousRows), nil
}

func (s *Service) join(current, previous []domain.AggregateRow) []domain.ComparisonRow {
	previousByKey := make(map[string]*domain.AggregateRow, len(previous))
	for i := range previous {
		previousByKey[previous[i].KeyString()] = &previous[i]
	}

	rows := make([]domain.ComparisonRow, 0, len(current))
	seen := make(map[string]bool, len(current))

	for i := range current {
		cur := &current[i]
		key := cur.KeyString()
		seen[key] = true
		rows = append(rows, s.buildRow(cur.Dimensions, cur, previousByKey[key]))
	}

	// Chaves que só existem no período anterior entram com o lado atual vazio
	for i := range previous {
		prev := &previous[i]
		if seen[prev.KeyString()] {
			continue
		}
		rows = append(rows, s.buildRow(prev.Dimensions, nil, prev))
	}

	sortRows(rows)

	return rows
}

func (s *Service) buildRow(dimensions []domain.DimensionValue, cur, prev *domain.AggregateRow) domain.ComparisonRow {
	return domain.ComparisonRow{
		Dimensions:       dimensions,
		TotalSpend:       s.change(totalSpend(cur), totalSpend(prev)),
		TotalConversions: s.change(totalConversions(cur), totalConversions(prev)),
		TotalClicks:      s.change(totalClicks(cur), totalClicks(prev)),
		TotalImpressions: s.change(totalImpressions(cur), totalImpressions(prev)),
		Revenue:          s.change(revenue(cur), revenue(prev)),
		CAC:              s.change(cac(cur), cac(prev)),
		ROAS:             s.change(roas(cur), roas(prev)),
	}
}

// change calcula a variação entre os dois lados de uma métrica.
// Lado ausente propaga ausência para as variações; divisão pelo anterior
// zerado vira tendência "new" em vez de infinito.
func (s *Service) change(cur, prev domain.Metric) domain.MetricChange {
	change := domain.MetricChange{
		Current:  cur,
		Previous: prev,
		Trend:    domain.TrendStable,
	}

	if !cur.Valid || !prev.Valid {
		if cur.Valid && cur.Decimal.IsPositive() && !prev.Valid {
			change.Trend = domain.TrendNew
		}
		return change
	}

	change.AbsoluteChange = domain.NewMetric(cur.Decimal.Sub(prev.Decimal))

	if prev.Decimal.IsZero() {
		if cur.Decimal.IsPositive() {
			change.Trend = domain.TrendNew
		} else if cur.Decimal.IsZero() {
			change.PercentChange = domain.NewMetric(decimal.Zero)
		}
		return change
	}

	percent := cur.Decimal.Sub(prev.Decimal).
		Div(prev.Decimal).
		Mul(hundred).
		Round(percentPlaces)
	change.PercentChange = domain.NewMetric(percent)

	switch {
	case percent.GreaterThan(s.trendEps):
		change.Trend = domain.TrendIncreasing
	case percent.LessThan(s.trendEps.Neg()):
		change.Trend = domain.TrendDecreasing
	}

	return change
}

// Acessores que tratam o lado ausente da junção: totais viram zero (período
// existiu, só não teve dados para a chave), razões ficam ausentes
func totalSpend(row *domain.AggregateRow) domain.Metric {
	if row == nil {
		return domain.NewMetric(decimal.Zero)
	}
	return domain.NewMetric(row.TotalSpend)
}

func totalConversions(row *domain.AggregateRow) domain.Metric {
	if row == nil {
		return domain.NewMetricFromInt(0)
	}
	return domain.NewMetricFromInt(row.TotalConversions)
}

func totalClicks(row *domain.AggregateRow) domain.Metric {
	if row == nil {
		return domain.NewMetricFromInt(0)
	}
	return domain.NewMetricFromInt(row.TotalClicks)
}

func totalImpressions(row *domain.AggregateRow) domain.Metric {
	if row == nil {
		return domain.NewMetricFromInt(0)
	}
	return domain.NewMetricFromInt(row.TotalImpressions)
}

func revenue(row *domain.AggregateRow) domain.Metric {
	if row == nil {
		return domain.NewMetric(decimal.Zero)
	}
	return domain.NewMetric(row.Revenue)
}

func cac(row *domain.AggregateRow) domain.Metric {
	if row == nil {
		return domain.AbsentMetric()
	}
	return row.CAC
}

func roas(row *domain.AggregateRow) domain.Metric {
	if row == nil {
		return domain.AbsentMetric()
	}
	return row.ROAS
}

// sortRows ordena pelo gasto do período atual, decrescente; empate quebra
// pela tupla da chave
func sortRows(rows []domain.ComparisonRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].TotalSpend.Current, rows[j].TotalSpend.Current
		cmp := a.Decimal.Cmp(b.Decimal)
		if cmp != 0 {
			return cmp > 0
		}
		return keyString(rows[i].Dimensions) < keyString(rows[j].Dimensions)
	})
}

func keyString(dimensions []domain.DimensionValue) string {
	key := ""
	for i, dv := range dimensions {
		if i > 0 {
			key += "\x1f"
		}
		key += dv.Value
	}
	return key
}
