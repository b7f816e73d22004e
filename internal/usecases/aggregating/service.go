package aggregating

import (
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-analytics-api/infrastructure/repository"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/kpi"
)

// Campos aceitos como filtro de igualdade. Data não entra: o recorte temporal
// é sempre feito pelo intervalo start/end.
var filterableFields = map[string]bool{
	domain.DimensionPlatform: true,
	domain.DimensionAccount:  true,
	domain.DimensionCampaign: true,
	domain.DimensionCountry:  true,
	domain.DimensionDevice:   true,
}

// Acumulador de um grupo durante a agregação
type groupAccumulator struct {
	dimensions       []domain.DimensionValue
	totalSpend       decimal.Decimal
	totalConversions int64
	totalClicks      int64
	totalImpressions int64
	dates            map[string]bool
}

// Service agrupa registros de gasto por chave de dimensões e calcula os KPIs
// de cada grupo
type Service struct {
	calculator *kpi.Calculator
	spendRepo  repository.SpendRecordRepository
}

// NewService cria uma nova instância do serviço de agregação
func NewService(calculator *kpi.Calculator, spendRepo repository.SpendRecordRepository) *Service {
	return &Service{
		calculator: calculator,
		spendRepo:  spendRepo,
	}
}

// AggregateFromStore busca os registros do período no repositório e agrega.
// Intervalo invertido e filtros com campos desconhecidos são rejeitados antes
// de tocar o banco.
func (s *Service) AggregateFromStore(startDate, endDate time.Time, key domain.DimensionKey, filters map[string]string) ([]domain.AggregateRow, error) {
	if startDate.After(endDate) {
		return nil, domain.ErrInvalidRange
	}

	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	records, err := s.spendRepo.FetchByDateRange(startDate, endDate, filters)
	if err != nil {
		logrus.Error("Erro ao buscar registros de gasto no repositório", map[string]any{
			"startDate": startDate.Format(time.DateOnly),
			"endDate":   endDate.Format(time.DateOnly),
			"error":     err,
		})
		return nil, err
	}

	return s.Aggregate(records, key)
}

// Aggregate agrupa registros já carregados pela chave de dimensões. Uma chave
// vazia produz uma única linha de totais; sem registros, retorna lista vazia.
func (s *Service) Aggregate(records []domain.SpendRecord, key domain.DimensionKey) ([]domain.AggregateRow, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	groups := make(map[string]*groupAccumulator)
	for _, record := range records {
		values := key.ValuesFor(record)
		groupKey := joinKey(values)

		acc, ok := groups[groupKey]
		if !ok {
			acc = &groupAccumulator{
				dimensions: make([]domain.DimensionValue, 0, len(key)),
				dates:      make(map[string]bool),
			}
			for i, field := range key {
				acc.dimensions = append(acc.dimensions, domain.DimensionValue{
					Field: field,
					Value: values[i],
				})
			}
			groups[groupKey] = acc
		}

		acc.totalSpend = acc.totalSpend.Add(record.Spend)
		acc.totalConversions += record.Conversions
		acc.totalClicks += record.Clicks
		acc.totalImpressions += record.Impressions
		acc.dates[record.Date.Format(time.DateOnly)] = true
	}

	rows := make([]domain.AggregateRow, 0, len(groups))
	for _, acc := range groups {
		result, err := s.calculator.Compute(acc.totalSpend, acc.totalConversions)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao calcular KPIs do grupo")
		}

		rows = append(rows, domain.AggregateRow{
			Dimensions:       acc.dimensions,
			TotalSpend:       acc.totalSpend,
			TotalConversions: acc.totalConversions,
			TotalClicks:      acc.totalClicks,
			TotalImpressions: acc.totalImpressions,
			DaysWithData:     len(acc.dates),
			Revenue:          result.Revenue,
			CAC:              result.CAC,
			ROAS:             result.ROAS,
		})
	}

	sortRows(rows)

	return rows, nil
}

// sortRows ordena por gasto total decrescente e, em empate, pela tupla da
// chave em ordem lexicográfica, para saída determinística
func sortRows(rows []domain.AggregateRow) {
	sort.Slice(rows, func(i, j int) bool {
		cmp := rows[i].TotalSpend.Cmp(rows[j].TotalSpend)
		if cmp != 0 {
			return cmp > 0
		}
		return rows[i].KeyString() < rows[j].KeyString()
	})
}

func validateFilters(filters map[string]string) error {
	for field := range filters {
		if !filterableFields[field] {
			return errors.Wrapf(domain.ErrInvalidInput, "campo de filtro desconhecido: %q", field)
		}
	}
	return nil
}

// joinKey monta a chave do grupo com um separador que não aparece nos valores
func joinKey(values []string) string {
	return strings.Join(values, "\x1f")
}
