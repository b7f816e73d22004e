package kpi

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

// Precisão das métricas: 2 casas para valores monetários, 4 para razões.
// Arredondamento half-up em todos os cálculos (decimal.Round arredonda
// metade para longe de zero, que para valores não negativos é half-up).
const (
	currencyPlaces = 2
	ratioPlaces    = 4
)

// Result reúne as métricas calculadas para um grupo de registros
type Result struct {
	Revenue decimal.Decimal
	CAC     domain.Metric
	ROAS    domain.Metric
}

// Calculator calcula CAC, ROAS e receita com semântica decimal de ponto fixo.
// Divisão por zero não é falha: a métrica fica ausente (domain.Metric inválida).
type Calculator struct {
	revenuePerConversion decimal.Decimal
}

// NewCalculator cria um calculador com o fator de receita por conversão
func NewCalculator(revenuePerConversion decimal.Decimal) *Calculator {
	return &Calculator{revenuePerConversion: revenuePerConversion}
}

// Compute calcula receita, CAC e ROAS para os totais de um grupo.
// Valores negativos são violação de contrato do chamador, nunca coagidos.
func (c *Calculator) Compute(totalSpend decimal.Decimal, totalConversions int64) (*Result, error) {
	if totalSpend.IsNegative() {
		return nil, errors.Wrapf(domain.ErrInvalidInput, "spend negativo: %s", totalSpend)
	}

	if totalConversions < 0 {
		return nil, errors.Wrapf(domain.ErrInvalidInput, "conversões negativas: %d", totalConversions)
	}

	revenue := c.Revenue(totalConversions)

	return &Result{
		Revenue: revenue,
		CAC:     c.cac(totalSpend, totalConversions),
		ROAS:    c.roas(revenue, totalSpend),
	}, nil
}

// Revenue calcula a receita atribuída: conversões x fator de receita
func (c *Calculator) Revenue(totalConversions int64) decimal.Decimal {
	return decimal.NewFromInt(totalConversions).
		Mul(c.revenuePerConversion).
		Round(currencyPlaces)
}

// cac é spend / conversões; ausente quando não há conversões
func (c *Calculator) cac(totalSpend decimal.Decimal, totalConversions int64) domain.Metric {
	if totalConversions <= 0 {
		return domain.AbsentMetric()
	}

	return domain.NewMetric(
		totalSpend.Div(decimal.NewFromInt(totalConversions)).Round(ratioPlaces),
	)
}

// roas é receita / spend; ausente quando não há spend
func (c *Calculator) roas(revenue, totalSpend decimal.Decimal) domain.Metric {
	if !totalSpend.IsPositive() {
		return domain.AbsentMetric()
	}

	return domain.NewMetric(revenue.Div(totalSpend).Round(ratioPlaces))
}
