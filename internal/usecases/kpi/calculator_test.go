package kpi

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

func newTestCalculator() *Calculator {
	return NewCalculator(decimal.NewFromInt(100))
}

func TestCalculator_Compute(t *testing.T) {
	tests := []struct {
		name            string
		spend           string
		conversions     int64
		expectedRevenue string
		expectedCAC     string // vazio significa ausente
		expectedROAS    string // vazio significa ausente
	}{
		{
			name:            "CAC exato com spend 100 e 5 conversões",
			spend:           "100",
			conversions:     5,
			expectedRevenue: "500.00",
			expectedCAC:     "20",
			expectedROAS:    "5",
		},
		{
			name:            "CAC ausente quando não há conversões",
			spend:           "50",
			conversions:     0,
			expectedRevenue: "0.00",
			expectedCAC:     "",
			expectedROAS:    "0",
		},
		{
			name:            "ROAS ausente quando não há spend",
			spend:           "0",
			conversions:     3,
			expectedRevenue: "300.00",
			expectedCAC:     "0",
			expectedROAS:    "",
		},
		{
			name:            "CAC e ROAS ausentes sem spend e sem conversões",
			spend:           "0",
			conversions:     0,
			expectedRevenue: "0.00",
			expectedCAC:     "",
			expectedROAS:    "",
		},
		{
			name:            "Arredondamento half-up com 4 casas para CAC",
			spend:           "100",
			conversions:     3,
			expectedRevenue: "300.00",
			expectedCAC:     "33.3333",
			expectedROAS:    "3",
		},
		{
			name:            "Valores decimais de spend preservam ponto fixo",
			spend:           "123.45",
			conversions:     7,
			expectedRevenue: "700.00",
			expectedCAC:     "17.6357", // 123.45/7 = 17.635714..., arredonda half-up
			expectedROAS:    "5.6703",
		},
	}

	calc := newTestCalculator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spend, err := decimal.NewFromString(tt.spend)
			require.NoError(t, err)

			result, err := calc.Compute(spend, tt.conversions)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedRevenue, result.Revenue.StringFixed(2))

			if tt.expectedCAC == "" {
				assert.False(t, result.CAC.Valid, "CAC deveria ser ausente")
			} else {
				require.True(t, result.CAC.Valid)
				assert.True(t, result.CAC.Decimal.Equal(decimal.RequireFromString(tt.expectedCAC)),
					"CAC esperado %s, obtido %s", tt.expectedCAC, result.CAC.Decimal)
			}

			if tt.expectedROAS == "" {
				assert.False(t, result.ROAS.Valid, "ROAS deveria ser ausente")
			} else {
				require.True(t, result.ROAS.Valid)
				assert.True(t, result.ROAS.Decimal.Equal(decimal.RequireFromString(tt.expectedROAS)),
					"ROAS esperado %s, obtido %s", tt.expectedROAS, result.ROAS.Decimal)
			}
		})
	}
}

func TestCalculator_Compute_InvalidInput(t *testing.T) {
	calc := newTestCalculator()

	t.Run("Spend negativo deve retornar ErrInvalidInput", func(t *testing.T) {
		_, err := calc.Compute(decimal.NewFromInt(-10), 5)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Conversões negativas devem retornar ErrInvalidInput", func(t *testing.T) {
		_, err := calc.Compute(decimal.NewFromInt(10), -1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCalculator_Compute_ExactCAC(t *testing.T) {
	// Propriedade do contrato: spend=100, conversões=5 resulta em CAC 20.00 exato
	calc := newTestCalculator()

	result, err := calc.Compute(decimal.NewFromInt(100), 5)
	require.NoError(t, err)
	require.True(t, result.CAC.Valid)
	assert.Equal(t, "20.00", result.CAC.Decimal.StringFixed(2))
}
