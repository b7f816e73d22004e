package domain

import (
	"bytes"

	"github.com/shopspring/decimal"
)

var jsonNull = []byte("null")

// Metric representa um valor de métrica que pode ser indefinido (ausente).
// Uma métrica indefinida (ex: CAC sem conversões) é serializada como null,
// nunca como zero — zero significa "desempenho zero", null significa "sem dados".
type Metric struct {
	Decimal decimal.Decimal
	Valid   bool
}

// NewMetric cria uma métrica definida com o valor informado
func NewMetric(d decimal.Decimal) Metric {
	return Metric{Decimal: d, Valid: true}
}

// NewMetricFromInt cria uma métrica definida a partir de um inteiro
func NewMetricFromInt(v int64) Metric {
	return Metric{Decimal: decimal.NewFromInt(v), Valid: true}
}

// AbsentMetric retorna a métrica indefinida
func AbsentMetric() Metric {
	return Metric{}
}

// IsZero retorna verdadeiro se a métrica é definida e igual a zero
func (m Metric) IsZero() bool {
	return m.Valid && m.Decimal.IsZero()
}

// MarshalJSON serializa a métrica como número ou null quando indefinida
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return jsonNull, nil
	}
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON aceita null ou um número
func (m *Metric) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		m.Decimal = decimal.Decimal{}
		m.Valid = false
		return nil
	}

	d, err := decimal.NewFromString(string(bytes.Trim(bytes.TrimSpace(data), `"`)))
	if err != nil {
		return err
	}

	m.Decimal = d
	m.Valid = true
	return nil
}
