package domain

// Classificação de tendência de uma métrica entre dois períodos
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
	// TrendNew marca métrica que saiu de zero/ausente para um valor positivo;
	// nesse caso percent_change fica ausente em vez de reportar infinito
	TrendNew = "new"
)

// MetricChange é a variação de uma métrica entre o período atual e o anterior.
// Quando um dos lados é ausente, as variações também ficam ausentes — nunca
// zero, que significaria "sem variação".
type MetricChange struct {
	Current        Metric `json:"current"`
	Previous       Metric `json:"previous"`
	AbsoluteChange Metric `json:"absolute_change"`
	PercentChange  Metric `json:"percent_change"`
	Trend          string `json:"trend"`
}

// ComparisonRow emparelha a linha agregada do período atual com a do período
// anterior de mesma chave de dimensões (junção externa completa: chave sem
// correspondência ganha um lado zerado/ausente)
type ComparisonRow struct {
	Dimensions       []DimensionValue `json:"dimensions"`
	TotalSpend       MetricChange     `json:"total_spend"`
	TotalConversions MetricChange     `json:"total_conversions"`
	TotalClicks      MetricChange     `json:"total_clicks"`
	TotalImpressions MetricChange     `json:"total_impressions"`
	Revenue          MetricChange     `json:"revenue"`
	CAC              MetricChange     `json:"cac"`
	ROAS             MetricChange     `json:"roas"`
}
