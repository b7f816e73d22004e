package domain

import "time"

// QueryTemplate é a definição nomeada e imutável de uma consulta
// parametrizada: dimensões de agrupamento, métricas e parâmetros exigidos.
// Carregado uma vez na inicialização, nunca alterado em tempo de execução.
type QueryTemplate struct {
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Dimensions     DimensionKey `json:"dimensions"`
	Metrics        []string     `json:"metrics"`
	RequiredParams []string     `json:"required_params"`
	// Comparison indica que o template executa o motor de comparação de
	// períodos em vez de uma agregação simples
	Comparison bool `json:"comparison"`
	// Example é uma pergunta de exemplo usada como sugestão pelo resolvedor
	Example string `json:"example"`
}

// QueryParams são os parâmetros resolvidos de uma consulta: intervalo de
// datas, intervalo anterior (apenas para comparação) e filtros de igualdade
// por dimensão
type QueryParams struct {
	StartDate         time.Time         `json:"start_date"`
	EndDate           time.Time         `json:"end_date"`
	PreviousStartDate *time.Time        `json:"previous_start_date,omitempty"`
	PreviousEndDate   *time.Time        `json:"previous_end_date,omitempty"`
	Filters           map[string]string `json:"filters,omitempty"`
}
