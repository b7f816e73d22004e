package templating

import (
	"github.com/pkg/errors"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

// Registry mantém o catálogo imutável de templates de consulta. Construído
// uma vez na inicialização; leituras concorrentes são seguras porque nada é
// alterado depois.
type Registry struct {
	templates map[string]*domain.QueryTemplate
	order     []string
}

// NewRegistry cria o registro com o catálogo padrão de templates
func NewRegistry() *Registry {
	registry := &Registry{
		templates: make(map[string]*domain.QueryTemplate),
	}

	for _, template := range defaultTemplates() {
		registry.register(template)
	}

	return registry
}

func (r *Registry) register(template *domain.QueryTemplate) {
	r.templates[template.Name] = template
	r.order = append(r.order, template.Name)
}

// Lookup busca um template pelo nome
func (r *Registry) Lookup(name string) (*domain.QueryTemplate, error) {
	template, ok := r.templates[name]
	if !ok {
		return nil, errors.Wrapf(domain.ErrTemplateNotFound, "%q", name)
	}
	return template, nil
}

// Names retorna os nomes dos templates na ordem de registro
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Templates retorna todos os templates na ordem de registro
func (r *Registry) Templates() []*domain.QueryTemplate {
	templates := make([]*domain.QueryTemplate, 0, len(r.order))
	for _, name := range r.order {
		templates = append(templates, r.templates[name])
	}
	return templates
}

// Examples retorna as perguntas de exemplo de todos os templates, usadas como
// sugestões quando o resolvedor não reconhece a pergunta
func (r *Registry) Examples() []string {
	examples := make([]string, 0, len(r.order))
	for _, name := range r.order {
		examples = append(examples, r.templates[name].Example)
	}
	return examples
}

// Catálogo padrão. Nomes e parâmetros são parte do contrato público da API;
// mudanças aqui quebram chamadores.
func defaultTemplates() []*domain.QueryTemplate {
	dateParams := []string{"start_date", "end_date"}
	comparisonParams := []string{"start_date", "end_date", "previous_start_date", "previous_end_date"}
	kpiMetrics := []string{"total_spend", "total_conversions", "revenue", "cac", "roas"}

	return []*domain.QueryTemplate{
		{
			Name:           "daily_metrics",
			Description:    "Métricas diárias de desempenho, incluindo CAC e ROAS",
			Dimensions:     domain.DimensionKey{domain.DimensionDate},
			Metrics:        append([]string{"total_clicks", "total_impressions"}, kpiMetrics...),
			RequiredParams: dateParams,
			Example:        "Show me daily metrics for the last 30 days",
		},
		{
			Name:           "platform_performance",
			Description:    "Comparação de desempenho entre plataformas de anúncio",
			Dimensions:     domain.DimensionKey{domain.DimensionPlatform},
			Metrics:        append([]string{"days_with_data"}, kpiMetrics...),
			RequiredParams: dateParams,
			Example:        "How is each platform performing this month?",
		},
		{
			Name:           "campaign_analysis",
			Description:    "Análise de desempenho por campanha e plataforma",
			Dimensions:     domain.DimensionKey{domain.DimensionCampaign, domain.DimensionPlatform},
			Metrics:        append([]string{"days_with_data"}, kpiMetrics...),
			RequiredParams: dateParams,
			Example:        "Which campaigns spent the most last week?",
		},
		{
			Name:           "country_performance",
			Description:    "Análise geográfica de desempenho por país",
			Dimensions:     domain.DimensionKey{domain.DimensionCountry},
			Metrics:        append([]string{"days_with_data"}, kpiMetrics...),
			RequiredParams: dateParams,
			Example:        "What is the CAC by country?",
		},
		{
			Name:           "device_performance",
			Description:    "Análise de desempenho por tipo de dispositivo",
			Dimensions:     domain.DimensionKey{domain.DimensionDevice},
			Metrics:        append([]string{"days_with_data"}, kpiMetrics...),
			RequiredParams: dateParams,
			Example:        "Compare mobile and desktop performance",
		},
		{
			Name:           "account_summary",
			Description:    "Resumo de desempenho por conta",
			Dimensions:     domain.DimensionKey{domain.DimensionAccount},
			Metrics:        append([]string{"days_with_data"}, kpiMetrics...),
			RequiredParams: dateParams,
			Example:        "Give me an account summary for June",
		},
		{
			Name:           "period_comparison",
			Description:    "Comparação de métricas entre dois períodos, com variações e tendência",
			Dimensions:     domain.DimensionKey{},
			Metrics:        kpiMetrics,
			RequiredParams: comparisonParams,
			Comparison:     true,
			Example:        "Compare last 30 days vs the prior 30 days",
		},
		{
			Name:           "trend_analysis",
			Description:    "Série temporal diária para análise de tendência",
			Dimensions:     domain.DimensionKey{domain.DimensionDate},
			Metrics:        kpiMetrics,
			RequiredParams: dateParams,
			Example:        "Show me the spend trend over time",
		},
	}
}
