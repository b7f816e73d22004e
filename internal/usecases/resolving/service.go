package resolving

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-analytics-api/internal/config"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/templating"
)

// Resolver define a interface do resolvedor de perguntas em linguagem natural
type Resolver interface {
	// Resolve mapeia a pergunta para um template e parâmetros. Pergunta não
	// reconhecida retorna resolução sem correspondência, com sugestões; nunca erro.
	Resolve(question string, supplied SuppliedParams, now time.Time) (*Resolution, error)
}

// SuppliedParams são os parâmetros opcionais enviados junto com a pergunta.
// Quando presentes, têm precedência sobre as datas inferidas do texto.
type SuppliedParams struct {
	StartDate         *time.Time
	EndDate           *time.Time
	PreviousStartDate *time.Time
	PreviousEndDate   *time.Time
	Filters           map[string]string
}

// Resolution é o resultado do mapeamento de uma pergunta
type Resolution struct {
	Matched     bool                  `json:"matched"`
	Template    *domain.QueryTemplate `json:"template,omitempty"`
	Params      domain.QueryParams    `json:"parameters"`
	Suggestions []string              `json:"suggestions,omitempty"`
}

// Service resolve perguntas por regras ordenadas: a primeira que casa vence.
// Sem modelo de linguagem; só vocabulário e padrões fixos.
type Service struct {
	registry         *templating.Registry
	vocabulary       *Vocabulary
	defaultRangeDays int
}

// NewService cria o resolvedor com o vocabulário configurado
func NewService(registry *templating.Registry, cfg config.NLQ) *Service {
	defaultRangeDays := cfg.DefaultRangeDays
	if defaultRangeDays <= 0 {
		defaultRangeDays = 30
	}

	return &Service{
		registry:         registry,
		vocabulary:       NewVocabulary(cfg.Platforms, cfg.Countries),
		defaultRangeDays: defaultRangeDays,
	}
}

// Resolve mapeia a pergunta para um template e parâmetros
func (s *Service) Resolve(question string, supplied SuppliedParams, now time.Time) (*Resolution, error) {
	normalized := normalize(question)
	if normalized == "" {
		return nil, errors.Wrap(domain.ErrInvalidInput, "pergunta vazia")
	}

	tokens := tokenize(normalized)

	templateName, filters := s.matchPattern(normalized, tokens)
	if templateName == "" {
		logrus.Info("Pergunta não reconhecida pelo resolvedor", map[string]any{
			"question": question,
		})
		return &Resolution{
			Matched:     false,
			Suggestions: s.registry.Examples(),
		}, nil
	}

	template, err := s.registry.Lookup(templateName)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		Matched:  true,
		Template: template,
		Params:   s.buildParams(template, normalized, supplied, filters, now),
	}, nil
}

// matchPattern aplica os padrões em ordem fixa de prioridade: comparação,
// plataforma, campanha, país, dispositivo, conta, tendência e, por fim, o
// padrão genérico de métricas diárias
func (s *Service) matchPattern(question string, tokens []string) (string, map[string]string) {
	filters := make(map[string]string)

	if isComparison(question, tokens) {
		return "period_comparison", filters
	}

	platform, hasPlatform := s.vocabulary.PlatformIn(tokens)
	if hasPlatform {
		filters[domain.DimensionPlatform] = platform
	}
	if hasToken(tokens, "platform", "platforms") || hasPlatform {
		return "platform_performance", filters
	}

	if hasToken(tokens, "campaign", "campaigns") {
		return "campaign_analysis", filters
	}

	country, hasCountry := s.vocabulary.CountryIn(tokens)
	if hasCountry {
		filters[domain.DimensionCountry] = country
	}
	if hasToken(tokens, "country", "countries", "geo") || hasCountry {
		return "country_performance", filters
	}

	if device, ok := s.vocabulary.DeviceIn(tokens); ok {
		filters[domain.DimensionDevice] = device
	}
	if hasToken(tokens, "device", "devices", "mobile", "desktop", "tablet") {
		return "device_performance", filters
	}

	if hasToken(tokens, "account", "accounts") {
		return "account_summary", filters
	}

	if hasToken(tokens, "trend", "trends") || strings.Contains(question, "over time") {
		return "trend_analysis", filters
	}

	if hasToken(tokens, "cac", "roas", "spend", "revenue", "conversions",
		"performance", "metrics", "daily", "kpi", "kpis") {
		return "daily_metrics", filters
	}

	return "", nil
}

func (s *Service) buildParams(template *domain.QueryTemplate, question string, supplied SuppliedParams, filters map[string]string, now time.Time) domain.QueryParams {
	dateRange := resolveRange(question, now, s.defaultRangeDays)
	if supplied.StartDate != nil {
		dateRange.Start = truncateToDay(*supplied.StartDate)
	}
	if supplied.EndDate != nil {
		dateRange.End = truncateToDay(*supplied.EndDate)
	}

	// Filtros enviados pelo chamador vencem os inferidos do texto
	for field, value := range supplied.Filters {
		filters[field] = value
	}
	if len(filters) == 0 {
		filters = nil
	}

	params := domain.QueryParams{
		StartDate: dateRange.Start,
		EndDate:   dateRange.End,
		Filters:   filters,
	}

	if template.Comparison {
		previous := dateRange.Previous()
		previousStart, previousEnd := previous.Start, previous.End
		if supplied.PreviousStartDate != nil {
			previousStart = truncateToDay(*supplied.PreviousStartDate)
		}
		if supplied.PreviousEndDate != nil {
			previousEnd = truncateToDay(*supplied.PreviousEndDate)
		}
		params.PreviousStartDate = &previousStart
		params.PreviousEndDate = &previousEnd
	}

	return params
}

// isComparison exige a intenção explícita de comparar dois períodos; comparar
// dispositivos ou plataformas entre si não é comparação de períodos
func isComparison(question string, tokens []string) bool {
	if !hasToken(tokens, "prior", "previous", "period", "periods") {
		return false
	}
	return strings.Contains(question, "compare") || hasToken(tokens, "vs", "versus")
}

func normalize(question string) string {
	return strings.Join(strings.Fields(strings.ToLower(question)), " ")
}

func tokenize(normalized string) []string {
	return strings.FieldsFunc(normalized, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

func hasToken(tokens []string, wanted ...string) bool {
	for _, token := range tokens {
		for _, w := range wanted {
			if token == w {
				return true
			}
		}
	}
	return false
}
