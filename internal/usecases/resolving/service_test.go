package resolving

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-analytics-api/internal/config"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/templating"
)

func newTestService() *Service {
	return NewService(templating.NewRegistry(), config.NLQ{
		Platforms:        []string{"Meta", "Google", "TikTok"},
		Countries:        []string{"US", "CA", "BR", "MX"},
		DefaultRangeDays: 30,
	})
}

func date(value string) time.Time {
	d, _ := time.Parse(time.DateOnly, value)
	return d
}

func TestService_Resolve_PerguntaSobrePlataforma(t *testing.T) {
	service := newTestService()
	now := date("2025-09-15")

	resolution, err := service.Resolve("Show me Meta performance last month", SuppliedParams{}, now)
	require.NoError(t, err)

	require.True(t, resolution.Matched)
	assert.Equal(t, "platform_performance", resolution.Template.Name)
	assert.Equal(t, map[string]string{"platform": "Meta"}, resolution.Params.Filters)

	// "last month" contra 15/09 resolve para agosto inteiro
	assert.Equal(t, "2025-08-01", resolution.Params.StartDate.Format(time.DateOnly))
	assert.Equal(t, "2025-08-31", resolution.Params.EndDate.Format(time.DateOnly))
}

func TestService_Resolve_CaixaAltaNaoMudaOResultado(t *testing.T) {
	service := newTestService()
	now := date("2025-09-15")

	lower, err := service.Resolve("show me meta performance last month", SuppliedParams{}, now)
	require.NoError(t, err)
	upper, err := service.Resolve("SHOW ME META PERFORMANCE LAST MONTH", SuppliedParams{}, now)
	require.NoError(t, err)

	assert.Equal(t, lower.Template.Name, upper.Template.Name)
	assert.Equal(t, lower.Params, upper.Params)
}

func TestService_Resolve_MapeamentoDosPadroes(t *testing.T) {
	service := newTestService()
	now := date("2025-09-15")

	tests := []struct {
		name         string
		question     string
		wantTemplate string
		wantFilters  map[string]string
	}{
		{
			name:         "Comparação de períodos",
			question:     "Compare last 30 days vs the prior 30 days",
			wantTemplate: "period_comparison",
		},
		{
			name:         "Plataforma pela palavra-chave",
			question:     "How is each platform performing?",
			wantTemplate: "platform_performance",
		},
		{
			name:         "Plataforma por sinônimo",
			question:     "How much did we spend on facebook?",
			wantTemplate: "platform_performance",
			wantFilters:  map[string]string{"platform": "Meta"},
		},
		{
			name:         "Campanhas",
			question:     "Which campaigns spent the most last week?",
			wantTemplate: "campaign_analysis",
		},
		{
			name:         "País por sinônimo",
			question:     "What is the CAC in Brazil?",
			wantTemplate: "country_performance",
			wantFilters:  map[string]string{"country": "BR"},
		},
		{
			name:         "Dispositivo único vira filtro",
			question:     "Show mobile metrics for this week",
			wantTemplate: "device_performance",
			wantFilters:  map[string]string{"device": "mobile"},
		},
		{
			name:         "Dois dispositivos não viram filtro",
			question:     "Compare mobile and desktop performance",
			wantTemplate: "device_performance",
		},
		{
			name:         "Resumo por conta",
			question:     "Give me an account summary",
			wantTemplate: "account_summary",
		},
		{
			name:         "Tendência",
			question:     "Show me the spend trend over time",
			wantTemplate: "trend_analysis",
		},
		{
			name:         "Genérico cai em métricas diárias",
			question:     "What was our CAC yesterday?",
			wantTemplate: "daily_metrics",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolution, err := service.Resolve(tt.question, SuppliedParams{}, now)
			require.NoError(t, err)

			require.True(t, resolution.Matched, "pergunta deveria casar: %s", tt.question)
			assert.Equal(t, tt.wantTemplate, resolution.Template.Name)
			if tt.wantFilters != nil {
				assert.Equal(t, tt.wantFilters, resolution.Params.Filters)
			}
		})
	}
}

func TestService_Resolve_PerguntaSemSentidoRetornaSugestoes(t *testing.T) {
	service := newTestService()

	resolution, err := service.Resolve("What is the meaning of life?", SuppliedParams{}, date("2025-09-15"))
	require.NoError(t, err)

	assert.False(t, resolution.Matched)
	assert.Nil(t, resolution.Template)
	assert.NotEmpty(t, resolution.Suggestions)
}

func TestService_Resolve_PerguntaVazia(t *testing.T) {
	service := newTestService()

	_, err := service.Resolve("   ", SuppliedParams{}, date("2025-09-15"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_Resolve_ComparacaoDerivaJanelaAnterior(t *testing.T) {
	service := newTestService()
	now := date("2025-09-15")

	resolution, err := service.Resolve("Compare last 30 days vs the prior period", SuppliedParams{}, now)
	require.NoError(t, err)
	require.True(t, resolution.Matched)
	require.Equal(t, "period_comparison", resolution.Template.Name)

	params := resolution.Params
	assert.Equal(t, "2025-08-17", params.StartDate.Format(time.DateOnly))
	assert.Equal(t, "2025-09-15", params.EndDate.Format(time.DateOnly))

	// Janela anterior adjacente, de mesmo tamanho
	require.NotNil(t, params.PreviousStartDate)
	require.NotNil(t, params.PreviousEndDate)
	assert.Equal(t, "2025-07-18", params.PreviousStartDate.Format(time.DateOnly))
	assert.Equal(t, "2025-08-16", params.PreviousEndDate.Format(time.DateOnly))
}

func TestService_Resolve_ParametrosEnviadosTemPrecedencia(t *testing.T) {
	service := newTestService()
	now := date("2025-09-15")

	start := date("2025-06-01")
	end := date("2025-06-30")

	resolution, err := service.Resolve("Show me Meta performance last month", SuppliedParams{
		StartDate: &start,
		EndDate:   &end,
		Filters:   map[string]string{"platform": "Google"},
	}, now)
	require.NoError(t, err)

	// Datas e filtros enviados vencem os inferidos do texto
	assert.Equal(t, "2025-06-01", resolution.Params.StartDate.Format(time.DateOnly))
	assert.Equal(t, "2025-06-30", resolution.Params.EndDate.Format(time.DateOnly))
	assert.Equal(t, "Google", resolution.Params.Filters["platform"])
}

func TestResolveRange_ExpressoesTemporais(t *testing.T) {
	now := date("2025-09-15") // segunda-feira

	tests := []struct {
		name      string
		question  string
		wantStart string
		wantEnd   string
	}{
		{name: "Últimos N dias", question: "last 7 days", wantStart: "2025-09-09", wantEnd: "2025-09-15"},
		{name: "Mês passado", question: "last month", wantStart: "2025-08-01", wantEnd: "2025-08-31"},
		{name: "Este mês", question: "this month", wantStart: "2025-09-01", wantEnd: "2025-09-15"},
		{name: "Semana passada", question: "last week", wantStart: "2025-09-08", wantEnd: "2025-09-14"},
		{name: "Esta semana", question: "this week", wantStart: "2025-09-15", wantEnd: "2025-09-15"},
		{name: "Ontem", question: "yesterday", wantStart: "2025-09-14", wantEnd: "2025-09-14"},
		{name: "Sem expressão usa a janela padrão", question: "spend", wantStart: "2025-08-17", wantEnd: "2025-09-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resolveRange(tt.question, now, 30)
			assert.Equal(t, tt.wantStart, r.Start.Format(time.DateOnly))
			assert.Equal(t, tt.wantEnd, r.End.Format(time.DateOnly))
		})
	}
}
