package templating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

func TestRegistry_Lookup(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name         string
		templateName string
		wantErr      bool
	}{
		{name: "Template existente é encontrado", templateName: "daily_metrics"},
		{name: "Template de comparação é encontrado", templateName: "period_comparison"},
		{name: "Nome desconhecido retorna erro", templateName: "weekly_metrics", wantErr: true},
		{name: "Nome vazio retorna erro", templateName: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template, err := registry.Lookup(tt.templateName)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
				assert.Nil(t, template)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.templateName, template.Name)
		})
	}
}

func TestRegistry_CatalogoCompleto(t *testing.T) {
	registry := NewRegistry()

	expected := []string{
		"daily_metrics",
		"platform_performance",
		"campaign_analysis",
		"country_performance",
		"device_performance",
		"account_summary",
		"period_comparison",
		"trend_analysis",
	}

	assert.Equal(t, expected, registry.Names())
	assert.Len(t, registry.Templates(), len(expected))
	assert.Len(t, registry.Examples(), len(expected))
}

func TestRegistry_ParametrosExigidos(t *testing.T) {
	registry := NewRegistry()

	comparison, err := registry.Lookup("period_comparison")
	require.NoError(t, err)
	assert.True(t, comparison.Comparison)
	assert.Equal(t,
		[]string{"start_date", "end_date", "previous_start_date", "previous_end_date"},
		comparison.RequiredParams,
	)

	daily, err := registry.Lookup("daily_metrics")
	require.NoError(t, err)
	assert.False(t, daily.Comparison)
	assert.Equal(t, []string{"start_date", "end_date"}, daily.RequiredParams)
	assert.Equal(t, domain.DimensionKey{domain.DimensionDate}, daily.Dimensions)
}
