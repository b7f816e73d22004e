package resolving

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVocabulary_DeviceIn(t *testing.T) {
	vocabulary := NewVocabulary([]string{"Meta", "Google"}, []string{"US", "BR"})

	tests := []struct {
		name       string
		question   string
		wantDevice string
		wantOK     bool
	}{
		{
			name:       "um único dispositivo vira filtro",
			question:   "show me mobile spend",
			wantDevice: "mobile",
			wantOK:     true,
		},
		{
			name:       "dispositivo repetido ainda é um só",
			question:   "mobile mobile performance",
			wantDevice: "mobile",
			wantOK:     true,
		},
		{
			name:     "dois dispositivos é comparação, não filtro",
			question: "compare mobile and desktop performance",
			wantOK:   false,
		},
		{
			name:     "nenhum dispositivo",
			question: "show me daily metrics",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device, ok := vocabulary.DeviceIn(strings.Fields(tt.question))

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDevice, device)
		})
	}
}
