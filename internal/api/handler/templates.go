package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/templating"
	"github.com/vfg2006/ads-analytics-api/pkg/log"
)

// TemplateListResponse lista o catálogo de templates de consulta
type TemplateListResponse struct {
	Count     int                     `json:"count"`
	Templates []*domain.QueryTemplate `json:"templates"`
}

func ListTemplates(registry *templating.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		templates := registry.Templates()
		writeJSON(w, http.StatusOK, TemplateListResponse{
			Count:     len(templates),
			Templates: templates,
		})
	})
}

func GetTemplate(registry *templating.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		name := httprouter.ParamsFromContext(r.Context()).ByName("name")

		template, err := registry.Lookup(name)
		if err != nil {
			logger.WithField("template", name).Warn("templates: template não encontrado")
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, template)
	})
}
