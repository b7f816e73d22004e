package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/ads-analytics-api/infrastructure/repository"
	"github.com/vfg2006/ads-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/comparing"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/ingesting"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/resolving"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/templating"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Prometheus() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Metrics(aggregator aggregating.Aggregator, comparator comparing.Comparator, snapshotRepo repository.KPISnapshotRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/metrics/aggregate",
			Method:  http.MethodGet,
			Handler: AggregateMetrics(aggregator),
		},
		{
			Path:    "/v1/metrics/compare",
			Method:  http.MethodGet,
			Handler: CompareMetrics(comparator),
		},
		{
			Path:    "/v1/metrics/snapshots",
			Method:  http.MethodGet,
			Handler: ListSnapshots(snapshotRepo),
		},
	}
}

func Ask(resolver resolving.Resolver, aggregator aggregating.Aggregator, comparator comparing.Comparator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/ask",
			Method:  http.MethodPost,
			Handler: AskQuestion(resolver, aggregator, comparator),
		},
	}
}

func Templates(registry *templating.Registry) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/templates",
			Method:  http.MethodGet,
			Handler: ListTemplates(registry),
		},
		{
			Path:    "/v1/templates/:name",
			Method:  http.MethodGet,
			Handler: GetTemplate(registry),
		},
	}
}

func Ingest(service ingesting.Ingester) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/spend/ingest",
			Method:  http.MethodPost,
			Handler: IngestSpend(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
