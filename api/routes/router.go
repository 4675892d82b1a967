package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/erp-records-backend/api/controllers"
	"github.com/angelmondragon/erp-records-backend/api/middleware"
	"github.com/angelmondragon/erp-records-backend/internal/records"
	"github.com/angelmondragon/erp-records-backend/internal/workspace"
	"github.com/angelmondragon/erp-records-backend/pkg/config"
	"github.com/angelmondragon/erp-records-backend/pkg/db"
	"github.com/angelmondragon/erp-records-backend/pkg/logger"
	"github.com/angelmondragon/erp-records-backend/pkg/metrics"
	"github.com/angelmondragon/erp-records-backend/pkg/redis"
)

// Dependencies groups what the router hands to controllers.
type Dependencies struct {
	DB               db.Pinger
	Redis            redis.Pinger
	IdempotencyStore redis.IdempotencyStore
	Records          records.Service
	Workspaces       workspace.Service
	HTTPMetrics      *metrics.HTTPMetrics
	Gatherer         prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Logging(logg, deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/navigation", controllers.Navigation(logg))
		r.Get("/vocabularies", controllers.Vocabularies())

		r.Route("/records", func(r chi.Router) {
			r.Get("/", controllers.RecordsList(deps.Records, cfg.Records, logg))
			r.Get("/export", controllers.RecordsExport(deps.Records, cfg.Records, logg))
			r.With(middleware.Idempotency(deps.IdempotencyStore, cfg.Idempotency.TTL, logg)).
				Post("/", controllers.RecordsCreate(deps.Records, cfg.Records, logg))
			r.Patch("/{recordId}", controllers.RecordsUpdate(deps.Records, cfg.Records, logg))
			r.Delete("/{recordId}", controllers.RecordsDelete(deps.Records, cfg.Records, logg))
		})

		r.Route("/workspaces/{sessionId}", func(r chi.Router) {
			r.Get("/", controllers.WorkspaceFetch(deps.Workspaces, logg))
			r.Post("/search", controllers.WorkspaceSearch(deps.Workspaces, logg))
			r.Post("/filters", controllers.WorkspaceFilter(deps.Workspaces, logg))
			r.Post("/filters/reset", controllers.WorkspaceResetFilters(deps.Workspaces, logg))
			r.Post("/sort", controllers.WorkspaceSort(deps.Workspaces, logg))
			r.Post("/page", controllers.WorkspacePage(deps.Workspaces, logg))
			r.Post("/page-size", controllers.WorkspacePageSize(deps.Workspaces, logg))
			r.Post("/selection/toggle", controllers.WorkspaceToggleOne(deps.Workspaces, logg))
			r.Post("/selection/toggle-all", controllers.WorkspaceToggleAll(deps.Workspaces, logg))
		})
	})

	return r
}
