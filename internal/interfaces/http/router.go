// Package http exposes the recreation potential service over a chi router.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/recreation-potential/internal/interfaces/http/handlers"
	"github.com/turtacn/recreation-potential/internal/interfaces/http/middleware"
)

// rawDatasetRoutes maps the raw dataset views to their dataset names.
var rawDatasetRoutes = map[string]string{
	"/population":          "population",
	"/infrastructure":      "infrastructure",
	"/protected-areas":     "protected-areas",
	"/recreational-points": "recreational-points",
	"/forest-fires":        "fires",
}

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the HTTP route tree.
type RouterConfig struct {
	// Handlers
	AnalysisHandler *handlers.AnalysisHandler
	DatasetHandler  *handlers.DatasetHandler
	HealthHandler   *handlers.HealthHandler

	// Middleware
	CORS           *middleware.CORSConfig
	Logging        middleware.LoggingConfig
	RequestTimeout time.Duration
	MaxBodySize    int64

	// Infrastructure
	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string
}

// NewRouter constructs the complete HTTP route tree from the given configuration.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}

	r := chi.NewRouter()

	// --- Global middleware (applied to every request) ---
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogging(cfg.Logger.Named("http"), cfg.Logging))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	r.Use(chimw.Recoverer)
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}

	// --- Probes ---
	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.Handle(cfg.MetricsPath, cfg.MetricsCollector.Handler())
	}

	// --- API v1 ---
	r.Route("/api/v1", func(api chi.Router) {
		if cfg.RequestTimeout > 0 {
			api.Use(chimw.Timeout(cfg.RequestTimeout))
		}
		api.Use(middleware.BodyLimit(cfg.MaxBodySize))

		registerAnalysisRoutes(api, cfg.AnalysisHandler)
		registerDatasetRoutes(api, cfg.DatasetHandler)
	})

	return r
}

// registerAnalysisRoutes mounts scoring, zone and AHP endpoints.
func registerAnalysisRoutes(r chi.Router, h *handlers.AnalysisHandler) {
	if h == nil {
		return
	}
	r.Get("/regions", h.Regions)
	r.Get("/analyze/{region}", h.Analyze)
	r.Get("/analyze-all", h.AnalyzeAll)
	r.Get("/recommended-zones", h.RecommendedZones)
	r.Get("/ahp", h.AHP)
}

// registerDatasetRoutes mounts raw dataset views, status, import and export.
func registerDatasetRoutes(r chi.Router, h *handlers.DatasetHandler) {
	if h == nil {
		return
	}
	for path, name := range rawDatasetRoutes {
		r.Get(path, h.Raw(name))
	}
	r.Get("/data-status", h.Status)
	r.Post("/import/{dataset}", h.Import)
	r.Post("/export", h.Export)
}

//Personal.AI order the ending
