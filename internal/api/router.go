package api

import (
	"log/slog"
	"net/http"

	"traffic-route-service/internal/api/handlers"
	"traffic-route-service/internal/platform/obs"
	"traffic-route-service/internal/ports"
	"traffic-route-service/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Dependencies for the HTTP layer, wired by the composition root.
// Handlers stay unaware of concrete adapters.
type RouterDeps struct {
	Logger  *slog.Logger
	Metrics *obs.Metrics

	Holder  *services.NetworkHolder
	Builder *services.GraphBuilder
	Snapper *services.CoordinateSnapper
	Routes  *services.RouteService

	Traffic ports.TrafficStore
	Cache   handlers.Invalidator
	Damage  ports.DamageRepository

	DefaultAlternatives int
	MaxAlternatives     int
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(deps.Logger))
	r.Use(requestMetrics(deps.Metrics))

	networkHandler := &handlers.NetworkHandler{
		Holder:  deps.Holder,
		Builder: deps.Builder,
		Metrics: deps.Metrics,
	}
	routeHandler := &handlers.RouteHandler{
		Service:  deps.Routes,
		Metrics:  deps.Metrics,
		DefaultK: deps.DefaultAlternatives,
		MaxK:     deps.MaxAlternatives,
	}
	trafficHandler := &handlers.TrafficHandler{
		Store: deps.Traffic,
		Cache: deps.Cache,
	}
	analyticsHandler := &handlers.AnalyticsHandler{Store: deps.Traffic}
	damageHandler := &handlers.DamageHandler{
		Holder:  deps.Holder,
		Snapper: deps.Snapper,
		Repo:    deps.Damage,
	}

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	r.Route("/network", func(r chi.Router) {
		r.Put("/", networkHandler.Upload)
		r.Get("/status", networkHandler.Status)
	})

	r.Route("/routes", func(r chi.Router) {
		r.Post("/analyze", routeHandler.Analyze)
		r.Get("/alternatives", routeHandler.Alternatives)
		r.Post("/recommend", routeHandler.Recommend)
	})

	r.Route("/traffic", func(r chi.Router) {
		r.Post("/samples", trafficHandler.Ingest)
		r.Get("/live/{segment}", trafficHandler.Live)
		r.Get("/history/{segment}", trafficHandler.History)
		r.Put("/thresholds/{segment}", trafficHandler.PutThreshold)
		r.Get("/thresholds/{segment}", trafficHandler.GetThreshold)
		r.Get("/status/{segment}", trafficHandler.Status)
	})

	r.Get("/analytics/summary", analyticsHandler.Summary)

	r.Route("/damage", func(r chi.Router) {
		r.Post("/reports", damageHandler.IngestBatch)
		r.Get("/reports", damageHandler.List)
	})

	return r
}
