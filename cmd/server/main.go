package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"traffic-route-service/internal/adapters/repositories"
	"traffic-route-service/internal/adapters/traffic"
	"traffic-route-service/internal/api"
	"traffic-route-service/internal/api/handlers"
	"traffic-route-service/internal/config"
	"traffic-route-service/internal/platform/obs"
	"traffic-route-service/internal/ports"
	"traffic-route-service/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (PostgreSQL, Redis, or their in-memory
// fallbacks) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx := context.Background()

	var (
		pool         *pgxpool.Pool
		trafficStore ports.TrafficStore
		damageRepo   ports.DamageRepository
	)
	if cfg.Database.URL != "" {
		pool, err = pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("connect postgres failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		pg := traffic.NewPGStore(pool)
		damage := repositories.NewPGDamageRepository(pool)
		if err := pg.CreateSchema(ctx); err != nil {
			logger.Error("schema init failed", "err", err)
			os.Exit(1)
		}
		if err := damage.CreateSchema(ctx); err != nil {
			logger.Error("schema init failed", "err", err)
			os.Exit(1)
		}
		trafficStore = pg
		damageRepo = damage
		logger.Info("persistence", "backend", "postgres")
	} else {
		trafficStore = traffic.NewMemoryStore()
		damageRepo = repositories.NewMemoryDamageRepository()
		logger.Info("persistence", "backend", "memory")
	}

	var trafficReader ports.TrafficReader = trafficStore
	var invalidator handlers.Invalidator
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer client.Close()

		cache := traffic.NewRedisCache(trafficStore, client, cfg.Redis.TTL)
		trafficReader = cache
		invalidator = cache
		logger.Info("traffic cache", "backend", "redis", "addr", cfg.Redis.Addr)
	}

	holder := services.NewNetworkHolder()
	builder := services.NewGraphBuilder(cfg.Network.DedupeEpsilonDegrees, cfg.Network.MaxNodes, cfg.Network.MaxEdges)
	snapper := services.NewCoordinateSnapper(cfg.Network.SnapToleranceDegrees)

	scorer, err := services.NewRouteScorer(cfg.Scoring.Weights())
	if err != nil {
		logger.Error("scorer setup failed", "err", err)
		os.Exit(1)
	}

	routeService := &services.RouteService{
		Networks:          holder,
		Traffic:           trafficReader,
		Snapper:           snapper,
		Finder:            services.NewAlternativeFinder(cfg.Routing.EdgePenaltyFactor),
		Scorer:            scorer,
		Logger:            logger,
		FreeFlowSpeedKmh:  cfg.Scoring.FreeFlowSpeedKmh,
		ReferenceCapacity: cfg.Scoring.ReferenceCapacity,
	}

	metrics := obs.NewMetrics()

	router := api.NewRouter(api.RouterDeps{
		Logger:              logger,
		Metrics:             metrics,
		Holder:              holder,
		Builder:             builder,
		Snapper:             snapper,
		Routes:              routeService,
		Traffic:             trafficStore,
		Cache:               invalidator,
		Damage:              damageRepo,
		DefaultAlternatives: cfg.Routing.DefaultAlternatives,
		MaxAlternatives:     cfg.Routing.MaxAlternatives,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	logger.Info("server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
