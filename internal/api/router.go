package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/Harshitk-cp/openmind/internal/api/handlers"
	mw "github.com/Harshitk-cp/openmind/internal/api/middleware"
	"github.com/Harshitk-cp/openmind/internal/buildconfig"
	"github.com/Harshitk-cp/openmind/internal/config"
	"github.com/Harshitk-cp/openmind/internal/domain"
	"github.com/Harshitk-cp/openmind/internal/service"
	"github.com/Harshitk-cp/openmind/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Pinger reports whether the sweep history backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the router and background services for lifecycle management.
type App struct {
	Router  *chi.Mux
	Pruner  *service.PrunerService
	Sweeps  *service.SweepService
	limiter *mw.RateLimiter
	metrics *mw.Metrics

	startTime time.Time
	cancel    context.CancelFunc
}

// NewApp wires the HTTP API. db may be nil when sweep history is kept in
// memory.
func NewApp(sweeps domain.SweepStore, db Pinger, logger *zap.Logger) *App {
	accuracySvc := service.NewAccuracyService(logger)
	sweepSvc := service.NewSweepService(sweeps, logger)
	sweepSvc.SetWorkers(config.SweepWorkers())
	sweepSvc.SetMaxCells(config.SweepMaxCells())

	pruner := service.NewPrunerService(sweeps, config.SweepRetention(), logger)
	pruner.SetInterval(config.SweepPruneInterval())

	accuracyHandler := handlers.NewAccuracyHandler(accuracySvc)
	sweepHandler := handlers.NewSweepHandler(sweepSvc)

	r := chi.NewRouter()
	app := &App{
		Router:    r,
		Pruner:    pruner,
		Sweeps:    sweepSvc,
		limiter:   mw.NewRateLimiter(config.RateLimitRPS(), config.RateLimitBurst()),
		metrics:   &mw.Metrics{},
		startTime: time.Now(),
	}

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.metrics.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(app.limiter.Middleware)

	r.Get("/health", healthHandler(db))
	r.Get("/metrics", app.metricsHandler())
	r.Get("/version", versionHandler)

	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(config.APIKey()))

		r.Get("/parameters/defaults", accuracyHandler.Defaults)
		r.Post("/information", accuracyHandler.Information)
		r.Post("/accuracy", accuracyHandler.Expected)
		r.Post("/tipping/content", accuracyHandler.TippingContent)
		r.Post("/tipping/source", accuracyHandler.TippingSource)

		r.Route("/sweeps", func(r chi.Router) {
			r.Get("/kinds", sweepHandler.Kinds)
			r.Post("/compute", sweepHandler.Compute)
			r.Post("/", sweepHandler.Create)
			r.Get("/", sweepHandler.List)
			r.Get("/{id}", sweepHandler.GetByID)
		})
	})

	return app
}

// Start launches background services.
func (app *App) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel
	go app.limiter.Run(ctx, 10*time.Minute)
	app.Pruner.Start()
}

// Stop halts background services started by Start.
func (app *App) Stop() {
	if app.cancel != nil {
		app.cancel()
	}
	app.Pruner.Stop()
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if db == nil {
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "sweep_store": "memory"})
			return
		}
		if err := db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "sweep_store": "postgres"})
	}
}

func versionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(buildconfig.VersionInfo())
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds":  uptime.Seconds(),
			"uptime_human":    uptime.Round(time.Second).String(),
			"request_count":   app.metrics.Requests.Load(),
			"client_errors":   app.metrics.ClientErrors.Load(),
			"server_errors":   app.metrics.ServerErrors.Load(),
			"mean_latency_ms": float64(app.metrics.MeanLatency().Microseconds()) / 1000,
			"goroutines":      runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores satisfy interfaces at compile time.
var (
	_ domain.SweepStore = (*store.SweepStore)(nil)
	_ domain.SweepStore = (*store.SQLiteSweepStore)(nil)
	_ domain.SweepStore = (*store.MemorySweepStore)(nil)
)
