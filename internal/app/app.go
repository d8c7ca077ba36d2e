// Package app assembles stores, services and the HTTP router for the
// configured backend.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	bridgehandler "unitbridge/internal/bridge/handler"
	bridgeservice "unitbridge/internal/bridge/service"
	occupancymetrics "unitbridge/internal/occupancy/metrics"
	occupancyservice "unitbridge/internal/occupancy/service"
	occupancystore "unitbridge/internal/occupancy/store"
	"unitbridge/internal/platform/config"
	httpmetrics "unitbridge/internal/platform/metrics"
	"unitbridge/internal/platform/middleware"
	"unitbridge/internal/platform/postgres"
	platformredis "unitbridge/internal/platform/redis"
	registrymetrics "unitbridge/internal/registry/metrics"
	registryservice "unitbridge/internal/registry/service"
	"unitbridge/internal/registry/store/building"
	"unitbridge/internal/registry/store/unit"
	"unitbridge/pkg/platform/httputil"
	"unitbridge/pkg/platform/middleware/requesttime"
	txcontext "unitbridge/pkg/platform/tx"
)

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// UnitStore is read and written by the registry and, for status, the ledger.
type UnitStore interface {
	registryservice.UnitStore
	occupancyservice.UnitStore
}

// Backend is one complete set of stores sharing a transaction runner.
type Backend struct {
	Name        string
	Buildings   registryservice.BuildingStore
	Units       UnitStore
	Occupancies occupancyservice.OccupancyStore
	Tx          txcontext.Runner
	Health      HealthCheck
	closers     []func() error
}

// Close releases the backend's connections.
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	return errors.Join(errs...)
}

// NewInMemoryBackend wires the in-memory stores behind one MemoryRunner so
// registry and ledger transactions serialize against each other.
func NewInMemoryBackend() *Backend {
	buildings := building.NewInMemory()
	units := unit.NewInMemory(buildings)
	return &Backend{
		Name:        "memory",
		Buildings:   buildings,
		Units:       units,
		Occupancies: occupancystore.NewInMemory(units),
		Tx:          txcontext.NewMemoryRunner(),
		Health:      func(context.Context) error { return nil },
	}
}

// NewPostgresBackend opens the database, applies migrations and, when Redis
// is configured, fronts building lookups with the Redis cache.
func NewPostgresBackend(ctx context.Context, cfg config.Server, logger *slog.Logger) (*Backend, error) {
	db, err := postgres.Open(ctx, cfg.Database.URL, postgres.Options{
		Driver:          cfg.Database.Driver,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	b := &Backend{
		Name:        "postgres",
		Buildings:   building.NewPostgres(db),
		Units:       unit.NewPostgres(db),
		Occupancies: occupancystore.NewPostgres(db),
		Tx:          postgres.NewTxRunner(db, cfg.Database.TxTimeout),
		Health:      db.PingContext,
		closers:     []func() error{db.Close},
	}

	client, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	if client != nil {
		b.Buildings = building.NewRedisCache(building.NewPostgres(db), client.Client,
			building.WithCacheTTL(cfg.Redis.BuildingTTL),
			building.WithCacheLogger(logger),
		)
		b.Health = both(b.Health, client.Health)
		b.closers = append(b.closers, client.Close)
		logger.InfoContext(ctx, "building cache enabled", "ttl", cfg.Redis.BuildingTTL.String())
	}
	return b, nil
}

func both(a, b HealthCheck) HealthCheck {
	return func(ctx context.Context) error {
		return errors.Join(a(ctx), b(ctx))
	}
}

// NewService builds the bridge facade over backend, registering module
// metrics on reg.
func NewService(backend *Backend, logger *slog.Logger, reg prometheus.Registerer) *bridgeservice.Service {
	registry := registryservice.New(backend.Buildings, backend.Units,
		registryservice.WithTx(backend.Tx),
		registryservice.WithLogger(logger),
		registryservice.WithMetrics(registrymetrics.New(reg)),
	)
	ledger := occupancyservice.New(backend.Units, backend.Occupancies,
		occupancyservice.WithTx(backend.Tx),
		occupancyservice.WithLogger(logger),
		occupancyservice.WithMetrics(occupancymetrics.New(reg)),
	)
	return bridgeservice.New(registry, ledger, bridgeservice.WithLogger(logger))
}

// RouterConfig carries what NewRouter needs beyond the bridge service.
type RouterConfig struct {
	Logger   *slog.Logger
	Metrics  *httpmetrics.Metrics
	Gatherer prometheus.Gatherer
	Health   HealthCheck
}

// NewRouter mounts the bridge endpoints, /healthz and /metrics behind the
// platform middleware chain.
func NewRouter(svc bridgehandler.Service, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Latency(cfg.Metrics))

	bridgehandler.New(svc, cfg.Logger).Register(r)

	r.Get("/healthz", healthHandler(cfg.Health))
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	return otelhttp.NewHandler(r, "http.server")
}

func healthHandler(check HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
