package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"unitbridge/internal/app"
	"unitbridge/internal/platform/config"
	"unitbridge/internal/platform/httpserver"
	"unitbridge/internal/platform/logger"
	httpmetrics "unitbridge/internal/platform/metrics"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "unitbridge:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))),
	)
	otel.SetTracerProvider(tp)

	backend, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := app.NewRouter(app.NewService(backend, log, reg), app.RouterConfig{
		Logger:   log,
		Metrics:  httpmetrics.New(reg),
		Gatherer: reg,
		Health:   backend.Health,
	})
	srv := httpserver.New(cfg.Addr, router)

	log.InfoContext(ctx, "starting unitbridge",
		"addr", cfg.Addr,
		"backend", backend.Name,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv, cfg.ShutdownTimeout)
	})
	err = g.Wait()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if tpErr := tp.Shutdown(shutdownCtx); tpErr != nil {
		log.Error("tracer shutdown failed", "error", tpErr)
	}
	if closeErr := backend.Close(); closeErr != nil {
		log.Error("backend close failed", "error", closeErr)
	}
	return err
}

func openBackend(ctx context.Context, cfg config.Server, log *slog.Logger) (*app.Backend, error) {
	if !cfg.Database.UsesPostgres() {
		log.WarnContext(ctx, "DATABASE_URL not set, using in-memory stores")
		return app.NewInMemoryBackend(), nil
	}
	return app.NewPostgresBackend(ctx, cfg, log)
}
