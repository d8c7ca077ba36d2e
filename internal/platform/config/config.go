package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr            string
	LogLevel        string
	ServiceName     string
	ShutdownTimeout time.Duration
	Database        DatabaseConfig
	Redis           RedisConfig
}

// DatabaseConfig selects the storage backend. An empty URL runs the service
// on the in-memory stores.
type DatabaseConfig struct {
	URL             string
	Driver          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	TxTimeout       time.Duration
}

// RedisConfig configures the optional building cache. An empty URL disables
// it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BuildingTTL  time.Duration
}

// UsesPostgres reports whether a database URL was configured.
func (c DatabaseConfig) UsesPostgres() bool {
	return c.URL != ""
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var errs []error
	cfg := Server{
		Addr:            stringOr("UNITBRIDGE_ADDR", ":8080"),
		LogLevel:        stringOr("LOG_LEVEL", "info"),
		ServiceName:     stringOr("OTEL_SERVICE_NAME", "unitbridge"),
		ShutdownTimeout: durationOr("SHUTDOWN_TIMEOUT", 15*time.Second, &errs),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Driver:          stringOr("DATABASE_DRIVER", "postgres"),
			MaxOpenConns:    intOr("DB_MAX_OPEN_CONNS", 25, &errs),
			MaxIdleConns:    intOr("DB_MAX_IDLE_CONNS", 5, &errs),
			ConnMaxLifetime: durationOr("DB_CONN_MAX_LIFETIME", 30*time.Minute, &errs),
			TxTimeout:       durationOr("DB_TX_TIMEOUT", 5*time.Second, &errs),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intOr("REDIS_POOL_SIZE", 10, &errs),
			MinIdleConns: intOr("REDIS_MIN_IDLE_CONNS", 2, &errs),
			DialTimeout:  durationOr("REDIS_DIAL_TIMEOUT", 5*time.Second, &errs),
			ReadTimeout:  durationOr("REDIS_READ_TIMEOUT", 3*time.Second, &errs),
			WriteTimeout: durationOr("REDIS_WRITE_TIMEOUT", 3*time.Second, &errs),
			BuildingTTL:  durationOr("BUILDING_CACHE_TTL", 10*time.Minute, &errs),
		},
	}
	if len(errs) > 0 {
		return Server{}, errs[0]
	}
	switch cfg.Database.Driver {
	case "postgres", "pgx":
	default:
		return Server{}, fmt.Errorf("DATABASE_DRIVER must be postgres or pgx, got %q", cfg.Database.Driver)
	}
	return cfg, nil
}

func stringOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		*errs = append(*errs, fmt.Errorf("%s must be a non-negative integer, got %q", key, raw))
		return fallback
	}
	return v
}

func durationOr(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		*errs = append(*errs, fmt.Errorf("%s must be a duration such as 5s, got %q", key, raw))
		return fallback
	}
	return v
}
