// Package bootstrap builds the service graph shared by the HTTP server and the operator CLI.
package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/adapters/analytics"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/adapters/excel"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/adapters/exactonline"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/adapters/lock"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/gateways"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/platform/config"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/repositories/database/pgsql"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/pkg/database"
)

const exactHTTPTimeout = 30 * time.Second

// App holds the wired services and the resources they depend on.
type App struct {
	Services *portssvc.ServiceContainer

	closers []func()
}

// Close flushes analytics and releases the database pool and the Redis client.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// New connects to PostgreSQL (and Redis when configured) and builds every service.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, func() { database.ClosePgxPool(dbPool) })
	logger.Info("Database connection pool established.")

	locker, err := newLocker(ctx, cfg, logger, app)
	if err != nil {
		app.Close()
		return nil, err
	}

	events, err := analytics.NewPosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.closers = append(app.closers, events.Close)

	httpClient := &http.Client{Timeout: exactHTTPTimeout}
	gw := services.Gateways{
		ExactTokenEndpoint: exactonline.NewTokenEndpoint(cfg.ExactBaseURL, cfg.ExactClientID, cfg.ExactClientSecret, cfg.ExactRedirectURL, httpClient),
		ExactAPI:           exactonline.NewClient(cfg.ExactBaseURL, httpClient),
		Locker:             locker,
		SheetReader:        excel.NewGLAccountReader(),
		Analytics:          events,
	}

	app.Services = services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), gw)
	return app, nil
}

// newLocker prefers Redis so that several instances share token refresh and sync locks.
func newLocker(ctx context.Context, cfg *config.Config, logger *slog.Logger, app *App) (gateways.Locker, error) {
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set, using process-local locks")
		return lock.NewLocalLocker(cfg.TokenLockTTL), nil
	}
	rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, func() {
		if err := rdb.Close(); err != nil {
			logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	})
	logger.Info("Using redis for distributed locks")
	return lock.NewRedisLocker(rdb, cfg.TokenLockTTL), nil
}
