// Package app wires configuration, storage, service and router.
package app

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/f3rva/workout-service/internal/config"
	"github.com/f3rva/workout-service/internal/httpserver"
	"github.com/f3rva/workout-service/internal/service"
	"github.com/f3rva/workout-service/internal/store"
)

// App is a wired service ready to serve HTTP.
type App struct {
	Router *gin.Engine
	store  *store.PostgresStore
}

// Build connects the store and assembles the router.
//
// An unreachable database does not fail startup: /health reports it and
// lookups answer 500 until it comes back. DB_AUTO_MIGRATE does need the
// database and fails fast.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	st, err := store.NewPostgresStore(ctx, cfg.DB.DSN(), logger)
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if err := st.EnsureSchema(ctx); err != nil {
			st.Close()
			return nil, err
		}
		logger.Info("database schema ensured")
	} else if err := st.Ping(ctx); err != nil {
		logger.Warn("database not reachable at startup", "error", err)
	}

	svc := service.New(st, logger)

	return &App{
		Router: httpserver.NewRouter(cfg, svc, logger),
		store:  st,
	}, nil
}

// Close releases the connection pool.
func (a *App) Close() {
	a.store.Close()
}
