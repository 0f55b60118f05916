package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/planet-api/internal/config"
	"github.com/phrazzld/planet-api/internal/platform/migrations"
	"github.com/phrazzld/planet-api/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds the wired dependencies of a running server.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	storage      *storage
	registry     *prometheus.Registry
	userService  service.UserService
	groupService service.GroupService
}

// newApplication opens storage, applies migrations when configured and
// builds the services. The caller owns cleanup on success.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	st, err := openStorage(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	if cfg.Database.AutoMigrate {
		logger.Info("Applying database migrations", slog.String("dialect", string(st.dialect)))
		if err := migrations.Up(ctx, st.db, st.dialect); err != nil {
			_ = st.db.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(st.db, string(st.dialect)),
	)

	return &application{
		config:       cfg,
		logger:       logger,
		storage:      st,
		registry:     registry,
		userService:  service.NewUserService(st.txManager, logger),
		groupService: service.NewGroupService(st.txManager, logger),
	}, nil
}

// Run serves HTTP until ctx is cancelled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()
	return app.startHTTPServer(ctx, app.setupRouter())
}

func (app *application) cleanup() {
	app.logger.Info("Cleaning up application resources")
	if err := app.storage.db.Close(); err != nil {
		app.logger.Error("Error closing database connection", "error", err)
	} else {
		app.logger.Info("Database connection closed")
	}
}
