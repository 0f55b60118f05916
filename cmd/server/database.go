package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/planet-api/internal/config"
	"github.com/phrazzld/planet-api/internal/platform/gormstore"
	"github.com/phrazzld/planet-api/internal/platform/migrations"
	"github.com/phrazzld/planet-api/internal/platform/postgres"
	"github.com/phrazzld/planet-api/internal/store"
)

// pingTimeout bounds the connectivity check performed at startup.
const pingTimeout = 5 * time.Second

// storage is an opened database together with the transaction manager of
// the configured backend.
type storage struct {
	db        *sql.DB
	txManager store.TxManager
	dialect   migrations.Dialect
}

// openStorage opens the database for the configured backend. The returned
// *sql.DB is the handle both backends sit on; closing it releases everything.
func openStorage(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*storage, error) {
	switch cfg.Backend {
	case config.BackendSQL:
		db, err := setupAppDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return &storage{
			db:        db,
			txManager: postgres.NewTxManager(db, logger),
			dialect:   migrations.DialectPostgres,
		}, nil

	case config.BackendORM:
		gdb, err := gormstore.Open(ctx, cfg.URL, gormstore.PoolConfig{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		}, logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying database handle: %w", err)
		}
		return &storage{
			db:        sqlDB,
			txManager: gormstore.NewTxManager(gdb, logger),
			dialect:   gormstore.DialectFor(cfg.URL),
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalidBackend, cfg.Backend)
	}
}

// setupAppDatabase opens a pgx-backed *sql.DB, applies the pool settings
// and verifies the connection.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	logger.Info("Opening PostgreSQL connection")

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established")
	return db, nil
}

// runMigrations executes a single migration command and closes the database.
func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string) error {
	st, err := openStorage(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.db.Close(); cerr != nil {
			logger.Error("Error closing database connection", "error", cerr)
		}
	}()

	logger.Info("Running migration command",
		slog.String("command", command),
		slog.String("dialect", string(st.dialect)))
	if err := migrations.Run(ctx, st.db, st.dialect, command); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	logger.Info("Migration command completed", slog.String("command", command))
	return nil
}
