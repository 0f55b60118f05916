package gormstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sloggorm "github.com/orandin/slog-gorm"
	"github.com/phrazzld/planet-api/internal/platform/migrations"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// PoolConfig holds connection pool limits. Zero values leave the
// database/sql defaults in place.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ErrUnsupportedURL is returned by Open for URLs that are neither
// postgres://, postgresql://, sqlite: nor file:.
var ErrUnsupportedURL = errors.New("unsupported database URL scheme")

// DialectFor returns the migration dialect for a database URL. URLs that are
// not postgres are assumed to be SQLite; Open rejects anything else first.
func DialectFor(dbURL string) migrations.Dialect {
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		return migrations.DialectPostgres
	}
	return migrations.DialectSQLite
}

func supportedURL(dbURL string) bool {
	for _, prefix := range []string{"postgres://", "postgresql://", "sqlite:", "file:"} {
		if strings.HasPrefix(dbURL, prefix) {
			return true
		}
	}
	return false
}

// SQLiteDSN turns sqlite:path, sqlite://path, file:path or a bare path into
// a go-sqlite3 DSN with foreign key enforcement switched on.
func SQLiteDSN(dbURL string) string {
	dsn := dbURL
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		dsn = strings.TrimPrefix(dsn, "sqlite://")
	case strings.HasPrefix(dsn, "sqlite:"):
		dsn = strings.TrimPrefix(dsn, "sqlite:")
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.Contains(dsn, "_foreign_keys=") && !strings.Contains(dsn, "_fk=") {
		dsn += sep + "_foreign_keys=on"
		sep = "&"
	}
	if !strings.Contains(dsn, "_busy_timeout=") {
		dsn += sep + "_busy_timeout=5000"
	}
	return dsn
}

// Open connects gorm to the database named by dbURL and applies pool.
// SQLite connections are limited to one so writers never contend for the
// file lock.
func Open(ctx context.Context, dbURL string, pool PoolConfig, logger *slog.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !supportedURL(dbURL) {
		return nil, ErrUnsupportedURL
	}

	dialect := DialectFor(dbURL)
	var dialector gorm.Dialector
	if dialect == migrations.DialectPostgres {
		dialector = postgres.Open(dbURL)
	} else {
		dialector = sqlite.Open(SQLiteDSN(dbURL))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         sloggorm.New(sloggorm.WithHandler(logger.Handler())),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database handle: %w", err)
	}

	if err := setupJoinTables(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if dialect == migrations.DialectSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}

	logger.Info("gorm database opened", slog.String("dialect", string(dialect)))
	return db, nil
}
