// Package migrations embeds the SQL schema for every supported dialect and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// TableName is the goose version table.
const TableName = "schema_migrations"

// Dialect names a SQL dialect with its own migration directory.
type Dialect string

// Supported dialects.
const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// Commands accepted by Run.
var Commands = []string{"up", "down", "reset", "status", "version"}

// goose keeps its dialect, base FS and table name in package globals.
var mu sync.Mutex

// dir returns the embedded directory holding dialect's migrations.
func (d Dialect) dir() (string, error) {
	switch d {
	case DialectPostgres:
		return "postgres", nil
	case DialectSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported migration dialect %q", d)
	}
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, dialect Dialect) error {
	return Run(ctx, db, dialect, "up")
}

// Run executes a goose command against db.
func Run(ctx context.Context, db *sql.DB, dialect Dialect, command string) error {
	dir, err := dialect.dir()
	if err != nil {
		return err
	}

	log := slog.Default().With(
		"correlation_id", uuid.NewString(),
		"component", "migrations",
		"command", command,
		"dialect", string(dialect),
	)

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(&slogGooseLogger{log: log})
	goose.SetTableName(TableName)
	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	start := time.Now()
	log.Info("starting migration operation")

	switch command {
	case "up":
		err = goose.UpContext(ctx, db, dir)
	case "down":
		err = goose.DownContext(ctx, db, dir)
	case "reset":
		err = goose.ResetContext(ctx, db, dir)
	case "status":
		err = goose.StatusContext(ctx, db, dir)
	case "version":
		err = goose.VersionContext(ctx, db, dir)
	default:
		return fmt.Errorf("unknown migration command: %s (expected one of %v)", command, Commands)
	}

	if err != nil {
		log.Error("migration operation failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migration operation completed",
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	log *slog.Logger
}

// Printf forwards goose progress messages at info level.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level. It does not exit: goose returns the error
// to the caller as well.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}
