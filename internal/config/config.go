package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"     validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// Storage backends selectable through DatabaseConfig.Backend.
const (
	// BackendSQL uses hand-written SQL over database/sql with the pgx driver.
	BackendSQL = "sql"
	// BackendORM uses gorm models on PostgreSQL or SQLite.
	BackendORM = "orm"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// URL is either a postgres:// connection string or a SQLite DSN
	// (sqlite:path or file:path). Other forms are rejected by Validate.
	URL             string        `mapstructure:"url"               validate:"required"`
	Backend         string        `mapstructure:"backend"           validate:"required,oneof=sql orm"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}
