package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "PLANET"

// ErrInvalidBackend is returned when the database backend cannot serve the configured URL.
var ErrInvalidBackend = errors.New("database backend does not support the configured URL")

// Load reads configuration from defaults, an optional config file and
// environment variables (PLANET_SERVER_PORT, PLANET_DATABASE_URL, ...).
// Environment variables take precedence over values from the config file.
// An empty configFile means no file is read.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, and
	// database.url has no default.
	if err := v.BindEnv("database.url"); err != nil {
		return nil, fmt.Errorf("failed to bind database url: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("database.backend", BackendSQL)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.auto_migrate", true)
}

// Validate checks struct tags and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.Database.Backend == BackendSQL && !IsPostgresURL(c.Database.URL) {
		return fmt.Errorf("config validation failed: %w: backend %q needs a postgres URL",
			ErrInvalidBackend, c.Database.Backend)
	}

	if c.Database.Backend == BackendORM && !IsPostgresURL(c.Database.URL) && !IsSQLiteURL(c.Database.URL) {
		return fmt.Errorf("config validation failed: %w: backend %q needs a postgres://, sqlite: or file: URL",
			ErrInvalidBackend, c.Database.Backend)
	}

	return nil
}

// IsSQLiteURL reports whether url names a SQLite database (sqlite: or file:).
func IsSQLiteURL(url string) bool {
	return strings.HasPrefix(url, "sqlite:") || strings.HasPrefix(url, "file:")
}

// IsPostgresURL reports whether url names a PostgreSQL database.
func IsPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}
