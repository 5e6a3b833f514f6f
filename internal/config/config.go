// Package config loads xfer settings from xfer.yaml, XFER_* environment
// variables and built-in defaults, in that order of precedence (env wins).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/example/landxfer/internal/db"
)

// EnvPrefix is prepended to every environment override, e.g. XFER_DATABASE_DSN.
const EnvPrefix = "XFER"

// Config represents the xfer configuration.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
	Actor    ActorConfig
}

// DatabaseConfig selects the driver and sizes the shared pool.
type DatabaseConfig struct {
	Driver          string // "sqlite3" or "postgres"
	DSN             string // file path for sqlite3 (empty = ~/.xfer/xfer.db), URL for postgres
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

// ActorConfig is the default acting user for CLI commands. Flags override it.
type ActorConfig struct {
	ID   string
	Role string
}

// Options converts the database section to db.Options.
func (c DatabaseConfig) Options() db.Options {
	return db.Options{
		Driver:          c.Driver,
		DSN:             c.DSN,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.driver", db.DriverSQLite)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("actor.id", "")
	v.SetDefault("actor.role", "")
	return v
}

// Load reads xfer.yaml from dir if present. A missing file is not an error;
// defaults and environment variables still apply.
func Load(dir string) (*Config, error) {
	v := newViper()
	v.SetConfigName("xfer")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return decode(v)
}

// LoadFile reads the given config file. The file must exist.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			DSN:             v.GetString("database.dsn"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Actor: ActorConfig{
			ID:   v.GetString("actor.id"),
			Role: strings.ToUpper(v.GetString("actor.role")),
		},
	}

	switch cfg.Database.Driver {
	case db.DriverSQLite, db.DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	return cfg, nil
}
