// Package config loads ownq settings from an optional file and OWNQ_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/mickamy/ownq/orm"
)

// EnvPrefix is prepended to every environment variable key (OWNQ_DSN, …).
const EnvPrefix = "OWNQ"

// Config represents the application configuration.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
}

// DatabaseConfig selects and addresses the relational store.
type DatabaseConfig struct {
	Dialect orm.Dialect
	// Driver is the database/sql driver name; empty selects the dialect default.
	Driver string
	DSN    string
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level slog.Level
	// Debug logs every SQL statement.
	Debug bool
}

// New returns a viper instance with ownq defaults and environment binding.
// configFile may be empty, in which case only defaults and the environment apply.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("dialect", "sqlite")
	v.SetDefault("driver", "")
	v.SetDefault("dsn", "file:ownq.db")
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}
	return v, nil
}

// Load builds a Config from v, validating the dialect, driver and log level.
func Load(v *viper.Viper) (*Config, error) {
	d, err := orm.DialectByName(v.GetString("dialect"))
	if err != nil {
		return nil, err
	}

	driver := v.GetString("driver")
	if driver == "" {
		driver = DefaultDriver(d)
	}
	if !driverServes(driver, d) {
		return nil, fmt.Errorf("driver %q cannot serve dialect %q", driver, d.Name())
	}

	dsn := v.GetString("dsn")
	if dsn == "" {
		return nil, errors.New("dsn is required")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}

	debug := v.GetBool("debug")
	if debug && level > slog.LevelDebug {
		level = slog.LevelDebug
	}

	return &Config{
		Database: DatabaseConfig{Dialect: d, Driver: driver, DSN: dsn},
		Log:      LogConfig{Level: level, Debug: debug},
	}, nil
}

// DefaultDriver returns the database/sql driver registered for d.
func DefaultDriver(d orm.Dialect) string {
	switch d.Name() {
	case "mysql":
		return "mysql"
	case "postgres":
		return "pgx"
	default:
		return "sqlite"
	}
}

func driverServes(driver string, d orm.Dialect) bool {
	switch driver {
	case "mysql":
		return d.Name() == "mysql"
	case "pgx", "postgres":
		return d.Name() == "postgres"
	case "sqlite":
		return d.Name() == "sqlite"
	default:
		return false
	}
}
