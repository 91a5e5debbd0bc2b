// Package config loads server configuration from evenbetter.yaml, the
// environment and an optional .env file.
//
// Environment variables override the file: EVENBETTER_SERVER_PORT sets
// server.port, EVENBETTER_AUTH_SECRET sets auth.secret, and so on.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevSecret is the token secret used when none is configured.
// Never run with it outside development.
const DevSecret = "evenbetter-dev-secret-change-me"

// Preference backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Log         LogConfig         `mapstructure:"log"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AuthConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type PreferencesConfig struct {
	// Backend is "sqlite" or "redis".
	Backend string `mapstructure:"backend"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// defaultSearchPaths are where evenbetter.yaml is looked for.
var defaultSearchPaths = []string{".", "/etc/evenbetter"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.path", "./data/evenbetter.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("auth.secret", DevSecret)
	v.SetDefault("auth.token_ttl", "720h")
	v.SetDefault("preferences.backend", BackendSQLite)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("metrics.enabled", true)
}

// Load reads the configuration. searchPaths override where evenbetter.yaml
// is looked for; a missing file is not an error.
func Load(searchPaths ...string) (*Config, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	if len(searchPaths) == 0 {
		searchPaths = defaultSearchPaths
	}

	v := viper.New()
	v.SetConfigName("evenbetter")
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("EVENBETTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		slog.Debug("No config file found, using defaults")
	} else {
		slog.Debug("Config file loaded", "path", v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would only fail later at startup.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Auth.Secret == "" {
		return errors.New("auth.secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("invalid auth.token_ttl %s", c.Auth.TokenTTL)
	}

	c.Preferences.Backend = strings.ToLower(strings.TrimSpace(c.Preferences.Backend))
	switch c.Preferences.Backend {
	case BackendSQLite:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis.addr is required for the redis preference backend")
		}
	default:
		return fmt.Errorf("unknown preferences.backend %q", c.Preferences.Backend)
	}
	return nil
}

// UsesDevSecret reports whether tokens are signed with the built-in secret.
func (c *Config) UsesDevSecret() bool {
	return c.Auth.Secret == DevSecret
}
