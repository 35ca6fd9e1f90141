// Package config provides configuration loading and validation for the server and the CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "TALENT_MATCH"
	// DefaultConfigName is the config file looked up in the working directory.
	DefaultConfigName = "talent-match"
)

// Config is the full application configuration. Every field has a default.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Batch     BatchConfig     `mapstructure:"batch"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig configures the PostgreSQL connection
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// BatchConfig configures batch matching
type BatchConfig struct {
	Concurrency    int           `mapstructure:"concurrency"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay"`
}

// AuthConfig configures the bearer-token guard
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
}

// RateLimitConfig configures request rate limiting
type RateLimitConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	DefaultLimit  int           `mapstructure:"default_limit"`
	DefaultWindow time.Duration `mapstructure:"default_window"`
	BatchLimit    int           `mapstructure:"batch_limit"`
	BatchWindow   time.Duration `mapstructure:"batch_window"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("database.url", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("batch.max_retries", 3)
	v.SetDefault("batch.retry_base_delay", 200*time.Millisecond)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_expiration_hours", 24)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.default_limit", 100)
	v.SetDefault("rate_limit.default_window", time.Minute)
	v.SetDefault("rate_limit.batch_limit", 5)
	v.SetDefault("rate_limit.batch_window", time.Minute)
}

// Load reads configuration from the YAML file at path (or talent-match.yaml in the
// working directory when path is empty) and from TALENT_MATCH_* environment variables.
// DATABASE_URL and JWT_SECRET are honoured without the prefix. A missing default file
// is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_URL: %w", err)
	}
	if err := v.BindEnv("auth.jwt_secret", EnvPrefix+"_AUTH_JWT_SECRET", "JWT_SECRET"); err != nil {
		return nil, fmt.Errorf("failed to bind JWT_SECRET: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: DATABASE_URL and JWT_SECRET are checked by the commands that need them.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("config error: server timeouts must be non-negative")
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("config error: 'batch.concurrency' must be at least 1")
	}
	if c.Batch.MaxRetries < 0 {
		return fmt.Errorf("config error: 'batch.max_retries' must be non-negative")
	}
	if c.Batch.RetryBaseDelay < 0 {
		return fmt.Errorf("config error: 'batch.retry_base_delay' must be non-negative")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.DefaultLimit < 1 || c.RateLimit.BatchLimit < 1 {
			return fmt.Errorf("config error: rate limits must be at least 1")
		}
		if c.RateLimit.DefaultWindow <= 0 || c.RateLimit.BatchWindow <= 0 {
			return fmt.Errorf("config error: rate limit windows must be positive")
		}
	}
	return nil
}
