// Package config holds the application configuration for the api and worker
// binaries. Values load from an optional YAML file and can be overridden per
// field with environment variables, so a deployment can ship one config file
// and tweak single values per environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	pkgconfig "devflow/pkg/config"
)

// Duration wraps time.Duration so YAML values can use the "30s" / "5m"
// syntax instead of nanosecond integers.
type Duration time.Duration

// UnmarshalYAML parses the duration with time.ParseDuration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	IdleTimeout     Duration `yaml:"idle_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64    `yaml:"max_body_bytes"`
}

// RateLimitConfig holds the per-client request limiter settings.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// StorageConfig selects where uploaded images live.
type StorageConfig struct {
	// Backend is "filesystem" or "minio". The minio backend reads its
	// connection settings from the MINIO_* environment variables.
	Backend string `yaml:"backend"`
	// Root is the base directory for the filesystem backend.
	Root string `yaml:"root"`
}

// CleanupConfig drives the worker's orphaned-upload reclamation.
type CleanupConfig struct {
	// Schedule is a standard five-field cron expression.
	Schedule string `yaml:"schedule"`
	// MaxAge is how long an unattached upload survives before reclamation.
	MaxAge Duration `yaml:"max_age"`
	// Batch caps how many orphans one run reclaims.
	Batch int `yaml:"batch"`
}

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Storage   StorageConfig   `yaml:"storage"`
	Cleanup   CleanupConfig   `yaml:"cleanup"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			IdleTimeout:     Duration(2 * time.Minute),
			ShutdownTimeout: Duration(5 * time.Second),
			MaxBodyBytes:    1 << 20,
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
		Storage: StorageConfig{
			Backend: "filesystem",
			Root:    "data/images",
		},
		Cleanup: CleanupConfig{
			Schedule: "30 * * * *",
			MaxAge:   Duration(24 * time.Hour),
			Batch:    500,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path when
// one is given, then environment overrides, then validation. An empty path
// with CONFIG_FILE set uses that instead.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides single fields from the environment.
func (c *Config) applyEnv() {
	c.Server.Port = pkgconfig.GetEnvInt("SERVER_PORT", c.Server.Port)
	c.Server.ReadTimeout = Duration(pkgconfig.GetEnvDuration("SERVER_READ_TIMEOUT", c.Server.ReadTimeout.Std()))
	c.Server.WriteTimeout = Duration(pkgconfig.GetEnvDuration("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout.Std()))
	c.Server.IdleTimeout = Duration(pkgconfig.GetEnvDuration("SERVER_IDLE_TIMEOUT", c.Server.IdleTimeout.Std()))
	c.Server.ShutdownTimeout = Duration(pkgconfig.GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout.Std()))
	c.Server.MaxBodyBytes = int64(pkgconfig.GetEnvInt("SERVER_MAX_BODY_BYTES", int(c.Server.MaxBodyBytes)))

	c.RateLimit.RPS = pkgconfig.GetEnvFloat("RATE_LIMIT_RPS", c.RateLimit.RPS)
	c.RateLimit.Burst = pkgconfig.GetEnvInt("RATE_LIMIT_BURST", c.RateLimit.Burst)

	c.Storage.Backend = pkgconfig.GetEnvString("STORAGE_BACKEND", c.Storage.Backend)
	c.Storage.Root = pkgconfig.GetEnvString("STORAGE_ROOT", c.Storage.Root)

	c.Cleanup.Schedule = pkgconfig.GetEnvString("CLEANUP_SCHEDULE", c.Cleanup.Schedule)
	c.Cleanup.MaxAge = Duration(pkgconfig.GetEnvDuration("CLEANUP_MAX_AGE", c.Cleanup.MaxAge.Std()))
	c.Cleanup.Batch = pkgconfig.GetEnvInt("CLEANUP_BATCH", c.Cleanup.Batch)
}

// Validate rejects configurations the binaries cannot run with.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	for name, d := range map[string]Duration{
		"read_timeout":     c.Server.ReadTimeout,
		"write_timeout":    c.Server.WriteTimeout,
		"idle_timeout":     c.Server.IdleTimeout,
		"shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if err := pkgconfig.ValidatePositiveDuration(d.Std()); err != nil {
			return fmt.Errorf("server %s: %w", name, err)
		}
	}
	if c.Server.MaxBodyBytes < 1 {
		return fmt.Errorf("server max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}

	if c.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate_limit rps must be positive, got %v", c.RateLimit.RPS)
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit burst must be at least 1, got %d", c.RateLimit.Burst)
	}

	switch c.Storage.Backend {
	case "filesystem":
		if c.Storage.Root == "" {
			return fmt.Errorf("storage root must be set for the filesystem backend")
		}
	case "minio":
	default:
		return fmt.Errorf("storage backend must be filesystem or minio, got %q", c.Storage.Backend)
	}

	if _, err := cron.ParseStandard(c.Cleanup.Schedule); err != nil {
		return fmt.Errorf("cleanup schedule %q: %w", c.Cleanup.Schedule, err)
	}
	if err := pkgconfig.ValidateDurationRange(c.Cleanup.MaxAge.Std(), time.Minute, 30*24*time.Hour); err != nil {
		return fmt.Errorf("cleanup max_age: %w", err)
	}
	if c.Cleanup.Batch < 1 {
		return fmt.Errorf("cleanup batch must be at least 1, got %d", c.Cleanup.Batch)
	}
	return nil
}
