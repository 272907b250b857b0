package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	Auth   AuthConfig
	Media  MediaConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

// DBConfig holds database configuration.
type DBConfig struct {
	DSN      string `envconfig:"MYSQL_DSN" default:"user:password@tcp(localhost:3306)/vidshelf?charset=utf8mb4&parseTime=True&loc=Local"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"10"`
}

// RedisConfig holds cache configuration.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// AuthConfig holds token signing configuration. The secret has no default:
// the process must refuse to start with a predictable signing key.
type AuthConfig struct {
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
}

// MediaConfig holds upload and ingestion paths.
type MediaConfig struct {
	UploadDir string `envconfig:"UPLOAD_DIR" default:"uploads"`
	WatchDir  string `envconfig:"WATCH_DIR" default:"videos"`
}

// Load builds Config from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	if err := envconfig.Process("", &cfg.DB); err != nil {
		return nil, fmt.Errorf("load db config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Redis); err != nil {
		return nil, fmt.Errorf("load redis config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Auth); err != nil {
		return nil, fmt.Errorf("load auth config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Media); err != nil {
		return nil, fmt.Errorf("load media config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DB.MaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if c.Media.WatchDir == "" {
		return fmt.Errorf("WATCH_DIR must not be empty")
	}
	return nil
}
