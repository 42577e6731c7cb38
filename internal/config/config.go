// Package config loads all runtime settings from environment variables
// via envconfig struct tags. A .env file is picked up by the godotenv
// autoload import in cmd/server.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every setting the server needs.
type Config struct {
	// --- HTTP ---
	Port string `envconfig:"PORT" default:"8080"`

	// --- Database ---
	DBHost     string `envconfig:"PG_HOST" default:"localhost"`
	DBPort     int    `envconfig:"PG_PORT" default:"5432"`
	DBUser     string `envconfig:"POSTGRES_USER" default:"mafstat"`
	DBPassword string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	DBName     string `envconfig:"PG_DATABASE" default:"mafstat"`
	DBSSLMode  string `envconfig:"PG_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"PG_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"PG_MIN_CONNS" default:"2"`

	// --- Redis ---
	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`

	// --- Auth ---
	// Empty key paths mean a fresh ed25519 pair is generated at startup,
	// invalidating outstanding tokens on restart.
	JWTPrivateKeyPath string        `envconfig:"JWT_PRIVATE_KEY_PATH" default:""`
	JWTPublicKeyPath  string        `envconfig:"JWT_PUBLIC_KEY_PATH" default:""`
	TokenExpire       time.Duration `envconfig:"TOKEN_EXPIRE_TIME" default:"72h"`

	// --- Application ---
	LogLevel          string        `envconfig:"APP_LOG_LEVEL" default:"info"`
	DashboardCacheTTL time.Duration `envconfig:"DASHBOARD_CACHE_TTL" default:"60s"`
	// Cron spec for the nightly rating_results recompute.
	RatingCronSpec string `envconfig:"RATING_CRON_SPEC" default:"0 3 * * *"`
}

// DatabaseDSN assembles the PostgreSQL connection string.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("invalid PG_MIN_CONNS/PG_MAX_CONNS")
	}
	if (c.JWTPrivateKeyPath == "") != (c.JWTPublicKeyPath == "") {
		return fmt.Errorf("JWT key paths must be set together or not at all")
	}
	return nil
}

// Load reads the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
