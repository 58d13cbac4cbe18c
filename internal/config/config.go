// Package config assembles the service configuration from environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"articles-admin/internal/common/pagination"
	"articles-admin/internal/infra/db"
	authservice "articles-admin/internal/service/auth"
	pkgconfig "articles-admin/pkg/config"
)

// Config holds every setting the API and the seed command need.
type Config struct {
	// HTTPAddr is the listen address. Default: ":8080"
	HTTPAddr string
	// DatabaseURL selects the dialect: postgres://, sqlite:// or file:.
	DatabaseURL string
	DB          db.ConnectionConfig

	JWTSecret string
	// JWTTTL is the access token lifetime. Default: 1h
	JWTTTL time.Duration
	// BcryptCost for password hashes. Default: bcrypt.DefaultCost
	BcryptCost int
	// LoginRateLimit is the number of login attempts per minute per client IP.
	// Zero disables limiting. Default: 5
	LoginRateLimit int

	Pagination pagination.Config

	LogLevel  string
	LogFormat string

	// RequestTimeout bounds handler contexts. Default: 30s
	RequestTimeout time.Duration
	// MaxBodyBytes caps request bodies. Default: 1 MiB
	MaxBodyBytes int64

	TracingEnabled     bool
	TracingSampleRatio float64

	// StatsSchedule is the cron spec of the gauge refresher. Default: "@every 1m"
	StatsSchedule string

	Version     string
	Environment string
}

// LoadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	slog.Info("environment loaded from file", slog.String("path", path))
	return nil
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:           pkgconfig.GetEnvString("HTTP_ADDR", ":8080"),
		DatabaseURL:        pkgconfig.GetEnvString("DATABASE_URL", ""),
		DB:                 db.ConnectionConfigFromEnv(),
		JWTSecret:          pkgconfig.GetEnvString("JWT_SECRET", ""),
		JWTTTL:             pkgconfig.GetEnvDuration("JWT_TTL", time.Hour),
		BcryptCost:         pkgconfig.GetEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		LoginRateLimit:     pkgconfig.GetEnvInt("LOGIN_RATE_LIMIT", 5),
		Pagination:         pagination.LoadFromEnv(),
		LogLevel:           pkgconfig.GetEnvString("LOG_LEVEL", "info"),
		LogFormat:          pkgconfig.GetEnvString("LOG_FORMAT", "json"),
		RequestTimeout:     pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		MaxBodyBytes:       int64(pkgconfig.GetEnvInt("MAX_BODY_BYTES", 1<<20)),
		TracingEnabled:     pkgconfig.GetEnvBool("TRACING_ENABLED", false),
		TracingSampleRatio: pkgconfig.GetEnvFloat("TRACING_SAMPLE_RATIO", 1.0),
		StatsSchedule:      pkgconfig.GetEnvString("STATS_SCHEDULE", "@every 1m"),
		Version:            pkgconfig.GetEnvString("VERSION", "dev"),
		Environment:        pkgconfig.GetEnvString("APP_ENV", "development"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL must be set"))
	} else if _, _, _, err := db.ParseURL(c.DatabaseURL); err != nil {
		errs = append(errs, err)
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	} else if err := authservice.ValidateSecret(c.JWTSecret); err != nil {
		errs = append(errs, err)
	}
	if err := pkgconfig.ValidateDurationRange(c.JWTTTL, time.Minute, 24*time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("JWT_TTL: %w", err))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.LoginRateLimit < 0 {
		errs = append(errs, errors.New("LOGIN_RATE_LIMIT must not be negative"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if c.TracingSampleRatio < 0 || c.TracingSampleRatio > 1 {
		errs = append(errs, errors.New("TRACING_SAMPLE_RATIO must be between 0 and 1"))
	}
	if err := pkgconfig.ValidateCronSchedule(c.StatsSchedule); err != nil {
		errs = append(errs, fmt.Errorf("STATS_SCHEDULE: %w", err))
	}

	return errors.Join(errs...)
}
