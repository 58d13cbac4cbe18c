// Package pagination implements offset pagination for list endpoints:
// query parsing and validation, offset and page arithmetic, and the
// {items, meta} response envelope.
package pagination

import (
	"log/slog"

	"articles-admin/pkg/config"
)

// Config holds pagination configuration settings.
type Config struct {
	DefaultPage  int // Default page number (1)
	DefaultLimit int // Default items per page (6)
	MaxLimit     int // Maximum allowed items per page (100)
}

// DefaultConfig returns the default pagination configuration.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 6,
		MaxLimit:     100,
	}
}

// LoadFromEnv loads pagination config from environment variables:
//   - PAGINATION_DEFAULT_PAGE
//   - PAGINATION_DEFAULT_LIMIT
//   - PAGINATION_MAX_LIMIT
//
// Non-positive or inconsistent values fall back to DefaultConfig.
func LoadFromEnv() Config {
	def := DefaultConfig()
	cfg := Config{
		DefaultPage:  config.GetEnvInt("PAGINATION_DEFAULT_PAGE", def.DefaultPage),
		DefaultLimit: config.GetEnvInt("PAGINATION_DEFAULT_LIMIT", def.DefaultLimit),
		MaxLimit:     config.GetEnvInt("PAGINATION_MAX_LIMIT", def.MaxLimit),
	}
	if cfg.DefaultPage < 1 || cfg.DefaultLimit < 1 || cfg.MaxLimit < cfg.DefaultLimit {
		slog.Warn("invalid pagination configuration, using defaults",
			slog.Int("default_page", cfg.DefaultPage),
			slog.Int("default_limit", cfg.DefaultLimit),
			slog.Int("max_limit", cfg.MaxLimit))
		return def
	}
	return cfg
}
