// Package config reads typed settings from the environment.
//
// An unset or blank variable yields the caller's default. A value that does
// not parse also yields the default and logs a warning naming the key, so a
// typo shows up in the logs instead of stopping the process.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// lookup parses the trimmed value of key, falling back to def.
func lookup[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("ignoring malformed environment variable",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", def),
			slog.Any("error", err))
		return def
	}
	return v
}

// GetEnvString returns the trimmed value of key, or def.
func GetEnvString(key, def string) string {
	return lookup(key, def, func(s string) (string, error) { return s, nil })
}

// GetEnvInt returns key as a base-10 int, or def.
//
//	limit := GetEnvInt("PAGINATION_DEFAULT_LIMIT", 6)
func GetEnvInt(key string, def int) int {
	return lookup(key, def, strconv.Atoi)
}

// GetEnvFloat returns key as a float64, or def.
func GetEnvFloat(key string, def float64) float64 {
	return lookup(key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// GetEnvBool accepts anything strconv.ParseBool does.
func GetEnvBool(key string, def bool) bool {
	return lookup(key, def, strconv.ParseBool)
}

// GetEnvDuration accepts time.ParseDuration syntax such as "90s" or "1h30m".
func GetEnvDuration(key string, def time.Duration) time.Duration {
	return lookup(key, def, time.ParseDuration)
}
