// Package config loads application configuration from the environment.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the booking backend.
type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL string

	// Super-admin credentials for the tenant-lifecycle API.
	SuperAdminUsername string
	SuperAdminPassword string

	// BusinessTimezone is the installation default; individual salons may
	// override it. All schedule and booking comparisons use wall-clock time
	// in this zone.
	BusinessTimezone string

	// SlotGridMinutes is the step of the bookable-slot grid.
	SlotGridMinutes int

	CORSAllowAll bool
	CORSOrigins  []string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from the environment, with .env support for
// local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		SuperAdminUsername: getEnv("SUPERADMIN_USERNAME", ""),
		SuperAdminPassword: getEnv("SUPERADMIN_PASSWORD", ""),
		BusinessTimezone:   getEnv("BUSINESS_TIMEZONE", "Europe/Moscow"),
		SlotGridMinutes:    getEnvInt("SLOT_GRID_MINUTES", 15),
		CORSAllowAll:       strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true"),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200")),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 40),
	}

	if containsWildcard(cfg.CORSOrigins) {
		cfg.CORSAllowAll = true
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SuperAdminUsername == "" || cfg.SuperAdminPassword == "" {
		return nil, fmt.Errorf("SUPERADMIN_USERNAME and SUPERADMIN_PASSWORD are required")
	}
	if cfg.SlotGridMinutes <= 0 || cfg.SlotGridMinutes > 60 {
		return nil, fmt.Errorf("SLOT_GRID_MINUTES must be between 1 and 60")
	}
	if _, err := time.LoadLocation(cfg.BusinessTimezone); err != nil {
		return nil, fmt.Errorf("BUSINESS_TIMEZONE is not a valid IANA zone: %w", err)
	}

	return cfg, nil
}

// Location resolves the installation-default business timezone.
// Load has already validated the zone name.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
