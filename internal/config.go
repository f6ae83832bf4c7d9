package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config is the environment surface of the checkout service. Everything has
// a development-safe default; nothing is read from ambient globals after
// startup.
type Config struct {
	Env      string
	LogLevel string
	Port     uint16

	// OriginPostalCode is the shipping origin used for every quote.
	OriginPostalCode string

	// ShippingLeadTimeBase is the lead-time floor in days for the built-in
	// banded rate table.
	ShippingLeadTimeBase int

	// MetricsNamespace prefixes all Prometheus metric names.
	MetricsNamespace string
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:                  getEnv("ENV", "dev"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		Port:                 getEnvInt("PORT", 3000),
		OriginPostalCode:     getEnv("ORIGIN_POSTAL_CODE", "01000-000"),
		ShippingLeadTimeBase: int(getEnvInt("SHIPPING_LEAD_TIME_BASE_DAYS", 3)),
		MetricsNamespace:     getEnv("METRICS_NAMESPACE", "skuld"),
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.ShippingLeadTimeBase <= 0 {
		return nil, fmt.Errorf("SHIPPING_LEAD_TIME_BASE_DAYS must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}
