package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP server
	Port           string
	AllowedOrigins string

	// Assistant
	OpenAIAPIKey string
	OpenAIModel  string

	// Taxes: flat income tax prepayment rate, a simplification of the
	// progressive schedule.
	PrepaymentRate float64

	// Demo data
	SeedDemo bool
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", ""),
		PrepaymentRate: getEnvFloat("PREPAYMENT_RATE", 0.20),
		SeedDemo:       getEnvBool("SEED_DEMO", false),
	}
}

// Validate returns an error describing every invalid setting. A missing API
// key is deliberately not an error here: the server runs degraded without it.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.PrepaymentRate <= 0 || c.PrepaymentRate > 1 {
		errors = append(errors, fmt.Sprintf("invalid prepayment rate %v: must be in (0, 1]", c.PrepaymentRate))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
