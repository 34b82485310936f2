package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// AdminJWTSecret signs operator session tokens. Empty disables auth
	// entirely (development only).
	AdminJWTSecret   string
	OperatorPassword string
	SessionTTL       time.Duration

	// NewContactSLA is how long a never-contacted lead may sit before the
	// urgency engine flags it.
	NewContactSLA time.Duration
	// DefaultFollowUpDays is the auto-schedule horizon after a contact.
	DefaultFollowUpDays int

	// SweepInterval is how often the notification sweep runs.
	SweepInterval time.Duration
	// DashboardTimezone anchors calendar-day comparisons (due today,
	// arrivals, per-day notification dedup).
	DashboardTimezone string

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		AdminJWTSecret:   getEnv("ADMIN_JWT_SECRET", ""),
		OperatorPassword: getEnv("OPERATOR_PASSWORD", ""),
		SessionTTL:       getEnvAsDuration("SESSION_TTL", 12*time.Hour),

		NewContactSLA:       getEnvAsDuration("NEW_CONTACT_SLA", 48*time.Hour),
		DefaultFollowUpDays: getEnvAsInt("DEFAULT_FOLLOWUP_DAYS", 2),

		SweepInterval:     getEnvAsDuration("SWEEP_INTERVAL", 5*time.Minute),
		DashboardTimezone: getEnv("DASHBOARD_TZ", "Asia/Dubai"),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
	}
}

// Location resolves the dashboard timezone, falling back to UTC when the
// name is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DashboardTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
