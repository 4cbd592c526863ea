// Package config provides application configuration loaded from environment variables.
// All configuration is externalized via environment variables for 12-factor app compliance.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all application configuration.
// Load it once at startup using Load().
type AppConfig struct {
	// Redis contains connection settings for the price store.
	Redis RedisConfig

	// Server contains HTTP server settings.
	Server ServerConfig

	// Auth contains login and token settings.
	Auth AuthConfig

	// Query contains settings for the query and calendar engines.
	Query QueryConfig

	// ZonesFile is the path to the YAML file mapping zone names to hotel names.
	ZonesFile string
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	// Addr is the Redis address (e.g., "localhost:6379").
	Addr string

	// Password is the Redis password (empty for none).
	Password string

	// DB is the Redis logical database number.
	DB int
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP listen port.
	Port string

	// DebugMode enables gin debug mode and verbose logging.
	DebugMode bool
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	// JWTSecret signs session tokens. Must be set in production.
	JWTSecret string

	// TokenTTL is the session token lifetime.
	TokenTTL time.Duration

	// AdminUser and AdminPassword bootstrap the first admin account
	// when the user registry is empty. Optional.
	AdminUser     string
	AdminPassword string
}

// QueryConfig holds settings for the price query and calendar engines.
type QueryConfig struct {
	// PageSize is the number of index members fetched per range-scan page.
	PageSize int

	// RateLimit caps store queries per second during calendar fan-out.
	RateLimit float64

	// LookbackDays is the scrape-date lookback window for calendar metrics.
	LookbackDays int

	// CalendarPersons, CalendarNights and CalendarTime pin the partition
	// parameters used by the calendar when the request does not override them.
	CalendarPersons int
	CalendarNights  int
	CalendarTime    string
}

// Load loads all application configuration from environment variables.
// It attempts to load a .env file first (for local development).
// Call this once at application startup.
func Load() *AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &AppConfig{
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Server: ServerConfig{
			Port:      getEnv("SERVER_PORT", "8080"),
			DebugMode: getEnv("DEBUGMODE", "True") == "True",
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "dev-secret"),
			TokenTTL:      time.Duration(getEnvInt("TOKEN_TTL_HOURS", 12)) * time.Hour,
			AdminUser:     getEnv("ADMIN_USER", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		},
		Query: QueryConfig{
			PageSize:        getEnvInt("PAGE_SIZE", 500),
			RateLimit:       getEnvFloat("QUERY_RATE_LIMIT", 50),
			LookbackDays:    getEnvInt("LOOKBACK_DAYS", 30),
			CalendarPersons: getEnvInt("CALENDAR_PERSONS", 2),
			CalendarNights:  getEnvInt("CALENDAR_NIGHTS", 1),
			CalendarTime:    getEnv("CALENDAR_TIME", "morning"),
		},
		ZonesFile: getEnv("ZONES_FILE", "zones.yaml"),
	}
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvFloat returns the environment variable as float64 or a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
