// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL used for links and the ICS feed.
	BaseURL string

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// Database holds MariaDB connection settings.
	Database DatabaseConfig

	// Redis holds Redis connection settings.
	Redis RedisConfig

	// Holidays holds public holiday API settings.
	Holidays HolidaysConfig

	// Calendar holds browsing window settings.
	Calendar CalendarConfig

	// Auth holds API token settings.
	Auth AuthConfig

	// MigrationsPath points at the SQL migration files.
	MigrationsPath string
}

// DatabaseConfig holds MariaDB connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars so container
// orchestrators can manage each independently. If DATABASE_URL is set, it
// takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MariaDB address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	// User is the MariaDB username (default: "remindcal").
	User string

	// Password is the MariaDB password (default: "remindcal").
	Password string

	// Name is the database name (default: "remindcal").
	Name string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is how long a connection can be reused.
	ConnMaxLifetime time.Duration
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, it is returned as-is. Otherwise the DSN is built from the individual
// Host/User/Password/Name fields using the driver's Config.FormatDSN()
// to safely handle special characters in passwords.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
// Allows users to set DB_HOST=mydb (gets :3306) or DB_HOST=mydb:3307 (as-is).
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// HolidaysConfig holds public holiday API settings.
type HolidaysConfig struct {
	// BaseURL is the Nager.Date API root (default: "https://date.nager.at").
	BaseURL string

	// CountryCode is the ISO 3166-1 alpha-2 country whose holidays are shown.
	CountryCode string

	// CacheTTL is how long a fetched holiday year stays cached in Redis.
	CacheTTL time.Duration
}

// CalendarConfig holds browsing window settings.
type CalendarConfig struct {
	// WindowYears is how far ahead of today the calendar may be browsed.
	WindowYears int
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	// TokenHash is the bcrypt hash of the API token guarding mutations.
	// Empty disables token auth (development default).
	TokenHash string
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		BaseURL:  getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "remindcal"),
			Password:        getEnv("DB_PASSWORD", "remindcal"),
			Name:            getEnv("DB_NAME", "remindcal"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},

		Holidays: HolidaysConfig{
			BaseURL:     getEnv("HOLIDAY_API_URL", "https://date.nager.at"),
			CountryCode: getEnv("HOLIDAY_COUNTRY", "LT"),
			CacheTTL:    getEnvDuration("HOLIDAY_CACHE_TTL", 24*time.Hour),
		},

		Calendar: CalendarConfig{
			WindowYears: getEnvInt("CALENDAR_WINDOW_YEARS", 1),
		},

		Auth: AuthConfig{
			TokenHash: getEnv("API_TOKEN_HASH", ""),
		},

		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
	}

	if cfg.Calendar.WindowYears < 1 {
		return nil, fmt.Errorf("CALENDAR_WINDOW_YEARS must be at least 1")
	}
	if len(cfg.Holidays.CountryCode) != 2 {
		return nil, fmt.Errorf("HOLIDAY_COUNTRY must be a two-letter country code")
	}
	cfg.Holidays.CountryCode = strings.ToUpper(cfg.Holidays.CountryCode)

	// Mutations must be guarded in production.
	envLower := strings.ToLower(cfg.Env)
	if (envLower == "production" || envLower == "prod") && cfg.Auth.TokenHash == "" {
		return nil, fmt.Errorf("API_TOKEN_HASH is required in production")
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "24h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
