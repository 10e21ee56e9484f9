package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// supported STORE_DRIVER values
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// app config; provider-specific settings are loaded by the provider itself
type Config struct {
	Provider string
	Port     string

	RateLimitInterval time.Duration
	ModelTimeout      time.Duration

	StoreDriver string
	SQLitePath  string
	Postgres    PostgresConfig

	AuthSecret  string
	AuthDevMode bool

	RedisAddr      string
	ResultCacheTTL time.Duration

	CleanupSchedule string
	StaleSessionAge time.Duration

	AllowedOrigins []string
}

type PostgresConfig struct {
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
}

// DSN renders the connection string for gorm's postgres driver.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		p.Host, p.User, p.Password, p.DBName, p.Port, p.SSLMode)
}

var defaultOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Provider:          getEnvOrDefault("AI_PROVIDER", "gemini"),
		Port:              getEnvOrDefault("PORT", "8080"),
		RateLimitInterval: getEnvDuration("AI_RATE_LIMIT_INTERVAL", 2500*time.Millisecond),
		ModelTimeout:      getEnvDuration("AI_MODEL_TIMEOUT", 45*time.Second),
		StoreDriver:       strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverSQLite)),
		SQLitePath:        getEnvOrDefault("SQLITE_PATH", "careerquiz.db"),
		Postgres: PostgresConfig{
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			User:     getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("POSTGRES_DB", "postgres"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
			SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
		},
		AuthSecret:      os.Getenv("AUTH_JWT_SECRET"),
		AuthDevMode:     getEnvBool("AUTH_DEV_MODE", false),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		ResultCacheTTL:  getEnvDuration("RESULT_CACHE_TTL", 15*time.Minute),
		CleanupSchedule: getEnvOrDefault("SESSION_CLEANUP_SCHEDULE", "@every 1h"),
		StaleSessionAge: getEnvDuration("STALE_SESSION_AGE", 24*time.Hour),
		AllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", defaultOrigins),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	// Gemini validation is handled by gemini.NewConfig()

	if config.StoreDriver != DriverSQLite && config.StoreDriver != DriverPostgres {
		return fmt.Errorf("unsupported STORE_DRIVER %q: use sqlite or postgres", config.StoreDriver)
	}
	if config.StoreDriver == DriverSQLite && config.SQLitePath == "" {
		return errors.New("SQLITE_PATH must not be empty")
	}
	if !config.AuthDevMode && config.AuthSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required unless AUTH_DEV_MODE=true")
	}
	if config.RateLimitInterval < 0 {
		return errors.New("AI_RATE_LIMIT_INTERVAL must not be negative")
	}
	if config.ModelTimeout <= 0 {
		return errors.New("AI_MODEL_TIMEOUT must be positive")
	}
	if config.ResultCacheTTL <= 0 {
		return errors.New("RESULT_CACHE_TTL must be positive")
	}
	if config.StaleSessionAge <= 0 {
		return errors.New("STALE_SESSION_AGE must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
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

// getEnvList splits a comma separated variable, dropping blanks.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
