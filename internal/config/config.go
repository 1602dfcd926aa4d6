package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings of the whole process.
// It is read from the environment once at start-up and never changed.
type Config struct {
	// Database
	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnMaxLife  time.Duration

	// Auth
	JWTSecret string

	// Rate Limit (requests per minute per user)
	RateLimitGeneral int
	RateLimitBulk    int

	// Worker
	NewsPublishInterval time.Duration

	// Logging
	LogLevel slog.Level

	// Server
	ServerPort      string
	ShutdownTimeout time.Duration

	// CORS
	CORSAllowedOrigin string
}

// Load reads Config from the environment.
// All missing required variables are reported in one error.
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 25)
	cfg.DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 5)
	cfg.DBConnMaxLife = getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitBulk = getEnvInt("RATE_LIMIT_BULK", 5)
	cfg.NewsPublishInterval = getEnvDuration("NEWS_PUBLISH_INTERVAL", time.Minute)
	cfg.LogLevel = getEnvLevel("LOG_LEVEL", slog.LevelInfo)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func getEnvLevel(key string, defaultVal slog.Level) slog.Level {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return defaultVal
	}
	return level
}
