package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment.
// Secrets are injected here at startup and passed down explicitly; nothing
// reads the environment after LoadConfig returns.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	// Notification bus. When no brokers are configured the service falls
	// back to an in-process publisher.
	KafkaBrokers      []string
	NotificationTopic string

	// Token signing and confirmation-code derivation secrets.
	TokenSecret        string
	TokenTTL           time.Duration
	ConfirmationSecret string
	ConfirmationTTL    time.Duration
}

// LoadConfig reads configuration from .env (if present) and the environment.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments configure via the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		LogLevel:          parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		NotificationTopic: getEnv("NOTIFICATION_TOPIC", "notifications"),

		TokenSecret:        getEnv("TOKEN_SECRET", ""),
		TokenTTL:           getDurationEnv("TOKEN_TTL", 24*time.Hour),
		ConfirmationSecret: getEnv("CONFIRMATION_SECRET", ""),
		ConfirmationTTL:    getDurationEnv("CONFIRMATION_TTL", 24*time.Hour),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required")
	}
	if cfg.ConfirmationSecret == "" {
		return nil, fmt.Errorf("CONFIRMATION_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
