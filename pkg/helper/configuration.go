package helper

import (
	"os"
	"strconv"
	"time"

	"github.com/go-faster/errors"

	"github.com/yishak-cs/BazaarSetu/internal/database"
	"github.com/yishak-cs/BazaarSetu/internal/i18n"
	"github.com/yishak-cs/BazaarSetu/internal/models"
)

// Config is the full application configuration
type Config struct {
	Env      string
	Port     string
	GRPCPort string
	LogLevel string

	// SQLitePath is where cart snapshots are kept; empty keeps carts in memory only
	SQLitePath string
	// Neo4j.URI empty means order history stays in memory
	Neo4j database.Config

	PaymentSuccessRate float64
	PaymentDelay       time.Duration
	DefaultLocale      models.Locale
	SnapshotTTL        time.Duration
}

// Neo4jEnabled reports whether an order-history graph is configured
func (c Config) Neo4jEnabled() bool {
	return c.Neo4j.URI != ""
}

// IsProduction reports whether the app runs with production defaults
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadConfigFromEnv loads the configuration from environment variables
func LoadConfigFromEnv() (Config, error) {
	cfg := Config{
		Env:        getEnvOrDefault("APP_ENV", "development"),
		Port:       getEnvOrDefault("APP_PORT", "8080"),
		GRPCPort:   getEnvOrDefault("GRPC_PORT", "50051"),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),
		SQLitePath: os.Getenv("SQLITE_PATH"),
		Neo4j:      LoadNeo4jConfigFromEnv(),
	}
	if _, set := os.LookupEnv("SQLITE_PATH"); !set {
		cfg.SQLitePath = "data/bazaarsetu.db"
	}

	var err error
	if cfg.PaymentSuccessRate, err = getFloatOrDefault("PAYMENT_SUCCESS_RATE", 0.9); err != nil {
		return Config{}, err
	}
	if cfg.PaymentSuccessRate < 0 || cfg.PaymentSuccessRate > 1 {
		return Config{}, errors.Errorf("PAYMENT_SUCCESS_RATE must be between 0 and 1, got %v", cfg.PaymentSuccessRate)
	}
	if cfg.PaymentDelay, err = getDurationOrDefault("PAYMENT_DELAY", 0); err != nil {
		return Config{}, err
	}
	if cfg.SnapshotTTL, err = getDurationOrDefault("SNAPSHOT_TTL", 7*24*time.Hour); err != nil {
		return Config{}, err
	}

	locale, ok := i18n.Parse(getEnvOrDefault("DEFAULT_LOCALE", "hi"))
	if !ok {
		return Config{}, errors.Errorf("DEFAULT_LOCALE must be hi or en, got %q", os.Getenv("DEFAULT_LOCALE"))
	}
	cfg.DefaultLocale = locale

	return cfg, nil
}

// LoadNeo4jConfigFromEnv loads Neo4j configuration from environment variables
func LoadNeo4jConfigFromEnv() database.Config {
	return database.Config{
		URI:      getEnvOrDefault("NEO4J_URI", ""),
		Username: getEnvOrDefault("NEO4J_USERNAME", "neo4j"),
		Password: getEnvOrDefault("NEO4J_PASSWORD", ""),
		Database: getEnvOrDefault("NEO4J_DATABASE", "neo4j"),
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return f, nil
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return d, nil
}
