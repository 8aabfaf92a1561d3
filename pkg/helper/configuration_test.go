package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yishak-cs/BazaarSetu/internal/models"
)

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "APP_PORT", "GRPC_PORT", "LOG_LEVEL", "NEO4J_URI",
		"PAYMENT_SUCCESS_RATE", "PAYMENT_DELAY", "SNAPSHOT_TTL", "DEFAULT_LOCALE"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "50051", cfg.GRPCPort)
	assert.Equal(t, 0.9, cfg.PaymentSuccessRate)
	assert.Equal(t, models.LocaleHindi, cfg.DefaultLocale)
	assert.Equal(t, 7*24*time.Hour, cfg.SnapshotTTL)
	assert.False(t, cfg.Neo4jEnabled())
	assert.Equal(t, "neo4j", cfg.Neo4j.Database)
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("NEO4J_URI", "neo4j+s://example.databases.neo4j.io")
	t.Setenv("PAYMENT_SUCCESS_RATE", "1")
	t.Setenv("PAYMENT_DELAY", "2s")
	t.Setenv("DEFAULT_LOCALE", "en-IN")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Empty(t, cfg.SQLitePath, "explicitly empty path disables sqlite")
	assert.True(t, cfg.Neo4jEnabled())
	assert.Equal(t, 1.0, cfg.PaymentSuccessRate)
	assert.Equal(t, 2*time.Second, cfg.PaymentDelay)
	assert.Equal(t, models.LocaleEnglish, cfg.DefaultLocale)
}

func TestLoadConfigFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PAYMENT_SUCCESS_RATE", "lots"},
		{"PAYMENT_SUCCESS_RATE", "1.5"},
		{"PAYMENT_DELAY", "soon"},
		{"DEFAULT_LOCALE", "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfigFromEnv()
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("production", "debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger("development", "loud")
	assert.Error(t, err)
}
