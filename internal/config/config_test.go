package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_ID", "99")
	t.Setenv("DB_PASSWORD", "secret")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("SESSION_TTL_MINUTES", "30")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "test-token", cfg.BotToken)
	assert.Equal(t, int64(99), cfg.AdminID)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoad_MissingToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOT_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadAdminID(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_ID", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			Name:     "shopbot",
			User:     "shopbot",
			Password: "secret",
		},
	}

	assert.Equal(t,
		"host=localhost port=5432 user=shopbot password=secret dbname=shopbot sslmode=disable",
		cfg.DSN(),
	)
}

func TestPaymentDetails(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MANUAL_PAYMENT_DETAILS", `Bank: 1234\nComment: Order #{order_id}`)

	cfg, err := Load()
	require.NoError(t, err)

	details := cfg.PaymentDetails(7)
	assert.Equal(t, "Bank: 1234\nComment: Order #7", details)
}
