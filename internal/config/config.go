package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken             string
	AdminID              int64
	Database             DatabaseConfig
	RedisAddr            string // empty = in-memory session store
	HealthAddr           string // empty = no health endpoint
	SupportContact       string
	ManualPaymentDetails string
	SessionTTL           time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

const defaultPaymentDetails = "Bank: 0000 0000 0000 0000\nName: YOUR NAME\nComment: Order #{order_id}"

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "shopbot"),
			User:     getEnv("DB_USER", "shopbot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		HealthAddr:     os.Getenv("HEALTH_ADDR"),
		SupportContact: getEnv("SUPPORT_CONTACT", "@support"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	adminRaw := os.Getenv("ADMIN_ID")
	adminID, err := strconv.ParseInt(adminRaw, 10, 64)
	if err != nil || adminID <= 0 {
		return nil, fmt.Errorf("ADMIN_ID must be a positive number")
	}
	cfg.AdminID = adminID

	// dotenv keeps literal \n, convert to real newlines
	details := getEnv("MANUAL_PAYMENT_DETAILS", defaultPaymentDetails)
	cfg.ManualPaymentDetails = strings.ReplaceAll(details, `\n`, "\n")

	ttlMinutes, err := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "60"))
	if err != nil || ttlMinutes < 0 {
		return nil, fmt.Errorf("SESSION_TTL_MINUTES must be a non-negative number")
	}
	cfg.SessionTTL = time.Duration(ttlMinutes) * time.Minute

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// PaymentDetails substitutes the order id into the configured manual
// payment instructions
func (c *Config) PaymentDetails(orderID int64) string {
	return strings.ReplaceAll(c.ManualPaymentDetails, "{order_id}", strconv.FormatInt(orderID, 10))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
