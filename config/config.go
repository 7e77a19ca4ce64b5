package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/khanhtran-03/shopsphere/payment"
	"github.com/khanhtran-03/shopsphere/utils"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	// PollInterval is the wait between payment status checks.
	PollInterval time.Duration
	// PaymentWindow is how long a bank transfer order stays payable.
	PaymentWindow time.Duration
	// WebhookSecret protects the bank reconciliation webhook.
	WebhookSecret string
}

// LoadConfig loads configuration from environment variables. A missing .env
// file is not an error; the process environment is used as-is.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.LogDebug("No .env file found, using process environment")
	}

	config := &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Port:          getEnv("PORT", "8080"),
		Env:           os.Getenv("ENV"),
		PollInterval:  getDurationEnv("PAYMENT_POLL_INTERVAL", payment.DefaultPollInterval),
		PaymentWindow: getDurationEnv("PAYMENT_WINDOW", 15*time.Minute),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
	}

	return config, nil
}

// LoadBankConfig resolves the bank transfer recipient once at startup. Each
// field has a literal fallback so the payment page renders even without
// configuration.
func LoadBankConfig() payment.BankConfig {
	return payment.BankConfig{
		BankCode:      getEnv("BANK_CODE", "MB"),
		AccountNumber: getEnv("BANK_ACCOUNT_NUMBER", "0000418530364"),
		AccountName:   getEnv("BANK_ACCOUNT_NAME", "SHOPSPHERE STORE"),
		Template:      getEnv("BANK_QR_TEMPLATE", "compact2"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		utils.LogError("Invalid duration for %s: %q, falling back to %v", key, v, fallback)
		return fallback
	}
	return d
}
