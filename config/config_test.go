package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadBankConfigFallbacks(t *testing.T) {
	t.Setenv("BANK_CODE", "")
	t.Setenv("BANK_ACCOUNT_NUMBER", "")
	t.Setenv("BANK_ACCOUNT_NAME", "")
	t.Setenv("BANK_QR_TEMPLATE", "")

	bank := LoadBankConfig()
	assert.Equal(t, "MB", bank.BankCode)
	assert.Equal(t, "0000418530364", bank.AccountNumber)
	assert.Equal(t, "SHOPSPHERE STORE", bank.AccountName)
	assert.Equal(t, "compact2", bank.Template)
}

func TestLoadBankConfigFromEnv(t *testing.T) {
	t.Setenv("BANK_CODE", "VCB")
	t.Setenv("BANK_ACCOUNT_NUMBER", "1234567890")
	t.Setenv("BANK_ACCOUNT_NAME", "ACME LTD")
	t.Setenv("BANK_QR_TEMPLATE", "print")

	bank := LoadBankConfig()
	assert.Equal(t, "VCB", bank.BankCode)
	assert.Equal(t, "1234567890", bank.AccountNumber)
	assert.Equal(t, "ACME LTD", bank.AccountName)
	assert.Equal(t, "print", bank.Template)
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("PAYMENT_POLL_INTERVAL", "5s")
	assert.Equal(t, 5*time.Second, getDurationEnv("PAYMENT_POLL_INTERVAL", time.Second))

	t.Setenv("PAYMENT_POLL_INTERVAL", "not-a-duration")
	assert.Equal(t, time.Second, getDurationEnv("PAYMENT_POLL_INTERVAL", time.Second))

	t.Setenv("PAYMENT_POLL_INTERVAL", "")
	assert.Equal(t, time.Second, getDurationEnv("PAYMENT_POLL_INTERVAL", time.Second))
}
