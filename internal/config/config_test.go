package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "KES", cfg.Receipt.Currency)
	assert.Equal(t, "A5", cfg.Receipt.DefaultSize)
	assert.Equal(t, 30*time.Minute, cfg.Receipt.SessionTTL)
	assert.Equal(t, 8, cfg.Receipt.LookupConcurrency)
	assert.Equal(t, "unknown", cfg.Receipt.BalanceOnError)
	assert.Equal(t, 320.0, cfg.Receipt.PreviewWidthPx)
	assert.Equal(t, 450.0, cfg.Receipt.PreviewHeightPx)
	assert.Equal(t, 14, cfg.Subscription.TrialDays)
	assert.Contains(t, cfg.CORS.AllowedHeaders, "X-Tenant")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RECEIPT_DEFAULT_SIZE", "a7")
	t.Setenv("RECEIPT_BALANCE_ON_ERROR", "ZERO")
	t.Setenv("PRINTER_TYPE", "Network")

	cfg := Load()

	assert.Equal(t, "A7", cfg.Receipt.DefaultSize)
	assert.Equal(t, "zero", cfg.Receipt.BalanceOnError)
	assert.Equal(t, "network", cfg.Printer.Type)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Nil(t, splitList(""))
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "5432", Name: "n", User: "u", Password: "p", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", db.DSN())
}
