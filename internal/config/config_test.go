package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikolayk812/artisan-shop/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Web.Addr)
	fee, err := cfg.ShippingFee()
	require.NoError(t, err)
	assert.Equal(t, currency.USD, fee.Currency)
	assert.Equal(t, "7", fee.Amount.String())
	assert.Equal(t, 30*24*time.Hour, cfg.Shop.SessionTTL)
	assert.Equal(t, "@daily", cfg.Shop.SessionPurgeSpec)
	assert.Equal(t, 30*time.Minute, cfg.Shop.SessionCacheIdle)
	assert.Equal(t, "@every 5m", cfg.Shop.SessionEvictSpec)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artisan.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
web:
  addr: ":9090"
logger:
  mode: production
shop:
  shipping_fee: "9.50"
  sync_max_elapsed: 2s
  legacy_fixed_discount: true
payment:
  url: https://pay.test/checkout
`), 0o600))

	t.Setenv("ARTISAN_WEB_ADDR", ":7070")
	t.Setenv("ARTISAN_LOGGER_FILE_ENABLE", "true")
	t.Setenv("ARTISAN_SHOP_SESSION_TTL", "48h")
	t.Setenv("ARTISAN_SHOP_SESSION_CACHE_IDLE", "10m")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Web.Addr)
	assert.Equal(t, "production", cfg.Logger.Mode)
	assert.True(t, cfg.Logger.FileEnable)
	assert.Equal(t, 2*time.Second, cfg.Shop.SyncMaxElapsed)
	assert.True(t, cfg.Shop.LegacyFixedDiscount)
	assert.Equal(t, 48*time.Hour, cfg.Shop.SessionTTL)
	assert.Equal(t, 10*time.Minute, cfg.Shop.SessionCacheIdle)
	assert.Equal(t, "https://pay.test/checkout", cfg.Payment.URL)

	fee, err := cfg.ShippingFee()
	require.NoError(t, err)
	assert.Equal(t, "9.5", fee.Amount.String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantError string
	}{
		{
			name:      "bad currency: error",
			env:       map[string]string{"ARTISAN_SHOP_CURRENCY": "XYZ1"},
			wantError: "currency[XYZ1] is not valid",
		},
		{
			name:      "negative shipping: error",
			env:       map[string]string{"ARTISAN_SHOP_SHIPPING_FEE": "-1"},
			wantError: "shipping_fee[-1] is negative",
		},
		{
			name:      "bad duration: error",
			env:       map[string]string{"ARTISAN_SHOP_SESSION_TTL": "soon"},
			wantError: "ARTISAN_SHOP_SESSION_TTL[soon] is not a duration",
		},
		{
			name:      "bad cache idle: error",
			env:       map[string]string{"ARTISAN_SHOP_SESSION_CACHE_IDLE": "5"},
			wantError: "ARTISAN_SHOP_SESSION_CACHE_IDLE[5] is not a duration",
		},
		{
			name:      "bad bool: error",
			env:       map[string]string{"ARTISAN_SYSTEM_DEBUG": "maybe"},
			wantError: "ARTISAN_SYSTEM_DEBUG[maybe] is not a bool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}
