package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikolayk812/artisan-shop/internal/app"
	"github.com/nikolayk812/artisan-shop/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggerConfig
		wantDebug bool
	}{
		{
			name:      "development: debug enabled",
			cfg:       config.LoggerConfig{Mode: "development"},
			wantDebug: true,
		},
		{
			name: "production: info and above",
			cfg:  config.LoggerConfig{Mode: "production"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := app.NewLogger(tt.cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDebug, logger.Core().Enabled(zap.DebugLevel))
		})
	}
}

func TestNewLogger_File(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")

	logger, err := app.NewLogger(config.LoggerConfig{Mode: "production", FileEnable: true, Filename: filename})
	require.NoError(t, err)

	logger.Info("order placed", zap.String("order", "o-1"))
	_ = logger.Sync()

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"order placed"`)
	assert.Contains(t, string(data), `"order":"o-1"`)
}
