package app

import (
	"context"
	"testing"
	"time"

	"rentcar-backend/internal/config"
	"rentcar-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func supabaseConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Port = 8080
	cfg.Database.Driver = "supabase"
	cfg.Database.Supabase.URL = "http://127.0.0.1:54321"
	cfg.Database.Supabase.ServiceKey = "service-key"
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Storage.Type = "local"
	cfg.Storage.UploadDir = t.TempDir()
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestOpenBackend_Supabase(t *testing.T) {
	cfg := supabaseConfig(t)

	b, err := OpenBackend(context.Background(), cfg, false)
	require.NoError(t, err)
	defer b.Close()
	assert.NotNil(t, b.Supabase)
	assert.NotNil(t, b.Store.RentalRepository)

	images, err := b.Images(cfg)
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, images)

	svc := NewServices(cfg, b.Store, images)
	assert.NotNil(t, svc.Rentals)
	assert.NotNil(t, svc.Tokens)
}

func TestOpenBackend_UnknownDriver(t *testing.T) {
	cfg := supabaseConfig(t)
	cfg.Database.Driver = "mysql"
	_, err := OpenBackend(context.Background(), cfg, false)
	assert.Error(t, err)
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := supabaseConfig(t)
	cfg.Rental.AllowSameDayReturn = true

	settings := RentalSettings(cfg)
	assert.Equal(t, int64(50000), settings.LateFeePerDay)
	assert.True(t, settings.AllowSameDayReturn)
	assert.Equal(t, "Asia/Jakarta", settings.Location.String())

	policy := CallPolicy(cfg)
	assert.Equal(t, 10*time.Second, policy.Timeout)
	assert.Equal(t, 2, policy.ReadRetries)
	assert.Equal(t, 200*time.Millisecond, policy.RetryDelay)
}
