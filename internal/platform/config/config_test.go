// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shopfront/internal/platform/config"
)

/*
TestParse_Defaults loads a minimal environment and checks the defaults.
*/
func TestParse_Defaults(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://backend.local/api")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, config.SessionStoreMemory, cfg.SessionStore)
	assert.Equal(t, config.ProfileSourceBackend, cfg.ProfileSource)
	assert.Equal(t, 5*time.Second, cfg.ProfileFetchTimeout)
	assert.Equal(t, 3, cfg.ProfileMaxAttempts)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.True(t, cfg.IsDevelopment())
}

/*
TestParse_MissingBackend fails fast without the backend URL.
*/
func TestParse_MissingBackend(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "")

	_, err := config.Parse()
	assert.Error(t, err)
}

/*
TestParse_KafkaBrokers splits the broker list.
*/
func TestParse_KafkaBrokers(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://backend.local/api")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := config.Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

/*
TestValidate_CrossField covers the selector-dependent requirements.
*/
func TestValidate_CrossField(t *testing.T) {
	base := func() config.Config {
		return config.Config{
			SessionStore:       config.SessionStoreMemory,
			ProfileSource:      config.ProfileSourceBackend,
			ProfileMaxAttempts: 3,
			SessionTTL:         time.Hour,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"valid", func(*config.Config) {}, false},
		{"redis_without_url", func(c *config.Config) { c.SessionStore = config.SessionStoreRedis }, true},
		{"redis_with_url", func(c *config.Config) {
			c.SessionStore = config.SessionStoreRedis
			c.RedisURL = "redis://localhost:6379/0"
		}, false},
		{"postgres_without_dsn", func(c *config.Config) { c.ProfileSource = config.ProfileSourcePostgres }, true},
		{"unknown_store", func(c *config.Config) { c.SessionStore = "disk" }, true},
		{"zero_attempts", func(c *config.Config) { c.ProfileMaxAttempts = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

/*
TestConfig_OriginAllowed matches on the configured domain suffix.
*/
func TestConfig_OriginAllowed(t *testing.T) {
	cfg := &config.Config{AllowedOriginSuffix: "shopfront.app"}

	assert.True(t, cfg.OriginAllowed("https://seller.shopfront.app"))
	assert.False(t, cfg.OriginAllowed("https://evil.example"))
}
