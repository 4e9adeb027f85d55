package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("EZIPAY_BASE_URL", "")

	cfg, err := New()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "https://api.ezipay.com", cfg.EzipayBaseURL)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_USER", "relay")
	t.Setenv("DB_NAME", "relay_test")
	t.Setenv("EZIPAY_BASE_URL", "https://sandbox.ezipay.com")
	t.Setenv("EZIPAY_CLIENT_ID", "client-1")
	t.Setenv("EZIPAY_CLIENT_SECRET", "secret-1")

	cfg, err := New()
	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "relay", cfg.DBUser)
	assert.Equal(t, "relay_test", cfg.DBName)
	assert.Equal(t, "https://sandbox.ezipay.com", cfg.EzipayBaseURL)
	assert.Equal(t, "client-1", cfg.EzipayClientID)
	assert.Equal(t, "secret-1", cfg.EzipayClientSecret)
}
