package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigFromEnvDefaults(t *testing.T) {
	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "https://api.airtable.com", cfg.Airtable.APIURL)
	assert.Equal(t, time.Duration(0), cfg.Airtable.Timeout)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "https://scarevision.co.uk")
	assert.Equal(t, []string{".squarespace.com"}, cfg.CORS.AllowedSuffixes)
	assert.False(t, cfg.CORS.Strict)
	assert.Equal(t, 3600, cfg.Cache.CaseMaxAge)
	assert.Equal(t, 7200, cfg.Cache.ListSWR)
	assert.Empty(t, cfg.Case.FieldAllowlist)
	assert.Equal(t, "Patient Image", cfg.Case.ProfileImageField)
}

func TestNewConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("AIRTABLE_API_KEY", "key")
	t.Setenv("AIRTABLE_BASE_ID", "appBase")
	t.Setenv("CASE_CACHE_MAX_AGE", "5")
	t.Setenv("CASE_CACHE_SWR", "5")
	t.Setenv("STRICT_ORIGIN", "true")
	t.Setenv("CASE_FIELD_ALLOWLIST", "Name,Age,Order")
	t.Setenv("UPSTREAM_TIMEOUT", "15s")

	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.Airtable.APIKey)
	assert.Equal(t, "appBase", cfg.Airtable.BaseID)
	assert.Equal(t, 5, cfg.Cache.CaseMaxAge)
	assert.True(t, cfg.CORS.Strict)
	assert.Equal(t, []string{"Name", "Age", "Order"}, cfg.Case.FieldAllowlist)
	assert.Equal(t, 15*time.Second, cfg.Airtable.Timeout)
}

func TestNewConfigFromEnvErrors(t *testing.T) {
	t.Setenv("CASE_CACHE_MAX_AGE", "soon")
	_, err := NewConfigFromEnv()
	assert.ErrorContains(t, err, "parse env:")
}

func TestNewConfigFromEnvRejectsNegativeCache(t *testing.T) {
	t.Setenv("LIST_CACHE_SWR", "-1")
	_, err := NewConfigFromEnv()
	assert.ErrorContains(t, err, "must not be negative")
}
