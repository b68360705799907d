package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"environment":       "production",
		"database_dsn":      "postgres://db/portfolio",
		"secret_key":        "my_secret_key",
		"token_ttl":         "2d",
		"otp_ttl":           "15m",
		"smtp_host":         "smtp.example.com",
		"smtp_port":         587,
		"admin_email":       "owner@example.com",
		"max_upload_size":   1024,
		"cors_origins":      []string{"https://example.com"},
		"rate_limit_period": 60000000000,
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, "postgres://db/portfolio", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 48*time.Hour, cfg.TokenTTL)
		assert.Equal(t, 15*time.Minute, cfg.OTPTTL)
		assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
		assert.Equal(t, 587, cfg.SMTPPort)
		assert.Equal(t, "owner@example.com", cfg.AdminEmail)
		assert.Equal(t, int64(1024), cfg.MaxUploadSize)
		assert.Equal(t, []string{"https://example.com"}, cfg.CORSOrigins)
		assert.Equal(t, time.Minute, cfg.RateLimitPeriod)
	})

	t.Run("omitted fields keep defaults", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-c", path}))

		assert.Equal(t, ":3001", cfg.HTTPAddr)
		assert.Equal(t, 10*time.Second, cfg.MailTimeout)
	})

	t.Run("no config flag leaves config untouched", func(t *testing.T) {
		cfg := &Config{HTTPAddr: "defaults:1234"}
		require.NoError(t, parseJson(cfg, []string{"-a", ":1"}))
		assert.Equal(t, "defaults:1234", cfg.HTTPAddr)
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		assert.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, parseJson(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}
