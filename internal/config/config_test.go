package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
app:
  port: 8080
  gin_mode: release
redis:
  addr: localhost:6379
  db: 2
upstream:
  base_url: https://hrm.example.com
  timeout: 10s
session:
  cookie_name: hrm_session
  cookie_secret: file-secret
  issuer: hrmportal
  ttl: 24h
casbin:
  model_path: config/rbac_model.conf
  policy_path: config/rbac_policy.csv
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom(t *testing.T) {
	cfg, err := LoadFrom(writeConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "hrm_session", cfg.CookieName)
	assert.Equal(t, "hrmportal", cfg.CookieIssuer)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("HRM_API_URL", "https://staging.example.com")
	t.Setenv("HRM_REDIS_ADDR", "redis-staging:6379")
	t.Setenv("HRM_COOKIE_SECRET", "env-secret")

	cfg, err := LoadFrom(writeConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "https://staging.example.com", cfg.UpstreamBaseURL)
	assert.Equal(t, "redis-staging:6379", cfg.RedisAddr)
	assert.Equal(t, "env-secret", cfg.CookieSecret)
}

func TestLoadFrom_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "missing base URL",
			mutate:  func(s string) string { return strings.Replace(s, "base_url: https://hrm.example.com", "base_url: \"\"", 1) },
			wantErr: "base URL",
		},
		{
			name:    "missing cookie secret",
			mutate:  func(s string) string { return strings.Replace(s, "cookie_secret: file-secret", "cookie_secret: \"\"", 1) },
			wantErr: "cookie secret",
		},
		{
			name:    "bad timeout",
			mutate:  func(s string) string { return strings.Replace(s, "timeout: 10s", "timeout: soon", 1) },
			wantErr: "timeout",
		},
		{
			name:    "bad TTL",
			mutate:  func(s string) string { return strings.Replace(s, "ttl: 24h", "ttl: tomorrow", 1) },
			wantErr: "TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Ambient overrides would mask the file values under test
			t.Setenv("HRM_API_URL", "")
			t.Setenv("HRM_COOKIE_SECRET", "")

			_, err := LoadFrom(writeConfig(t, tt.mutate(testConfigYAML)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}
