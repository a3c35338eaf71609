package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("ESPLAN_API_URL", "")
	t.Setenv("ESPLAN_REQUEST_TIMEOUT", "")
	t.Setenv("ESPLAN_SESSION_DIR", "/tmp/esplan-test")

	cfg := FromEnv()
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/esplan-test", cfg.SessionDir)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ESPLAN_API_URL", "https://plan.example.go.th")
	t.Setenv("ESPLAN_REQUEST_TIMEOUT", "3s")

	cfg := FromEnv()
	assert.Equal(t, "https://plan.example.go.th", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestFromEnvIgnoresBadTimeout(t *testing.T) {
	t.Setenv("ESPLAN_REQUEST_TIMEOUT", "soon")

	cfg := FromEnv()
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestStubFromEnv(t *testing.T) {
	t.Setenv("ESPLAN_STUB_ADDR", "")
	t.Setenv("ESPLAN_JWT_SIGNING_KEY", "")
	t.Setenv("ESPLAN_TOKEN_TTL", "1h")

	cfg := StubFromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.NotEmpty(t, cfg.JWTSigningKey)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
}
