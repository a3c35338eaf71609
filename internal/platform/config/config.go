package config

import (
	"os"
	"path/filepath"
	"time"
)

// Client captures configuration for the API client and local session storage.
type Client struct {
	BaseURL        string
	RequestTimeout time.Duration
	SessionDir     string
}

// Stub captures configuration for the local development API server.
type Stub struct {
	Addr          string
	JWTSigningKey string
	TokenTTL      time.Duration
}

const (
	defaultBaseURL = "http://localhost:8080"
	defaultTimeout = 10 * time.Second
	defaultTTL     = 24 * time.Hour
)

// FromEnv builds a Client config from environment variables so main stays lean.
func FromEnv() Client {
	baseURL := os.Getenv("ESPLAN_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := defaultTimeout
	if s := os.Getenv("ESPLAN_REQUEST_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			timeout = d
		}
	}

	sessionDir := os.Getenv("ESPLAN_SESSION_DIR")
	if sessionDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			sessionDir = filepath.Join(home, ".esplan")
		}
	}

	return Client{
		BaseURL:        baseURL,
		RequestTimeout: timeout,
		SessionDir:     sessionDir,
	}
}

// StubFromEnv builds a Stub config from environment variables.
func StubFromEnv() Stub {
	addr := os.Getenv("ESPLAN_STUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	signingKey := os.Getenv("ESPLAN_JWT_SIGNING_KEY")
	if signingKey == "" {
		// Use a default for development - should be overridden in production
		signingKey = "dev-secret-key-change-in-production"
	}

	ttl := defaultTTL
	if s := os.Getenv("ESPLAN_TOKEN_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			ttl = d
		}
	}

	return Stub{
		Addr:          addr,
		JWTSigningKey: signingKey,
		TokenTTL:      ttl,
	}
}
