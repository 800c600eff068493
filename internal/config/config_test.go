package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"APP_PORT", "COOKIE_SECRET", "COOKIE_SECURE", "SESSION_TTL",
		"REDIS_ADDR", "DATABASE_DSN", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, 8*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("COOKIE_SECRET", strings.Repeat("s", 40))
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DATABASE_DSN", "postgres://localhost/lingo")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "eight hours")
	assert.Equal(t, 8*time.Hour, Load().SessionTTL)
}

func TestValidate_InMemoryIsAllowed(t *testing.T) {
	cfg := Config{CookieSecret: strings.Repeat("x", 32), SessionTTL: time.Hour}
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing secret",
			cfg:     Config{DatabaseDSN: "dsn", SessionTTL: time.Hour},
			wantErr: "COOKIE_SECRET is required",
		},
		{
			name:    "short secret",
			cfg:     Config{CookieSecret: "short", DatabaseDSN: "dsn", SessionTTL: time.Hour},
			wantErr: "at least 32 bytes",
		},
		{
			name:    "zero ttl",
			cfg:     Config{CookieSecret: strings.Repeat("x", 32), DatabaseDSN: "dsn"},
			wantErr: "SESSION_TTL must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
