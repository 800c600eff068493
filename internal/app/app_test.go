package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo-service/internal/config"
	"lingo-service/internal/session"
	"lingo-service/internal/users"
)

func testConfig() config.Config {
	return config.Config{
		AppPort:      "0",
		CookieSecret: strings.Repeat("c", 32),
		SessionTTL:   time.Hour,
	}
}

func TestSetupInfra_InMemory(t *testing.T) {
	infra, err := setupInfra(t.Context(), testConfig())
	require.NoError(t, err)

	assert.Nil(t, infra.DB)
	assert.Nil(t, infra.Redis)
	assert.IsType(t, &users.MemoryStore{}, infra.Users)
	assert.IsType(t, &session.MemoryStore{}, infra.Sessions)
	assert.NoError(t, infra.Close())
}

func TestSetupInfra_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.RedisAddr = mr.Addr()

	infra, err := setupInfra(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = infra.Close() })

	require.NotNil(t, infra.Redis)
	assert.IsType(t, &session.RedisStore{}, infra.Sessions)
}

func TestSetupInfra_RedisUnreachable(t *testing.T) {
	cfg := testConfig()
	cfg.RedisAddr = "127.0.0.1:1"

	_, err := setupInfra(t.Context(), cfg)
	assert.Error(t, err)
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>lingo</h1>"), 0o644))

	cfg := testConfig()
	cfg.StaticDir = static
	cfg.FrontendURL = "http://app.example"

	infra, err := setupInfra(t.Context(), cfg)
	require.NoError(t, err)

	router, gateway := newRouter(cfg, infra)
	t.Cleanup(gateway.Close)

	tests := []struct {
		name   string
		method string
		path   string
		code   int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"index", http.MethodGet, "/", http.StatusOK},
		{"session", http.MethodGet, "/api/session", http.StatusOK},
		{"users", http.MethodGet, "/api/users", http.StatusOK},
		{"online", http.MethodGet, "/api/online", http.StatusOK},
		{"me requires login", http.MethodGet, "/api/me", http.StatusUnauthorized},
		{"websocket requires login", http.MethodGet, "/ws", http.StatusUnauthorized},
		{"unknown", http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.FrontendURL = "http://app.example"

	infra, err := setupInfra(t.Context(), cfg)
	require.NoError(t, err)

	router, gateway := newRouter(cfg, infra)
	t.Cleanup(gateway.Close)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://app.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_OnlineStartsEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)

	infra, err := setupInfra(t.Context(), testConfig())
	require.NoError(t, err)

	router, gateway := newRouter(testConfig(), infra)
	t.Cleanup(gateway.Close)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/online", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"online":[]}`, rec.Body.String())
}
