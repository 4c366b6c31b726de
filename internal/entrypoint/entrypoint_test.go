package entrypoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/orgauth/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	gin.SetMode(gin.TestMode)

	return &config.Config{
		ProjectName: "User Organisation Service",
		Database:    config.Database{Path: filepath.Join(t.TempDir(), "app.db"), LogLevel: "silent"},
		Auth: config.Auth{
			SecretKey:  "entrypoint-secret",
			Algorithm:  "HS256",
			TokenTTL:   30 * time.Minute,
			Issuer:     "orgauth",
			BcryptCost: 4,
		},
		CORS:        config.CORS{AllowedOrigins: []string{"*"}},
		Metrics:     config.Metrics{Enabled: true},
		Tasks:       config.Tasks{Enabled: true, Workers: 1},
		Maintenance: config.Maintenance{Schedule: "0 3 * * *"},
	}
}

func TestResolveAuthConfig(t *testing.T) {
	cfg, err := resolveAuthConfig(config.Auth{SecretKey: "kept"})
	require.NoError(t, err)
	assert.Equal(t, "kept", cfg.SecretKey)

	first, err := resolveAuthConfig(config.Auth{})
	require.NoError(t, err)
	second, err := resolveAuthConfig(config.Auth{})
	require.NoError(t, err)
	assert.NotEmpty(t, first.SecretKey)
	assert.NotEqual(t, first.SecretKey, second.SecretKey)
}

func TestNewApp_ServesAndShutsDown(t *testing.T) {
	app, err := NewApp(testConfig(t), "test")
	require.NoError(t, err)
	require.NoError(t, app.Start(context.Background()))
	assert.True(t, app.Scheduler.IsRunning())

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User Organisation Service")

	body := `{"firstName":"John","lastName":"Doe","email":"john@example.com","password":"securepassword"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	app.Shutdown(ctx)
	assert.False(t, app.Scheduler.IsRunning())
}

func TestNewApp_WithoutBackgroundWork(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tasks.Enabled = false
	cfg.Metrics.Enabled = false
	cfg.Auth.SecretKey = ""

	app, err := NewApp(cfg, "test")
	require.NoError(t, err)
	defer app.Shutdown(context.Background())

	assert.Nil(t, app.Tasks)
	require.NoError(t, app.Start(context.Background()))

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewApp_InvalidAlgorithm(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.Algorithm = "RS256"

	_, err := NewApp(cfg, "test")
	assert.ErrorContains(t, err, "token service")
}

func TestApp_StartRejectsBadSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.Maintenance.Schedule = "whenever"

	app, err := NewApp(cfg, "test")
	require.NoError(t, err)
	defer app.Shutdown(context.Background())

	assert.Error(t, app.Start(context.Background()))
}
