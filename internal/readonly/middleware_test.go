package readonly

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(enabled bool) *gin.Engine {
	router := gin.New()
	router.Use(NewMiddleware(enabled).Handler())
	ok := func(c *gin.Context) {
		mode, _ := c.Get(ContextKeyReadOnly)
		c.JSON(http.StatusOK, gin.H{"read_only": mode})
	}
	router.GET("/api/user", ok)
	router.POST("/auth/register", ok)
	router.POST("/auth/login", ok)
	router.POST("/api/token", ok)
	router.POST("/api/organisations", ok)
	router.DELETE("/api/organisations", ok)
	return router
}

func TestNewMiddleware(t *testing.T) {
	assert.True(t, NewMiddleware(true).IsEnabled())
	assert.False(t, NewMiddleware(false).IsEnabled())
}

func TestHandler_Disabled(t *testing.T) {
	router := newRouter(false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/register", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"read_only":false}`, w.Body.String())
}

func TestHandler_Enabled(t *testing.T) {
	router := newRouter(true)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/user", http.StatusOK},
		{http.MethodPost, "/auth/login", http.StatusOK},
		{http.MethodPost, "/api/token", http.StatusOK},
		{http.MethodPost, "/auth/register", http.StatusServiceUnavailable},
		{http.MethodPost, "/api/organisations", http.StatusServiceUnavailable},
		{http.MethodDelete, "/api/organisations", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandler_BlockedBody(t *testing.T) {
	router := newRouter(true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/register", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "120", w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, Message, body["message"])
	assert.Equal(t, float64(http.StatusServiceUnavailable), body["statusCode"])
}
