package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blues/crowdhub/internal/config"
	"github.com/blues/crowdhub/internal/database/databasetest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080", AllowedOrigins: []string{"https://app.example.com"}},
		Auth:   config.AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour},
	}
}

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := databasetest.New(t)

	r, err := Setup(db, testConfig())
	require.NoError(t, err)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/", http.StatusFound},
		{http.MethodGet, "/campaigns", http.StatusOK},
		{http.MethodGet, "/campaigns/create", http.StatusOK},
		{http.MethodGet, "/campaigns/1", http.StatusNotFound},
		{http.MethodGet, "/campaigns/1/edit", http.StatusNotFound},
		{http.MethodGet, "/login", http.StatusOK},
		{http.MethodGet, "/api/v1/campaigns", http.StatusOK},
		{http.MethodGet, "/api/v1/categories", http.StatusOK},
		{http.MethodDelete, "/campaigns/1", http.StatusNotFound},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
		assert.NotEmpty(t, w.Header().Get(requestIdHeader), "%s %s", tc.method, tc.path)
	}
}

func TestRequestIdPassthrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, err := Setup(databasetest.New(t), testConfig())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIdHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIdHeader))
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, err := Setup(databasetest.New(t), testConfig())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/campaigns", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/campaigns", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
