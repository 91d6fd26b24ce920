package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	prom "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gcbaptista/go-resume-matcher/config"
	testutil "github.com/gcbaptista/go-resume-matcher/internal/testing"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	router := gin.New()
	router.Use(m.Handler())
	router.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/items/1", "/items/2", "/metrics", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, prom.ToFloat64(m.requestCount.WithLabelValues("GET", "/items/:id", "200")))
	assert.Equal(t, 1.0, prom.ToFloat64(m.requestCount.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, prom.ToFloat64(m.requestCount.WithLabelValues("GET", "/metrics", "200")))

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err, "registering twice on one registry should fail")
}

func TestRequestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(RequestIDMiddleware(), RequestLoggerMiddleware(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc")
	router.ServeHTTP(httptest.NewRecorder(), req)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "request handled", first.Message)
	assert.Equal(t, "abc", first.ContextMap()["request_id"])
	assert.Equal(t, int64(200), first.ContextMap()["status"])

	second := logs.All()[1]
	assert.Equal(t, zap.ErrorLevel, second.Level)
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(RequestIDMiddleware(), RequestLoggerMiddleware(zap.New(core)), RecoveryMiddleware())
	router.GET("/panic", func(c *gin.Context) { panic("vocabulary exploded") })

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w := testutil.Serve(router, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := testutil.DecodeJSON(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, string(ErrorCodeInternalError), body["code"])
	assert.Equal(t, "Internal error during GET /panic: panic: vocabulary exploded", body["error"])
	assert.Equal(t, "req-1", body["request_id"])

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.ErrorLevel, entry.Level)
	assert.Contains(t, entry.ContextMap()["errors"], "vocabulary exploded")
}

func TestSetupRoutes_RecoversPanics(t *testing.T) {
	srv := setupTestRouter(t, config.MatcherSettings{}, 0)
	srv.router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := testutil.Serve(srv.router, httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, string(ErrorCodeInternalError), testutil.DecodeJSON(t, w)["code"])

	// The router keeps serving after a panic
	w = testutil.Serve(srv.router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORSMiddleware())
	router.POST("/analyze", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/analyze", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in       int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{10 << 20, "10.0 MiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatBytes(tt.in))
	}
}
