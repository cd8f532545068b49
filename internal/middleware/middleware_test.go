package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/ridwanfathin/supplier-invoice-service/internal/logging"
	"github.com/ridwanfathin/supplier-invoice-service/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDIsMintedAndEchoed(t *testing.T) {
	logger := logging.NewWithOutput(&bytes.Buffer{}, "info", "json")
	router := gin.New()
	router.Use(RequestID(logger))

	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = c.GetString(RequestIDKey)
		assert.Equal(t, seen, logging.FromContext(c.Request.Context()).Data[RequestIDKey])
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "client-supplied")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "client-supplied", rec.Header().Get(RequestIDHeader))
}

func TestRequestResponseLoggerRedactsBodiesAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithOutput(&buf, "debug", "json")

	router := gin.New()
	router.Use(RequestID(logger), RequestResponseLogger(LoggerConfig{Logger: logger}))
	router.POST("/api/suppliers", func(c *gin.Context) {
		var body map[string]any
		require.NoError(t, c.ShouldBindJSON(&body))
		assert.Equal(t, "Atlas", body["name"], "body is restored for the handler")
		c.JSON(http.StatusCreated, gin.H{"id": "s-1"})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/suppliers", strings.NewReader(`{"name":"Atlas","apiKey":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request completed", line["msg"])
	assert.Equal(t, float64(http.StatusCreated), line["status"])
	assert.NotEmpty(t, line["request_id"])

	requestBody := line["request_body"].(map[string]any)
	assert.Equal(t, "Atlas", requestBody["name"])
	assert.Equal(t, "[REDACTED]", requestBody["apiKey"])
	assert.Equal(t, "[REDACTED]", line["headers"].(map[string]any)["Authorization"])
	assert.Equal(t, "s-1", line["response_body"].(map[string]any)["id"])
}

func TestRequestResponseLoggerSkipsBodiesAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithOutput(&buf, "info", "json")

	router := gin.New()
	router.Use(RequestResponseLogger(LoggerConfig{Logger: logger}))
	router.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "nope"})
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warning", line["level"])
	assert.NotContains(t, line, "response_body")
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://ledger.example.com"}))
	router.GET("/api/items", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req.Header.Set("Origin", "https://ledger.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "https://ledger.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req.Header.Set("Origin", "https://evil.example.org")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/items", nil)
	req.Header.Set("Origin", "https://ledger.example.com")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	m := metrics.New()
	router := gin.New()
	router.Use(Metrics(m))
	router.GET("/api/invoices/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/invoices/"+id, nil))
	}

	count, err := testutil.GatherAndCount(m.Registry(), "supplier_invoice_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "both ids share one series")
}
