package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// maxLoggedBody caps how much of a non-JSON body is kept in a log entry
const maxLoggedBody = 1000

// sensitiveFields contains patterns for fields that should be redacted
var sensitiveFields = []string{
	"password",
	"token",
	"api_key",
	"apikey",
	"api-key",
	"secret",
	"authorization",
	"auth",
	"bearer",
	"key",
	"credential",
	"access_token",
	"refresh_token",
	"session",
	"cookie",
}

// sensitiveHeaderPatterns contains regex patterns for sensitive headers
var sensitiveHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)authorization`),
	regexp.MustCompile(`(?i)api[-_]?key`),
	regexp.MustCompile(`(?i)token`),
	regexp.MustCompile(`(?i)secret`),
	regexp.MustCompile(`(?i)password`),
	regexp.MustCompile(`(?i)bearer`),
	regexp.MustCompile(`(?i)cookie`),
	regexp.MustCompile(`(?i)session`),
}

// responseWriter is a custom response writer to capture response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// LoggerConfig holds configuration for the logger middleware
type LoggerConfig struct {
	Logger *logrus.Logger
	// SkipPaths are logged without bodies, e.g. /health and /metrics
	SkipPaths []string
}

// RequestResponseLogger creates a middleware that logs every API request.
// Request and response bodies are captured at debug level only.
func RequestResponseLogger(config LoggerConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		startTime := time.Now()
		captureBodies := config.Logger.IsLevelEnabled(logrus.DebugLevel) && !skip[c.Request.URL.Path]

		var requestBody []byte
		var responseBody *bytes.Buffer
		if captureBodies {
			if c.Request.Body != nil {
				requestBody, _ = io.ReadAll(c.Request.Body)
				// Restore the body for the next handler
				c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			}
			responseBody = &bytes.Buffer{}
			c.Writer = &responseWriter{ResponseWriter: c.Writer, body: responseBody}
		}

		c.Next()

		entry := buildLogEntry(c, time.Since(startTime))
		if captureBodies {
			if len(requestBody) > 0 {
				entry.RequestBody = parseAndRedactBody(requestBody)
			}
			if responseBody.Len() > 0 {
				entry.ResponseBody = parseAndRedactBody(responseBody.Bytes())
			}
		}

		writeLogEntry(requestEntry(c, config.Logger), entry)
	}
}

// LogEntry represents a structured log entry
type LogEntry struct {
	Method       string              `json:"method"`
	Path         string              `json:"path"`
	StatusCode   int                 `json:"status_code"`
	Latency      string              `json:"latency"`
	ClientIP     string              `json:"client_ip"`
	UserAgent    string              `json:"user_agent"`
	RequestID    string              `json:"request_id,omitempty"`
	Headers      map[string]string   `json:"headers"`
	QueryParams  map[string][]string `json:"query_params,omitempty"`
	RequestBody  interface{}         `json:"request_body,omitempty"`
	ResponseBody interface{}         `json:"response_body,omitempty"`
	Error        string              `json:"error,omitempty"`
}

// buildLogEntry constructs a log entry from request and response data
func buildLogEntry(c *gin.Context, latency time.Duration) LogEntry {
	entry := LogEntry{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		StatusCode:  c.Writer.Status(),
		Latency:     latency.String(),
		ClientIP:    c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
		Headers:     redactHeaders(c.Request.Header),
		QueryParams: c.Request.URL.Query(),
		RequestID:   c.GetString(RequestIDKey),
	}

	if len(c.Errors) > 0 {
		entry.Error = c.Errors.String()
	}

	return entry
}

// redactHeaders redacts sensitive headers
func redactHeaders(headers map[string][]string) map[string]string {
	redacted := make(map[string]string)
	for key, values := range headers {
		if isSensitiveHeader(key) {
			redacted[key] = "[REDACTED]"
		} else {
			redacted[key] = strings.Join(values, ", ")
		}
	}
	return redacted
}

// isSensitiveHeader checks if a header name is sensitive
func isSensitiveHeader(headerName string) bool {
	for _, pattern := range sensitiveHeaderPatterns {
		if pattern.MatchString(headerName) {
			return true
		}
	}
	return false
}

// parseAndRedactBody parses JSON body and redacts sensitive fields
func parseAndRedactBody(body []byte) interface{} {
	// Try to parse as JSON
	var jsonBody interface{}
	if err := json.Unmarshal(body, &jsonBody); err != nil {
		// If not JSON, return truncated string
		bodyStr := string(body)
		if len(bodyStr) > maxLoggedBody {
			bodyStr = bodyStr[:maxLoggedBody] + "... (truncated)"
		}
		return bodyStr
	}

	// Redact sensitive fields
	redactSensitiveFields(jsonBody)
	return jsonBody
}

// redactSensitiveFields recursively redacts sensitive fields in JSON data
func redactSensitiveFields(data interface{}) {
	switch v := data.(type) {
	case map[string]interface{}:
		for key, value := range v {
			if isSensitiveField(key) {
				v[key] = "[REDACTED]"
			} else {
				redactSensitiveFields(value)
			}
		}
	case []interface{}:
		for _, item := range v {
			redactSensitiveFields(item)
		}
	}
}

// isSensitiveField checks if a field name is sensitive
func isSensitiveField(fieldName string) bool {
	lowerField := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFields {
		if strings.Contains(lowerField, sensitive) {
			return true
		}
	}
	return false
}

// requestEntry returns the request-scoped entry set by RequestID, or a
// fresh one on the given logger
func requestEntry(c *gin.Context, logger *logrus.Logger) *logrus.Entry {
	if v, ok := c.Get(loggerKey); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logger)
}

// writeLogEntry emits the entry at a level derived from the status code
func writeLogEntry(logger *logrus.Entry, entry LogEntry) {
	fields := logrus.Fields{
		"method":     entry.Method,
		"path":       entry.Path,
		"status":     entry.StatusCode,
		"latency":    entry.Latency,
		"client_ip":  entry.ClientIP,
		"user_agent": entry.UserAgent,
	}
	if entry.RequestID != "" {
		fields["request_id"] = entry.RequestID
	}
	if len(entry.QueryParams) > 0 {
		fields["query_params"] = entry.QueryParams
	}
	if entry.RequestBody != nil {
		fields["headers"] = entry.Headers
		fields["request_body"] = entry.RequestBody
	}
	if entry.ResponseBody != nil {
		fields["response_body"] = entry.ResponseBody
	}
	if entry.Error != "" {
		fields["error"] = entry.Error
	}

	log := logger.WithFields(fields)
	switch {
	case entry.StatusCode >= 500:
		log.Error("request completed")
	case entry.StatusCode >= 400:
		log.Warn("request completed")
	default:
		log.Info("request completed")
	}
}
