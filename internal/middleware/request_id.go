package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ridwanfathin/supplier-invoice-service/internal/logging"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader is read from incoming requests and echoed on responses
const RequestIDHeader = "X-Request-ID"

// Gin context keys
const (
	RequestIDKey = "request_id"
	loggerKey    = "logger"
)

// RequestID honours an incoming X-Request-ID or mints one, and attaches a
// request-scoped log entry to both the gin and the request context.
func RequestID(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		entry := logger.WithField(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)
		c.Set(loggerKey, entry)
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), entry))
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}
