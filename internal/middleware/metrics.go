package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/supplier-invoice-service/internal/metrics"
)

// Metrics records HTTP metrics for each request. Paths are labelled with the
// route template so ids do not create new series.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		m.IncrementInFlight()
		defer m.DecrementInFlight()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(strings.ToUpper(c.Request.Method), path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
