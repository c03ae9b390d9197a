package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/translation-qa-api/internal/service"
)

// unmatchedRoute labels requests that hit no registered route so raw paths do
// not leak into metric labels.
const unmatchedRoute = "unmatched"

// Metrics observes latency and status per method and route pattern.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
