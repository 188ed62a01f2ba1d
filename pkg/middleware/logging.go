package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"flowstate/internal/logging"
	"flowstate/internal/metrics"
)

// RequestLogger writes one structured access log line per request and
// records request metrics under the matched route template.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.RecordAPIRequest(c.Request.Method, route, strconv.Itoa(status), duration)

		event := logging.Ctx(c.Request.Context()).Info()
		if status >= 500 {
			event = logging.Ctx(c.Request.Context()).Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", route).
			Int("status", status).
			Dur("duration", duration).
			Int("size", c.Writer.Size()).
			Str("remote_addr", c.ClientIP()).
			Msg("request")
	}
}
