package middleware

import (
	"strconv"
	"time"

	"github.com/mhsanaei/blog/util/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records the duration of every request by route template and status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
