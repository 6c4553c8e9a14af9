package server

import (
	"time"

	"github.com/xlttj/whitelist/pkg/logging"

	"github.com/gin-gonic/gin"
)

// LogMiddleware logs one structured line per request
func LogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := float64(time.Since(start).Microseconds()) / 1000
		logging.With("request",
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency,
			"comment", c.Errors.ByType(gin.ErrorTypePrivate).String(),
		)
	}
}
