package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger logs the start and the end of every request with the "http" logger.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := zap.S().Named("http")
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		log.Debugw("request started",
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"ip", c.ClientIP(),
			"user-agent", c.Request.UserAgent(),
			"request_id", c.GetString(RequestIDKey),
		)

		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"ip", c.ClientIP(),
			"user-agent", c.Request.UserAgent(),
			"request_id", c.GetString(RequestIDKey),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}

		if len(c.Errors) > 0 {
			log.Errorw(c.Errors.String(), fields...)
			return
		}
		log.Infow("request completed", fields...)
	}
}
