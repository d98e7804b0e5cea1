package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Logger attaches a request-scoped logger to the request context and
// writes one access log line per request. Handlers and the services
// they call pick it up with zerolog.Ctx.
func Logger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqLog := log.With().Str("request_id", GetRequestID(c)).Logger()
		c.Request = c.Request.WithContext(reqLog.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		evt := reqLog.Info()
		switch {
		case status >= 500:
			evt = reqLog.Error()
		case status >= 400:
			evt = reqLog.Warn()
		}
		evt.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Int("size", c.Writer.Size()).
			Str("client_ip", c.ClientIP()).
			Dur("duration_ms", time.Since(start)).
			Msg("request")
	}
}
