package logging

import (
	"time"

	"github.com/gin-gonic/gin"
)

// GinLogger logs one line per request. Server errors log at error level, client errors at warn.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		ev := Info()
		switch {
		case status >= 500:
			ev = Error()
		case status >= 400:
			ev = Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		if uid, ok := c.Get("userID"); ok {
			ev = ev.Interface("user_id", uid)
		}

		ev.Str("method", c.Request.Method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}
