package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one line per request: request id, verb, path, status,
// latency and the caller once Auth has identified one.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		caller := "-"
		if id := GetIdentity(c); id.UserID > 0 {
			caller = fmt.Sprintf("%d(%s)", id.UserID, id.Role)
		}

		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s user=%s",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(latency.Microseconds())/1000.0,
			c.ClientIP(),
			caller,
		)
	}
}
