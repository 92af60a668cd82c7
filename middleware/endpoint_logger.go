package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/colposcopy-api/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger logs each HTTP request with its route, status and latency.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			details["query"] = q
		}

		util.LogEvent(util.Event{
			Type:      util.EventEndpointCall,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}
