package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID carries the request ID to and from clients.
	HeaderRequestID = "X-Request-ID"
	// ContextKeyRequestID is the gin context key handlers read it under.
	ContextKeyRequestID = "request_id"
)

// probePaths are polled by orchestrators and would drown the request log.
var probePaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
}

// RequestID accepts a client-supplied X-Request-ID or generates one, and
// echoes it on the response so reconciliation flows can be traced across
// the upload, poll and handoff requests.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// Logger logs one line per request: id, method, path, status, latency.
// Health probes are skipped.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if probePaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		requestID, _ := c.Get(ContextKeyRequestID)
		log.Printf("[%s] %s %s %d %s",
			requestID,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// Recovery recovers from handler panics and returns a 500.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
