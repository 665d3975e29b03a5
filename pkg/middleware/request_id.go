package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/metrics"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID propagates an incoming X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one structured line per request and counts it.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, strconv.Itoa(status)).Inc()

		log := logger.With(
			"request_id", c.GetString(RequestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
		)
		switch {
		case status >= 500:
			log.Error("request failed")
		case status >= 400:
			log.Warn("request rejected")
		default:
			log.Debug("request handled")
		}
	}
}
