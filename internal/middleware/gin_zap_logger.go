// Package middleware holds gin middleware shared by every route.
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Context keys set on the gin context.
const (
	RequestIDKey = "marketplace.request_id"
	// UserIDKey is set by authentication with the caller's int64 user id.
	UserIDKey = "marketplace.user_id"
)

var skipPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// RequestID returns the id assigned to the current request, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

func requestFields(c *gin.Context, requestID string, latency time.Duration) []zap.Field {
	path := c.Request.URL.Path
	if raw := c.Request.URL.RawQuery; raw != "" {
		path += "?" + raw
	}
	fields := []zap.Field{
		zap.Int("status", c.Writer.Status()),
		zap.String("method", c.Request.Method),
		zap.String("path", path),
		zap.String("route", c.FullPath()),
		zap.String("ip", c.ClientIP()),
		zap.Duration("latency", latency),
		zap.Int("bytes", c.Writer.Size()),
		zap.String("user_agent", c.Request.UserAgent()),
		zap.String("request_id", requestID),
	}
	if userID, ok := c.Get(UserIDKey); ok {
		if id, ok := userID.(int64); ok {
			fields = append(fields, zap.Int64("user_id", id))
		}
	}
	return fields
}

// GinZapLogger assigns a request id and logs every request once it completes.
// Health and metrics probes are not logged.
func GinZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, skip := skipPaths[c.Request.URL.Path]; skip {
			c.Next()
			return
		}

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()
		fields := requestFields(c, requestID, time.Since(start))

		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			log.Error("Request failed", append(fields, zap.Strings("errors", errs.Errors()))...)
			return
		}

		status := c.Writer.Status()
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("Server error", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("Client error", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}
