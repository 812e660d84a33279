package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/monocle-dev/taskboard/internal/types"
)

// RequestLogger ensures every request has a stable request ID and logs one
// line per request once it completes.
// - Reads X-Request-Id header if present, otherwise generates one
// - Stores it in the gin context
// - Echoes it back in the X-Request-Id response header
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(types.RequestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set(types.ContextRequestIDKey, rid)
		c.Writer.Header().Set(types.RequestIDHeader, rid)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}

		logger.LogAttrs(c.Request.Context(), level, "request",
			slog.String("request_id", rid),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
