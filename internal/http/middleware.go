// Package http provides the HTTP server, router, and middleware.
package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/ngoinfo/copilot-gateway/internal/httputil"
	principalDomain "github.com/ngoinfo/copilot-gateway/internal/principal/domain"
)

// Identity headers set by the trusted frontend. The gateway never
// authenticates end users itself; it sits behind the site that does.
const (
	HeaderPrincipalID    = "X-Principal-Id"
	HeaderPrincipalEmail = "X-Principal-Email"
)

// CustomLoggerMiddleware logs each request through slog with the request id.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", requestid.Get(c)),
			slog.String("remote_addr", c.ClientIP()),
		)
	}
}

// PrincipalMiddleware reads the identity headers and stores the principal on
// the context. Requests without an id stay anonymous; handlers that need a
// principal reject them.
func PrincipalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderPrincipalID)
		if id != "" {
			httputil.SetPrincipal(c, principalDomain.Principal{
				ID:    id,
				Email: c.GetHeader(HeaderPrincipalEmail),
			})
		}
		c.Next()
	}
}
