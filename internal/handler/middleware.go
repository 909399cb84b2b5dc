package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medvox-ai/intake-pipeline/internal/model"
	"github.com/medvox-ai/intake-pipeline/internal/svc"
	"github.com/medvox-ai/intake-pipeline/internal/types"
)

// IdentityMiddleware extracts identity information from request headers and
// stores it in the request context
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := getIdentityFromHeaders(c)

		ctxWithIdentity := context.WithValue(c.Request.Context(), model.IdentityContextKey, identity)
		c.Request = c.Request.WithContext(ctxWithIdentity)

		c.Header(types.HeaderRequestId, identity.RequestID)

		c.Next()
	}
}

// CORSMiddleware allows browser calls from the configured frontend origins.
// Requests from other origins pass through without CORS headers and are left
// for the browser to reject.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestMetricsMiddleware counts requests per route and response status
func RequestMetricsMiddleware(svcCtx *svc.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if svcCtx.MetricsService == nil {
			return
		}
		// FullPath is the route template, empty for unmatched requests
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		svcCtx.MetricsService.RecordRequest(path, c.Writer.Status())
	}
}
