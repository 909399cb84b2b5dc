package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/medvox-ai/intake-pipeline/internal/svc"
)

func RegisterHandlers(router *gin.Engine, serverCtx *svc.ServiceContext) {
	router.Use(CORSMiddleware(serverCtx.Config.AllowedOrigins))
	router.Use(IdentityMiddleware())
	router.Use(RequestMetricsMiddleware(serverCtx))

	apiGroup := router.Group("/api/v1")
	{
		apiGroup.POST("/initiate-intake", InitiateIntakeHandler(serverCtx))
		apiGroup.POST("/submit-transcript", SubmitTranscriptHandler(serverCtx))
	}
	router.GET("/health", HealthHandler())
	router.GET("/metrics", MetricsHandler(serverCtx))
}
