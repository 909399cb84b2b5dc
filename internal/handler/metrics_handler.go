package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medvox-ai/intake-pipeline/internal/svc"
)

// MetricsHandler handles Prometheus metrics endpoint
func MetricsHandler(serverCtx *svc.ServiceContext) gin.HandlerFunc {
	handler := promhttp.Handler()
	return gin.WrapH(handler)
}
