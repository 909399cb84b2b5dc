package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medvox-ai/intake-pipeline/internal/logic"
	"github.com/medvox-ai/intake-pipeline/internal/svc"
	"github.com/medvox-ai/intake-pipeline/internal/types"
)

// InitiateIntakeHandler starts a new voice interview session
func InitiateIntakeHandler(svcCtx *svc.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := getIdentityFromHeaders(c)

		l := logic.NewSessionLogic(c.Request.Context(), svcCtx, identity)
		resp, err := l.InitiateIntake()
		if err != nil {
			sendErrorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// SubmitTranscriptHandler runs the transcript pipeline
func SubmitTranscriptHandler(svcCtx *svc.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SubmitTranscriptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			sendErrorResponse(c, types.NewMissingInputError(types.MsgMissingTranscript))
			return
		}

		identity := getIdentityFromHeaders(c)

		l := logic.NewIntakeLogic(c.Request.Context(), svcCtx, identity)
		resp, err := l.SubmitTranscript(&req)
		if err != nil {
			sendErrorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// HealthHandler reports service liveness
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.HealthResponse{
			Status:  "ok",
			Message: types.MsgHealthOK,
		})
	}
}

// sendErrorResponse sends a structured error response
func sendErrorResponse(c *gin.Context, err error) {
	apiErr := types.AsAPIError(err)
	c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
}
