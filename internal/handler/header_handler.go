package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medvox-ai/intake-pipeline/internal/model"
	"github.com/medvox-ai/intake-pipeline/internal/types"
	"github.com/medvox-ai/intake-pipeline/internal/utils"
)

// getIdentityFromHeaders extracts request headers and creates Identity struct.
// A missing request ID is replaced with a generated one so every pipeline run
// stays traceable.
func getIdentityFromHeaders(c *gin.Context) *model.Identity {
	requestID := c.GetHeader(types.HeaderRequestId)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	return &model.Identity{
		RequestID: requestID,
		Requester: utils.ExtractRequesterFromToken(c.GetHeader(types.HeaderAuthorization)),
		ClientIP:  c.ClientIP(),
	}
}
