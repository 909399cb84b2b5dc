package logic

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/medvox-ai/intake-pipeline/internal/logger"
	"github.com/medvox-ai/intake-pipeline/internal/model"
	"github.com/medvox-ai/intake-pipeline/internal/svc"
	"github.com/medvox-ai/intake-pipeline/internal/types"
)

// SessionLogic handles voice interview session initiation
type SessionLogic struct {
	ctx      context.Context
	svcCtx   *svc.ServiceContext
	identity *model.Identity
}

func NewSessionLogic(ctx context.Context, svcCtx *svc.ServiceContext, identity *model.Identity) *SessionLogic {
	return &SessionLogic{
		ctx:      ctx,
		svcCtx:   svcCtx,
		identity: identity,
	}
}

// InitiateIntake claims a cooldown slot and asks the voice provider for a new
// agent call. The slot stays claimed only when the provider call succeeds;
// any failure rolls it back so the caller may retry immediately.
func (l *SessionLogic) InitiateIntake() (*types.InitiateIntakeResponse, error) {
	release, err := l.svcCtx.CooldownGate.Reserve(l.ctx)
	if err != nil {
		if l.svcCtx.MetricsService != nil {
			l.svcCtx.MetricsService.RecordCooldownRejection()
		}
		logger.Warn("session initiation rejected by cooldown",
			zap.String("request_id", l.requestID()))
		return nil, err
	}

	start := time.Now()
	resp, err := l.svcCtx.VoiceSession.CreateCall(l.ctx)
	if err != nil {
		release()
		apiErr := types.AsAPIError(err)
		if l.svcCtx.MetricsService != nil {
			l.svcCtx.MetricsService.RecordUpstreamError(types.ProviderVoiceSession, apiErr.Code)
		}
		logger.Error("voice session creation failed",
			zap.String("request_id", l.requestID()),
			zap.String("code", apiErr.Code),
			zap.Error(err))
		return nil, err
	}

	latency := time.Since(start).Milliseconds()
	if l.svcCtx.MetricsService != nil {
		l.svcCtx.MetricsService.RecordVoiceSession(latency)
	}
	logger.Info("voice session created",
		zap.String("request_id", l.requestID()),
		zap.String("call_id", resp.CallID),
		zap.Int64("latency_ms", latency))

	return resp, nil
}

func (l *SessionLogic) requestID() string {
	if l.identity == nil {
		return ""
	}
	return l.identity.RequestID
}
