package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/medvox-ai/intake-pipeline/internal/config"
	"github.com/medvox-ai/intake-pipeline/internal/logger"
	"github.com/medvox-ai/intake-pipeline/internal/types"
)

const headerAPIKey = "X-API-Key"

// UltravoxClient starts live voice intake calls against a configured agent.
type UltravoxClient struct {
	apiKey     string
	agentID    string
	httpClient *HTTPClient
	mapper     errorMapper
}

// NewUltravoxClient creates the call-session provider client.
func NewUltravoxClient(cfg config.VoiceSessionConfig) *UltravoxClient {
	endpoint := fmt.Sprintf("%s/agents/%s/calls", cfg.BaseURL, cfg.AgentID)

	return &UltravoxClient{
		apiKey:  cfg.APIKey,
		agentID: cfg.AgentID,
		httpClient: NewHTTPClient(endpoint, HTTPClientConfig{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		}),
		mapper: errorMapper{
			provider:        types.ProviderVoiceSession,
			timeoutMessage:  "Voice AI service timeout.",
			transportFormat: "Error contacting voice AI service: %s",
		},
	}
}

// CreateCall starts a new agent call and returns its join details.
func (c *UltravoxClient) CreateCall(ctx context.Context) (*types.InitiateIntakeResponse, error) {
	if c.apiKey == "" {
		return nil, types.NewMisconfiguredError(types.ProviderVoiceSession, types.MsgVoiceSessionNotReady)
	}

	logger.Info("initiating voice call", zap.String("agentID", c.agentID))
	resp, err := c.httpClient.DoRequest(ctx, Request{
		Method:  http.MethodPost,
		Headers: map[string]string{headerAPIKey: c.apiKey},
		Body:    struct{}{},
	})
	if err != nil {
		return nil, c.mapper.mapTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.mapper.mapTransport(err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, c.mapper.mapStatus(resp.StatusCode, body)
	}

	root := gjson.ParseBytes(body)
	joinURL := root.Get("joinUrl").String()
	if joinURL == "" {
		logger.Error("joinUrl missing from voice session response", zap.ByteString("body", body))
		return nil, types.NewBadUpstreamFormatError(types.ProviderVoiceSession, "Failed to get joinUrl from voice AI service.")
	}

	callID := root.Get("callId").String()
	logger.Info("voice call initiated", zap.String("callID", callID))
	return &types.InitiateIntakeResponse{JoinURL: joinURL, CallID: callID}, nil
}
