package client

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/medvox-ai/intake-pipeline/internal/config"
	"github.com/medvox-ai/intake-pipeline/internal/logger"
	"github.com/medvox-ai/intake-pipeline/internal/types"
)

// Generation parameters for the clinical analysis model.
const (
	analysisMaxNewTokens = 700
	analysisTemperature  = 0.6
	analysisTopP         = 0.9
)

// hfRequest is the text-generation-inference payload.
type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

// HuggingFaceClient calls a dedicated inference endpoint for clinical
// analysis of the condensed patient summary.
type HuggingFaceClient struct {
	endpoint   string
	token      string
	httpClient *HTTPClient
	mapper     errorMapper
}

// NewHuggingFaceClient creates the analysis provider client.
func NewHuggingFaceClient(cfg config.AnalysisConfig) *HuggingFaceClient {
	return &HuggingFaceClient{
		endpoint: cfg.EndpointURL,
		token:    cfg.APIToken,
		httpClient: NewHTTPClient(cfg.EndpointURL, HTTPClientConfig{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		}),
		mapper: errorMapper{
			provider:        types.ProviderAnalysis,
			model:           cfg.EndpointURL,
			timeoutMessage:  "HF Inference service timeout.",
			transportFormat: "Error communicating with HF Inference service: %s",
		},
	}
}

// Complete sends the prompt and returns the generated text.
func (c *HuggingFaceClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.endpoint == "" || c.token == "" {
		return "", types.NewMisconfiguredError(types.ProviderAnalysis, types.MsgAnalysisNotConfigured)
	}

	payload := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:   analysisMaxNewTokens,
			Temperature:    analysisTemperature,
			TopP:           analysisTopP,
			DoSample:       true,
			ReturnFullText: false,
		},
	}
	headers := map[string]string{
		types.HeaderAuthorization: "Bearer " + c.token,
	}

	logger.Info("calling analysis endpoint", zap.String("endpoint", c.endpoint))
	resp, err := c.httpClient.DoRequest(ctx, Request{Method: http.MethodPost, Headers: headers, Body: payload})
	if err != nil {
		return "", c.mapper.mapTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.mapper.mapTransport(err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", c.mapper.mapStatus(resp.StatusCode, body)
	}

	root := gjson.ParseBytes(body)
	if generated := root.Get("0.generated_text"); root.IsArray() && generated.Exists() {
		return generated.String(), nil
	}

	logger.Error("unexpected analysis envelope", zap.ByteString("body", body))
	return "", types.NewBadUpstreamFormatError(types.ProviderAnalysis, "Invalid response format from HF Inference service.")
}
