package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/medvox-ai/intake-pipeline/internal/config"
	"github.com/medvox-ai/intake-pipeline/internal/logger"
	"github.com/medvox-ai/intake-pipeline/internal/types"
)

// Generation parameters for intake transcript summarization.
const (
	summarizerTemperature     = 0.2
	summarizerMaxOutputTokens = 4096
	summarizerTopP            = 0.95
	summarizerTopK            = 40
)

const (
	finishReasonStop      = "STOP"
	finishReasonMaxTokens = "MAX_TOKENS"
)

// geminiRequest is the generateContent payload.
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

// GeminiClient calls the generative-language API to summarize transcripts.
type GeminiClient struct {
	apiKey     string
	model      string
	httpClient *HTTPClient
	mapper     errorMapper
}

// NewGeminiClient creates the summarizer provider client. The configured
// model may carry a "models/" prefix, which the generateContent URL does not
// use.
func NewGeminiClient(cfg config.SummarizerConfig) *GeminiClient {
	model := strings.TrimPrefix(cfg.Model, "models/")
	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", cfg.BaseURL, model, cfg.APIKey)

	return &GeminiClient{
		apiKey: cfg.APIKey,
		model:  model,
		httpClient: NewHTTPClient(endpoint, HTTPClientConfig{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		}),
		mapper: errorMapper{
			provider:        types.ProviderSummarizer,
			model:           model,
			timeoutMessage:  "Gemini AI service timeout.",
			transportFormat: "Error communicating with Gemini AI service: %s",
		},
	}
}

// Complete sends the prompt and returns the first candidate's text.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", types.NewMisconfiguredError(types.ProviderSummarizer, types.MsgSummarizerNotConfigured)
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     summarizerTemperature,
			MaxOutputTokens: summarizerMaxOutputTokens,
			TopP:            summarizerTopP,
			TopK:            summarizerTopK,
		},
	}

	logger.Info("calling summarizer", zap.String("model", c.model))
	resp, err := c.httpClient.DoRequest(ctx, Request{Method: http.MethodPost, Body: payload})
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

	return c.parseEnvelope(body)
}

// parseEnvelope extracts candidate text from a generateContent response.
// Generations stopped by safety filters become ContentBlocked; length-capped
// generations return whatever partial text is present; other abnormal finish
// reasons degrade to an empty string rather than failing the request.
func (c *GeminiClient) parseEnvelope(body []byte) (string, error) {
	root := gjson.ParseBytes(body)

	if text := root.Get("candidates.0.content.parts.0.text"); text.Exists() {
		return text.String(), nil
	}

	candidates := root.Get("candidates")
	if candidates.IsArray() && len(candidates.Array()) > 0 {
		finishReason := root.Get("candidates.0.finishReason").String()
		if finishReason != finishReasonStop {
			if blockReason := root.Get("promptFeedback.blockReason"); blockReason.String() != "" {
				logger.Error("summarizer prompt blocked",
					zap.String("model", c.model),
					zap.String("blockReason", blockReason.String()),
					zap.String("safetyRatings", root.Get("promptFeedback.safetyRatings").Raw))
				return "", types.NewContentBlockedError(blockReason.String())
			}
			if finishReason == finishReasonMaxTokens {
				if partial := root.Get("candidates.0.content.parts.0.text"); partial.String() != "" {
					return partial.String(), nil
				}
			}
			logger.Warn("summarizer finished without usable content",
				zap.String("model", c.model),
				zap.String("finishReason", finishReason))
			return "", nil
		}
	}

	logger.Error("unexpected summarizer envelope", zap.String("model", c.model), zap.ByteString("body", body))
	return "", types.NewBadUpstreamFormatError(types.ProviderSummarizer, "Invalid response format from Gemini AI service.")
}
