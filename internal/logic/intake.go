package logic

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/medvox-ai/intake-pipeline/internal/logger"
	"github.com/medvox-ai/intake-pipeline/internal/model"
	"github.com/medvox-ai/intake-pipeline/internal/summary"
	"github.com/medvox-ai/intake-pipeline/internal/svc"
	"github.com/medvox-ai/intake-pipeline/internal/types"
	"github.com/medvox-ai/intake-pipeline/internal/utils"
)

// IntakeLogic runs the transcript pipeline: summarize, normalize, condense,
// analyze. Each run produces one IntakeRecord for archival.
type IntakeLogic struct {
	ctx      context.Context
	svcCtx   *svc.ServiceContext
	identity *model.Identity
}

func NewIntakeLogic(ctx context.Context, svcCtx *svc.ServiceContext, identity *model.Identity) *IntakeLogic {
	return &IntakeLogic{
		ctx:      ctx,
		svcCtx:   svcCtx,
		identity: identity,
	}
}

// SubmitTranscript processes one interview transcript end to end. The
// summarizer output is normalized into the structured record, condensed to
// the informative fields, and analyzed. An empty condensed block skips the
// analysis stage instead of failing the request.
func (l *IntakeLogic) SubmitTranscript(req *types.SubmitTranscriptRequest) (resp *types.SubmitTranscriptResponse, err error) {
	startTime := time.Now()

	record := &model.IntakeRecord{
		Timestamp: startTime,
		Endpoint:  "submit-transcript",
		CallID:    req.CallID,
	}
	if l.identity != nil {
		record.Identity = *l.identity
	}

	// Defer archiving so failed runs are recorded too
	defer func() {
		record.TotalLatency = time.Since(startTime).Milliseconds()
		if err != nil {
			apiErr := types.AsAPIError(err)
			record.StatusCode = apiErr.StatusCode
			record.AddError(errorClass(apiErr), err)
		} else {
			record.StatusCode = http.StatusOK
		}
		if l.svcCtx.Archiver != nil {
			l.svcCtx.Archiver.ArchiveAsync(record)
		}
	}()

	if req.Transcript == "" {
		return nil, types.NewMissingInputError(types.MsgMissingTranscript)
	}
	if l.svcCtx.Config.Summarizer.APIKey == "" {
		return nil, types.NewMisconfiguredError(types.ProviderSummarizer, types.MsgSummarizerNotConfigured)
	}
	if l.svcCtx.Config.Analysis.EndpointURL == "" || l.svcCtx.Config.Analysis.APIToken == "" {
		return nil, types.NewMisconfiguredError(types.ProviderAnalysis, types.MsgAnalysisNotConfigured)
	}

	structured, err := l.summarize(req.Transcript, record)
	if err != nil {
		return nil, err
	}

	block := summary.Condense(structured)
	record.InformativeFields = countLines(block)

	if block == "" {
		record.AnalysisSkipped = true
		logger.Info("condensed summary empty, skipping analysis",
			zap.String("request_id", l.requestID()))
		return &types.SubmitTranscriptResponse{
			Message: types.MsgAnalysisSkipped,
			Summary: structured,
		}, nil
	}

	analysisText, err := l.analyze(block, record)
	if err != nil {
		return nil, err
	}

	logger.Info("transcript processed",
		zap.String("request_id", l.requestID()),
		zap.Int("informative_fields", record.InformativeFields),
		zap.Bool("answer_extracted", record.AnswerExtracted))

	return &types.SubmitTranscriptResponse{
		Message:  types.MsgTranscriptProcessed,
		Summary:  structured,
		Analysis: &analysisText,
	}, nil
}

// summarize runs the summarizer stage and normalizes its output into the
// structured record.
func (l *IntakeLogic) summarize(transcript string, record *model.IntakeRecord) (*types.StructuredSummary, error) {
	prompt := summary.BuildSummaryPrompt(transcript)
	record.SummarizerTokens.PromptTokens = l.countTokens(prompt)

	stageStart := time.Now()
	raw, err := l.svcCtx.Summarizer.Complete(l.ctx, prompt)
	record.SummarizerLatency = time.Since(stageStart).Milliseconds()
	if err != nil {
		apiErr := types.AsAPIError(err)
		if l.svcCtx.MetricsService != nil {
			l.svcCtx.MetricsService.RecordUpstreamError(types.ProviderSummarizer, apiErr.Code)
		}
		logger.Error("summarizer call failed",
			zap.String("request_id", l.requestID()),
			zap.String("code", apiErr.Code),
			zap.Error(err))
		return nil, err
	}
	record.SummarizerTokens.CompletionTokens = l.countTokens(raw)

	structured, err := summary.Normalize(raw)
	if err != nil {
		logger.Error("summarizer output failed normalization",
			zap.String("request_id", l.requestID()),
			zap.Error(err))
		return nil, err
	}
	return structured, nil
}

// analyze runs the analysis stage over the condensed block and extracts the
// tagged answer.
func (l *IntakeLogic) analyze(block string, record *model.IntakeRecord) (string, error) {
	prompt := summary.BuildAnalysisPrompt(block)
	record.AnalysisTokens.PromptTokens = l.countTokens(prompt)

	stageStart := time.Now()
	raw, err := l.svcCtx.Analysis.Complete(l.ctx, prompt)
	record.AnalysisLatency = time.Since(stageStart).Milliseconds()
	if err != nil {
		apiErr := types.AsAPIError(err)
		if l.svcCtx.MetricsService != nil {
			l.svcCtx.MetricsService.RecordUpstreamError(types.ProviderAnalysis, apiErr.Code)
		}
		logger.Error("analysis call failed",
			zap.String("request_id", l.requestID()),
			zap.String("code", apiErr.Code),
			zap.Error(err))
		return "", err
	}
	record.AnalysisTokens.CompletionTokens = l.countTokens(raw)

	answer := summary.ExtractAnswer(raw, types.AnswerTagName)
	record.AnswerExtracted = answer.Extracted
	return answer.Text, nil
}

// Helper methods

func (l *IntakeLogic) countTokens(text string) int {
	if l.svcCtx.TokenCounter != nil {
		return l.svcCtx.TokenCounter.CountTokens(text)
	}
	return utils.EstimateTokens(text)
}

func (l *IntakeLogic) requestID() string {
	if l.identity == nil {
		return ""
	}
	return l.identity.RequestID
}

func countLines(block string) int {
	if block == "" {
		return 0
	}
	return strings.Count(block, "\n") + 1
}

// errorClass maps an API error onto the record error taxonomy.
func errorClass(apiErr *types.APIError) types.ErrorType {
	switch apiErr.Code {
	case types.ErrCodeInvalidSummaryFormat:
		return types.ErrPipeline
	case types.ErrCodeMissingInput, types.ErrCodeTooManyRequests:
		return types.ErrRequest
	case types.ErrCodeInternalError:
		return types.ErrServer
	default:
		return types.ErrUpstream
	}
}
