package service

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/medvox-ai/intake-pipeline/internal/model"
	"github.com/medvox-ai/intake-pipeline/internal/types"
)

// MetricsInterface defines the metrics recording surface used by the
// pipeline and the archiver
type MetricsInterface interface {
	// RecordRequest records one handled HTTP request
	RecordRequest(path string, status int)
	// RecordIntake records metrics from an archived pipeline run
	RecordIntake(record *model.IntakeRecord)
	// RecordVoiceSession records the latency of a session initiation
	RecordVoiceSession(latencyMs int64)
	// RecordCooldownRejection records a session initiation refused by the cooldown gate
	RecordCooldownRejection()
	// RecordUpstreamError records a failed upstream provider call
	RecordUpstreamError(provider, code string)
}

// MetricsService handles Prometheus metrics collection
type MetricsService struct {
	// Request metrics
	requestsTotal *prometheus.CounterVec

	// Token metrics
	promptTokensTotal     *prometheus.CounterVec
	completionTokensTotal *prometheus.CounterVec

	// Latency metrics
	voiceSessionLatency prometheus.Histogram
	summarizerLatency   prometheus.Histogram
	analysisLatency     prometheus.Histogram
	totalLatency        prometheus.Histogram

	// Pipeline outcome metrics
	analysisSkippedTotal  prometheus.Counter
	answerTagMissingTotal prometheus.Counter

	// Cooldown metrics
	cooldownRejectionsTotal prometheus.Counter

	// Error metrics
	upstreamErrorsTotal *prometheus.CounterVec
	errorsTotal         *prometheus.CounterVec
}

// NewMetricsService creates a new metrics service registered on reg. A nil
// reg falls back to the default Prometheus registerer.
func NewMetricsService(reg prometheus.Registerer) *MetricsService {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	ms := &MetricsService{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_requests_total",
				Help: "Total number of intake API requests",
			},
			[]string{"path", "status"},
		),

		promptTokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_prompt_tokens_total",
				Help: "Total number of prompt tokens sent to model providers",
			},
			[]string{"stage"},
		),

		completionTokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_completion_tokens_total",
				Help: "Total number of completion tokens returned by model providers",
			},
			[]string{"stage"},
		),

		voiceSessionLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "intake_voice_session_latency_ms",
				Help:    "Voice session initiation latency in milliseconds",
				Buckets: []float64{100, 500, 1000, 2000, 5000, 10000, 20000},
			},
		),

		summarizerLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "intake_summarizer_latency_ms",
				Help:    "Summarizer model call latency in milliseconds",
				Buckets: []float64{500, 1000, 2000, 5000, 10000, 30000, 60000, 120000, 180000},
			},
		),

		analysisLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "intake_analysis_latency_ms",
				Help:    "Analysis model call latency in milliseconds",
				Buckets: []float64{500, 1000, 2000, 5000, 10000, 30000, 60000, 120000},
			},
		),

		totalLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "intake_total_latency_ms",
				Help:    "Total pipeline latency in milliseconds",
				Buckets: []float64{1000, 2000, 5000, 10000, 30000, 60000, 120000, 180000, 300000},
			},
		),

		analysisSkippedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "intake_analysis_skipped_total",
				Help: "Total number of runs where analysis was skipped for lack of data",
			},
		),

		answerTagMissingTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "intake_answer_tag_missing_total",
				Help: "Total number of analysis responses without answer tags",
			},
		),

		cooldownRejectionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "intake_cooldown_rejections_total",
				Help: "Total number of session initiations refused by the cooldown gate",
			},
		),

		upstreamErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_upstream_errors_total",
				Help: "Total number of failed upstream provider calls",
			},
			[]string{"provider", "code"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"error_type"},
		),
	}

	// Register all metrics
	reg.MustRegister(
		ms.requestsTotal,
		ms.promptTokensTotal,
		ms.completionTokensTotal,
		ms.voiceSessionLatency,
		ms.summarizerLatency,
		ms.analysisLatency,
		ms.totalLatency,
		ms.analysisSkippedTotal,
		ms.answerTagMissingTotal,
		ms.cooldownRejectionsTotal,
		ms.upstreamErrorsTotal,
		ms.errorsTotal,
	)

	return ms
}

// RecordRequest records one handled HTTP request
func (ms *MetricsService) RecordRequest(path string, status int) {
	ms.requestsTotal.With(prometheus.Labels{
		"path":   path,
		"status": strconv.Itoa(status),
	}).Inc()
}

// RecordIntake records metrics from an archived pipeline run
func (ms *MetricsService) RecordIntake(record *model.IntakeRecord) {
	if record == nil {
		return
	}

	// Record token counts per stage
	if record.SummarizerTokens.PromptTokens > 0 {
		ms.promptTokensTotal.With(prometheus.Labels{
			"stage": types.ProviderSummarizer,
		}).Add(float64(record.SummarizerTokens.PromptTokens))
	}

	if record.SummarizerTokens.CompletionTokens > 0 {
		ms.completionTokensTotal.With(prometheus.Labels{
			"stage": types.ProviderSummarizer,
		}).Add(float64(record.SummarizerTokens.CompletionTokens))
	}

	if record.AnalysisTokens.PromptTokens > 0 {
		ms.promptTokensTotal.With(prometheus.Labels{
			"stage": types.ProviderAnalysis,
		}).Add(float64(record.AnalysisTokens.PromptTokens))
	}

	if record.AnalysisTokens.CompletionTokens > 0 {
		ms.completionTokensTotal.With(prometheus.Labels{
			"stage": types.ProviderAnalysis,
		}).Add(float64(record.AnalysisTokens.CompletionTokens))
	}

	// Record latencies
	if record.SummarizerLatency > 0 {
		ms.summarizerLatency.Observe(float64(record.SummarizerLatency))
	}

	if record.AnalysisLatency > 0 {
		ms.analysisLatency.Observe(float64(record.AnalysisLatency))
	}

	if record.TotalLatency > 0 {
		ms.totalLatency.Observe(float64(record.TotalLatency))
	}

	// Record pipeline outcome flags
	if record.AnalysisSkipped {
		ms.analysisSkippedTotal.Inc()
	}

	if !record.AnswerExtracted && !record.AnalysisSkipped && len(record.Error) == 0 {
		ms.answerTagMissingTotal.Inc()
	}

	// Record errors
	for _, entry := range record.Error {
		for errorType := range entry {
			ms.errorsTotal.With(prometheus.Labels{
				"error_type": string(errorType),
			}).Inc()
		}
	}
}

// RecordVoiceSession records the latency of a session initiation
func (ms *MetricsService) RecordVoiceSession(latencyMs int64) {
	if latencyMs > 0 {
		ms.voiceSessionLatency.Observe(float64(latencyMs))
	}
}

// RecordCooldownRejection records a session initiation refused by the cooldown gate
func (ms *MetricsService) RecordCooldownRejection() {
	ms.cooldownRejectionsTotal.Inc()
}

// RecordUpstreamError records a failed upstream provider call
func (ms *MetricsService) RecordUpstreamError(provider, code string) {
	ms.upstreamErrorsTotal.With(prometheus.Labels{
		"provider": provider,
		"code":     code,
	}).Inc()
}
