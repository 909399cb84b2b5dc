package types

const (
	// ProviderSummarizer identifies the JSON-summarizer upstream
	ProviderSummarizer = "summarizer"

	// ProviderAnalysis identifies the free-text clinical-analysis upstream
	ProviderAnalysis = "analysis"

	// ProviderVoiceSession identifies the voice call-session upstream
	ProviderVoiceSession = "voice-session"
)

const (
	// Request headers
	HeaderRequestId     = "X-Request-ID"
	HeaderAuthorization = "Authorization"
)

const (
	// MsgTranscriptProcessed is returned when both pipeline stages completed
	MsgTranscriptProcessed = "Transcript processed successfully."

	// MsgAnalysisSkipped is returned when the condensed block was empty and
	// the analysis stage was not invoked
	MsgAnalysisSkipped = "Summary generated. Clinical analysis skipped due to insufficient data."

	// MsgCooldownActive is returned when session initiation hits the cooldown
	MsgCooldownActive = "Please wait a moment before starting another interview. Try again in a few seconds."

	// MsgMissingTranscript is returned when a submission carries no transcript
	MsgMissingTranscript = "Missing transcript data."

	// MsgSummarizerNotConfigured is returned when the summarizer API key is
	// absent at call time
	MsgSummarizerNotConfigured = "Gemini AI service is not configured (API key missing at call time)."

	// MsgAnalysisNotConfigured is returned when the analysis endpoint or token
	// is absent at call time
	MsgAnalysisNotConfigured = "HF Inference service is not configured (config missing at call time)."

	// MsgVoiceSessionNotReady is returned when the call-session API key is
	// absent at call time
	MsgVoiceSessionNotReady = "Service temporarily unavailable: Voice AI service not ready."

	// MsgHealthOK is the health endpoint body message
	MsgHealthOK = "AI Medical Intake Backend is running."
)

// AnswerTagName delimits the clinical-analysis response region.
const AnswerTagName = "answer"
