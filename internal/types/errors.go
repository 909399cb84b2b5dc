package types

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType groups failures by where they originate
type ErrorType string

const (
	// ErrUpstream represents failures of an upstream provider call
	ErrUpstream ErrorType = "UpstreamError"

	// ErrPipeline represents failures inside the normalization pipeline
	ErrPipeline ErrorType = "PipelineError"

	// ErrRequest represents caller-side request failures
	ErrRequest ErrorType = "RequestError"

	// ErrServer represents internal server errors
	ErrServer ErrorType = "ServerError"
)

const (
	ErrCodeMisconfigured        = "intake.misconfigured"
	ErrCodeUpstreamTimeout      = "intake.upstream_timeout"
	ErrCodeUpstreamError        = "intake.upstream_error"
	ErrCodeModelNotAvailable    = "intake.model_not_available"
	ErrCodeContentBlocked       = "intake.content_blocked"
	ErrCodeBadUpstreamFormat    = "intake.bad_upstream_format"
	ErrCodeInvalidSummaryFormat = "intake.invalid_summary_format"
	ErrCodeTooManyRequests      = "intake.too_many_requests"
	ErrCodeMissingInput         = "intake.missing_input"
	ErrCodeInternalError        = "intake.internal_error"

	ErrMsgInternalError = "Internal Server Error. Please try again later."
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode,omitempty"`
	Type       string `json:"type,omitempty"`
}

// NewMisconfiguredError reports a missing credential or endpoint. Also used
// as the call-time guard when a client is reached without its configuration.
func NewMisconfiguredError(provider, message string) *APIError {
	return &APIError{
		Code:       ErrCodeMisconfigured,
		Message:    message,
		Success:    false,
		StatusCode: http.StatusServiceUnavailable,
		Type:       provider,
	}
}

// NewUpstreamTimeoutError reports an upstream call that exceeded its deadline.
func NewUpstreamTimeoutError(provider, message string) *APIError {
	return &APIError{
		Code:       ErrCodeUpstreamTimeout,
		Message:    message,
		Success:    false,
		StatusCode: http.StatusGatewayTimeout,
		Type:       provider,
	}
}

// NewUpstreamError reports a non-2xx upstream response, carrying the
// upstream's own status code. Transport failures without a response use 502.
func NewUpstreamError(provider string, statusCode int, message string) *APIError {
	if statusCode == 0 {
		statusCode = http.StatusBadGateway
	}
	return &APIError{
		Code:       ErrCodeUpstreamError,
		Message:    message,
		Success:    false,
		StatusCode: statusCode,
		Type:       provider,
	}
}

// NewModelNotAvailableError reports a model the upstream does not serve.
func NewModelNotAvailableError(provider, model string) *APIError {
	return &APIError{
		Code:       ErrCodeModelNotAvailable,
		Message:    fmt.Sprintf("The AI model '%s' was not found or is not accessible.", model),
		Success:    false,
		StatusCode: http.StatusNotFound,
		Type:       provider,
	}
}

// NewContentBlockedError reports a generation refused by safety filters.
func NewContentBlockedError(reason string) *APIError {
	return &APIError{
		Code:       ErrCodeContentBlocked,
		Message:    fmt.Sprintf("Request blocked by AI safety filters: %s", reason),
		Success:    false,
		StatusCode: http.StatusBadRequest,
		Type:       string(ErrUpstream),
	}
}

// NewBadUpstreamFormatError reports an upstream envelope whose shape did not
// match any known case.
func NewBadUpstreamFormatError(provider, message string) *APIError {
	return &APIError{
		Code:       ErrCodeBadUpstreamFormat,
		Message:    message,
		Success:    false,
		StatusCode: http.StatusBadGateway,
		Type:       provider,
	}
}

// NewInvalidSummaryFormatError reports summarizer output that survived none
// of the parse tiers.
func NewInvalidSummaryFormatError(message string) *APIError {
	return &APIError{
		Code:       ErrCodeInvalidSummaryFormat,
		Message:    message,
		Success:    false,
		StatusCode: http.StatusBadGateway,
		Type:       string(ErrPipeline),
	}
}

// NewTooManyRequestsError reports a session initiation inside the cooldown
// window.
func NewTooManyRequestsError() *APIError {
	return &APIError{
		Code:       ErrCodeTooManyRequests,
		Message:    MsgCooldownActive,
		Success:    false,
		StatusCode: http.StatusTooManyRequests,
		Type:       string(ErrRequest),
	}
}

// NewMissingInputError reports a required request field that was absent.
func NewMissingInputError(message string) *APIError {
	return &APIError{
		Code:       ErrCodeMissingInput,
		Message:    message,
		Success:    false,
		StatusCode: http.StatusBadRequest,
		Type:       string(ErrRequest),
	}
}

// NewInternalError reports an unexpected server-side failure.
func NewInternalError(message string) *APIError {
	if message == "" {
		message = ErrMsgInternalError
	}
	return &APIError{
		Code:       ErrCodeInternalError,
		Message:    message,
		Success:    false,
		StatusCode: http.StatusInternalServerError,
		Type:       string(ErrServer),
	}
}

// AsAPIError returns err as an *APIError, wrapping anything else as an
// internal error so every caller-visible failure carries a status code.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewInternalError(err.Error())
}

func (e *APIError) Error() string {
	return fmt.Sprintf(`{"code":"%s","message":"%s","success":%v}`, e.Code, e.Message, e.Success)
}
