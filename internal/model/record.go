package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/medvox-ai/intake-pipeline/internal/types"
)

// IdentityContextKey is the request-context key holding the caller Identity.
const IdentityContextKey = "intake-identity"

// Identity describes who triggered a pipeline run.
type Identity struct {
	RequestID string `json:"request_id"`
	Requester string `json:"requester"`
	ClientIP  string `json:"client_ip,omitempty"`
}

// TokenStats represents token statistics for a single model call
type TokenStats struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// IntakeRecord represents a single pipeline run for archival. It carries
// timing, token and outcome telemetry only. Transcript, summary and analysis
// text never enter the record.
type IntakeRecord struct {
	Identity  Identity  `json:"identity"`
	Timestamp time.Time `json:"timestamp"`
	Endpoint  string    `json:"endpoint"`
	CallID    string    `json:"call_id,omitempty"`

	// Token statistics
	SummarizerTokens TokenStats `json:"summarizer_tokens"`
	AnalysisTokens   TokenStats `json:"analysis_tokens"`

	// Pipeline flags
	AnalysisSkipped   bool `json:"analysis_skipped"`
	AnswerExtracted   bool `json:"answer_extracted"`
	InformativeFields int  `json:"informative_fields"`

	// Latency metrics (in milliseconds)
	SummarizerLatency int64 `json:"summarizer_latency_ms"`
	AnalysisLatency   int64 `json:"analysis_latency_ms"`
	TotalLatency      int64 `json:"total_latency_ms"`

	StatusCode int `json:"status_code"`

	// Error information
	Error []map[types.ErrorType]string `json:"error,omitempty"`
}

// toStringJSON converts the record to indented JSON string
func (r *IntakeRecord) toStringJSON(indent string) (string, error) {
	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	err := encoder.Encode(r)
	if err != nil {
		return "", err
	}
	// Remove the newline added by Encode()
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ToCompressedJSON converts the record to JSON string
func (r *IntakeRecord) ToCompressedJSON() (string, error) {
	return r.toStringJSON("")
}

// ToPrettyJSON Using 2 spaces for compact yet readable indentation (standard JSON formatting practice)
func (r *IntakeRecord) ToPrettyJSON() (string, error) {
	return r.toStringJSON("  ")
}

// FromJSON creates an IntakeRecord from JSON string
func FromJSON(jsonStr string) (*IntakeRecord, error) {
	var record IntakeRecord
	err := json.Unmarshal([]byte(jsonStr), &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// AddError adds an error entry with type and message to the record
func (r *IntakeRecord) AddError(errorType types.ErrorType, err error) {
	if r.Error == nil {
		r.Error = make([]map[types.ErrorType]string, 0)
	}
	r.Error = append(r.Error, map[types.ErrorType]string{
		errorType: err.Error(),
	})
}
