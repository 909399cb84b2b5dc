package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/medvox-ai/intake-pipeline/internal/types"
)

func TestExtractErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "google style nested message",
			body: `{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`,
			want: "Resource has been exhausted",
		},
		{
			name: "flat error string",
			body: `{"error":"Model is currently loading"}`,
			want: "Model is currently loading",
		},
		{
			name: "fastapi detail",
			body: `{"detail":"Agent already has an active call"}`,
			want: "Agent already has an active call",
		},
		{
			name: "nested message wins over flat paths",
			body: `{"error":{"message":"inner"},"detail":"outer"}`,
			want: "inner",
		},
		{
			name: "non-string error object falls through to raw body",
			body: `{"error":{"code":500}}`,
			want: `{"error":{"code":500}}`,
		},
		{
			name: "plain text body",
			body: `upstream exploded`,
			want: "upstream exploded",
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractErrorMessage([]byte(tt.body))
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtractErrorMessage_TruncatesRawBody(t *testing.T) {
	body := strings.Repeat("x", 500)
	got := extractErrorMessage([]byte(body))
	if len(got) != maxErrorDetailRunes+3 {
		t.Errorf("Expected %d characters, got %d", maxErrorDetailRunes+3, len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected truncation suffix, got %q", got)
	}
}

func TestMentionsMissingModel(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"models/gemini-test is not found for API version v1beta", true},
		{"Model gemini-x does not exist", true},
		{"You do not have permission to access this model", true},
		{"MODEL NOT FOUND", true},
		{"Model is currently loading", false},
		{"The resource was not found", false},
		{"permission denied", false},
		{"", false},
	}

	for _, tt := range tests {
		got := mentionsMissingModel(tt.message)
		if got != tt.want {
			t.Errorf("mentionsMissingModel(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestTruncateDetail(t *testing.T) {
	short := "short detail"
	if got := truncateDetail(short); got != short {
		t.Errorf("Expected short string unchanged, got %q", got)
	}

	exact := strings.Repeat("a", maxErrorDetailRunes)
	if got := truncateDetail(exact); got != exact {
		t.Errorf("Expected string at the limit unchanged, got %d characters", len(got))
	}

	long := strings.Repeat("b", maxErrorDetailRunes+1)
	got := truncateDetail(long)
	if got != strings.Repeat("b", maxErrorDetailRunes)+"..." {
		t.Errorf("Expected truncated string with suffix, got %d characters", len(got))
	}

	multibyte := strings.Repeat("é", maxErrorDetailRunes+50)
	got = truncateDetail(multibyte)
	if got != strings.Repeat("é", maxErrorDetailRunes)+"..." {
		t.Errorf("Expected rune-safe truncation, got %d bytes", len(got))
	}
}

type fakeTimeoutError struct{}

func (fakeTimeoutError) Error() string   { return "dial tcp: i/o timeout" }
func (fakeTimeoutError) Timeout() bool   { return true }
func (fakeTimeoutError) Temporary() bool { return true }

func TestIsTimeout(t *testing.T) {
	if !isTimeout(context.DeadlineExceeded) {
		t.Error("Expected context.DeadlineExceeded to count as a timeout")
	}
	if !isTimeout(fmt.Errorf("request failed: %w", context.DeadlineExceeded)) {
		t.Error("Expected wrapped deadline error to count as a timeout")
	}
	if !isTimeout(fakeTimeoutError{}) {
		t.Error("Expected net.Error with Timeout() to count as a timeout")
	}
	if isTimeout(errors.New("connection refused")) {
		t.Error("Expected plain transport error to not count as a timeout")
	}
	if isTimeout(context.Canceled) {
		t.Error("Expected cancellation to not count as a timeout")
	}
}

func TestErrorMapper_MapTransport(t *testing.T) {
	mapper := errorMapper{
		provider:        types.ProviderSummarizer,
		timeoutMessage:  "Gemini AI service timeout.",
		transportFormat: "Error communicating with Gemini AI service: %s",
	}

	apiErr := mapper.mapTransport(context.DeadlineExceeded)
	if apiErr.Code != types.ErrCodeUpstreamTimeout {
		t.Errorf("Expected timeout code, got %s", apiErr.Code)
	}
	if apiErr.Message != "Gemini AI service timeout." {
		t.Errorf("Unexpected message %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusGatewayTimeout {
		t.Errorf("Expected status 504, got %d", apiErr.StatusCode)
	}

	apiErr = mapper.mapTransport(errors.New("connection refused"))
	if apiErr.Code != types.ErrCodeUpstreamError {
		t.Errorf("Expected upstream error code, got %s", apiErr.Code)
	}
	if apiErr.Message != "Error communicating with Gemini AI service: connection refused" {
		t.Errorf("Unexpected message %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", apiErr.StatusCode)
	}
}

func TestErrorMapper_MapStatus(t *testing.T) {
	mapper := errorMapper{
		provider:        types.ProviderSummarizer,
		model:           "gemini-test",
		timeoutMessage:  "Gemini AI service timeout.",
		transportFormat: "Error communicating with Gemini AI service: %s",
	}

	apiErr := mapper.mapStatus(http.StatusInternalServerError, []byte(`{"error":{"message":"backend unavailable"}}`))
	if apiErr.Code != types.ErrCodeUpstreamError {
		t.Errorf("Expected upstream error code, got %s", apiErr.Code)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected upstream status preserved, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "backend unavailable" {
		t.Errorf("Unexpected message %q", apiErr.Message)
	}

	apiErr = mapper.mapStatus(http.StatusBadRequest, []byte(`{"error":{"message":"model gemini-test does not exist"}}`))
	if apiErr.Code != types.ErrCodeModelNotAvailable {
		t.Errorf("Expected model remap, got %s", apiErr.Code)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", apiErr.StatusCode)
	}
}

func TestErrorMapper_MapStatus_NoModelRemapWithoutModel(t *testing.T) {
	mapper := errorMapper{
		provider:        types.ProviderVoiceSession,
		timeoutMessage:  "Voice AI service timeout.",
		transportFormat: "Error contacting voice AI service: %s",
	}

	apiErr := mapper.mapStatus(http.StatusNotFound, []byte(`{"detail":"model not found"}`))
	if apiErr.Code != types.ErrCodeUpstreamError {
		t.Errorf("Expected plain upstream error for mapper without model, got %s", apiErr.Code)
	}
}
