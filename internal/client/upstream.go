package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/medvox-ai/intake-pipeline/internal/types"
)

const maxErrorDetailRunes = 200

// errorMapper holds the per-provider strings used to translate transport and
// status failures into typed errors.
type errorMapper struct {
	provider        string
	model           string
	timeoutMessage  string
	transportFormat string
}

// mapTransport converts a failed round trip, one with no upstream response,
// into a typed error.
func (m errorMapper) mapTransport(err error) *types.APIError {
	if isTimeout(err) {
		return types.NewUpstreamTimeoutError(m.provider, m.timeoutMessage)
	}
	return types.NewUpstreamError(m.provider, 0, fmt.Sprintf(m.transportFormat, truncateDetail(err.Error())))
}

// mapStatus converts a non-2xx upstream response into a typed error. Bodies
// that complain about the model itself become ModelNotAvailable.
func (m errorMapper) mapStatus(statusCode int, body []byte) *types.APIError {
	message := extractErrorMessage(body)
	if m.model != "" && mentionsMissingModel(message) {
		return types.NewModelNotAvailableError(m.provider, m.model)
	}
	return types.NewUpstreamError(m.provider, statusCode, message)
}

// isTimeout reports whether a transport error was a deadline problem, either
// the per-client timeout or a caller context deadline.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// extractErrorMessage pulls a human-readable message out of an upstream error
// body. Providers disagree on shape: google-style {"error":{"message":...}},
// inference-endpoint-style {"error":...}, FastAPI-style {"detail":...}. Raw
// text fallbacks are truncated.
func extractErrorMessage(body []byte) string {
	root := gjson.ParseBytes(body)
	for _, path := range []string{"error.message", "error", "detail"} {
		if v := root.Get(path); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return truncateDetail(string(body))
}

func mentionsMissingModel(message string) bool {
	m := strings.ToLower(message)
	if !strings.Contains(m, "model") {
		return false
	}
	return strings.Contains(m, "not found") ||
		strings.Contains(m, "does not exist") ||
		strings.Contains(m, "permission")
}

func truncateDetail(s string) string {
	runes := []rune(s)
	if len(runes) <= maxErrorDetailRunes {
		return s
	}
	return string(runes[:maxErrorDetailRunes]) + "..."
}
