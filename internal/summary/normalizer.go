package summary

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/medvox-ai/intake-pipeline/internal/logger"
	"github.com/medvox-ai/intake-pipeline/internal/types"
)

// parseStrategy produces one candidate JSON document from raw model output.
// Strategies run in declaration order; the first candidate that decodes into
// the structured record wins.
type parseStrategy struct {
	name      string
	candidate func(raw string) (string, bool)
}

var parseStrategies = []parseStrategy{
	{name: "direct", candidate: directCandidate},
	{name: "strip_code_fence", candidate: fenceCandidate},
	{name: "brace_extract", candidate: braceCandidate},
}

// Normalize turns raw summarizer output into the structured seven-field
// record. The model is instructed to answer with a bare JSON object but
// routinely wraps it in markdown fences or conversational framing, so the
// parse falls back through progressively more aggressive recovery before
// giving up.
func Normalize(raw string) (*types.StructuredSummary, error) {
	for _, strat := range parseStrategies {
		candidate, ok := strat.candidate(raw)
		if !ok {
			continue
		}
		var parsed types.StructuredSummary
		if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
			logger.Debug("summary candidate rejected",
				zap.String("strategy", strat.name),
				zap.Error(err))
			continue
		}
		if strat.name != "direct" {
			logger.Info("summary recovered by fallback parse",
				zap.String("strategy", strat.name))
		}
		return &parsed, nil
	}
	if _, ok := braceCandidate(raw); !ok {
		return nil, types.NewInvalidSummaryFormatError("Medical summary generation failed: no valid JSON found in summarizer response.")
	}
	return nil, types.NewInvalidSummaryFormatError("Medical summary generation failed: summarizer returned malformed JSON.")
}

func directCandidate(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	return trimmed, trimmed != ""
}

// fenceCandidate strips a leading markdown code fence with optional language
// tag, and a trailing fence. Not applicable when the text carries no fence.
func fenceCandidate(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	stripped := stripCodeFence(trimmed)
	return stripped, stripped != trimmed && stripped != ""
}

// braceCandidate slices the fence-stripped text from the first "{" to the
// last "}", the widest span that could hold a JSON object.
func braceCandidate(raw string) (string, bool) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end < start {
		return "", false
	}
	return cleaned[start : end+1], true
}

func stripCodeFence(s string) string {
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimLeft(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
