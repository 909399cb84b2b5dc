package summary

import (
	_ "embed"
	"fmt"
)

// summarizationSystemPrompt instructs the summarizer model to emit the
// seven-field intake record as a bare JSON object.
//
//go:embed prompt_summarization.txt
var summarizationSystemPrompt string

// analysisPromptTemplate wraps the condensed patient block for the clinical
// analysis model. The single %s receives the block.
//
//go:embed prompt_analysis.txt
var analysisPromptTemplate string

const rawJSONReminder = "IMPORTANT REMINDER: Your entire response MUST be a single, valid JSON object. " +
	"Do not include any other text, explanations, or markdown formatting like ```json ... ```. " +
	"Only the raw JSON object is permitted."

// BuildSummaryPrompt assembles the full summarization prompt for a
// transcript, restating the raw-JSON requirement after the transcript text.
func BuildSummaryPrompt(transcript string) string {
	return fmt.Sprintf("%s\n\nTranscript:\n%s\n\n%s", summarizationSystemPrompt, transcript, rawJSONReminder)
}

// BuildAnalysisPrompt embeds a non-empty condensed patient block into the
// clinical analysis template. Callers are expected to skip analysis entirely
// when the block is empty.
func BuildAnalysisPrompt(condensedBlock string) string {
	return fmt.Sprintf(analysisPromptTemplate, condensedBlock)
}
