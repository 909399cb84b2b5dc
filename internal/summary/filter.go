package summary

import (
	"strings"

	"github.com/medvox-ai/intake-pipeline/internal/types"
)

// condensedField pairs a summary content field with its display label.
// notesOnInteraction is interaction metadata, not clinical content, and is
// deliberately absent from this list.
type condensedField struct {
	label string
	value func(*types.StructuredSummary) *string
}

var condensedFields = []condensedField{
	{"Chief Complaint", func(s *types.StructuredSummary) *string { return s.ChiefComplaint }},
	{"History of Present Illness", func(s *types.StructuredSummary) *string { return s.HistoryOfPresentIllness }},
	{"Associated Symptoms", func(s *types.StructuredSummary) *string { return s.AssociatedSymptoms }},
	{"Past Medical History", func(s *types.StructuredSummary) *string { return s.PastMedicalHistory }},
	{"Current Medications", func(s *types.StructuredSummary) *string { return s.Medications }},
	{"Allergies", func(s *types.StructuredSummary) *string { return s.Allergies }},
}

// Condense renders the clinically informative fields of a summary as
// "Label: value" lines in a fixed order. An empty result means the interview
// gathered nothing substantive and there is nothing to analyze.
func Condense(s *types.StructuredSummary) string {
	if s == nil {
		return ""
	}
	var lines []string
	for _, f := range condensedFields {
		v := f.value(s)
		if v == nil || !informative(*v) {
			continue
		}
		lines = append(lines, f.label+": "+*v)
	}
	return strings.Join(lines, "\n")
}

// informative reports whether a field value carries clinical content rather
// than one of the stock phrases the summarizer emits for empty sections.
// Comparison is on the trimmed, lower-cased value with trailing sentence
// periods removed.
func informative(v string) bool {
	key := strings.TrimSpace(strings.ToLower(v))
	key = strings.TrimSpace(strings.TrimRight(key, "."))
	switch key {
	case "",
		"information not gathered",
		"none reported",
		"none reported by patient",
		"no known drug allergies reported",
		"no known drug allergies reported by patient":
		return false
	}
	return true
}
