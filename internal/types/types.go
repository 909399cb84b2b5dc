package types

// StructuredSummary is the seven-field intake summary contract produced by
// the summarizer stage. Every field is a string or null, never omitted: nil
// pointers marshal as explicit JSON nulls.
type StructuredSummary struct {
	ChiefComplaint          *string `json:"chiefComplaint"`
	HistoryOfPresentIllness *string `json:"historyOfPresentIllness"`
	AssociatedSymptoms      *string `json:"associatedSymptoms"`
	PastMedicalHistory      *string `json:"pastMedicalHistory"`
	Medications             *string `json:"medications"`
	Allergies               *string `json:"allergies"`
	NotesOnInteraction      *string `json:"notesOnInteraction"`
}

// SubmitTranscriptRequest is the inbound transcript submission.
type SubmitTranscriptRequest struct {
	Transcript string `json:"transcript"`
	CallID     string `json:"callId,omitempty"`
}

// SubmitTranscriptResponse carries the pipeline outcome. Analysis is null
// when the condensed summary held no informative fields and the analysis
// stage was skipped.
type SubmitTranscriptResponse struct {
	Message  string             `json:"message"`
	Summary  *StructuredSummary `json:"summary"`
	Analysis *string            `json:"analysis"`
}

// InitiateIntakeResponse is returned after a voice call session is created.
type InitiateIntakeResponse struct {
	JoinURL string `json:"joinUrl"`
	CallID  string `json:"callId"`
}

// HealthResponse is the health endpoint body.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
