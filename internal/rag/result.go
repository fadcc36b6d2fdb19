// Package rag implements the grounded question-answering pipeline:
// retrieval, the confidence gate, deterministic answer extraction, and
// citation formatting. Answers are produced by pattern extraction from
// retrieved context, never free-form generation.
package rag

// Outcome tags the result of a pipeline run so callers can branch without
// inspecting message strings.
type Outcome string

const (
	// OutcomeAnswered means the gate passed and an answer was extracted.
	OutcomeAnswered Outcome = "answered"

	// OutcomeAbstain means retrieval confidence was too low to answer.
	// This is a deliberate "I don't know", not a failure.
	OutcomeAbstain Outcome = "abstain"

	// OutcomeNoData means required persisted state (the index) is missing.
	OutcomeNoData Outcome = "no_data"

	// OutcomeError means a pipeline stage failed unexpectedly; the result
	// still carries a safe default response.
	OutcomeError Outcome = "error"
)

// Citation is a user-facing reference to a chunk's source.
type Citation struct {
	Title string `json:"title"`
	// Page is the source page number, or "N/A" when unknown.
	Page  any     `json:"page"`
	Score float64 `json:"score"` // Normalized to [0,1], rounded to 3 decimals
}

// AskResult is the combined response for a question.
type AskResult struct {
	Outcome   Outcome    `json:"outcome"`
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

// User-visible messages for the non-answer outcomes.
const (
	abstainMessage = "I don't know the answer to that question based on the available documents. " +
		"Please try rephrasing your question or asking about topics covered in the technical manuals."
	errorMessage   = "I encountered an error processing your question. Please try again."
	noIndexMessage = "No document index is available. Ingest manuals and build the index before asking questions."
	noInfoMessage  = "No relevant information found in the documents."
)
