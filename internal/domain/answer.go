package domain

// Confidence constants for the composed answer. The grounded value is a fixed
// heuristic, not a derived estimate; nothing in the system computes confidence
// per answer.
const (
	// ConfidenceNone is used for out-of-scope and degraded answers.
	ConfidenceNone = 0.0
	// ConfidenceNoMatch caps the in-scope-but-unanswered confidence.
	ConfidenceNoMatch = 0.1
	// ConfidenceGroundedDefault is the default confidence for grounded answers.
	ConfidenceGroundedDefault = 0.85
)

// AnswerResult is the final per-question outcome.
//
// Invariants: InScope == false implies Confidence == 0 and no citations;
// InScope == true with no citations implies Confidence <= ConfidenceNoMatch.
// The constructors below are the only way answers are built, which keeps the
// invariants by construction.
type AnswerResult struct {
	AnswerText     string
	InScope        bool
	CitedRecordIDs []int64
	Confidence     float64
}

// OutOfScopeAnswer builds the answer for a question outside every domain.
func OutOfScopeAnswer(text string) AnswerResult {
	return AnswerResult{
		AnswerText: text,
		InScope:    false,
		Confidence: ConfidenceNone,
	}
}

// NoMatchAnswer builds the in-scope answer when no record matched.
func NoMatchAnswer(text string) AnswerResult {
	return AnswerResult{
		AnswerText: text,
		InScope:    true,
		Confidence: ConfidenceNoMatch,
	}
}

// GroundedAnswer builds an answer cited against the given record ids.
func GroundedAnswer(text string, citedIDs []int64, confidence float64) AnswerResult {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return AnswerResult{
		AnswerText:     text,
		InScope:        true,
		CitedRecordIDs: citedIDs,
		Confidence:     confidence,
	}
}

// DegradedAnswer builds the in-scope answer used when generation failed.
func DegradedAnswer(text string) AnswerResult {
	return AnswerResult{
		AnswerText: text,
		InScope:    true,
		Confidence: ConfidenceNone,
	}
}
