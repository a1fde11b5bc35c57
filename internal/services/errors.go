package services

import (
	"fmt"

	"alfredoptarigan/interview-practice/internal/models"
)

// UnsupportedFormatError is returned when a document is neither PDF nor DOCX.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q: please upload a PDF or DOCX file", e.Format)
}

// ExtractionError wraps a failure of the underlying document library.
type ExtractionError struct {
	Format DocumentFormat
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ServiceError is an outright failure of an external generation or
// transcription call (transport, auth, rate limit, timeout).
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service call failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// GenerationError is a ServiceError raised while generating questions.
type GenerationError struct {
	Round models.RoundType
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate %s questions: %v", e.Round, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// EvaluationError is a ServiceError raised while evaluating an answer.
type EvaluationError struct {
	QuestionID string
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("failed to evaluate answer for question %s: %v", e.QuestionID, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// MalformedReplyError never leaves this package: codecs absorb it through
// their text fallback.
type MalformedReplyError struct {
	Raw string
	Err error
}

func (e *MalformedReplyError) Error() string {
	return fmt.Sprintf("malformed generation reply: %v", e.Err)
}

func (e *MalformedReplyError) Unwrap() error { return e.Err }
