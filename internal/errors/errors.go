package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrExtractionFailed is returned when no usable text could be read from an uploaded resume
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrEmptyVocabulary is returned when the TF-IDF vectorizer finds no terms in any document
	ErrEmptyVocabulary = errors.New("empty vocabulary; perhaps the documents only contain stop words")

	// ErrScoringFailed is returned when a scoring call fails for an unexpected reason
	ErrScoringFailed = errors.New("scoring failed")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrLexiconUnavailable is returned when the lexical database cannot be loaded
	ErrLexiconUnavailable = errors.New("lexicon unavailable")
)

// ExtractionError represents a failed resume extraction with context
type ExtractionError struct {
	Filename string
	Reason   string
}

func (e *ExtractionError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("could not extract text from '%s': %s", e.Filename, e.Reason)
	}
	return fmt.Sprintf("could not extract text: %s", e.Reason)
}

func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtractionFailed
}

// NewExtractionError creates a new ExtractionError
func NewExtractionError(filename, reason string) *ExtractionError {
	return &ExtractionError{Filename: filename, Reason: reason}
}

// ScoringError wraps an unexpected failure inside a single scoring call
type ScoringError struct {
	Stage string
	Err   error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring failed during %s: %v", e.Stage, e.Err)
}

func (e *ScoringError) Is(target error) bool {
	return target == ErrScoringFailed
}

func (e *ScoringError) Unwrap() error {
	return e.Err
}

// NewScoringError creates a new ScoringError
func NewScoringError(stage string, err error) *ScoringError {
	return &ScoringError{Stage: stage, Err: err}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
