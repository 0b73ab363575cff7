package errors

import (
	"errors"
	"testing"
)

func TestExtractionError(t *testing.T) {
	err := NewExtractionError("resume.pdf", "no pages")

	expectedMsg := "could not extract text from 'resume.pdf': no pages"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	err2 := NewExtractionError("", "empty upload")
	expectedMsg2 := "could not extract text: empty upload"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrExtractionFailed) {
		t.Error("Expected error to match ErrExtractionFailed sentinel")
	}

	if errors.Is(err, ErrScoringFailed) {
		t.Error("Error should not match ErrScoringFailed")
	}
}

func TestScoringError(t *testing.T) {
	err := NewScoringError("tfidf", ErrEmptyVocabulary)

	expectedMsg := "scoring failed during tfidf: " + ErrEmptyVocabulary.Error()
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrScoringFailed) {
		t.Error("Expected error to match ErrScoringFailed sentinel")
	}

	// The cause stays reachable through Unwrap
	if !errors.Is(err, ErrEmptyVocabulary) {
		t.Error("Expected error to match wrapped ErrEmptyVocabulary")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("job_description", "cannot be empty")

	expectedMsg := "validation error for field 'job_description': cannot be empty"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	err2 := NewValidationError("", "cannot be empty")

	expectedMsg2 := "validation error: cannot be empty"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}
	if !errors.Is(err2, ErrInvalidInput) {
		t.Error("Expected error without field to match ErrInvalidInput sentinel")
	}
}

func TestErrorChaining(t *testing.T) {
	originalErr := NewExtractionError("cv.pdf", "scanned image")
	wrappedErr := errors.Join(originalErr, errors.New("additional context"))

	if !errors.Is(wrappedErr, ErrExtractionFailed) {
		t.Error("Expected wrapped error to still match ErrExtractionFailed sentinel")
	}

	var extractionErr *ExtractionError
	if !errors.As(wrappedErr, &extractionErr) {
		t.Error("Expected to be able to unwrap to ExtractionError")
	}

	if extractionErr.Filename != "cv.pdf" {
		t.Errorf("Expected filename 'cv.pdf', got '%s'", extractionErr.Filename)
	}
}
