// Package api provides validation utilities for API request handling.
package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/gcbaptista/go-ats-score/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// addValidatorErrors converts validator failures into field errors.
// Any other error is reported against fallbackField.
func (vr *ValidationResult) addValidatorErrors(err error, fallbackField string) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		vr.AddError(fallbackField, err.Error())
		return
	}

	for _, fe := range fieldErrs {
		field := toSnakeCase(fe.Field())
		switch fe.Tag() {
		case "required":
			vr.AddError(field, fmt.Sprintf("%s is required", field))
		case "max":
			vr.AddError(field, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			vr.AddError(field, fmt.Sprintf("%s failed the '%s' check", field, fe.Tag()))
		}
	}
}

// ValidateScoreRequest validates a JSON scoring request
func ValidateScoreRequest(req *model.ScoreRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("request_body", "Score request is required")
		return result
	}

	if err := req.Validate(); err != nil {
		result.addValidatorErrors(err, "request_body")
	}

	return result
}

// ValidateUploadForm validates the text fields of a multipart scoring request
func ValidateUploadForm(form *model.UploadForm) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := form.Validate(); err != nil {
		result.addValidatorErrors(err, "job_description")
		return result
	}

	if strings.TrimSpace(form.JobDescription) == "" {
		result.AddError("job_description", "job_description cannot be empty or whitespace-only")
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// toSnakeCase maps Go field names such as ResumeText to resume_text.
func toSnakeCase(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
