package model

import (
	"github.com/go-playground/validator/v10"
)

// MaxTextLength bounds each text field of a score request, in characters.
const MaxTextLength = 200000

// ScoreRequest is the JSON body of a text-only scoring request.
// An empty resume is scored, and gets 0.
type ScoreRequest struct {
	ResumeText     string `json:"resume_text" validate:"max=200000"`
	JobDescription string `json:"job_description" validate:"required,max=200000"`
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UploadForm is the job description part of a multipart scoring request.
// The resume itself arrives as the "resume" file part.
type UploadForm struct {
	JobDescription string `form:"job_description" validate:"required,max=200000"`
}

// Validate validates the UploadForm using the validator.
func (f *UploadForm) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}

// KeywordChart is the matched/missing pair for the keyword bar chart.
type KeywordChart struct {
	Matched int `json:"matched"`
	Missing int `json:"missing"`
}

// ScoreBreakdown exposes the components of the blended score.
type ScoreBreakdown struct {
	MatchScore       int     `json:"match_score"`
	CosineSimilarity float64 `json:"cosine_similarity"`
	CommonKeywords   int     `json:"common_keywords"`
}

// ScoreResponse is returned by the scoring endpoints.
type ScoreResponse struct {
	ID                   string         `json:"id"` // unique UUID for this scoring call
	Score                float64        `json:"score"`
	MissingKeywords      []string       `json:"missing_keywords"`
	JobDescriptionTokens []string       `json:"job_description_tokens"`
	Chart                KeywordChart   `json:"chart"`
	Breakdown            ScoreBreakdown `json:"breakdown"`
	Took                 int64          `json:"took"` // milliseconds
}
