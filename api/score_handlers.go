package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-ats-score/internal/extraction"
	"github.com/gcbaptista/go-ats-score/internal/logger"
	"github.com/gcbaptista/go-ats-score/internal/scoring"
	"github.com/gcbaptista/go-ats-score/model"
)

// ScoreTextHandler scores a resume given as plain text against a job description.
func (api *API) ScoreTextHandler(c *gin.Context) {
	startTime := time.Now()

	var req model.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if limit, tooLarge := bodyTooLarge(err); tooLarge {
			SendPayloadTooLargeError(c, limit)
			return
		}
		SendInvalidJSONError(c, err)
		return
	}

	if validation := ValidateScoreRequest(&req); validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}

	id := uuid.NewString()
	result, err := api.scorer.Score(req.ResumeText, req.JobDescription)
	took := time.Since(startTime)
	if err != nil {
		api.trackFailure(c, id, model.SourceText, model.OutcomeError, took, err)
		SendScoringError(c, err)
		return
	}
	api.trackResult(id, model.SourceText, result, took)

	c.JSON(http.StatusOK, buildScoreResponse(id, result, took))
}

// ScoreUploadHandler scores an uploaded PDF resume against a job description.
// Browsers asking for text/html get the rendered result page, everyone else JSON.
func (api *API) ScoreUploadHandler(c *gin.Context) {
	startTime := time.Now()
	wantsHTML := c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML

	var form model.UploadForm
	if err := c.ShouldBind(&form); err != nil {
		if limit, tooLarge := bodyTooLarge(err); tooLarge {
			api.respondError(c, wantsHTML, http.StatusRequestEntityTooLarge, ErrorCodePayloadTooLarge,
				"Request body exceeds the limit of "+formatBytes(limit))
			return
		}
		api.respondError(c, wantsHTML, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Invalid form data: "+err.Error())
		return
	}

	if validation := ValidateUploadForm(&form); validation.HasErrors() {
		if wantsHTML {
			api.respondError(c, true, http.StatusBadRequest, ErrorCodeValidationFailed, validation.Errors[0].Message)
			return
		}
		SendValidationError(c, validation)
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		if wantsHTML {
			api.respondError(c, true, http.StatusBadRequest, ErrorCodeMissingResume, "Please choose a PDF resume to upload.")
			return
		}
		SendMissingResumeError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		api.respondError(c, wantsHTML, http.StatusBadRequest, ErrorCodeMissingResume,
			"Could not open the uploaded resume: "+err.Error())
		return
	}
	defer file.Close()

	id := uuid.NewString()
	resumeText, err := api.extractor.Extract(fileHeader.Filename, file)
	if err != nil || extraction.IsNoText(resumeText) {
		took := time.Since(startTime)
		api.trackFailure(c, id, model.SourceUpload, model.OutcomeExtractionFailed, took, err)
		if wantsHTML {
			api.respondError(c, true, http.StatusUnprocessableEntity, ErrorCodeExtractionFailed, extraction.NoTextMessage)
			return
		}
		SendExtractionError(c, extraction.NoTextMessage, err)
		return
	}

	result, err := api.scorer.Score(resumeText, form.JobDescription)
	took := time.Since(startTime)
	if err != nil {
		api.trackFailure(c, id, model.SourceUpload, model.OutcomeError, took, err)
		if wantsHTML {
			api.respondError(c, true, http.StatusInternalServerError, ErrorCodeScoringFailed,
				"Could not score the resume: "+err.Error())
			return
		}
		SendScoringError(c, err)
		return
	}
	api.trackResult(id, model.SourceUpload, result, took)

	api.logger.Debug("scored upload",
		zap.String("id", id),
		zap.String("file", fileHeader.Filename),
		zap.String("resume", logger.TruncateForLog(resumeText, 80)),
		zap.Float64("score", result.Score),
	)

	response := buildScoreResponse(id, result, took)
	if wantsHTML {
		c.HTML(http.StatusOK, "result.html", gin.H{
			"Filename": fileHeader.Filename,
			"Result":   response,
		})
		return
	}
	c.JSON(http.StatusOK, response)
}

// respondError writes an error as the index page when the caller wants HTML
// and as the standard JSON error body otherwise.
func (api *API) respondError(c *gin.Context, wantsHTML bool, status int, code ErrorCode, message string) {
	if !wantsHTML {
		SendError(c, status, code, message)
		return
	}
	c.HTML(status, "index.html", gin.H{
		"Error": message,
		"Code":  string(code),
	})
}

func (api *API) trackResult(id, source string, result *scoring.Result, took time.Duration) {
	event := model.ScoreEvent{
		ID:              id,
		Source:          source,
		Score:           result.Score,
		MissingKeywords: result.MissingKeywords,
		Outcome:         model.OutcomeScored,
		ResponseTime:    took,
	}
	if err := api.analytics.TrackScoreEvent(event); err != nil {
		api.logger.Warn("failed to track score event", zap.String("id", id), zap.Error(err))
	}
}

func (api *API) trackFailure(c *gin.Context, id, source, outcome string, took time.Duration, cause error) {
	if cause != nil {
		_ = c.Error(cause)
	}
	event := model.ScoreEvent{
		ID:           id,
		Source:       source,
		Outcome:      outcome,
		ResponseTime: took,
	}
	if err := api.analytics.TrackScoreEvent(event); err != nil {
		api.logger.Warn("failed to track score event", zap.String("id", id), zap.Error(err))
	}
}

func buildScoreResponse(id string, result *scoring.Result, took time.Duration) model.ScoreResponse {
	return model.ScoreResponse{
		ID:                   id,
		Score:                result.Score,
		MissingKeywords:      result.MissingKeywords,
		JobDescriptionTokens: result.JobDescriptionTokens,
		Chart: model.KeywordChart{
			Matched: result.Summary.Matched,
			Missing: result.Summary.Missing,
		},
		Breakdown: model.ScoreBreakdown{
			MatchScore:       result.MatchScore,
			CosineSimilarity: result.CosineSimilarity,
			CommonKeywords:   result.CommonKeywords,
		},
		Took: took.Milliseconds(),
	}
}

// bodyTooLarge reports whether err came from the request size limit.
func bodyTooLarge(err error) (int64, bool) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return maxErr.Limit, true
	}
	return 0, false
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
