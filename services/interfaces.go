package services

import (
	"io"

	"github.com/gcbaptista/go-ats-score/internal/scoring"
	"github.com/gcbaptista/go-ats-score/model"
)

// Scorer compares a resume with a job description.
type Scorer interface {
	Score(resumeText, jobDescription string) (*scoring.Result, error)
}

// TextExtractor reads the plain text of an uploaded resume. On failure it
// returns the no-text sentinel together with an error.
type TextExtractor interface {
	Extract(name string, r io.Reader) (string, error)
}

// AnalyticsTracker records scoring calls and summarizes them.
type AnalyticsTracker interface {
	TrackScoreEvent(event model.ScoreEvent) error
	GetDashboardData() (model.AnalyticsDashboard, error)
}
