package model

import "time"

// ScoreEvent represents a single scoring call for analytics tracking
type ScoreEvent struct {
	ID              string        `json:"id"`
	Source          string        `json:"source"` // "upload" or "text"
	Score           float64       `json:"score"`
	MissingKeywords []string      `json:"missing_keywords"`
	Outcome         string        `json:"outcome"` // "scored", "extraction_failed" or "error"
	ResponseTime    time.Duration `json:"response_time"`
	Timestamp       time.Time     `json:"timestamp"`
}

// Event outcomes
const (
	OutcomeScored           = "scored"
	OutcomeExtractionFailed = "extraction_failed"
	OutcomeError            = "error"
)

// Event sources
const (
	SourceUpload = "upload"
	SourceText   = "text"
)

// MissingKeywordStat counts how often a job keyword was missing from resumes
type MissingKeywordStat struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// ScoreDistribution buckets scores by range
type ScoreDistribution struct {
	Bucket0To25   int `json:"bucket_0_25"`
	Bucket25To50  int `json:"bucket_25_50"`
	Bucket50To75  int `json:"bucket_50_75"`
	Bucket75To100 int `json:"bucket_75_100"`
}

// OutcomeStats counts events per outcome
type OutcomeStats struct {
	Scored           int `json:"scored"`
	ExtractionFailed int `json:"extraction_failed"`
	Errors           int `json:"errors"`
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	TotalScored       int                  `json:"total_scored"`
	ScoredChange      float64              `json:"scored_change_percent"`
	AverageScore      float64              `json:"average_score"`
	AvgResponseTime   int64                `json:"avg_response_time"` // in milliseconds
	Outcomes          OutcomeStats         `json:"outcomes"`
	ScoreDistribution ScoreDistribution    `json:"score_distribution"`
	TopMissing        []MissingKeywordStat `json:"top_missing_keywords"`
	GeneratedAt       time.Time            `json:"generated_at"`
}
