// Package scoring computes the ATS score of a resume against a job description.
//
// The score blends two signals: a keyword overlap term computed on
// preprocessed, synonym-expanded tokens, and the TF-IDF cosine similarity of
// the raw documents. A Scorer holds only read-only reference data, so a
// single instance can serve concurrent calls.
package scoring

import (
	"math"
	"sort"

	apperrors "github.com/gcbaptista/go-ats-score/internal/errors"
	"github.com/gcbaptista/go-ats-score/internal/stopwords"
	"github.com/gcbaptista/go-ats-score/internal/tfidf"
	"github.com/gcbaptista/go-ats-score/internal/tokenizer"
)

// Weights are the calibration constants of the blend.
type Weights struct {
	OverlapScale float64 `json:"overlap_scale" mapstructure:"overlap-scale"` // multiplier applied to the raw overlap sum
	Overlap      float64 `json:"overlap" mapstructure:"overlap"`             // share of the scaled overlap in the final score
	Cosine       float64 `json:"cosine" mapstructure:"cosine"`               // share of cosine*100 in the final score
}

// DefaultWeights returns the empirically tuned weights.
func DefaultWeights() Weights {
	return Weights{
		OverlapScale: 2.5,
		Overlap:      0.6,
		Cosine:       0.4,
	}
}

// Expander widens a token list with synonyms.
type Expander interface {
	Expand(tokens []string) map[string]struct{}
}

// KeywordSummary is the matched/missing pair shown in the keyword bar chart.
type KeywordSummary struct {
	Matched int `json:"matched"`
	Missing int `json:"missing"`
}

// Result is the outcome of one scoring call.
type Result struct {
	Score                float64        `json:"score"`                  // blended score in [0, 100], two decimals
	MissingKeywords      []string       `json:"missing_keywords"`       // job tokens absent from the resume, sorted
	JobDescriptionTokens []string       `json:"job_description_tokens"` // preprocessed job description, in order
	MatchScore           int            `json:"match_score"`            // raw keyword overlap sum before scaling
	CosineSimilarity     float64        `json:"cosine_similarity"`      // TF-IDF similarity of the raw documents
	CommonKeywords       int            `json:"common_keywords"`        // size of the expanded keyword intersection
	Summary              KeywordSummary `json:"summary"`
}

// Scorer computes ATS scores.
type Scorer struct {
	expander   Expander
	vectorizer *tfidf.Vectorizer
	weights    Weights
}

// NewScorer creates a scorer using the given synonym expander and weights.
func NewScorer(expander Expander, weights Weights) *Scorer {
	return &Scorer{
		expander:   expander,
		vectorizer: tfidf.NewVectorizer(stopwords.TFIDF),
		weights:    weights,
	}
}

// Weights returns the weights the scorer was built with.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score compares a resume with a job description.
//
// When either text has no tokens after preprocessing the result has a zero
// score and no missing keywords; that case is not an error. Any other
// failure is returned as a ScoringError and no partial result is produced.
func (s *Scorer) Score(resumeText, jobDescription string) (*Result, error) {
	resumeTokens := tokenizer.Preprocess(resumeText)
	jobTokens := tokenizer.Preprocess(jobDescription)

	expandedResume := s.expander.Expand(resumeTokens)
	expandedJob := s.expander.Expand(jobTokens)

	resumeCounts := tokenizer.Counts(resumeTokens)
	jobCounts := tokenizer.Counts(jobTokens)

	common := intersect(expandedResume, expandedJob)

	// Keys reached only through expansion have a zero count on one side
	matchScore := 0
	for keyword := range common {
		matchScore += resumeCounts[keyword] * jobCounts[keyword]
	}

	if len(resumeTokens) == 0 || len(jobTokens) == 0 {
		missing := []string{}
		return &Result{
			Score:                0.0,
			MissingKeywords:      missing,
			JobDescriptionTokens: jobTokens,
			MatchScore:           matchScore,
			CommonKeywords:       len(common),
			Summary:              summarize(jobTokens, missing),
		}, nil
	}

	scaledMatchScore := float64(matchScore) * s.weights.OverlapScale

	cosineSim, err := s.vectorizer.Similarity(resumeText, jobDescription)
	if err != nil {
		return nil, apperrors.NewScoringError("tf-idf vectorization", err)
	}

	weightedScore := scaledMatchScore*s.weights.Overlap + cosineSim*100*s.weights.Cosine
	normalizedScore := roundTo(clamp(weightedScore, 0, 100), 2)

	// Raw tokens on both sides: a synonym in the resume does not cover a job keyword here
	missing := missingKeywords(jobTokens, resumeTokens)

	return &Result{
		Score:                normalizedScore,
		MissingKeywords:      missing,
		JobDescriptionTokens: jobTokens,
		MatchScore:           matchScore,
		CosineSimilarity:     cosineSim,
		CommonKeywords:       len(common),
		Summary:              summarize(jobTokens, missing),
	}, nil
}

func intersect(a, b map[string]struct{}) map[string]struct{} {
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make(map[string]struct{})
	for k := range a {
		if _, ok := b[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

// missingKeywords returns the distinct job tokens that never occur in the resume, sorted.
func missingKeywords(jobTokens, resumeTokens []string) []string {
	resumeSet := tokenizer.Unique(resumeTokens)

	missing := make([]string, 0)
	for token := range tokenizer.Unique(jobTokens) {
		if _, ok := resumeSet[token]; !ok {
			missing = append(missing, token)
		}
	}
	sort.Strings(missing)
	return missing
}

func summarize(jobTokens, missing []string) KeywordSummary {
	unique := len(tokenizer.Unique(jobTokens))
	return KeywordSummary{
		Matched: unique - len(missing),
		Missing: len(missing),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
