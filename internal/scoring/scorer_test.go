package scoring

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gcbaptista/go-ats-score/internal/errors"
	"github.com/gcbaptista/go-ats-score/internal/lexicon"
)

// uniqueIDF is the smoothed idf of a term found in one of two documents.
var uniqueIDF = math.Log(1.5) + 1

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	lex, err := lexicon.Default()
	require.NoError(t, err)
	return NewScorer(lex, DefaultWeights())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 2.5, w.OverlapScale)
	assert.Equal(t, 0.6, w.Overlap)
	assert.Equal(t, 0.4, w.Cosine)
}

func TestScorePythonDeveloper(t *testing.T) {
	scorer := newTestScorer(t)

	result, err := scorer.Score("python developer with five years experience", "looking for python developer")
	require.NoError(t, err)

	assert.Equal(t, []string{"looking", "python", "developer"}, result.JobDescriptionTokens)
	assert.Equal(t, 2, result.MatchScore)
	assert.Equal(t, []string{"looking"}, result.MissingKeywords)

	// resume terms: developer, experience, python, years; job terms: developer, looking, python
	u2 := uniqueIDF * uniqueIDF
	expectedCosine := 2 / (math.Sqrt(2+2*u2) * math.Sqrt(2+u2))
	assert.InDelta(t, expectedCosine, result.CosineSimilarity, 1e-9)

	expected := round2(2*2.5*0.6 + expectedCosine*100*0.4)
	assert.InDelta(t, expected, result.Score, 1e-9)
	assert.Equal(t, KeywordSummary{Matched: 2, Missing: 1}, result.Summary)
}

func TestScoreEmptyResume(t *testing.T) {
	scorer := newTestScorer(t)

	result, err := scorer.Score("", "anything")
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Score)
	assert.Empty(t, result.MissingKeywords)
	assert.NotNil(t, result.MissingKeywords)
	assert.Equal(t, []string{"anything"}, result.JobDescriptionTokens)
	assert.Equal(t, KeywordSummary{Matched: 1, Missing: 0}, result.Summary)
}

func TestScoreDegenerateInputs(t *testing.T) {
	scorer := newTestScorer(t)

	tests := []struct {
		name    string
		resume  string
		job     string
		matched int
	}{
		{"empty job description", "python developer", "", 0},
		{"stopword-only resume", "the and of", "python developer", 2},
		{"digits-only job description", "python developer", "2024 100", 0},
		{"punctuation-only resume", "!!! ???", "python developer", 2},
		{"contraction-only resume", "cannot", "python developer python", 2},
		{"both empty", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(tt.resume, tt.job)
			require.NoError(t, err)
			assert.Equal(t, 0.0, result.Score)
			assert.Empty(t, result.MissingKeywords)
			// Chart pair is |set(job tokens)| - |missing| and |missing|
			assert.Equal(t, KeywordSummary{Matched: tt.matched, Missing: 0}, result.Summary)
		})
	}
}

func TestScoreIdenticalDocuments(t *testing.T) {
	scorer := newTestScorer(t)
	text := "golang kubernetes docker microservices"

	result, err := scorer.Score(text, text)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.CosineSimilarity, 1e-9)
	assert.Empty(t, result.MissingKeywords)
	assert.Equal(t, 4, result.MatchScore)
	// 4 * 2.5 * 0.6 + 100 * 0.4
	assert.Equal(t, 46.0, result.Score)
}

func TestScoreClampedAtHundred(t *testing.T) {
	scorer := newTestScorer(t)
	text := strings.Repeat("golang ", 50)

	result, err := scorer.Score(text, text)
	require.NoError(t, err)

	assert.Equal(t, 2500, result.MatchScore)
	assert.Equal(t, 100.0, result.Score)
}

func TestScoreTypographicQuotes(t *testing.T) {
	scorer := newTestScorer(t)

	result, err := scorer.Score("shipped “python” services", "python services")
	require.NoError(t, err)

	assert.Empty(t, result.MissingKeywords)
	assert.Equal(t, 2, result.MatchScore)
	assert.Equal(t, KeywordSummary{Matched: 2, Missing: 0}, result.Summary)
}

func TestSynonymsDoNotCoverMissingKeywords(t *testing.T) {
	scorer := newTestScorer(t)

	result, err := scorer.Score("python coder", "python programmer")
	require.NoError(t, err)

	// coder and programmer share a synset, so the expanded sets overlap beyond python
	assert.Greater(t, result.CommonKeywords, 1)
	assert.Equal(t, 1, result.MatchScore)
	assert.Greater(t, result.Score, 0.0)

	// but the literal job keyword is still reported as missing
	assert.Equal(t, []string{"programmer"}, result.MissingKeywords)

	expectedCosine := 1 / (1 + uniqueIDF*uniqueIDF)
	assert.InDelta(t, round2(1*2.5*0.6+expectedCosine*100*0.4), result.Score, 1e-9)
}

func TestMissingKeywordsSubsetOfJobTokens(t *testing.T) {
	scorer := newTestScorer(t)

	result, err := scorer.Score(
		"Backend engineer: Go, PostgreSQL, Redis. Built CI/CD pipelines.",
		"We need a senior backend engineer with Go, Kafka, Kubernetes and Terraform experience.",
	)
	require.NoError(t, err)

	jobSet := make(map[string]bool)
	for _, tok := range result.JobDescriptionTokens {
		jobSet[tok] = true
	}
	for _, kw := range result.MissingKeywords {
		assert.True(t, jobSet[kw], "missing keyword %q is not a job token", kw)
	}
	assert.ElementsMatch(t, []string{"need", "senior", "kafka", "kubernetes", "terraform", "experience"}, result.MissingKeywords)
	assert.Equal(t, len(jobSet)-len(result.MissingKeywords), result.Summary.Matched)
}

func TestScoreRangeAndRounding(t *testing.T) {
	scorer := newTestScorer(t)

	pairs := [][2]string{
		{"python developer", "java developer"},
		{"accounting finance excel", "golang kubernetes"},
		{"Managed a team of five engineers building web applications", "Engineering manager to lead a web team"},
		{"sql sql sql database", "sql database administrator"},
		{"rust", "rust rust rust rust"},
	}

	for _, p := range pairs {
		result, err := scorer.Score(p[0], p[1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Score, 0.0)
		assert.LessOrEqual(t, result.Score, 100.0)
		assert.InDelta(t, round2(result.Score), result.Score, 1e-9)
	}
}

func TestScoreIdempotent(t *testing.T) {
	scorer := newTestScorer(t)
	resume := "Senior Go developer, 7 years building distributed systems on AWS"
	job := "Looking for a Go engineer with distributed systems and cloud experience"

	first, err := scorer.Score(resume, job)
	require.NoError(t, err)
	second, err := scorer.Score(resume, job)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMatchScoreMonotonic(t *testing.T) {
	lex, err := lexicon.Default()
	require.NoError(t, err)

	// Without the cosine term the blend depends on the overlap alone
	overlapOnly := NewScorer(lex, Weights{OverlapScale: 2.5, Overlap: 0.6, Cosine: 0})
	job := "python developer"

	previousMatch, previousScore := -1, -1.0
	for repeats := 1; repeats <= 4; repeats++ {
		resume := strings.Repeat("python ", repeats) + "developer"
		result, err := overlapOnly.Score(resume, job)
		require.NoError(t, err)

		assert.Greater(t, result.MatchScore, previousMatch)
		assert.GreaterOrEqual(t, result.Score, previousScore)
		previousMatch, previousScore = result.MatchScore, result.Score
	}
}

func TestScoreVectorizerFailure(t *testing.T) {
	scorer := newTestScorer(t)

	// Both sides keep a one-letter token, which the TF-IDF analyzer ignores
	result, err := scorer.Score("x", "z")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrScoringFailed)
	assert.ErrorIs(t, err, apperrors.ErrEmptyVocabulary)

	// The scorer stays usable afterwards
	_, err = scorer.Score("python", "python")
	assert.NoError(t, err)
}

type noExpansion struct{}

func (noExpansion) Expand(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func TestExpansionDoesNotChangeMatchScore(t *testing.T) {
	withSynonyms := newTestScorer(t)
	plain := NewScorer(noExpansion{}, DefaultWeights())

	resume, job := "experienced programmer managing projects", "coder experience manage project"

	a, err := withSynonyms.Score(resume, job)
	require.NoError(t, err)
	b, err := plain.Score(resume, job)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, a.CommonKeywords, b.CommonKeywords)
	assert.Equal(t, b.MatchScore, a.MatchScore)
	assert.Equal(t, b.MissingKeywords, a.MissingKeywords)
	assert.Equal(t, b.Score, a.Score)
}
