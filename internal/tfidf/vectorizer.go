// Package tfidf builds TF-IDF document vectors over a shared vocabulary and
// compares them with cosine similarity.
package tfidf

import (
	"math"
	"sort"

	apperrors "github.com/gcbaptista/go-ats-score/internal/errors"
	"github.com/gcbaptista/go-ats-score/internal/stopwords"
	"github.com/gcbaptista/go-ats-score/internal/tokenizer"
)

// Vector is a dense document vector indexed by vocabulary column.
type Vector []float64

// Matrix holds the vectors of a jointly fitted document collection.
type Matrix struct {
	Vocabulary map[string]int // term -> column index, assigned in sorted term order
	IDF        []float64      // smoothed IDF per column
	Rows       []Vector       // one L2-normalized vector per document
}

// Vectorizer turns documents into TF-IDF vectors.
type Vectorizer struct {
	stopWords stopwords.Set
}

// NewVectorizer creates a vectorizer that drops the given stopwords.
// A nil set keeps every term.
func NewVectorizer(stop stopwords.Set) *Vectorizer {
	return &Vectorizer{stopWords: stop}
}

// FitTransform learns the vocabulary and IDF weights from docs and returns
// their vectors. All documents share one basis, so rows are comparable.
// It fails with ErrEmptyVocabulary when no document contains any term.
func (v *Vectorizer) FitTransform(docs []string) (*Matrix, error) {
	termCounts := make([]map[string]int, len(docs))
	docFreq := make(map[string]int)

	for i, doc := range docs {
		counts := tokenizer.Counts(tokenizer.Analyze(doc, v.stopWords))
		termCounts[i] = counts
		for term := range counts {
			docFreq[term]++
		}
	}

	if len(docFreq) == 0 {
		return nil, apperrors.ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	matrix := &Matrix{
		Vocabulary: make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
		Rows:       make([]Vector, len(docs)),
	}

	totalDocs := float64(len(docs))
	for col, term := range terms {
		matrix.Vocabulary[term] = col
		matrix.IDF[col] = calculateIDF(totalDocs, float64(docFreq[term]))
	}

	for i, counts := range termCounts {
		row := make(Vector, len(terms))
		for term, count := range counts {
			col := matrix.Vocabulary[term]
			row[col] = float64(count) * matrix.IDF[col]
		}
		matrix.Rows[i] = row.Normalize()
	}

	return matrix, nil
}

// calculateIDF calculates the smoothed inverse document frequency
// IDF = ln((1 + N) / (1 + df)) + 1
// The added ones behave as if an extra document contained every term once,
// so no term gets a zero or infinite weight.
func calculateIDF(totalDocs, docFreq float64) float64 {
	return math.Log((1+totalDocs)/(1+docFreq)) + 1
}

// Norm returns the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Normalize returns a unit-length copy of the vector. A zero vector stays zero.
func (v Vector) Normalize() Vector {
	norm := v.Norm()
	out := make(Vector, len(v))
	if norm == 0 {
		return out
	}
	for col, w := range v {
		out[col] = w / norm
	}
	return out
}

// Dot returns the dot product of two vectors. Columns missing from the
// shorter vector count as zero.
func (v Vector) Dot(other Vector) float64 {
	n := min(len(v), len(other))
	var sum float64
	for col := 0; col < n; col++ {
		sum += v[col] * other[col]
	}
	return sum
}

// CosineSimilarity returns the cosine of the angle between a and b, in [0, 1]
// for non-negative vectors. It is 0 when either vector is zero.
func CosineSimilarity(a, b Vector) float64 {
	normA, normB := a.Norm(), b.Norm()
	if normA == 0 || normB == 0 {
		return 0.0
	}
	sim := a.Dot(b) / (normA * normB)
	// Rounding can push identical vectors just past 1
	return math.Min(1.0, math.Max(0.0, sim))
}

// Similarity fits a vectorizer on the two documents and returns the cosine
// similarity of their vectors.
func (v *Vectorizer) Similarity(docA, docB string) (float64, error) {
	matrix, err := v.FitTransform([]string{docA, docB})
	if err != nil {
		return 0, err
	}
	return CosineSimilarity(matrix.Rows[0], matrix.Rows[1]), nil
}
