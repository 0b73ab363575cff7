package stopwords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetSizes(t *testing.T) {
	assert.Equal(t, 179, English.Len())
	assert.Equal(t, 318, TFIDF.Len())
}

func TestContains(t *testing.T) {
	tests := []struct {
		name    string
		set     Set
		word    string
		present bool
	}{
		{"english article", English, "the", true},
		{"english contraction", English, "don't", true},
		{"english keeps anything", English, "anything", false},
		{"english keeps numbers words", English, "five", false},
		{"tfidf drops anything", TFIDF, "anything", true},
		{"tfidf drops five", TFIDF, "five", true},
		{"tfidf keeps python", TFIDF, "python", false},
		{"case sensitive", English, "The", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.present, tt.set.Contains(tt.word))
		})
	}
}
