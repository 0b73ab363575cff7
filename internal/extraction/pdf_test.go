package extraction

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gcbaptista/go-ats-score/internal/errors"
)

func TestIsNoText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"sentinel", NoTextMessage, true},
		{"prefix only", "No text extracted", true},
		{"prefix with other suffix", "No text extracted from scan", true},
		{"regular text", "Python developer", false},
		{"empty", "", false},
		{"lowercase prefix", "no text extracted", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNoText(tt.text))
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestExtractFailures(t *testing.T) {
	extractor := NewPDFExtractor(nil)

	tests := []struct {
		name  string
		input []byte
	}{
		{"empty file", []byte{}},
		{"not a pdf", []byte("plain text pretending to be a pdf")},
		{"truncated header", []byte("%PDF-1.4\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := extractor.Extract("resume.pdf", bytes.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrExtractionFailed))
			assert.Equal(t, NoTextMessage, text)
			assert.True(t, IsNoText(text))
		})
	}

	t.Run("read error", func(t *testing.T) {
		text, err := extractor.Extract("resume.pdf", failingReader{})
		assert.ErrorIs(t, err, apperrors.ErrExtractionFailed)
		assert.True(t, strings.HasPrefix(text, "No text extracted"))
	})
}
