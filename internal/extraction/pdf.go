// Package extraction reads plain text out of uploaded resume files.
package extraction

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	apperrors "github.com/gcbaptista/go-ats-score/internal/errors"
)

// NoTextMessage is returned in place of the resume text when nothing usable
// could be extracted.
const NoTextMessage = "No text extracted. Please upload a readable PDF."

const noTextPrefix = "No text extracted"

// IsNoText reports whether text is the no-text sentinel.
func IsNoText(text string) bool {
	return strings.HasPrefix(text, noTextPrefix)
}

// PDFExtractor extracts the text layer of PDF documents.
type PDFExtractor struct {
	logger *zap.Logger
}

// NewPDFExtractor creates a new PDF extractor.
func NewPDFExtractor(logger *zap.Logger) *PDFExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFExtractor{logger: logger}
}

// Extract reads the whole document from r and returns its text, one page
// after another, each page followed by a newline.
//
// When the document cannot be parsed or has no text layer, the returned
// text is NoTextMessage and err is an ExtractionError.
func (p *PDFExtractor) Extract(name string, r io.Reader) (text string, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return NoTextMessage, apperrors.NewExtractionError(name, fmt.Sprintf("reading upload: %v", err))
	}
	if len(data) == 0 {
		return NoTextMessage, apperrors.NewExtractionError(name, "file is empty")
	}

	// The parser panics on some malformed inputs
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Warn("pdf parser panicked", zap.String("file", name), zap.Any("panic", rec))
			text = NoTextMessage
			err = apperrors.NewExtractionError(name, fmt.Sprintf("malformed pdf: %v", rec))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return NoTextMessage, apperrors.NewExtractionError(name, fmt.Sprintf("opening pdf: %v", err))
	}

	var sb strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.Debug("skipping unreadable page", zap.String("file", name), zap.Int("page", i), zap.Error(err))
			continue
		}
		if pageText == "" {
			continue
		}

		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	if sb.Len() == 0 {
		return NoTextMessage, apperrors.NewExtractionError(name, "no text layer found")
	}

	p.logger.Debug("extracted pdf text",
		zap.String("file", name),
		zap.Int("pages", pages),
		zap.Int("characters", sb.Len()),
	)

	return sb.String(), nil
}
