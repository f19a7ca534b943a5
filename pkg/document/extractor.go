package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"ai-learning-assistant-be/internal/pkg/apperror"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

const DefaultMaxSize = 20 << 20

// Extractor turns an uploaded document into plain text. PDFs are parsed,
// text files pass through, anything else is rejected.
type Extractor struct {
	MaxSize int64
}

func NewExtractor(maxSize int64) *Extractor {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Extractor{MaxSize: maxSize}
}

func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", apperror.InputInvalid("document is empty")
	}
	if int64(len(data)) > e.MaxSize {
		return "", apperror.InputInvalid(fmt.Sprintf("document exceeds %d bytes", e.MaxSize))
	}

	mtype := mimetype.Detect(data)

	var (
		text string
		err  error
	)
	switch {
	case mtype.Is("application/pdf"):
		text, err = extractPDF(data)
	case strings.HasPrefix(mtype.String(), "text/"):
		text = string(data)
	default:
		return "", apperror.InputInvalid(fmt.Sprintf("unsupported document type %s (%s)", mtype.String(), filename))
	}
	if err != nil {
		return "", apperror.Wrap(apperror.KindInputInvalid, "failed to extract document text", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperror.InputInvalid("document contains no extractable text")
	}
	return text, nil
}

func extractPDF(data []byte) (text string, err error) {
	// the parser panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
