package document

import (
	"context"
	"testing"

	"ai-learning-assistant-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlainText(t *testing.T) {
	e := NewExtractor(0)

	text, err := e.Extract(context.Background(), "notes.txt", []byte("  Photosynthesis converts light to chemical energy.\n"))
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis converts light to chemical energy.", text)
}

func TestExtractRejects(t *testing.T) {
	e := NewExtractor(16)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"blank text", []byte("   \n\t ")},
		{"too large", []byte("0123456789abcdefXYZ")},
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")[:16]},
		{"broken pdf", []byte("%PDF-1.4\n%broken")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(context.Background(), "upload", tt.data)
			assert.ErrorIs(t, err, apperror.ErrInputInvalid)
		})
	}
}
