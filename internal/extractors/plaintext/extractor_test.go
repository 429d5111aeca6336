package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

func TestExtractor_Extract(t *testing.T) {
	e := New()

	text, err := e.Extract(context.Background(), []byte("hello world"))

	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestExtractor_Extract_StripsBOM(t *testing.T) {
	e := New()

	text, err := e.Extract(context.Background(), []byte("\xef\xbb\xbfhello"))

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestExtractor_Extract_InvalidUTF8(t *testing.T) {
	e := New()

	_, err := e.Extract(context.Background(), []byte{0xff, 0xfe, 0xfd})

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtractor_Extract_JSONVerbatim(t *testing.T) {
	e := New()
	raw := `{"name": "dochat", "tags": ["rag", "cli"]}`

	text, err := e.Extract(context.Background(), []byte(raw))

	require.NoError(t, err)
	assert.Equal(t, raw, text)
}

func TestExtractor_Formats(t *testing.T) {
	assert.ElementsMatch(t,
		[]domain.Format{domain.FormatText, domain.FormatJSON},
		New().Formats(),
	)
}
