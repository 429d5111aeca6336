package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [file]...", ingestCmd.Use)
}

func TestResolveFormat_FromExtension(t *testing.T) {
	originalFormat := ingestFormat
	ingestFormat = ""
	defer func() { ingestFormat = originalFormat }()

	format, err := resolveFormat("docs/guide.md")

	require.NoError(t, err)
	assert.Equal(t, domain.FormatMarkdown, format)
}

func TestResolveFormat_UnknownExtension(t *testing.T) {
	originalFormat := ingestFormat
	ingestFormat = ""
	defer func() { ingestFormat = originalFormat }()

	_, err := resolveFormat("archive.tar.gz")

	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "--format")
}

func TestResolveFormat_Override(t *testing.T) {
	originalFormat := ingestFormat
	ingestFormat = "markdown"
	defer func() { ingestFormat = originalFormat }()

	format, err := resolveFormat("notes.weird")

	require.NoError(t, err)
	assert.Equal(t, domain.FormatMarkdown, format)
}

func TestResolveFormat_InvalidOverride(t *testing.T) {
	originalFormat := ingestFormat
	ingestFormat = "epub"
	defer func() { ingestFormat = originalFormat }()

	_, err := resolveFormat("book.epub")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
