package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

// buildDocx assembles a minimal DOCX container around the given
// document XML.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractor_Extract(t *testing.T) {
	e := New()
	raw := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := e.Extract(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestExtractor_Extract_NotAZip(t *testing.T) {
	e := New()

	_, err := e.Extract(context.Background(), []byte("plain text, not a container"))

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtractor_Extract_MissingDocumentXML(t *testing.T) {
	e := New()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = e.Extract(context.Background(), buf.Bytes())

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtractor_Extract_MalformedXML(t *testing.T) {
	e := New()
	raw := buildDocx(t, "<w:document><unclosed")

	_, err := e.Extract(context.Background(), raw)

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtractor_Formats(t *testing.T) {
	assert.Equal(t, []domain.Format{domain.FormatDOCX}, New().Formats())
}
