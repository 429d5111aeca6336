package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

func TestExtractor_Extract(t *testing.T) {
	e := New()
	raw := `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body>
<h1>Heading</h1>
<p>First paragraph.</p>
<p>Second paragraph with <a href="https://example.com">a link</a>.</p>
</body>
</html>`

	text, err := e.Extract(context.Background(), []byte(raw))

	require.NoError(t, err)
	assert.Contains(t, text, "Heading")
	assert.Contains(t, text, "First paragraph.")
	assert.Contains(t, text, "Second paragraph with a link.")
	assert.NotContains(t, text, "Page Title")
	assert.NotContains(t, text, "<")
}

func TestExtractor_Extract_RemovesScriptAndStyle(t *testing.T) {
	e := New()
	raw := `<body>
<script>alert("hi")</script>
<style>.x { color: red }</style>
<p>Visible text</p>
</body>`

	text, err := e.Extract(context.Background(), []byte(raw))

	require.NoError(t, err)
	assert.Equal(t, "Visible text", text)
}

func TestExtractor_Extract_UnescapesEntities(t *testing.T) {
	e := New()

	text, err := e.Extract(context.Background(), []byte("<p>Fish &amp; chips &lt;3</p>"))

	require.NoError(t, err)
	assert.Equal(t, "Fish & chips <3", text)
}

func TestExtractor_Extract_ParagraphSeparation(t *testing.T) {
	e := New()

	text, err := e.Extract(context.Background(), []byte("<p>one</p><p>two</p>"))

	require.NoError(t, err)
	assert.Equal(t, "one\ntwo", text)
}

func TestExtractor_Extract_InvalidUTF8(t *testing.T) {
	e := New()

	_, err := e.Extract(context.Background(), []byte{0xff, 0xfe})

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtractor_Formats(t *testing.T) {
	assert.Equal(t, []domain.Format{domain.FormatHTML}, New().Formats())
}
