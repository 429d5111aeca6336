package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

func TestRegistry_Defaults_CoversAllFormats(t *testing.T) {
	r := Defaults()

	for _, format := range []domain.Format{
		domain.FormatText,
		domain.FormatMarkdown,
		domain.FormatHTML,
		domain.FormatCSV,
		domain.FormatJSON,
		domain.FormatPDF,
		domain.FormatDOCX,
	} {
		e, err := r.Get(format)
		require.NoError(t, err, "format %s", format)
		assert.Contains(t, e.Formats(), format)
	}
}

func TestRegistry_Get_Unsupported(t *testing.T) {
	r := Defaults()

	_, err := r.Get(domain.Format("epub"))

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRegistry_Formats_Sorted(t *testing.T) {
	formats := Defaults().Formats()

	require.NotEmpty(t, formats)
	for i := 1; i < len(formats); i++ {
		assert.Less(t, formats[i-1], formats[i])
	}
}

func TestRegistry_Register_LaterWins(t *testing.T) {
	r := NewRegistry()
	first := &fakeExtractor{formats: []domain.Format{domain.FormatText}}
	second := &fakeExtractor{formats: []domain.Format{domain.FormatText}}
	r.Register(first)
	r.Register(second)

	e, err := r.Get(domain.FormatText)

	require.NoError(t, err)
	assert.Same(t, second, e)
}

type fakeExtractor struct {
	formats []domain.Format
}

func (f *fakeExtractor) Formats() []domain.Format {
	return f.formats
}

func (f *fakeExtractor) Extract(_ context.Context, raw []byte) (string, error) {
	return string(raw), nil
}
