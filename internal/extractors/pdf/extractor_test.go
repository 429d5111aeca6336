package pdf

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

// buildPDF assembles a minimal single-page PDF with the given text,
// computing the cross-reference offsets as it goes.
func buildPDF(text string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, 5)
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)

	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	writeObj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
		"/Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")
	writeObj(fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
		len(stream), stream))
	writeObj("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefStart := buf.Len()
	buf.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefStart)

	return buf.Bytes()
}

func TestExtractor_Formats(t *testing.T) {
	assert.Equal(t, []domain.Format{domain.FormatPDF}, New().Formats())
}

func TestExtractor_Extract(t *testing.T) {
	raw := buildPDF("Hello PDF")

	text, err := New().Extract(context.Background(), raw)

	require.NoError(t, err)
	assert.Contains(t, text, "Hello")
}

func TestExtractor_Extract_NotAPDF(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte("just some plain text"))

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtractor_Extract_Truncated(t *testing.T) {
	raw := buildPDF("Hello PDF")

	_, err := New().Extract(context.Background(), raw[:len(raw)/2])

	assert.ErrorIs(t, err, domain.ErrExtraction)
}
