// Package chunker splits normalised document text into overlapping
// fixed-size segments.
package chunker

import (
	"fmt"
	"strings"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

// Chunker produces deterministic fixed-size chunks: identical input and
// configuration always yield the identical chunk sequence, which keeps
// re-ingestion reproducible.
type Chunker struct {
	size    int
	overlap int
}

// New creates a chunker. Size must be positive and overlap must satisfy
// 0 <= overlap < size; violations are configuration errors reported at
// startup, not per call.
func New(size, overlap int) (*Chunker, error) {
	cfg := domain.ChunkingSettings{Size: size, Overlap: overlap}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the configured chunk size.
func (c *Chunker) Size() int {
	return c.size
}

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Split chunks the text. Windows advance by size-overlap runes so
// consecutive chunks share exactly overlap runes of context. Text
// shorter than one window yields a single chunk; empty or
// whitespace-only text yields nil.
func (c *Chunker) Split(text string) []string {
	normalised := Normalise(text)
	if normalised == "" {
		return nil
	}

	runes := []rune(normalised)
	if len(runes) <= c.size {
		return []string{normalised}
	}

	step := c.size - c.overlap
	chunks := make([]string, 0, len(runes)/step+1)

	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))

		// The final window is allowed to be short; once it reaches the
		// end of the text there is nothing left to cover.
		if end == len(runes) {
			break
		}
	}

	return chunks
}

// Normalise collapses whitespace runs to single spaces and trims the
// ends. Chunk offsets are computed over this normalised form.
func Normalise(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// String describes the chunker configuration.
func (c *Chunker) String() string {
	return fmt.Sprintf("chunker(size=%d overlap=%d)", c.size, c.overlap)
}
