// Package extractors maps document formats to text extractors.
package extractors

import (
	"fmt"
	"sort"

	"github.com/nimbleworks/dochat/internal/core/domain"
	"github.com/nimbleworks/dochat/internal/core/ports/driven"
	"github.com/nimbleworks/dochat/internal/extractors/csv"
	"github.com/nimbleworks/dochat/internal/extractors/docx"
	"github.com/nimbleworks/dochat/internal/extractors/html"
	"github.com/nimbleworks/dochat/internal/extractors/markdown"
	"github.com/nimbleworks/dochat/internal/extractors/pdf"
	"github.com/nimbleworks/dochat/internal/extractors/plaintext"
)

// Registry dispatches a declared format to the extractor that handles it.
type Registry struct {
	byFormat map[domain.Format]driven.Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byFormat: make(map[domain.Format]driven.Extractor),
	}
}

// Register adds an extractor for every format it declares.
// A later registration for the same format wins.
func (r *Registry) Register(e driven.Extractor) {
	for _, f := range e.Formats() {
		r.byFormat[f] = e
	}
}

// Get returns the extractor for the format, or an error wrapping
// domain.ErrUnsupportedFormat when none is registered.
func (r *Registry) Get(format domain.Format) (driven.Extractor, error) {
	e, ok := r.byFormat[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	return e, nil
}

// Formats returns the registered formats in sorted order.
func (r *Registry) Formats() []domain.Format {
	formats := make([]domain.Format, 0, len(r.byFormat))
	for f := range r.byFormat {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Defaults returns a registry with every built-in extractor registered.
func Defaults() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(csv.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	return r
}
