package domain

import (
	"path/filepath"
	"strings"
)

const unknownDescription = "Unknown"

// Format identifies a document format for ingestion. Extractors are keyed
// by format; adding a format means adding an extractor variant, not
// patching a dispatch chain.
type Format string

// Supported document formats.
const (
	// FormatText is plain text.
	FormatText Format = "text"

	// FormatMarkdown is Markdown markup.
	FormatMarkdown Format = "markdown"

	// FormatHTML is HTML markup.
	FormatHTML Format = "html"

	// FormatCSV is comma-separated tabular data.
	FormatCSV Format = "csv"

	// FormatJSON is JSON, ingested as plain text.
	FormatJSON Format = "json"

	// FormatPDF is the portable document format.
	FormatPDF Format = "pdf"

	// FormatDOCX is the Office Open XML word-processor format.
	FormatDOCX Format = "docx"
)

// IsValid returns true if the format is recognised.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatMarkdown, FormatHTML, FormatCSV, FormatJSON, FormatPDF, FormatDOCX:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f Format) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f Format) Description() string {
	switch f {
	case FormatText:
		return "Plain text"
	case FormatMarkdown:
		return "Markdown"
	case FormatHTML:
		return "HTML"
	case FormatCSV:
		return "CSV"
	case FormatJSON:
		return "JSON"
	case FormatPDF:
		return "PDF"
	case FormatDOCX:
		return "Word (DOCX)"
	default:
		return unknownDescription
	}
}

// formatsByExtension maps lowercase file extensions to formats.
var formatsByExtension = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".log":      FormatText,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".csv":      FormatCSV,
	".json":     FormatJSON,
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
}

// FormatFromPath infers the format from a file path's extension.
// The boolean result is false when the extension is not recognised.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := formatsByExtension[ext]
	return f, ok
}
