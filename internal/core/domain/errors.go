package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates invalid configuration (bad chunk sizes,
	// unknown default provider). Fatal at startup, never retried.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUnsupportedFormat indicates no extractor handles the declared format.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtraction indicates a document could not be parsed. Ingestion
	// aborts cleanly; no partial entries reach the index.
	ErrExtraction = errors.New("document extraction failed")

	// ErrEmptyDocument indicates extraction produced no usable text.
	ErrEmptyDocument = errors.New("document contains no text")

	// ErrDocumentTooLarge indicates the raw document exceeds the size cap.
	ErrDocumentTooLarge = errors.New("document exceeds maximum size")

	// ErrEmbedding indicates the embedding backend failed or returned an
	// empty vector. Aborts the current ingestion or query only.
	ErrEmbedding = errors.New("embedding failed")

	// ErrIndex indicates vector index storage I/O failed. Batch inserts
	// are all-or-nothing, so the index is never left half-written.
	ErrIndex = errors.New("vector index failure")

	// ErrUnknownProvider indicates a provider name with no registered adapter.
	ErrUnknownProvider = errors.New("unknown provider")
)

// Provider error kinds distinguish failure classes so callers can decide
// whether retrying with another provider makes sense.
const (
	// ProviderErrUnavailable means the backend is unreachable or unconfigured.
	ProviderErrUnavailable = "unavailable"

	// ProviderErrTimeout means the bounded wait for the backend elapsed.
	ProviderErrTimeout = "timeout"

	// ProviderErrResponse means the backend rejected the request or
	// returned a malformed response.
	ProviderErrResponse = "response"
)

// ProviderError is a backend failure with the provider name attached.
// The orchestrator surfaces these verbatim; it never masks them as
// generic failures or retries with a different provider.
type ProviderError struct {
	// Provider is the name of the failing backend.
	Provider string

	// Kind is one of ProviderErrUnavailable, ProviderErrTimeout,
	// ProviderErrResponse.
	Kind string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s (%s): %v", e.Provider, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err with the provider name and failure kind.
func NewProviderError(provider, kind string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: kind, Err: err}
}
