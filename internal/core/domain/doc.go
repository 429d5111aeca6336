// Package domain holds the core business types for dochat: chunks,
// conversation turns, provider identities, configuration, and the error
// taxonomy. It has no dependencies on adapters or services.
package domain
