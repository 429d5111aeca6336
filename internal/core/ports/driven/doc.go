// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embedding backends, chat providers, the
// vector index, and document extractors.
package driven
