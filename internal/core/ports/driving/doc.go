// Package driving provides interfaces for inbound callers (primary
// ports): the operations the request layer, CLI, and TUI invoke on the
// core.
package driving
