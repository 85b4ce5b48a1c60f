// Package logging assembles structured slog loggers and attribute helpers used
// across captionexport.
//
// It owns the console and JSON handlers, level parsing, and output plumbing,
// and exposes context helpers so every line of one export run carries the same
// run identifier. A no-op logger is provided for tests and library callers
// that do not care about diagnostics.
package logging
