// Package diag defines the diagnostic model of lexkit.
//
// Diagnostic is the central record: Severity, Code (stable string form via
// Code.ID), a short Message, the primary source.Range inside a file and
// optional Notes.
//
// Producers emit through a Reporter; BagReporter collects into a Bag, which
// supports a limit, sorting and deduplication. FromInvalid is the boundary
// between the lexer's invalid log and diagnostics: the lexer itself never
// reports, it only records.
//
// Package diag does no IO. Rendering for the CLI lives in internal/tokfmt,
// apart from FormatShort used by tests and plain output.
package diag
