package diag

import (
	"lexkit/internal/source"
)

// Severity orders diagnostics; the lexer itself only reports errors.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String returns the lower-case label used by every formatter.
func (s Severity) String() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	case SevInfo:
		return "info"
	}
	return "unknown"
}

type Note struct {
	Range source.Range
	Msg   string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	File     source.FileID
	Primary  source.Range
	Notes    []Note
}

// IsError reports whether d makes a run fail.
func (d Diagnostic) IsError() bool { return d.Severity >= SevError }
