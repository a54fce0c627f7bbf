package diag

import (
	"fmt"
	"strings"

	"lexkit/internal/source"
)

// FormatShort renders diagnostics one per line as
// "severity CODE path:line:col message" with one-based coordinates.
// Notes follow their diagnostic when includeNotes is set.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	var b strings.Builder
	for _, d := range diags {
		path := pathOf(fs, d.File)
		fmt.Fprintf(&b, "%s %s %s:%s %s\n", d.Severity, d.Code.ID(), path, d.Primary.Start, sanitizeMessage(d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "note %s %s:%s %s\n", d.Code.ID(), path, n.Range.Start, sanitizeMessage(n.Msg))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func pathOf(fs *source.FileSet, id source.FileID) string {
	if fs == nil || int(id) >= fs.Len() {
		return "?"
	}
	return fs.Get(id).Path
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
