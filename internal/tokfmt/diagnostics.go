package tokfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lexkit/internal/diag"
	"lexkit/internal/source"
)

// Diagnostics печатает диагностики в виде
//
//	path:line:col: error LEX1001: message
//	   x := 1 @ 2
//	          ^
//
// The caret is placed by display width, so it lines up under wide characters.
// Expects bag.Sort() beforehand.
func Diagnostics(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, colored bool) error {
	sevColor := map[diag.Severity]*color.Color{
		diag.SevError:   color.New(color.FgRed, color.Bold),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevInfo:    color.New(color.FgBlue),
	}
	caret := color.New(color.FgGreen, color.Bold)
	for _, c := range append([]*color.Color{caret}, sevColor[diag.SevError], sevColor[diag.SevWarning], sevColor[diag.SevInfo]) {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, d := range items {
		file := fs.Get(d.File)
		sev := d.Severity.String()
		if _, err := fmt.Fprintf(w, "%s:%s: %s %s: %s\n", file.Path, d.Primary.Start, sevColor[d.Severity].Sprint(sev), d.Code.ID(), d.Message); err != nil {
			return err
		}
		if len(file.Content) == 0 {
			continue
		}
		line := file.GetLine(d.Primary.Start.Line)
		if _, err := fmt.Fprintf(w, "   %s\n   %s\n", expandTabs(line), caret.Sprint(underline(line, d.Primary))); err != nil {
			return err
		}
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(w, "   note: %s at %s\n", n.Msg, n.Range.Start); err != nil {
				return err
			}
		}
	}
	return nil
}

// underline builds "   ^~~" for r on its first line.
func underline(line string, r source.Range) string {
	runes := []rune(expandTabs(line))
	start := min(int(r.Start.Column), len(runes))
	end := len(runes)
	if r.End.Line == r.Start.Line {
		end = min(int(r.End.Column), len(runes))
	}
	pad := runewidth.StringWidth(string(runes[:start]))
	width := max(runewidth.StringWidth(string(runes[start:end])), 1)
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
}

// expandTabs replaces tabs with single spaces so that rune columns and
// display columns stay in step.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}
