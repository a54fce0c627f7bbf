package tokfmt

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lexkit/internal/token"
)

// PrettyOpts controls Pretty.
type PrettyOpts struct {
	Color     bool
	TextWidth int // display columns reserved for the lexeme; 0 means 24
}

type palette struct {
	kind, special, symbol, pos *color.Color
}

func newPalette(on bool) palette {
	p := palette{
		kind:    color.New(color.FgGreen),
		special: color.New(color.FgRed, color.Bold),
		symbol:  color.New(color.FgCyan),
		pos:     color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.kind, p.special, p.symbol, p.pos} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty выводит токены по одному на строку:
//
//	  1: Ident      "x"        at 1:1-1:2
//
// Columns are aligned by display width, so wide characters do not break the table.
func Pretty(w io.Writer, in Input, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	textWidth := opts.TextWidth
	if textWidth <= 0 {
		textWidth = 24
	}

	kindWidth := 0
	for _, tok := range in.Tokens {
		kindWidth = max(kindWidth, runewidth.StringWidth(in.Names.Name(tok.Kind)))
	}

	for i, tok := range in.Tokens {
		name := runewidth.FillRight(in.Names.Name(tok.Kind), kindWidth)
		kc := pal.kind
		switch {
		case tok.IsEOF() || tok.IsInvalid():
			kc = pal.special
		case tok.HasSymbol():
			kc = pal.symbol
		}

		text := ""
		if s := in.text(tok); s != "" {
			text = quote(s, textWidth)
		}
		text = runewidth.FillRight(text, textWidth)

		if _, err := fmt.Fprintf(w, "%4d: %s %s %s\n", i+1, kc.Sprint(name), text, pal.pos.Sprint("at "+tok.Range.String())); err != nil {
			return err
		}
	}
	return nil
}

// quote quotes s and truncates it to width display columns.
func quote(s string, width int) string {
	q := strconv.Quote(s)
	if runewidth.StringWidth(q) <= width {
		return q
	}
	if width <= 3 {
		return runewidth.Truncate(q, width, "")
	}
	return runewidth.Truncate(q, width, "...")
}

// Summary prints one line with token and diagnostic counts.
func Summary(w io.Writer, path string, tokens []token.Token, diagnostics int, colored bool) error {
	pal := newPalette(colored)
	status := pal.kind.Sprint("ok")
	if diagnostics > 0 {
		status = pal.special.Sprintf("%d diagnostics", diagnostics)
	}
	_, err := fmt.Fprintf(w, "%s: %d tokens, %s\n", path, len(tokens), status)
	return err
}
