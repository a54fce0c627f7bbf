// Package tokfmt renders token streams and lexical diagnostics for the CLI.
package tokfmt

import (
	"lexkit/internal/source"
	"lexkit/internal/symbol"
	"lexkit/internal/token"
)

// Input is what every formatter needs to turn tokens into text.
type Input struct {
	Tokens  []token.Token
	Names   token.Names
	File    *source.File     // lexeme text; may be nil
	Symbols *symbol.Interner // resolves Token.Sym; may be nil
}

// text returns the lexeme of tok: the interned symbol when present,
// otherwise the source slice.
func (in Input) text(tok token.Token) string {
	if tok.HasSymbol() && in.Symbols != nil {
		if s, ok := in.Symbols.Lookup(tok.Sym); ok {
			return s
		}
	}
	if in.File == nil || tok.IsEOF() {
		return ""
	}
	return in.File.Slice(tok.Range)
}
