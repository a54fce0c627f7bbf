package token

import (
	"fmt"

	"lexkit/internal/source"
	"lexkit/internal/symbol"
)

// Token represents a single classified lexeme with its location.
// The zero Token is the placeholder before the first scan.
type Token struct {
	Kind  Kind
	Range source.Range
	Sym   symbol.Symbol // interned lexeme, symbol.Empty if the grammar did not intern one
}

// New creates a token without a symbol payload.
func New(kind Kind, rng source.Range) Token {
	return Token{Kind: kind, Range: rng}
}

// IsEOF reports whether the token terminates the stream.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// IsInvalid reports whether the token is an invalid lexeme.
func (t Token) IsInvalid() bool { return t.Kind == Invalid }

// HasSymbol reports whether the grammar attached an interned lexeme.
func (t Token) HasSymbol() bool { return !t.Sym.IsEmpty() }

func (t Token) String() string {
	if t.HasSymbol() {
		return fmt.Sprintf("Kind(%d)[%s] %s", uint16(t.Kind), t.Sym, t.Range)
	}
	return fmt.Sprintf("Kind(%d) %s", uint16(t.Kind), t.Range)
}
