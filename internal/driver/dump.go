package driver

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"lexkit/internal/source"
	"lexkit/internal/symbol"
	"lexkit/internal/token"
)

// DumpVersion is bumped whenever the dump layout changes.
const DumpVersion = 1

// Dump is the msgpack form of a tokenize result. It carries the symbol
// table, so another process can resolve Sym without re-lexing.
type Dump struct {
	Version int              `msgpack:"version"`
	Path    string           `msgpack:"path"`
	Grammar string           `msgpack:"grammar"`
	Tokens  []DumpToken      `msgpack:"tokens"`
	Symbols *symbol.Interner `msgpack:"symbols"`
}

// DumpToken is a token packed as [kind, line0, col0, line1, col1, sym].
type DumpToken struct {
	_msgpack struct{} `msgpack:",as_array"`

	Kind      uint16
	StartLine uint32
	StartCol  uint32
	EndLine   uint32
	EndCol    uint32
	Sym       uint32
}

// Token converts back to a token.Token.
func (d DumpToken) Token() token.Token {
	return token.Token{
		Kind: token.Kind(d.Kind),
		Range: source.NewRange(
			source.Position{Line: d.StartLine, Column: d.StartCol},
			source.Position{Line: d.EndLine, Column: d.EndCol},
		),
		Sym: symbol.Symbol(d.Sym),
	}
}

func dumpToken(tok token.Token) DumpToken {
	return DumpToken{
		Kind:      uint16(tok.Kind),
		StartLine: tok.Range.Start.Line,
		StartCol:  tok.Range.Start.Column,
		EndLine:   tok.Range.End.Line,
		EndCol:    tok.Range.End.Column,
		Sym:       uint32(tok.Sym),
	}
}

// NewDump packs res.
func NewDump(res *TokenizeResult) *Dump {
	d := &Dump{
		Version: DumpVersion,
		Path:    res.File.Path,
		Grammar: res.Grammar,
		Tokens:  make([]DumpToken, len(res.Tokens)),
		Symbols: res.Session.Interner(),
	}
	for i, tok := range res.Tokens {
		d.Tokens[i] = dumpToken(tok)
	}
	return d
}

// WriteDump encodes res as msgpack to w.
func WriteDump(w io.Writer, res *TokenizeResult) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	if err := enc.Encode(NewDump(res)); err != nil {
		return fmt.Errorf("encode token dump: %w", err)
	}
	return nil
}

// ReadDump decodes a dump written by WriteDump.
func ReadDump(r io.Reader) (*Dump, error) {
	d := &Dump{Symbols: symbol.NewInterner()}
	if err := msgpack.NewDecoder(r).Decode(d); err != nil {
		return nil, fmt.Errorf("decode token dump: %w", err)
	}
	if d.Version != DumpVersion {
		return nil, fmt.Errorf("token dump version %d, want %d", d.Version, DumpVersion)
	}
	return d, nil
}
