package testkit

import (
	"strings"
	"testing"

	"lexkit/internal/grammar/pl0"
	"lexkit/internal/lexer"
	"lexkit/internal/source"
	"lexkit/internal/symbol"
	"lexkit/internal/token"
)

func TestCheckTokenInvariantsAcceptsLexerOutput(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("ok.pl0", []byte("var x;\n{ c }\nbegin x := 1 @ end.\n")))
	lx := lexer.New(file.Text(), pl0.New(symbol.NewInterner()), lexer.Options{})
	if err := CheckTokenInvariants(lx.Tokens(), lx.Invalid(), file); err != nil {
		t.Fatal(err)
	}
}

func TestCheckTokenInvariantsRejects(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t", []byte("abc")))
	r := func(a, b uint32) source.Range {
		return source.NewRange(source.Position{Column: a}, source.Position{Column: b})
	}
	eof := token.New(token.EOF, r(3, 3))
	word := token.Kind(token.FirstGrammarKind)

	tests := []struct {
		name    string
		tokens  []token.Token
		invalid []token.Token
		want    string
	}{
		{"empty", nil, nil, "empty"},
		{"no eof", []token.Token{token.New(word, r(0, 1))}, nil, "not EOF"},
		{"overlap", []token.Token{token.New(word, r(0, 2)), token.New(word, r(1, 3)), eof}, nil, "overlaps"},
		{"beyond end", []token.Token{token.New(word, r(0, 4)), eof}, nil, "beyond"},
		{"invalid on parser channel", []token.Token{token.New(token.Invalid, r(0, 1)), eof}, nil, "parser channel"},
		{"empty invalid", []token.Token{eof}, []token.Token{token.New(token.Invalid, r(1, 1))}, "empty invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTokenInvariants(tt.tokens, tt.invalid, file)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
