package diag_test

import (
	"testing"

	"lexkit/internal/diag"
	"lexkit/internal/grammar/pl0"
	"lexkit/internal/lexer"
	"lexkit/internal/source"
	"lexkit/internal/symbol"
)

func TestFromInvalid(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("prog.pl0", []byte("x := 1 @ 2;\n{ open\ncomment")))

	lx := lexer.New(file.Text(), pl0.New(symbol.NewInterner()), lexer.Options{})
	lx.Tokens()

	bag := diag.NewBag(0)
	diag.FromInvalid(diag.BagReporter{Bag: bag}, file, lx.Invalid())

	want := "error LEX1001 prog.pl0:1:8 unknown character \"@\"\n" +
		"error LEX1002 prog.pl0:2:1 invalid lexeme \"{ open\\ncomment\"\n" +
		"note LEX1002 prog.pl0:3:8 lexeme runs to here"
	if got := diag.FormatShort(bag.Items(), fs, true); got != want {
		t.Fatalf("diagnostics:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestFromInvalidQuotesLongLexemes(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("long.pl0", []byte("{ aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")))

	lx := lexer.New(file.Text(), pl0.New(symbol.NewInterner()), lexer.Options{})
	lx.Tokens()

	bag := diag.NewBag(0)
	diag.FromInvalid(diag.BagReporter{Bag: bag}, file, lx.Invalid())
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	if got := bag.Items()[0].Message; got != `invalid lexeme "{ aaaaaaaaaaaaaaaaaaaaaa..."` {
		t.Fatalf("message = %s", got)
	}
}
