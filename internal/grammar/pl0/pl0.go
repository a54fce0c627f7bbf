// Package pl0 is the lexical grammar of Wirth's PL/0.
//
// Identifiers and numbers carry their lexeme as an interned symbol.
// Blanks and line breaks are dropped without producing tokens; { ... }
// comments are trivia and may span lines. An unterminated comment is invalid.
package pl0

import (
	"lexkit/internal/lexer"
	"lexkit/internal/symbol"
	"lexkit/internal/token"
)

const (
	Ident token.Kind = token.FirstGrammarKind + iota
	Number

	KwConst
	KwVar
	KwProcedure
	KwCall
	KwBegin
	KwEnd
	KwIf
	KwThen
	KwWhile
	KwDo
	KwOdd

	Becomes   // :=
	Eq        // =
	Hash      // #
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	LParen    // (
	RParen    // )
	Comma     // ,
	Semicolon // ;
	Period    // .
	Bang      // !
	Question  // ?

	Comment // trivia
)

var keywords = token.Keywords{
	"const":     KwConst,
	"var":       KwVar,
	"procedure": KwProcedure,
	"call":      KwCall,
	"begin":     KwBegin,
	"end":       KwEnd,
	"if":        KwIf,
	"then":      KwThen,
	"while":     KwWhile,
	"do":        KwDo,
	"odd":       KwOdd,
}

var single = map[rune]token.Kind{
	'=': Eq,
	'#': Hash,
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'(': LParen,
	')': RParen,
	',': Comma,
	';': Semicolon,
	'.': Period,
	'!': Bang,
	'?': Question,
}

var names = token.Names{
	Ident: "Ident", Number: "Number",
	KwConst: "const", KwVar: "var", KwProcedure: "procedure", KwCall: "call",
	KwBegin: "begin", KwEnd: "end", KwIf: "if", KwThen: "then",
	KwWhile: "while", KwDo: "do", KwOdd: "odd",
	Becomes: ":=", Eq: "=", Hash: "#", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", LParen: "(", RParen: ")",
	Comma: ",", Semicolon: ";", Period: ".", Bang: "!", Question: "?",
	Comment: "Comment",
}

// Grammar implements lexer.Grammar. Lexemes are interned into the interner
// it was created with.
type Grammar struct {
	symbols *symbol.Interner
	start   lexer.State
}

// New creates a PL/0 grammar interning identifiers into in.
func New(in *symbol.Interner) *Grammar {
	g := &Grammar{symbols: in}
	g.start = g.stateStart
	return g
}

func (g *Grammar) Start() lexer.State { return g.start }
func (g *Grammar) Names() token.Names { return names }

// Keyword reports the kind of a reserved word.
func Keyword(s string) (token.Kind, bool) { return keywords.Lookup(s) }

func (g *Grammar) stateStart(lx *lexer.Lexer) lexer.Transition {
	c, ok := lx.Consume()
	if !ok {
		return lx.Emit(token.EOF)
	}
	switch {
	case lexer.IsBlank(c):
		lx.AcceptStar(lexer.IsBlank)
		return lx.Continue()
	case c == '\n':
		lx.LineBreak()
		return lx.Continue()
	case c == '{':
		return lexer.Next(stateComment)
	case lexer.IsIdentStart(c):
		return lexer.Next(g.stateIdent)
	case lexer.IsDec(c):
		return lexer.Next(g.stateNumber)
	case c == ':':
		if lx.AcceptRune('=') {
			return lx.Emit(Becomes)
		}
		return lx.EmitInvalid()
	case c == '<':
		if lx.AcceptRune('=') {
			return lx.Emit(LtEq)
		}
		return lx.Emit(Lt)
	case c == '>':
		if lx.AcceptRune('=') {
			return lx.Emit(GtEq)
		}
		return lx.Emit(Gt)
	}
	if k, ok := single[c]; ok {
		return lx.Emit(k)
	}
	return lx.EmitInvalid()
}

func (g *Grammar) stateIdent(lx *lexer.Lexer) lexer.Transition {
	lx.AcceptStar(lexer.IsIdentContinue)
	text := lx.Lexeme(0, 0)
	if k, ok := keywords.Lookup(text); ok {
		return lx.Emit(k)
	}
	return lx.EmitSymbol(Ident, g.symbols.Intern(text))
}

func (g *Grammar) stateNumber(lx *lexer.Lexer) lexer.Transition {
	lx.AcceptStar(lexer.IsDec)
	return lx.EmitSymbol(Number, g.symbols.Intern(lx.Lexeme(0, 0)))
}

// stateComment re-enters itself once per character until '}'.
func stateComment(lx *lexer.Lexer) lexer.Transition {
	c, ok := lx.Consume()
	switch {
	case !ok:
		return lx.EmitInvalid()
	case c == '}':
		return lx.EmitTrivia(Comment)
	case c == '\n':
		lx.LineBreak()
	}
	return lexer.Next(stateComment)
}
