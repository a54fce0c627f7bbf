// Package arith is a small arithmetic grammar: integers, + - * / and
// parentheses. Blanks and newlines are trivia.
package arith

import (
	"lexkit/internal/lexer"
	"lexkit/internal/token"
)

const (
	Integer token.Kind = token.FirstGrammarKind + iota
	Plus
	Minus
	Star
	Slash
	LParen
	RParen
	Space   // trivia
	Newline // trivia
)

var names = token.Names{
	Integer: "Integer",
	Plus:    "Plus",
	Minus:   "Minus",
	Star:    "Star",
	Slash:   "Slash",
	LParen:  "LParen",
	RParen:  "RParen",
	Space:   "Space",
	Newline: "Newline",
}

var single = map[rune]token.Kind{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'(': LParen,
	')': RParen,
}

// Grammar implements lexer.Grammar.
type Grammar struct{}

func New() Grammar { return Grammar{} }

func (Grammar) Start() lexer.State { return start }
func (Grammar) Names() token.Names { return names }

func start(lx *lexer.Lexer) lexer.Transition {
	c, ok := lx.Consume()
	if !ok {
		return lx.Emit(token.EOF)
	}
	switch {
	case lexer.IsDec(c):
		return lexer.Next(integer)
	case lexer.IsBlank(c):
		return lexer.Next(blank)
	case c == '\n':
		lx.LineBreak()
		return lx.EmitTrivia(Newline)
	}
	if k, ok := single[c]; ok {
		return lx.Emit(k)
	}
	return lx.EmitInvalid()
}

// integer loops through itself once per digit.
func integer(lx *lexer.Lexer) lexer.Transition {
	if lx.Accept(lexer.IsDec) {
		return lexer.Next(integer)
	}
	return lx.Emit(Integer)
}

func blank(lx *lexer.Lexer) lexer.Transition {
	lx.AcceptStar(lexer.IsBlank)
	return lx.EmitTrivia(Space)
}
