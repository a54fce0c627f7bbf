package lexer

import "strings"

// Predicate classifies a single character.
type Predicate func(rune) bool

// Accept consumes the next character if pred holds for it.
// Otherwise the cursor is left where it was.
func (lx *Lexer) Accept(pred Predicate) bool {
	cp := lx.Checkpoint()
	if c, ok := lx.Consume(); ok && pred(c) {
		return true
	}
	lx.Restore(cp)
	return false
}

// AcceptOneOf consumes the next character if it occurs in set.
func (lx *Lexer) AcceptOneOf(set string) bool {
	return lx.Accept(func(c rune) bool { return strings.ContainsRune(set, c) })
}

// AcceptRune consumes the next character if it equals want.
func (lx *Lexer) AcceptRune(want rune) bool {
	return lx.Accept(func(c rune) bool { return c == want })
}

// AcceptStar consumes characters while pred holds. It may consume nothing.
// Returns the number of characters consumed.
func (lx *Lexer) AcceptStar(pred Predicate) int {
	n := 0
	for lx.Accept(pred) {
		n++
	}
	return n
}

// AcceptPlus is AcceptStar requiring at least one character.
func (lx *Lexer) AcceptPlus(pred Predicate) bool {
	if !lx.Accept(pred) {
		return false
	}
	lx.AcceptStar(pred)
	return true
}

// AcceptCount consumes exactly n characters satisfying pred, or nothing at all.
func (lx *Lexer) AcceptCount(pred Predicate, n int) bool {
	cp := lx.Checkpoint()
	for range n {
		if !lx.Accept(pred) {
			lx.Restore(cp)
			return false
		}
	}
	return true
}
