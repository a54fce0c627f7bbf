package lexer

import (
	"unicode"
)

// ===== Классификаторы =====
// Ready-made predicates for grammar state functions.

// IsIdentStart accepts '_' and Unicode letters.
func IsIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsIdentContinue accepts identifier starts and Unicode digits.
func IsIdentContinue(r rune) bool {
	return IsIdentStart(r) || unicode.IsDigit(r)
}

func IsDec(r rune) bool { return r >= '0' && r <= '9' }

func IsHex(r rune) bool {
	return (r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'f') ||
		(r >= 'A' && r <= 'F')
}

// IsBlank accepts horizontal whitespace only; line terminators are left to the grammar.
func IsBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\f' || r == '\v'
}

// Not negates a predicate.
func Not(p Predicate) Predicate {
	return func(r rune) bool { return !p(r) }
}

// Is returns a predicate matching exactly r.
func Is(r rune) Predicate {
	return func(c rune) bool { return c == r }
}
