package token

import "iter"

// Stream is what a parser pulls tokens through.
//
// Peek(n) may scan up to n new tokens; deep lookahead is not free.
type Stream interface {
	// Current returns the most recently produced token.
	Current() Token
	// Peek returns the token n positions after Current (n >= 1) without
	// consuming anything.
	Peek(n int) Token
	// Advance makes the next token current, draining lookahead first.
	Advance()
	// Trivia returns the trivia token recorded by the scan that produced Current.
	Trivia() (Token, bool)
	// Finalize jumps to end of input and makes an EOF token current.
	Finalize()
	// All scans and yields tokens until EOF; EOF itself is not yielded.
	All() iter.Seq[Token]
}
