package lexer

import (
	"fmt"
	"iter"
	"unicode/utf8"

	"fortio.org/safecast"

	"lexkit/internal/source"
	"lexkit/internal/token"
	"lexkit/internal/trace"
)

// Current returns the most recently produced token.
// Before the first Advance it is the zero Token.
func (lx *Lexer) Current() token.Token {
	return lx.current.tok
}

// Peek returns the token n positions ahead of Current, scanning as needed.
// Current and Trivia are not affected.
func (lx *Lexer) Peek(n int) token.Token {
	if n < 1 {
		panic(fmt.Errorf("lexer: Peek(%d): offset must be >= 1", n))
	}
	for len(lx.lookahead) < n {
		lx.lookahead = append(lx.lookahead, lx.scan())
	}
	return lx.lookahead[n-1].tok
}

// Advance makes the next token current: the front of the lookahead queue if
// Peek buffered anything, otherwise a freshly scanned token.
func (lx *Lexer) Advance() {
	if len(lx.lookahead) > 0 {
		lx.current = lx.lookahead[0]
		lx.lookahead[0] = scanResult{}
		lx.lookahead = lx.lookahead[1:]
		return
	}
	lx.current = lx.scan()
}

// Trivia returns the last trivia token recorded by the scan that produced
// Current. Trivia met while Peek scans ahead belongs to the peeked token and
// shows up here only once Advance makes that token current.
func (lx *Lexer) Trivia() (token.Token, bool) {
	return lx.current.trivia, lx.current.hasTrivia
}

// Finalize moves the cursor to end of input and makes an EOF token current,
// spanning from the lexeme start to the end. Buffered lookahead is dropped.
// Lines are not recounted: the engine does not know the grammar's line terminators.
func (lx *Lexer) Finalize() {
	rest := lx.input[lx.st.cur.byte:]
	n, err := safecast.Conv[uint32](utf8.RuneCountInString(rest))
	if err != nil {
		panic(fmt.Errorf("lexer: remaining input overflow: %w", err))
	}
	lx.st.cur.byte = len(lx.input)
	lx.st.cur.char += n
	lx.st.width = 0

	lx.lookahead = nil
	lx.current = scanResult{tok: token.New(token.EOF, source.NewRange(lx.st.start.pos, lx.Pos()))}
	lx.markStart()

	if t := lx.opts.tracer(); t.Enabled() {
		trace.Point(t, trace.ScopeFile, lx.opts.Name, "lex.finalize", fmt.Sprintf("skipped %d chars", n))
	}
}

// All scans and yields tokens until EOF is produced. EOF is not yielded,
// but it is Current once the sequence ends.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			lx.Advance()
			tok := lx.Current()
			if tok.IsEOF() || !yield(tok) {
				return
			}
		}
	}
}

// Tokens collects the remaining parser tokens including the final EOF.
func (lx *Lexer) Tokens() []token.Token {
	var out []token.Token
	for tok := range lx.All() {
		out = append(out, tok)
	}
	return append(out, lx.Current())
}
