// Package lexer is a generic state-machine lexer engine.
//
// A grammar supplies a start State and a closed set of token kinds. Each State
// inspects the cursor and returns a Transition: either the next State or a
// finished token. The engine runs transitions in a loop, so loops in the token
// grammar ("more digits") are back-edges in the graph, not recursive calls,
// and stack depth stays bounded for any input.
//
// Finished tokens go to one of three channels:
//   - parser: returned to the caller of Advance/Peek (Emit);
//   - trivia: remembered for the current scan, then scanning restarts (EmitTrivia);
//   - invalid: appended to the invalid log, then scanning restarts (EmitInvalid).
//
// Continue drops the scanned text without producing a token.
package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"lexkit/internal/source"
	"lexkit/internal/symbol"
	"lexkit/internal/token"
	"lexkit/internal/trace"
)

// State is one node of a grammar's transition graph.
type State func(lx *Lexer) Transition

// Transition is the result of running a State.
type Transition struct {
	next State
	tok  token.Token
	done bool
}

// Next continues scanning in state s.
func Next(s State) Transition {
	return Transition{next: s}
}

// Done reports whether the transition carries a finished parser token.
func (t Transition) Done() bool { return t.done }

// Grammar is a transition graph the engine can execute.
type Grammar interface {
	// Start returns the initial state, entered at the beginning of every lexeme.
	Start() State
	// Names returns display names of the grammar's kinds.
	Names() token.Names
}

// scanResult is what one scan produced: the parser token and the last trivia
// seen on the way to it.
type scanResult struct {
	tok       token.Token
	trivia    token.Token
	hasTrivia bool
}

// Lexer executes a Grammar over one input text.
type Lexer struct {
	input   string
	grammar Grammar
	start   State
	opts    Options

	st          state
	restartByte int // cursor byte at the last (re)entry into the start state

	// per-scan trivia slot, copied into scanResult when the scan ends
	trivia    token.Token
	hasTrivia bool

	current   scanResult
	lookahead []scanResult // FIFO

	logged  []token.Token // parser + trivia tokens when opts.Log
	invalid []token.Token

	text string // source text of the last finished token
}

var _ token.Stream = (*Lexer)(nil)

// New creates a lexer over input. The input must be valid UTF-8.
func New(input string, g Grammar, opts Options) *Lexer {
	if _, err := safecast.Conv[uint32](len(input)); err != nil {
		panic(fmt.Errorf("lexer input too large: %w", err))
	}
	return &Lexer{
		input:   input,
		grammar: g,
		start:   g.Start(),
		opts:    opts,
	}
}

// Grammar returns the grammar the lexer runs.
func (lx *Lexer) Grammar() Grammar { return lx.grammar }

// Logged returns parser and trivia tokens in scan order (only with Options.Log).
// The slice is owned by the lexer.
func (lx *Lexer) Logged() []token.Token { return lx.logged }

// Invalid returns every invalid token in scan order.
// The slice is owned by the lexer.
func (lx *Lexer) Invalid() []token.Token { return lx.invalid }

// scan runs the state machine until a parser token is produced.
func (lx *Lexer) scan() scanResult {
	lx.trivia, lx.hasTrivia = token.Token{}, false
	lx.restartByte = lx.st.cur.byte
	tr := Next(lx.start)
	for !tr.done {
		tr = tr.next(lx)
	}
	return scanResult{tok: tr.tok, trivia: lx.trivia, hasTrivia: lx.hasTrivia}
}

// finish closes the current lexeme as a token and starts a new lexeme at the cursor.
func (lx *Lexer) finish(kind token.Kind, sym symbol.Symbol) token.Token {
	tok := token.Token{
		Kind:  kind,
		Range: source.NewRange(lx.st.start.pos, lx.Pos()),
		Sym:   sym,
	}
	lx.text = lx.input[lx.st.start.byte:lx.st.cur.byte]
	lx.markStart()
	return tok
}

// record logs and traces a finished parser or trivia token.
func (lx *Lexer) record(ch trace.Channel, tok token.Token) {
	if lx.opts.Log {
		lx.logged = append(lx.logged, tok)
	}
	lx.traceToken(ch, "lex.token", tok)
}

// traceToken emits tok with its text once the tracer level asks for ch.
func (lx *Lexer) traceToken(ch trace.Channel, name string, tok token.Token) {
	t := lx.opts.tracer()
	if !trace.WantsLexeme(t, ch) {
		return
	}
	trace.LexemePoint(t, lx.opts.Name, name, trace.Lexeme{
		Channel: ch,
		Kind:    lx.grammar.Names().Name(tok.Kind),
		Range:   tok.Range,
		Text:    lx.text,
	})
}

// restart re-enters the start state. If nothing was consumed since the last
// entry, the engine itself makes progress: at end of input it emits EOF,
// otherwise it routes one character to the invalid channel.
func (lx *Lexer) restart() Transition {
	if lx.st.cur.byte == lx.restartByte {
		if lx.AtEOF() {
			return lx.Emit(token.EOF)
		}
		lx.Consume()
		lx.pushInvalid(lx.finish(token.Invalid, symbol.Empty))
	}
	lx.restartByte = lx.st.cur.byte
	return Next(lx.start)
}

func (lx *Lexer) pushInvalid(tok token.Token) {
	lx.invalid = append(lx.invalid, tok)
	lx.traceToken(trace.ChannelInvalid, "lex.invalid", tok)
}

// Emit finishes the lexeme as a parser token of the given kind.
func (lx *Lexer) Emit(kind token.Kind) Transition {
	return lx.EmitSymbol(kind, symbol.Empty)
}

// EmitSymbol is Emit with an interned lexeme attached.
func (lx *Lexer) EmitSymbol(kind token.Kind, sym symbol.Symbol) Transition {
	tok := lx.finish(kind, sym)
	lx.record(trace.ChannelParser, tok)
	return Transition{tok: tok, done: true}
}

// EmitTrivia finishes the lexeme as trivia and restarts scanning.
// Only the last trivia of a scan is kept.
func (lx *Lexer) EmitTrivia(kind token.Kind) Transition {
	tok := lx.finish(kind, symbol.Empty)
	lx.record(trace.ChannelTrivia, tok)
	lx.trivia, lx.hasTrivia = tok, true
	return lx.restart()
}

// EmitInvalid finishes the lexeme as an invalid token and restarts scanning.
func (lx *Lexer) EmitInvalid() Transition {
	lx.pushInvalid(lx.finish(token.Invalid, symbol.Empty))
	return lx.restart()
}

// Continue drops the current lexeme without a token and restarts scanning.
func (lx *Lexer) Continue() Transition {
	lx.markStart()
	return lx.restart()
}
