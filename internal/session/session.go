// Package session holds the per-compilation state that used to be global:
// the symbol interner, the tracer and lexer options.
//
// A Session is not safe for concurrent use. Parallel drivers create one per
// worker; symbols from different sessions must not be mixed.
package session

import (
	"strconv"

	"lexkit/internal/grammar"
	"lexkit/internal/lexer"
	"lexkit/internal/symbol"
	"lexkit/internal/trace"
)

// Option configures a Session.
type Option func(*Session)

// WithTracer sets the tracer handed to every lexer of the session.
func WithTracer(t trace.Tracer) Option {
	return func(s *Session) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithLogging keeps parser and trivia tokens in each lexer's log.
func WithLogging(on bool) Option {
	return func(s *Session) {
		s.log = on
	}
}

// WithChunkSize sets the interner arena chunk size in bytes.
func WithChunkSize(n int) Option {
	return func(s *Session) {
		s.chunkSize = n
	}
}

type Session struct {
	symbols   *symbol.Interner
	tracer    trace.Tracer
	log       bool
	chunkSize int
}

// New creates a session with an empty interner.
func New(opts ...Option) *Session {
	s := &Session{tracer: trace.Nop}
	for _, opt := range opts {
		opt(s)
	}
	if s.chunkSize > 0 {
		s.symbols = symbol.NewInternerSize(s.chunkSize)
	} else {
		s.symbols = symbol.NewInterner()
	}
	return s
}

func (s *Session) Interner() *symbol.Interner { return s.symbols }
func (s *Session) Tracer() trace.Tracer       { return s.tracer }

func (s *Session) Intern(str string) symbol.Symbol { return s.symbols.Intern(str) }

func (s *Session) Resolve(sym symbol.Symbol) string { return s.symbols.Resolve(sym) }

// Reset drops every symbol of the session at once. Tokens produced before
// the reset carry symbols that no longer resolve.
func (s *Session) Reset() {
	n := s.symbols.Len()
	s.symbols.Reset()
	trace.Point(s.tracer, trace.ScopeFile, "", "session.reset", strconv.Itoa(n)+" symbols")
}

// Grammar looks up a registered grammar bound to the session interner.
func (s *Session) Grammar(name string) (lexer.Grammar, error) {
	return grammar.Lookup(name, s.symbols)
}

// NewLexer creates a lexer configured from the session. name labels trace events.
func (s *Session) NewLexer(input, name string, g lexer.Grammar) *lexer.Lexer {
	return lexer.New(input, g, lexer.Options{
		Log:    s.log,
		Tracer: s.tracer,
		Name:   name,
	})
}
