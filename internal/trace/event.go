package trace

import (
	"time"

	"lexkit/internal/source"
)

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers a whole tokenize run (one file, stdin or a directory).
	ScopeDriver Scope = iota + 1
	// ScopePass covers load, lex and diag of one input.
	ScopePass
	// ScopeFile is for per-file points: invalid lexemes, finalize, session reset.
	ScopeFile
	// ScopeLexeme is one event per parser or trivia token.
	ScopeLexeme
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeFile:
		return "file"
	case ScopeLexeme:
		return "lexeme"
	default:
		return "unknown"
	}
}

// Channel is where the engine sent a token.
type Channel uint8

const (
	ChannelParser Channel = iota + 1
	ChannelTrivia
	ChannelInvalid
)

func (c Channel) String() string {
	switch c {
	case ChannelParser:
		return "parser"
	case ChannelTrivia:
		return "trivia"
	case ChannelInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// scope places invalid lexemes at file scope, so they show from LevelDetail
// (and LevelError); ordinary tokens need LevelDebug.
func (c Channel) scope() Scope {
	if c == ChannelInvalid {
		return ScopeFile
	}
	return ScopeLexeme
}

// Lexeme is the token payload of a lexer event.
type Lexeme struct {
	Channel Channel
	Kind    string // grammar display name
	Range   source.Range
	Text    string // clipped to maxLexemeText characters
}

// Counts are the tallies a span reports when it ends.
type Counts struct {
	Files   int
	Failed  int
	Bytes   int
	Tokens  int
	Invalid int
}

// IsZero reports whether nothing was counted.
func (c Counts) IsZero() bool { return c == Counts{} }

func (c *Counts) add(o Counts) {
	c.Files += o.Files
	c.Failed += o.Failed
	c.Bytes += o.Bytes
	c.Tokens += o.Tokens
	c.Invalid += o.Invalid
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // global, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	File     string // input the event belongs to; empty for run-wide events
	Name     string // e.g. "load", "lex", "lex.invalid"
	Detail   string
	Lexeme   *Lexeme // lexer point events only
	Counts   Counts  // span ends only
}
