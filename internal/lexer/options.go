package lexer

import (
	"lexkit/internal/trace"
)

type Options struct {
	// Log keeps every parser and trivia token in an inspectable buffer.
	// Invalid tokens are always kept, independent of this flag.
	Log bool
	// Tracer receives point events for invalid lexemes and finalisation.
	// nil means trace.Nop.
	Tracer trace.Tracer
	// Name labels trace events (usually the file path).
	Name string
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}
