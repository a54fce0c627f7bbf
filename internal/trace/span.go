package trace

import (
	"sync/atomic"
	"time"
	"unicode/utf8"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return globalSeq.Add(1) }

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 { return globalSpans.Add(1) }

// maxLexemeText limits the lexeme text copied into an event.
const maxLexemeText = 32

// Span is an open begin/end pair. A disabled span is a no-op but still safe to use.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  SpanContext
	scope   Scope
	name    string
	started time.Time
	counts  Counts
}

// Begin starts a span under parent and emits its begin event. The span
// belongs to parent's file.
func Begin(t Tracer, scope Scope, name string, parent SpanContext) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}

	s := &Span{
		tracer:  t,
		id:      NextSpanID(),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return s
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent.SpanID,
		File:     s.parent.File,
		Name:     s.name,
		Detail:   detail,
	}
}

// Count adds c to the tallies reported by End. Returns s for chaining.
func (s *Span) Count(c Counts) *Span {
	if s == nil || s.id == 0 {
		return s
	}
	s.counts.add(c)
	return s
}

// End emits the end event with the accumulated counts and returns the duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.id == 0 {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now, detail)
	ev.Counts = s.counts
	s.tracer.Emit(ev)
	return now.Sub(s.started)
}

// ID returns the span ID, 0 for a disabled span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits a single instant event for file.
func Point(t Tracer, scope Scope, file, name, detail string) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Seq:    NextSeq(),
		Kind:   KindPoint,
		Scope:  scope,
		File:   file,
		Name:   name,
		Detail: detail,
	})
}

// WantsLexeme reports whether t records lexer events on ch. Callers check it
// before building the payload.
func WantsLexeme(t Tracer, ch Channel) bool {
	return t != nil && t.Enabled() && t.Level().wantsLexeme(ch)
}

// LexemePoint emits a lexer event carrying lx; the text is clipped.
func LexemePoint(t Tracer, file, name string, lx Lexeme) {
	if !WantsLexeme(t, lx.Channel) {
		return
	}
	lx.Text = clip(lx.Text, maxLexemeText)
	t.Emit(&Event{
		Time:   time.Now(),
		Seq:    NextSeq(),
		Kind:   KindPoint,
		Scope:  lx.Channel.scope(),
		File:   file,
		Name:   name,
		Lexeme: &lx,
	})
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
