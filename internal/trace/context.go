package trace

import "context"

type ctxKey struct{}

// ctxState is everything trace keeps in a context: one lookup serves both
// the tracer and the enclosing span.
type ctxState struct {
	tracer Tracer
	span   SpanContext
}

// SpanContext identifies the enclosing span and the file it works on.
type SpanContext struct {
	SpanID uint64
	File   string
}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// FromContext returns the tracer of ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return stateOf(ctx).tracer
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	st := stateOf(ctx)
	st.tracer = t
	return context.WithValue(ctx, ctxKey{}, st)
}

// CurrentSpan returns the enclosing span of ctx; zero outside any span.
func CurrentSpan(ctx context.Context) SpanContext {
	return stateOf(ctx).span
}

// WithSpanContext replaces the enclosing span of ctx.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	st := stateOf(ctx)
	st.span = sc
	return context.WithValue(ctx, ctxKey{}, st)
}

// WithFile marks spans started under ctx as working on file.
func WithFile(ctx context.Context, file string) context.Context {
	sc := CurrentSpan(ctx)
	sc.File = file
	return WithSpanContext(ctx, sc)
}

// Start begins a span under the enclosing one and returns a context in
// which it encloses further spans.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	st := stateOf(ctx)
	span := Begin(st.tracer, scope, name, st.span)
	if span.ID() == 0 {
		return ctx, span
	}
	st.span.SpanID = span.ID()
	return context.WithValue(ctx, ctxKey{}, st), span
}
