// Package trace provides the tracing (structured logging) subsystem of lexkit.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	lexkit tokenize --trace=- --trace-level=detail file.pl0
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Invalid lexemes only
//   - LevelPhase: Driver and pass spans (load, lex, diag)
//   - LevelDetail: Per-file points (invalid lexemes, finalize, session reset)
//   - LevelDebug: Every parser and trivia token as a lexeme event
//
// # Context Propagation
//
// The tracer and the enclosing span travel together in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx = trace.WithFile(ctx, "main.pl0")
//	ctx, span := trace.Start(ctx, trace.ScopePass, "lex")
//	defer span.End("")
//	span.Count(trace.Counts{Tokens: n})
package trace
