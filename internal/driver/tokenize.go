package driver

import (
	"context"
	"fmt"

	"lexkit/internal/diag"
	"lexkit/internal/observ"
	"lexkit/internal/session"
	"lexkit/internal/source"
	"lexkit/internal/token"
	"lexkit/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Grammar string
	Tokens  []token.Token // parser tokens, EOF last
	Logged  []token.Token // parser + trivia tokens when Options.Log
	Invalid []token.Token
	Bag     *diag.Bag
	Session *session.Session // resolves Token.Sym
	Timing  observ.Report
}

// Tokenize loads path and lexes it with opts.Grammar.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	ctx, span := trace.Start(trace.WithFile(ctx, path), trace.ScopeDriver, "tokenize")
	defer span.End("")

	timer := observ.NewTimer()
	load := timer.Begin("load")
	fs := source.NewFileSet()
	fileID, err := fs.LoadWith(path, source.LoadOptions{NormalizeNFC: opts.NormalizeNFC})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)
	timer.End(load, len(file.Content), "bytes")
	span.Count(trace.Counts{Files: 1, Bytes: len(file.Content)})

	res, err := tokenizeFile(ctx, newSession(trace.FromContext(ctx), opts), fs, file, timer, opts)
	if err == nil {
		span.Count(res.Counts())
	}
	return res, err
}

// TokenizeSource lexes in-memory content (stdin, tests) registered under name.
// The content is normalised like a loaded file; invalid UTF-8 is an error
// wrapping source.ErrInvalidUTF8.
func TokenizeSource(ctx context.Context, name string, content []byte, opts Options) (*TokenizeResult, error) {
	ctx, span := trace.Start(trace.WithFile(ctx, name), trace.ScopeDriver, "tokenize")
	defer span.End("")

	timer := observ.NewTimer()
	load := timer.Begin("load")
	fs := source.NewFileSet()
	fileID, err := fs.AddWith(name, content, source.LoadOptions{NormalizeNFC: opts.NormalizeNFC})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	file := fs.Get(fileID)
	timer.End(load, len(file.Content), "bytes")
	span.Count(trace.Counts{Files: 1, Bytes: len(file.Content)})

	res, err := tokenizeFile(ctx, newSession(trace.FromContext(ctx), opts), fs, file, timer, opts)
	if err == nil {
		span.Count(res.Counts())
	}
	return res, err
}

// Counts are the tallies of r as reported by trace spans and progress events.
func (r *TokenizeResult) Counts() trace.Counts {
	return trace.Counts{Tokens: len(r.Tokens), Invalid: len(r.Invalid)}
}

func newSession(tracer trace.Tracer, opts Options) *session.Session {
	return session.New(session.WithTracer(tracer), session.WithLogging(opts.Log))
}

// tokenizeFile runs the lexer over an already loaded file. The file set is
// only read, so workers may share it.
func tokenizeFile(ctx context.Context, sess *session.Session, fs *source.FileSet, file *source.File, timer *observ.Timer, opts Options) (*TokenizeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g, err := sess.Grammar(opts.Grammar)
	if err != nil {
		return nil, err
	}

	ctx = trace.WithTracer(trace.WithFile(ctx, file.Path), sess.Tracer())

	_, lexSpan := trace.Start(ctx, trace.ScopePass, "lex")
	lex := timer.Begin("lex")
	lx := sess.NewLexer(file.Text(), file.Path, g)
	tokens := lx.Tokens()
	timer.End(lex, len(tokens), "tokens")
	lexSpan.Count(trace.Counts{Tokens: len(tokens), Invalid: len(lx.Invalid())}).End("")

	_, diagSpan := trace.Start(ctx, trace.ScopePass, "diag")
	dg := timer.Begin("diag")
	bag := diag.NewBag(opts.MaxDiagnostics)
	diag.FromInvalid(diag.NewDedupReporter(diag.BagReporter{Bag: bag}), file, lx.Invalid())
	bag.Sort()
	timer.End(dg, bag.Len(), "")
	diagSpan.End(fmt.Sprintf("%d diagnostics", bag.Len()))

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Grammar: opts.Grammar,
		Tokens:  tokens,
		Logged:  lx.Logged(),
		Invalid: lx.Invalid(),
		Bag:     bag,
		Session: sess,
		Timing:  timer.Report(),
	}, nil
}
