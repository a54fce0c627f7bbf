package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"lexkit/internal/source"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug", "DEBUG"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	if got := LevelDetail.String(); got != "detail" {
		t.Errorf("LevelDetail.String() = %q", got)
	}
}

func TestStreamTracerFiltersByScope(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	Point(tr, ScopePass, "a.pl0", "lex", "visible")
	Point(tr, ScopeFile, "a.pl0", "lex.finalize", "hidden")

	out := buf.String()
	if !strings.Contains(out, "lex [a.pl0] (visible)") {
		t.Errorf("expected pass event in output, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("file event must be filtered at phase level, got %q", out)
	}
}

func TestLexemeLevels(t *testing.T) {
	bad := Lexeme{Channel: ChannelInvalid, Kind: "invalid", Text: "$"}
	ok := Lexeme{Channel: ChannelParser, Kind: "ident", Text: "x"}
	cases := []struct {
		level       Level
		bad, parser bool
	}{
		{LevelOff, false, false},
		{LevelError, true, false},
		{LevelPhase, true, false},
		{LevelDetail, true, false},
		{LevelDebug, true, true},
	}
	for _, c := range cases {
		rec := NewRecorder(c.level)
		LexemePoint(rec, "a", "lex.invalid", bad)
		LexemePoint(rec, "a", "lex.token", ok)
		if got := len(rec.Named("lex.invalid")) == 1; got != c.bad {
			t.Errorf("%s: invalid lexeme recorded = %v, want %v", c.level, got, c.bad)
		}
		if got := len(rec.Named("lex.token")) == 1; got != c.parser {
			t.Errorf("%s: parser lexeme recorded = %v, want %v", c.level, got, c.parser)
		}
	}
}

func TestLexemePointPayload(t *testing.T) {
	rec := NewRecorder(LevelDebug)
	rng := source.Range{Start: source.Position{Line: 0, Column: 4}, End: source.Position{Line: 0, Column: 44}}
	LexemePoint(rec, "m.pl0", "lex.token", Lexeme{
		Channel: ChannelTrivia,
		Kind:    "comment",
		Range:   rng,
		Text:    strings.Repeat("é", 40),
	})

	evs := rec.Events()
	if len(evs) != 1 {
		t.Fatalf("expected one event, got %d", len(evs))
	}
	ev := evs[0]
	if ev.Scope != ScopeLexeme || ev.File != "m.pl0" || ev.Lexeme == nil {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if want := strings.Repeat("é", maxLexemeText) + "..."; ev.Lexeme.Text != want {
		t.Errorf("text not clipped to %d runes: %q", maxLexemeText, ev.Lexeme.Text)
	}
	if ev.Lexeme.Range != rng || ev.Lexeme.Kind != "comment" {
		t.Errorf("payload lost: %+v", ev.Lexeme)
	}
}

func TestSpanCountsNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)

	span := Begin(tr, ScopeDriver, "tokenize", SpanContext{File: "dir"})
	span.Count(Counts{Files: 2, Tokens: 10}).Count(Counts{Files: 1, Tokens: 5, Invalid: 1})
	span.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected begin and end events, got %d lines: %q", len(lines), buf.String())
	}
	var ev struct {
		Kind   string         `json:"kind"`
		Name   string         `json:"name"`
		File   string         `json:"file"`
		Detail string         `json:"detail"`
		Counts map[string]int `json:"counts"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if ev.Kind != "end" || ev.Detail != "ok" || ev.Name != "tokenize" || ev.File != "dir" {
		t.Errorf("unexpected end event: %+v", ev)
	}
	if ev.Counts["files"] != 3 || ev.Counts["tokens"] != 15 || ev.Counts["invalid"] != 1 {
		t.Errorf("unexpected counts: %v", ev.Counts)
	}
	if _, ok := ev.Counts["failed"]; ok {
		t.Errorf("zero counts must be omitted: %v", ev.Counts)
	}
}

func TestTextCounts(t *testing.T) {
	out := string(formatText(&Event{
		Kind:   KindSpanEnd,
		Scope:  ScopePass,
		Name:   "lex",
		File:   "a.pl0",
		Counts: Counts{Tokens: 10, Invalid: 1},
	}))
	if !strings.Contains(out, "  ← lex [a.pl0] {tokens=10 invalid=1}") {
		t.Errorf("unexpected text: %q", out)
	}
}

func TestNewOffReturnsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Error("off tracer must be disabled")
	}
}

func TestDisabledSpanIsSafe(t *testing.T) {
	span := Begin(Nop, ScopeDriver, "tokenize", SpanContext{})
	span.Count(Counts{Tokens: 1})
	if span.ID() != 0 || span.End("") != 0 {
		t.Error("disabled span must be a no-op")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("empty context must yield Nop")
	}
	rec := NewRecorder(LevelDebug)
	ctx := WithTracer(context.Background(), rec)
	if FromContext(ctx) != Tracer(rec) {
		t.Error("tracer not propagated")
	}

	ctx, outer := Start(ctx, ScopeDriver, "tokenize")
	ctx = WithFile(ctx, "b.pl0")
	if FromContext(ctx) != Tracer(rec) {
		t.Error("tracer lost after WithFile")
	}
	_, inner := Start(ctx, ScopePass, "lex")
	inner.End("")
	outer.End("")

	evs := rec.Named("lex")
	if len(evs) != 2 {
		t.Fatalf("expected lex begin and end, got %d", len(evs))
	}
	if evs[0].ParentID != outer.ID() || evs[0].File != "b.pl0" {
		t.Errorf("inner span not parented: %+v", evs[0])
	}
	if top := rec.Named("tokenize"); top[0].ParentID != 0 || top[0].File != "" {
		t.Errorf("outer span must be a root: %+v", top[0])
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrShortWrite }

func TestStreamTracerKeepsWriteError(t *testing.T) {
	tr := NewStreamTracer(failingWriter{}, LevelPhase, FormatText)
	Point(tr, ScopePass, "", "lex", "")
	if err := tr.Close(); !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("Close() = %v, want the write error", err)
	}
}
