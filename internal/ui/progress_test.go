package ui

import (
	"strings"
	"testing"

	"lexkit/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("lexing", []string{"a.pl0", "b.pl0"}, events).(*progressModel)

	m.Update(eventMsg(driver.Event{Stage: driver.StageLex, Status: driver.StatusWorking}))
	m.Update(eventMsg(driver.Event{File: "a.pl0", Stage: driver.StageLex, Status: driver.StatusWorking}))
	m.Update(eventMsg(driver.Event{File: "b.pl0", Stage: driver.StageDiagnose, Status: driver.StatusError, Tokens: 12, Invalid: 2}))
	m.Update(eventMsg(driver.Event{File: "unknown.pl0", Status: driver.StatusDone}))

	if m.rows[0].label() != "lexing" || m.rows[1].label() != "error" {
		t.Fatalf("statuses = %q, %q", m.rows[0].label(), m.rows[1].label())
	}
	if got := m.percent(); got != 0.75 {
		t.Fatalf("percent = %v, want 0.75", got)
	}

	view := m.View()
	for _, want := range []string{"lexing (lexing) 1/2", "a.pl0", "      12     !2 b.pl0", "12 tokens, 2 invalid"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}

	m.Update(doneMsg{})
	if !strings.Contains(m.View(), "done: lexing 1/2") {
		t.Fatal("done header missing")
	}
}

func TestProgressRowsWithoutCounts(t *testing.T) {
	m := NewProgressModel("lexing", []string{"a.pl0"}, nil).(*progressModel)
	m.Update(eventMsg(driver.Event{File: "a.pl0", Stage: driver.StageLoad, Status: driver.StatusError}))

	if m.rows[0].counted {
		t.Fatal("a file that failed to load has no counts")
	}
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}
	if view := m.View(); !strings.Contains(view, "0 tokens\n") {
		t.Fatalf("unexpected totals:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("internal/grammar/pl0/primes.pl0", 12); got != "internal/..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 12); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
}
