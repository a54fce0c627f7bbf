package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // invalid lexemes only
	LevelPhase               // driver and pass spans, plus invalid lexemes
	LevelDetail              // per-file points
	LevelDebug               // every token
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a case-insensitive level name.
func ParseLevel(s string) (Level, error) {
	lower := strings.ToLower(s)
	for i, name := range levelNames {
		if name == lower {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// deepest is the finest scope l lets through; 0 lets nothing through.
func (l Level) deepest() Scope {
	switch l {
	case LevelPhase:
		return ScopePass
	case LevelDetail:
		return ScopeFile
	case LevelDebug:
		return ScopeLexeme
	}
	return 0
}

// ShouldEmit reports whether spans and points of scope pass at l.
func (l Level) ShouldEmit(scope Scope) bool {
	return scope <= l.deepest()
}

// wantsLexeme reports whether lexer events on ch pass at l.
// Invalid lexemes are errors and pass from LevelError up.
func (l Level) wantsLexeme(ch Channel) bool {
	if ch == ChannelInvalid && l >= LevelError {
		return true
	}
	return l.ShouldEmit(ch.scope())
}

func (l Level) admits(ev *Event) bool {
	if ev.Lexeme != nil {
		return l.wantsLexeme(ev.Lexeme.Channel)
	}
	return l.ShouldEmit(ev.Scope)
}
