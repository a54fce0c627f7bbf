// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lexkit/internal/source"
	"lexkit/internal/token"
)

// CheckTokenInvariants runs the stream invariants on one lexed file:
// 1) the stream is non-empty and ends with exactly one EOF
// 2) parser tokens do not overlap and never go backwards
// 3) every range (parser and invalid) lies within the file
// 4) invalid tokens are non-empty and only appear on the invalid channel
func CheckTokenInvariants(tokens, invalid []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}
	last := tokens[len(tokens)-1]
	if !last.IsEOF() {
		return fmt.Errorf("stream ends with %v, not EOF", last)
	}

	end, err := endOf(sf)
	if err != nil {
		return err
	}

	var prev source.Range
	for i, tok := range tokens {
		if tok.IsEOF() && i != len(tokens)-1 {
			return fmt.Errorf("EOF at %d of %d", i, len(tokens))
		}
		if tok.IsInvalid() {
			return fmt.Errorf("invalid token %v on the parser channel", tok)
		}
		if i > 0 && tok.Range.Start.Less(prev.End) {
			return fmt.Errorf("token %d %v overlaps previous %v", i, tok.Range, prev)
		}
		if end.Less(tok.Range.End) {
			return fmt.Errorf("token %d %v ends beyond file end %v", i, tok.Range, end)
		}
		prev = tok.Range
	}

	for i, tok := range invalid {
		if !tok.IsInvalid() {
			return fmt.Errorf("invalid log entry %d has kind %d", i, tok.Kind)
		}
		if tok.Range.Empty() {
			return fmt.Errorf("empty invalid range %v", tok.Range)
		}
		if end.Less(tok.Range.End) {
			return fmt.Errorf("invalid token %v ends beyond file end %v", tok.Range, end)
		}
	}
	return nil
}

// endOf returns the position just past the last character, counting
// '\n' as the only line terminator.
func endOf(sf *source.File) (source.Position, error) {
	lines, err := safecast.Conv[uint32](len(sf.LineIdx))
	if err != nil {
		return source.Position{}, fmt.Errorf("line index overflow: %w", err)
	}
	col, err := safecast.Conv[uint32](len([]rune(sf.GetLine(lines))))
	if err != nil {
		return source.Position{}, fmt.Errorf("line length overflow: %w", err)
	}
	return source.Position{Line: lines, Column: col}, nil
}
