// Package symbol implements the per-session string table used to give every
// identifier-like lexeme a small comparable integer identity.
//
// Invariants:
//   - equal strings map to equal Symbols within one interner generation;
//   - ids are dense and monotonic, starting at Empty (0);
//   - strings returned by Resolve stay valid for as long as they are referenced,
//     even across Reset (the arena is released, not overwritten).
//
// A Symbol is meaningful only relative to the Interner that issued it.
// There is no global table: callers carry their *Interner (usually through a
// session.Session).
package symbol

import (
	"cmp"
	"fmt"
)

// Symbol is an interned string id.
type Symbol uint32

// Empty is the symbol of the empty string. It is registered on construction
// and after every Reset, so it is always 0.
const Empty Symbol = 0

// IsEmpty reports whether s denotes the empty string.
func (s Symbol) IsEmpty() bool { return s == Empty }

// Compare orders symbols by id (interning order, not lexical order).
func (s Symbol) Compare(other Symbol) int { return cmp.Compare(s, other) }

func (s Symbol) Less(other Symbol) bool { return s < other }

func (s Symbol) String() string {
	return fmt.Sprintf("sym#%d", uint32(s))
}

// Checked pairs a Symbol with the interner generation that issued it.
// Используется в отладочных путях, чтобы поймать Symbol, переживший Reset.
type Checked struct {
	Sym Symbol
	Gen uint32
}
