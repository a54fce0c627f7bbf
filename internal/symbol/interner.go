package symbol

import (
	"fmt"
	"slices"
	"unsafe"

	"fortio.org/safecast"
)

// Interner maps strings to Symbols and back.
// It is not safe for concurrent use: keep one per worker.
type Interner struct {
	index map[string]Symbol // строка -> Symbol; ключи указывают в arena
	table []string          // Symbol -> строка
	arena arena
	gen   uint32
}

// NewInterner creates an interner with the default arena chunk size.
func NewInterner() *Interner {
	return NewInternerSize(defaultChunkSize)
}

// NewInternerSize creates an interner whose arena grows in chunks of chunkSize bytes.
func NewInternerSize(chunkSize int) *Interner {
	in := &Interner{
		index: make(map[string]Symbol, 64),
		table: make([]string, 0, 64),
		arena: newArena(chunkSize),
	}
	in.init()
	return in
}

func (in *Interner) init() {
	in.table = append(in.table, "")
	in.index[""] = Empty
}

// Intern returns the Symbol for s, allocating a new one on first sight.
func (in *Interner) Intern(s string) Symbol {
	if sym, ok := in.index[s]; ok {
		return sym
	}
	return in.alloc(s)
}

// InternBytes interns the string form of b. b is copied into the arena once
// on first sight and may be reused by the caller afterwards.
func (in *Interner) InternBytes(b []byte) Symbol {
	// view over b, valid only for this call: alloc copies it before it escapes
	view := unsafe.String(unsafe.SliceData(b), len(b))
	if sym, ok := in.index[view]; ok {
		return sym
	}
	return in.alloc(view)
}

func (in *Interner) alloc(s string) Symbol {
	n, err := safecast.Conv[uint32](len(in.table))
	if err != nil {
		panic(fmt.Errorf("symbol table overflow: %w", err))
	}
	sym := Symbol(n)
	stored := in.arena.allocString(s)
	in.table = append(in.table, stored)
	in.index[stored] = sym
	return sym
}

// Resolve returns the string previously interned as sym.
// Passing a Symbol this interner never issued is a caller bug and panics.
func (in *Interner) Resolve(sym Symbol) string {
	s, ok := in.Lookup(sym)
	if !ok {
		panic(fmt.Errorf("symbol %d was not issued by this interner (generation %d, %d entries)", uint32(sym), in.gen, len(in.table)))
	}
	return s
}

// Lookup is the non-panicking form of Resolve.
func (in *Interner) Lookup(sym Symbol) (string, bool) {
	if int(sym) >= len(in.table) {
		return "", false
	}
	return in.table[sym], true
}

// Debug formats sym for dumps; the empty symbol prints as "ɛ".
func (in *Interner) Debug(sym Symbol) string {
	if sym == Empty {
		return "ɛ"
	}
	return in.Resolve(sym)
}

// Check wraps sym with the current generation.
func (in *Interner) Check(sym Symbol) Checked {
	return Checked{Sym: sym, Gen: in.gen}
}

// ResolveChecked resolves c, panicking when c predates the last Reset.
func (in *Interner) ResolveChecked(c Checked) string {
	if c.Gen != in.gen {
		panic(fmt.Errorf("stale symbol %d: issued in generation %d, interner is at %d", uint32(c.Sym), c.Gen, in.gen))
	}
	return in.Resolve(c.Sym)
}

// Reset drops every entry and the arena. Ids restart from Empty; Symbols
// obtained earlier must not be used with this interner again.
func (in *Interner) Reset() {
	clear(in.index)
	in.table = in.table[:0]
	in.arena.reset()
	in.gen++
	in.init()
}

// AllocatedBytes reports the capacity of the arena chunks.
func (in *Interner) AllocatedBytes() int {
	return in.arena.allocated
}

// Len returns the number of interned strings, Empty included. Never less than 1.
func (in *Interner) Len() int {
	return len(in.table)
}

// Generation returns how many times the interner has been reset.
func (in *Interner) Generation() uint32 {
	return in.gen
}

// Snapshot returns a copy of the table, indexed by Symbol.
func (in *Interner) Snapshot() []string {
	return slices.Clone(in.table)
}
