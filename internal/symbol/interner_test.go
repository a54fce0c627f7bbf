package symbol

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
)

// Базовые тесты функциональности

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	// Empty должен быть зарезервирован для пустой строки
	if s, ok := interner.Lookup(Empty); !ok || s != "" {
		t.Errorf("Empty must resolve to the empty string, got %q ok=%v", s, ok)
	}
	if interner.Intern("") != Empty {
		t.Error("interning the empty string must return Empty")
	}

	id1 := interner.Intern("hello")
	if id1 == Empty {
		t.Error("Intern must not return Empty for a non-empty string")
	}
	if id2 := interner.Intern("hello"); id1 != id2 {
		t.Errorf("Intern must be idempotent: %d != %d", id1, id2)
	}
	if got := interner.Resolve(id1); got != "hello" {
		t.Errorf("Resolve returned %q", got)
	}
	if id3 := interner.Intern("world"); id3 == id1 {
		t.Error("distinct strings must get distinct symbols")
	}
	if interner.Len() != 3 { // "", "hello", "world"
		t.Errorf("Len must be 3, got %d", interner.Len())
	}
}

func TestInternerIDsAreDense(t *testing.T) {
	interner := NewInterner()
	for i := 1; i <= 100; i++ {
		sym := interner.Intern(fmt.Sprintf("name%d", i))
		if int(sym) != i {
			t.Fatalf("expected id %d, got %d", i, sym)
		}
	}
}

func TestInternBytesMatchesIntern(t *testing.T) {
	interner := NewInterner()
	id1 := interner.InternBytes([]byte("test"))
	id2 := interner.Intern("test")
	if id1 != id2 {
		t.Errorf("InternBytes and Intern disagree: %d != %d", id1, id2)
	}
}

func TestInternerCopiesInput(t *testing.T) {
	interner := NewInterner()
	buf := []byte("mutable")
	sym := interner.InternBytes(buf)
	copy(buf, "XXXXXXX")
	if got := interner.Resolve(sym); got != "mutable" {
		t.Fatalf("interned string must not alias caller memory, got %q", got)
	}
	// the index key must not alias buf either
	if got := interner.Intern("mutable"); got != sym {
		t.Fatalf("lookup after mutation = %d, want %d", got, sym)
	}
	if got := interner.InternBytes(buf); got == sym {
		t.Fatal("mutated bytes resolved to the old symbol")
	}
}

func TestInternBytesCopiesOnce(t *testing.T) {
	interner := NewInternerSize(64 << 10)
	buf := make([]byte, 0, 32)
	n := 0
	// amortised map and table growth stays well below one allocation per call;
	// a second copy of b would cost at least one
	allocs := testing.AllocsPerRun(500, func() {
		buf = strconv.AppendInt(append(buf[:0], "ident_"...), int64(n), 10)
		n++
		interner.InternBytes(buf)
	})
	if allocs >= 1 {
		t.Fatalf("InternBytes allocates %.1f times per new symbol", allocs)
	}
}

func TestResolvedStringsSurviveGrowth(t *testing.T) {
	interner := NewInternerSize(16)
	first := interner.Resolve(interner.Intern("stable"))
	for i := range 1000 {
		interner.Intern(fmt.Sprintf("filler-%d", i))
	}
	if first != "stable" {
		t.Fatalf("earlier resolved string changed to %q", first)
	}
	if got := interner.Resolve(1); got != "stable" {
		t.Fatalf("Resolve(1) = %q", got)
	}
}

func TestLargeStringGetsOwnChunk(t *testing.T) {
	interner := NewInternerSize(8)
	long := strings.Repeat("x", 100)
	sym := interner.Intern(long)
	if interner.Resolve(sym) != long {
		t.Fatal("long string round trip failed")
	}
	if interner.AllocatedBytes() != 100 {
		t.Fatalf("expected a dedicated 100 byte chunk, got %d", interner.AllocatedBytes())
	}
	interner.Intern("ab")
	if interner.AllocatedBytes() != 108 {
		t.Fatalf("expected a new default chunk, got %d", interner.AllocatedBytes())
	}
}

func TestResetRestartsIDs(t *testing.T) {
	interner := NewInterner()
	first := interner.Intern("alpha")
	interner.Intern("beta")
	if interner.AllocatedBytes() == 0 {
		t.Fatal("expected arena memory after interning")
	}

	interner.Reset()

	if interner.AllocatedBytes() != 0 {
		t.Errorf("Reset must release the arena, got %d bytes", interner.AllocatedBytes())
	}
	if interner.Len() != 1 {
		t.Errorf("only Empty must survive Reset, Len=%d", interner.Len())
	}
	if again := interner.Intern("beta"); again != first {
		t.Errorf("first string after reset must get id %d, got %d", first, again)
	}
	if interner.Generation() != 1 {
		t.Errorf("expected generation 1, got %d", interner.Generation())
	}
}

func TestResolveUnknownPanics(t *testing.T) {
	interner := NewInterner()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown symbol")
		}
	}()
	interner.Resolve(Symbol(42))
}

func TestResolveCheckedDetectsReset(t *testing.T) {
	interner := NewInterner()
	c := interner.Check(interner.Intern("x"))
	if got := interner.ResolveChecked(c); got != "x" {
		t.Fatalf("ResolveChecked = %q", got)
	}
	interner.Reset()
	interner.Intern("y")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for symbol from previous generation")
		}
	}()
	interner.ResolveChecked(c)
}

func TestDebugFormatsEmpty(t *testing.T) {
	interner := NewInterner()
	if got := interner.Debug(Empty); got != "ɛ" {
		t.Errorf("Debug(Empty) = %q", got)
	}
	if got := interner.Debug(interner.Intern("id")); got != "id" {
		t.Errorf("Debug = %q", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	interner := NewInterner()
	interner.Intern("a")
	snap := interner.Snapshot()
	snap[1] = "changed"
	if interner.Resolve(1) != "a" {
		t.Fatal("Snapshot must not alias the table")
	}
}
