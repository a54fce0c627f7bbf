package fuzztests

import (
	"strings"
	"testing"

	"lexkit/internal/symbol"
)

func FuzzInternerRoundTrip(f *testing.F) {
	f.Add("alpha beta alpha")
	f.Add("")
	f.Add("日本 語 日本")
	f.Fuzz(func(t *testing.T, text string) {
		in := symbol.NewInterner()
		seen := make(map[string]symbol.Symbol)
		for _, word := range strings.Fields(text) {
			sym := in.Intern(word)
			if prev, ok := seen[word]; ok && prev != sym {
				t.Fatalf("%q interned twice: %v and %v", word, prev, sym)
			}
			seen[word] = sym
			if got := in.Resolve(sym); got != word {
				t.Fatalf("Resolve(%v) = %q, want %q", sym, got, word)
			}
		}
	})
}
