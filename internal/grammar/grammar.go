// Package grammar is the registry of the grammars shipped with lexkit.
package grammar

import (
	"fmt"
	"slices"
	"strings"

	"lexkit/internal/grammar/arith"
	"lexkit/internal/grammar/pl0"
	"lexkit/internal/lexer"
	"lexkit/internal/symbol"
)

// Factory builds a grammar bound to an interner.
type Factory func(in *symbol.Interner) lexer.Grammar

var registry = map[string]Factory{
	"arith": func(*symbol.Interner) lexer.Grammar { return arith.New() },
	"pl0":   func(in *symbol.Interner) lexer.Grammar { return pl0.New(in) },
}

// Lookup returns a grammar by name.
func Lookup(name string, in *symbol.Interner) (lexer.Grammar, error) {
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown grammar %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return f(in), nil
}

// Names lists registered grammars in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
