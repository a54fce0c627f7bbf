package token

import "fmt"

// Kind represents the category of a token. The set is closed per grammar.
type Kind uint16

const (
	// Invalid marks a lexeme that matched no token shape.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// FirstGrammarKind is the first value available to grammar definitions.
	FirstGrammarKind
)

// Names maps grammar kinds to display names.
type Names map[Kind]string

// Name returns the display name of k, falling back to the engine names.
func (n Names) Name(k Kind) string {
	if s, ok := n[k]; ok {
		return s
	}
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}
