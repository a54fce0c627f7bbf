// Package token defines the engine-level token model shared by the lexer and
// the grammars driving it.
// Invariants:
//   - Kind values Invalid and EOF are reserved by the engine; grammars number
//     their own kinds from FirstGrammarKind.
//   - Token.Range is half-open and counts columns in Unicode scalar values.
//   - Tokens are plain values: copying one never copies source text.
//   - Token.Sym is set only for kinds whose lexeme the grammar interned.
package token
