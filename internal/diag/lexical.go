package diag

import (
	"fmt"
	"unicode/utf8"

	"lexkit/internal/source"
	"lexkit/internal/token"
)

// maxQuoted limits how much of an invalid lexeme is quoted in a message.
const maxQuoted = 24

// FromInvalid reports every token of the lexer's invalid log. The engine
// only knows that a lexeme matched nothing, so the code is picked from its
// shape: a single character, a multi-line run, or anything else.
func FromInvalid(r Reporter, file *source.File, invalid []token.Token) {
	for _, tok := range invalid {
		text := file.Slice(tok.Range)
		switch {
		case utf8.RuneCountInString(text) == 1:
			ReportError(r, LexUnknownChar, file.ID, tok.Range, fmt.Sprintf("unknown character %q", text)).Emit()
		case tok.Range.Start.Line != tok.Range.End.Line:
			ReportError(r, LexInvalidLexeme, file.ID, tok.Range, fmt.Sprintf("invalid lexeme %q", quote(text))).
				WithNote(source.NewRange(tok.Range.End, tok.Range.End), "lexeme runs to here").
				Emit()
		default:
			ReportError(r, LexInvalidLexeme, file.ID, tok.Range, fmt.Sprintf("invalid lexeme %q", quote(text))).Emit()
		}
	}
}

func quote(s string) string {
	if utf8.RuneCountInString(s) <= maxQuoted {
		return s
	}
	return string([]rune(s)[:maxQuoted]) + "..."
}
