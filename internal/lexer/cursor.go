package lexer

import (
	"fmt"
	"unicode/utf8"

	"lexkit/internal/source"
)

// cursor is a read position in both storage units.
type cursor struct {
	byte int    // смещение в байтах
	char uint32 // смещение в Unicode scalar values
}

// lexemeStart records where the lexeme being scanned began.
type lexemeStart struct {
	byte int
	char uint32
	pos  source.Position
}

// state is the complete scanning state. It is a plain value, so snapshots
// are taken by copying.
type state struct {
	cur       cursor
	start     lexemeStart
	line      uint32
	lineStart uint32 // char offset where the current line begins
	width     int    // byte width of the last consumed char; 0 if there is nothing to back up
}

// Checkpoint is a saved cursor, restored wholesale by Restore.
// The lexeme start is not part of it: checkpoints never span an emit.
type Checkpoint struct {
	cur       cursor
	line      uint32
	lineStart uint32
	width     int
}

// Checkpoint snapshots the cursor.
func (lx *Lexer) Checkpoint() Checkpoint {
	return Checkpoint{cur: lx.st.cur, line: lx.st.line, lineStart: lx.st.lineStart, width: lx.st.width}
}

// Restore rewinds the cursor to cp.
func (lx *Lexer) Restore(cp Checkpoint) {
	if cp.cur.byte < lx.st.start.byte {
		panic(fmt.Errorf("lexer: checkpoint at byte %d precedes lexeme start %d", cp.cur.byte, lx.st.start.byte))
	}
	lx.st.cur = cp.cur
	lx.st.line = cp.line
	lx.st.lineStart = cp.lineStart
	lx.st.width = cp.width
}

// Consume reads the next character and advances past it.
// It reports false at end of input.
func (lx *Lexer) Consume() (rune, bool) {
	if lx.st.cur.byte >= len(lx.input) {
		lx.st.width = 0
		return 0, false
	}
	r, w := utf8.DecodeRuneInString(lx.input[lx.st.cur.byte:])
	lx.st.width = w
	lx.st.cur.byte += w
	lx.st.cur.char++
	return r, true
}

// Backup undoes the immediately preceding Consume. Calling it twice in a row,
// or after a Consume that hit end of input, is a caller bug and panics.
func (lx *Lexer) Backup() {
	if lx.st.width == 0 {
		panic("lexer: Backup without a preceding Consume")
	}
	lx.st.cur.byte -= lx.st.width
	lx.st.cur.char--
	lx.st.width = 0
}

// Undo steps back over c, a character obtained outside of the last Consume.
func (lx *Lexer) Undo(c rune) {
	w := utf8.RuneLen(c)
	if w < 0 || lx.st.cur.byte-w < lx.st.start.byte {
		panic(fmt.Errorf("lexer: cannot undo %q at byte %d", c, lx.st.cur.byte))
	}
	lx.st.cur.byte -= w
	lx.st.cur.char--
	lx.st.width = 0
}

// Last returns the most recently consumed character.
func (lx *Lexer) Last() (rune, bool) {
	if lx.st.width == 0 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(lx.input[lx.st.cur.byte-lx.st.width : lx.st.cur.byte])
	return r, true
}

// AtEOF reports whether the cursor reached the end of input.
func (lx *Lexer) AtEOF() bool {
	return lx.st.cur.byte >= len(lx.input)
}

// LineBreak moves to the next line. Grammars call it after consuming
// whatever they consider a line terminator; the engine never guesses.
func (lx *Lexer) LineBreak() {
	lx.st.line++
	lx.st.lineStart = lx.st.cur.char
}

// Lexeme returns the text between the lexeme start and the cursor, with
// skipStart characters dropped from the front and skipEnd from the back
// (e.g. 1, 1 to strip quotes).
func (lx *Lexer) Lexeme(skipStart, skipEnd int) string {
	s := lx.input[lx.st.start.byte:lx.st.cur.byte]
	for ; skipStart > 0 && s != ""; skipStart-- {
		_, w := utf8.DecodeRuneInString(s)
		s = s[w:]
	}
	for ; skipEnd > 0 && s != ""; skipEnd-- {
		_, w := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-w]
	}
	return s
}

// Pos returns the cursor position.
func (lx *Lexer) Pos() source.Position {
	return source.Position{Line: lx.st.line, Column: lx.st.cur.char - lx.st.lineStart}
}

// StartPos returns the position of the lexeme being scanned.
func (lx *Lexer) StartPos() source.Position {
	return lx.st.start.pos
}

// markStart begins a new lexeme at the cursor.
func (lx *Lexer) markStart() {
	lx.st.start = lexemeStart{
		byte: lx.st.cur.byte,
		char: lx.st.cur.char,
		pos:  lx.Pos(),
	}
}
