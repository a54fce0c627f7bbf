package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
	lf      = []byte("\n")
)

// prepare turns raw input into what the lexer may see: BOM stripped,
// CRLF folded to LF, valid UTF-8, and NFC when asked. name only labels the error.
// Одиночные \r остаются как есть: это обычный символ строки.
func prepare(name string, content []byte, opts LoadOptions) ([]byte, FileFlags, error) {
	var flags FileFlags

	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, crlf) {
		content = bytes.ReplaceAll(content, crlf, lf)
		flags |= FileNormalizedCRLF
	}
	if !utf8.Valid(content) {
		return nil, 0, fmt.Errorf("%s: %w", name, ErrInvalidUTF8)
	}
	if opts.NormalizeNFC && !norm.NFC.IsNormal(content) {
		content = norm.NFC.Bytes(content)
		flags |= FileNormalizedNFC
	}
	return content, flags, nil
}

// buildLineIndex records the byte offset of every '\n'.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, lf))
	base := 0
	for {
		i := bytes.IndexByte(content[base:], '\n')
		if i < 0 {
			return out
		}
		off, err := safecast.Conv[uint32](base + i)
		if err != nil {
			panic(fmt.Errorf("line offset overflow: %w", err))
		}
		out = append(out, off)
		base += i + 1
	}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
