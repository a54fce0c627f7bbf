package source

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"strings"

	"fortio.org/safecast"
)

// ErrInvalidUTF8 is returned by Load when the file is not well-formed UTF-8.
// Лексер требует корректный UTF-8 на входе, поэтому проверяем здесь, а не в лексере.
var ErrInvalidUTF8 = errors.New("source is not valid UTF-8")

// LoadOptions controls normalisation applied by FileSet.LoadWith and AddWith.
type LoadOptions struct {
	// NormalizeNFC rewrites the content into Unicode normalization form C,
	// so that composed and decomposed spellings get the same columns.
	NormalizeNFC bool
}

// FileSet manages a collection of source files.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a file from normalized bytes, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	// Всегда обновляем индекс на последнюю версию файла
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk with default options.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	return fileSet.LoadWith(path, LoadOptions{})
}

// LoadWith reads a file from disk, normalizes BOM/CRLF (and NFC if asked),
// checks the encoding and calls Add.
func (fileSet *FileSet) LoadWith(path string, opts LoadOptions) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags, err := prepare(path, content, opts)
	if err != nil {
		return 0, err
	}
	return fileSet.Add(path, content, flags), nil
}

// AddWith registers in-memory input (stdin, generated text) under name with
// the same normalisation and encoding check as LoadWith. The file is virtual.
func (fileSet *FileSet) AddWith(name string, content []byte, opts LoadOptions) (FileID, error) {
	content, flags, err := prepare(name, content, opts)
	if err != nil {
		return 0, err
	}
	return fileSet.Add(name, content, flags|FileVirtual), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		panic(fmt.Errorf("unknown file id %d", id))
	}
	return &fileSet.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Len returns the number of files ever added.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// GetLine возвращает строку с заданным номером (0-based, как в Position) из файла.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(line uint32) string {
	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	var start, end uint32
	switch {
	case line == 0:
		start = 0
	case line-1 < lenLineIdx:
		start = f.LineIdx[line-1] + 1
	default:
		return ""
	}

	if line < lenLineIdx {
		end = f.LineIdx[line]
	} else {
		end = lenContent
	}

	if start > lenContent {
		return ""
	}
	return string(f.Content[start:end])
}

// Slice returns the text covered by r. Columns count runes; lines are
// joined with '\n'. Out-of-range coordinates are clamped.
func (f *File) Slice(r Range) string {
	if r.Empty() {
		return ""
	}
	var b strings.Builder
	for line := r.Start.Line; line <= r.End.Line; line++ {
		text := []rune(f.GetLine(line))
		from, to := 0, len(text)
		if line == r.Start.Line {
			from = min(int(r.Start.Column), len(text))
		}
		if line == r.End.Line {
			to = min(int(r.End.Column), len(text))
		}
		if from < to {
			b.WriteString(string(text[from:to]))
		}
		if line != r.End.Line {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
