package symbol

import "unsafe"

const defaultChunkSize = 4 << 10

// arena is a bump allocator for string bytes. Bytes are written exactly once
// and never moved; a chunk is only dropped as a whole on reset.
type arena struct {
	chunks    [][]byte
	chunkSize int
	allocated int
}

func newArena(chunkSize int) arena {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return arena{chunkSize: chunkSize}
}

// allocString copies s into the arena and returns a string view over the copy.
func (a *arena) allocString(s string) string {
	if len(s) == 0 {
		return ""
	}
	n := len(a.chunks)
	if n == 0 || cap(a.chunks[n-1])-len(a.chunks[n-1]) < len(s) {
		// Большие строки получают собственный чанк.
		size := max(a.chunkSize, len(s))
		a.chunks = append(a.chunks, make([]byte, 0, size))
		a.allocated += size
		n++
	}
	chunk := a.chunks[n-1]
	start := len(chunk)
	// append within capacity: the backing array does not move
	chunk = append(chunk, s...)
	a.chunks[n-1] = chunk
	return unsafe.String(&chunk[start], len(s))
}

// reset releases every chunk. Strings handed out earlier keep their chunk
// alive through the GC, so they stay readable.
func (a *arena) reset() {
	a.chunks = nil
	a.allocated = 0
}
