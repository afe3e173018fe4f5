package iselapi

const arenaChunkLen = 128

// Arena backs the blocks and instructions of a program. An entry is
// addressed by the index Allocate hands out, which is also its block or
// instruction id, and its address is fixed until Reset.
type Arena[T any] struct {
	chunks []*[arenaChunkLen]T
	// used counts the entries taken from the last chunk.
	used  int
	count int
}

// NewArena returns an empty Arena.
func NewArena[T any]() Arena[T] {
	var ret Arena[T]
	ret.Reset()
	return ret
}

// Len is the number of entries handed out.
func (a *Arena[T]) Len() int {
	return a.count
}

// Allocate hands out the next zero entry and its id.
func (a *Arena[T]) Allocate() (*T, int) {
	if a.used == arenaChunkLen {
		a.grow()
	}
	ret := &a.chunks[len(a.chunks)-1][a.used]
	a.used++
	a.count++
	return ret, a.count - 1
}

// grow makes a fresh chunk current, recycling one kept by Reset if any.
func (a *Arena[T]) grow() {
	n := len(a.chunks)
	if n < cap(a.chunks) {
		a.chunks = a.chunks[:n+1]
	} else {
		a.chunks = append(a.chunks, nil)
	}
	if a.chunks[n] == nil {
		a.chunks[n] = new([arenaChunkLen]T)
	}
	a.used = 0
}

// View returns the entry with id i.
func (a *Arena[T]) View(i int) *T {
	if i < 0 || i >= a.count {
		panic("BUG: arena index out of range")
	}
	return &a.chunks[i/arenaChunkLen][i%arenaChunkLen]
}

// Reset drops every entry. Chunks stay allocated for the next program.
func (a *Arena[T]) Reset() {
	for _, c := range a.chunks {
		clear(c[:])
	}
	a.chunks = a.chunks[:0]
	a.used = arenaChunkLen
	a.count = 0
}
