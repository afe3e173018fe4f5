package iselapi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArena(t *testing.T) {
	a := NewArena[int]()
	require.Equal(t, 0, a.Len())

	ptrs := make([]*int, 0, 3*arenaChunkLen)
	for i := 0; i < 3*arenaChunkLen; i++ {
		p, idx := a.Allocate()
		require.Equal(t, i, idx)
		*p = i * 2
		ptrs = append(ptrs, p)
	}
	require.Equal(t, 3*arenaChunkLen, a.Len())
	for i, p := range ptrs {
		require.Equal(t, i*2, *p)
		require.Same(t, p, a.View(i))
	}

	a.Reset()
	require.Equal(t, 0, a.Len())
	p, idx := a.Allocate()
	require.Equal(t, 0, idx)
	require.Equal(t, 0, *p)
}

func TestArena_Reset(t *testing.T) {
	for _, tc := range []struct {
		name   string
		before int
		after  int
	}{
		{name: "partial chunk", before: 5, after: 5},
		{name: "reuses every chunk", before: 2*arenaChunkLen + 1, after: 2*arenaChunkLen + 1},
		{name: "grows past kept chunks", before: arenaChunkLen, after: 3 * arenaChunkLen},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := NewArena[int]()
			for i := 0; i < tc.before; i++ {
				p, _ := a.Allocate()
				*p = -1
			}
			kept := a.chunks[:cap(a.chunks)][0]

			a.Reset()
			for i := 0; i < tc.after; i++ {
				p, idx := a.Allocate()
				require.Equal(t, i, idx)
				require.Zero(t, *p)
			}
			require.Equal(t, tc.after, a.Len())
			require.Same(t, kept, a.chunks[0])
		})
	}
}

func TestArena_ViewOutOfRange(t *testing.T) {
	a := NewArena[int]()
	a.Allocate()
	require.Panics(t, func() { a.View(1) })
	require.Panics(t, func() { a.View(-1) })
}
