// SPDX-License-Identifier: Apache-2.0

package vector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaCreate(t *testing.T) {
	a, err := NewArena[int64](4)
	require.NoError(t, err)
	require.Equal(t, 4, a.Cap())
	require.Len(t, a.Slots(), 4)

	*a.At(3) = 42
	require.Equal(t, int64(42), a.Slots()[3])
	a.Release()
	require.Equal(t, 0, a.Cap())
	require.Nil(t, a.Slots())
}

func TestArenaCreateEmpty(t *testing.T) {
	before := AllocStats()

	a, err := NewArena[string](0)
	require.NoError(t, err)
	require.Equal(t, 0, a.Cap())
	require.Nil(t, a.Slots())
	require.Equal(t, before.Allocations, AllocStats().Allocations)

	// Releasing an empty arena is a no-op
	a.Release()
	require.Equal(t, before.LiveBlocks, AllocStats().LiveBlocks)
}

func TestArenaCreateInvalid(t *testing.T) {
	_, err := NewArena[int](-1)
	require.ErrorIs(t, err, ErrOutOfMemory)

	_, err = NewArena[[1 << 20]byte](1 << 30)
	require.ErrorIs(t, err, ErrOutOfMemory)
}

func TestArenaMoveFrom(t *testing.T) {
	before := AllocStats()

	src, err := NewArena[int](3)
	require.NoError(t, err)
	*src.At(0) = 7
	dst, err := NewArena[int](5)
	require.NoError(t, err)

	dst.MoveFrom(src)
	require.Equal(t, 3, dst.Cap())
	require.Equal(t, 7, *dst.At(0))
	require.Equal(t, 0, src.Cap())

	// dst's previous block went back to the allocator
	require.Equal(t, before.LiveBlocks+1, AllocStats().LiveBlocks)
	require.Equal(t, before.LiveBytes+int64(blockSize[int](3)), AllocStats().LiveBytes)

	dst.MoveFrom(dst)
	require.Equal(t, 3, dst.Cap())

	dst.Release()
	require.Equal(t, before.LiveBytes, AllocStats().LiveBytes)
}

func TestArenaSwap(t *testing.T) {
	a, err := NewArena[int](2)
	require.NoError(t, err)
	b, err := NewArena[int](5)
	require.NoError(t, err)
	*a.At(1) = 1
	*b.At(4) = 4
	allocations := AllocStats().Allocations

	a.Swap(b)
	require.Equal(t, 5, a.Cap())
	require.Equal(t, 2, b.Cap())
	require.Equal(t, 4, *a.At(4))
	require.Equal(t, 1, *b.At(1))
	require.Equal(t, allocations, AllocStats().Allocations)

	a.Release()
	b.Release()
}

func TestArenaDoesNotDestroyValues(t *testing.T) {
	l := resetHooks(t)

	a, err := NewArena[tracked](2)
	require.NoError(t, err)
	require.NoError(t, a.At(0).Init())
	a.Release()

	require.Equal(t, 1, l.constructed)
	require.Equal(t, 0, l.destroyed)
}
