// SPDX-License-Identifier: Apache-2.0

package vector

// Arena owns a block of storage sized for a fixed number of T slots.
// It never constructs or destroys elements: from the arena's point of view
// every slot is raw storage, and the owner of the values placed in it is
// responsible for their lifetime.
//
// An Arena must not be copied. Ownership moves only through MoveFrom or Swap.
type Arena[T any] struct {
	_   noCopy
	buf []T
}

// NewArena allocates storage for capacity slots.
// A zero capacity yields an empty arena without storage.
// It returns ErrOutOfMemory when the block cannot be allocated.
func NewArena[T any](capacity int) (*Arena[T], error) {
	buf, err := allocate[T](globalAllocator, capacity)
	if err != nil {
		return nil, err
	}
	return &Arena[T]{buf: buf}, nil
}

// Cap returns the number of slots the arena can hold.
func (a *Arena[T]) Cap() int {
	return len(a.buf)
}

// At returns the raw slot i. The caller guarantees i < Cap().
func (a *Arena[T]) At(i int) *T {
	assert(i >= 0 && i < len(a.buf), "arena slot %d out of range [0,%d)", i, len(a.buf))
	return &a.buf[i]
}

// Slots returns the whole block. Slots beyond the owner's live range are raw storage.
func (a *Arena[T]) Slots() []T {
	return a.buf
}

// MoveFrom releases the receiver's block and takes ownership of src's block.
// src is left empty.
func (a *Arena[T]) MoveFrom(src *Arena[T]) {
	if a == src {
		return
	}
	a.Release()
	a.buf, src.buf = src.buf, nil
}

// Swap exchanges the blocks of two arenas.
func (a *Arena[T]) Swap(other *Arena[T]) {
	a.buf, other.buf = other.buf, a.buf
}

// Release returns the block to the allocator and leaves the arena empty.
// It does not destroy the values stored in the block.
func (a *Arena[T]) Release() {
	deallocate(globalAllocator, a.buf)
	a.buf = nil
}
