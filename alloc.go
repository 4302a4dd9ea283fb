// SPDX-License-Identifier: Apache-2.0

package vector

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// maxAllocBytes caps a single block. Requests above it fail with ErrOutOfMemory
// instead of reaching the runtime, which would abort the process.
const maxAllocBytes = uintptr(1) << (min(unsafe.Sizeof(uintptr(0))*8, 48) - 1)

// Stats describes the blocks handed out by the allocator.
type Stats struct {
	// LiveBytes is the number of bytes held by arenas that have not been released.
	LiveBytes int64
	// LiveBlocks is the number of arenas that have not been released.
	LiveBlocks int64
	// PeakBytes is the high-water mark of LiveBytes.
	PeakBytes int64
	// Allocations is the total number of blocks ever allocated.
	Allocations int64
}

// allocator is the single allocation strategy shared by every Arena.
// Blocks are typed Go slices so the garbage collector keeps scanning
// element types that hold pointers.
type allocator struct {
	limit       uintptr
	liveBytes   *atomic.Int64
	liveBlocks  *atomic.Int64
	peakBytes   *atomic.Int64
	allocations *atomic.Int64
}

var globalAllocator = newAllocator(maxAllocBytes)

func newAllocator(limit uintptr) *allocator {
	return &allocator{
		limit:       limit,
		liveBytes:   atomic.NewInt64(0),
		liveBlocks:  atomic.NewInt64(0),
		peakBytes:   atomic.NewInt64(0),
		allocations: atomic.NewInt64(0),
	}
}

// AllocStats returns a snapshot of the global allocator's accounting.
func AllocStats() Stats {
	return Stats{
		LiveBytes:   globalAllocator.liveBytes.Load(),
		LiveBlocks:  globalAllocator.liveBlocks.Load(),
		PeakBytes:   globalAllocator.peakBytes.Load(),
		Allocations: globalAllocator.allocations.Load(),
	}
}

func blockSize[T any](n int) uintptr {
	var x T
	return unsafe.Sizeof(x) * uintptr(n)
}

// allocate returns a block of n slots. A zero-length request yields a nil block.
func allocate[T any](a *allocator, n int) (buf []T, err error) {
	if n == 0 {
		return nil, nil
	}
	if n < 0 {
		return nil, errors.Wrapf(ErrOutOfMemory, "invalid capacity %d", n)
	}
	var x T
	if size := unsafe.Sizeof(x); size > 0 && uintptr(n) > a.limit/size {
		return nil, errors.Wrapf(ErrOutOfMemory, "%d slots of %d bytes", n, size)
	}

	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, errors.Wrap(ErrOutOfMemory, fmt.Sprint(r))
		}
	}()
	buf = make([]T, n)

	size := int64(blockSize[T](n))
	a.allocations.Inc()
	a.liveBlocks.Inc()
	live := a.liveBytes.Add(size)
	for {
		peak := a.peakBytes.Load()
		if live <= peak || a.peakBytes.CompareAndSwap(peak, live) {
			break
		}
	}
	return buf, nil
}

// deallocate returns a block obtained from allocate. nil blocks are ignored.
func deallocate[T any](a *allocator, buf []T) {
	if buf == nil {
		return
	}
	a.liveBlocks.Dec()
	a.liveBytes.Sub(int64(blockSize[T](cap(buf))))
}
