// SPDX-License-Identifier: Apache-2.0

package vector

import (
	"github.com/pkg/errors"
)

var (
	// ErrOutOfMemory is returned when the allocator cannot provide a block of the requested size.
	ErrOutOfMemory = errors.New("vector: out of memory")

	// ErrNotCopyable is returned by copy operations on vectors whose element type implements MoveOnly.
	ErrNotCopyable = errors.New("vector: element type is not copyable")
)
