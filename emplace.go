// SPDX-License-Identifier: Apache-2.0

package vector

import (
	"github.com/pkg/errors"
)

// Emplace constructs an element at index pos with init, shifting the elements
// from pos on one slot to the right, and returns pos. A nil init
// value-constructs the element. The caller guarantees 0 <= pos <= Len().
//
// When the vector is full its storage doubles. The new element is built in
// the new arena first and the old elements migrate around it; if a copy fails
// the vector is unchanged. With spare capacity an element at the end is built
// in place, and any other new value is built in a temporary before elements
// move, so a failing init leaves the vector unchanged; a failing FallibleMover
// during the shift leaves it valid with unspecified contents.
func (v *Vector[T]) Emplace(pos int, init func(*T) error) (int, error) {
	assert(pos >= 0 && pos <= v.size, "position %d out of range [0,%d]", pos, v.size)
	tr := v.tr()

	switch {
	case v.size == v.Cap():
		fill := func(dst []T) error {
			return v.build(&dst[0], init)
		}
		if err := v.relocate(max(1, 2*v.Cap()), pos, 1, fill); err != nil {
			return pos, err
		}
	case pos == v.size:
		if err := v.build(v.arena.At(pos), init); err != nil {
			return pos, err
		}
	default:
		var tmp T
		if err := v.build(&tmp, init); err != nil {
			return pos, err
		}
		defer tr.destroy(&tmp)

		slots := v.arena.Slots()
		end := v.size
		if err := tr.moveConstruct(&slots[end], &slots[end-1]); err != nil {
			return pos, err
		}
		for i := end - 1; i > pos; i-- {
			if err := tr.moveAssign(&slots[i], &slots[i-1]); err != nil {
				tr.destroy(&slots[end])
				return pos, errors.Wrapf(err, "shift element %d", i-1)
			}
		}
		if err := tr.moveAssign(&slots[pos], &tmp); err != nil {
			tr.destroy(&slots[end])
			return pos, err
		}
	}

	v.size++
	return pos, nil
}

// Insert inserts a copy of x at index pos and returns pos.
func (v *Vector[T]) Insert(pos int, x T) (int, error) {
	tr := v.tr()
	if tr.moveOnly {
		return pos, ErrNotCopyable
	}
	return v.Emplace(pos, func(dst *T) error {
		return tr.copyConstruct(dst, &x)
	})
}

// InsertMove inserts a value moved out of x at index pos and returns pos.
func (v *Vector[T]) InsertMove(pos int, x *T) (int, error) {
	tr := v.tr()
	return v.Emplace(pos, func(dst *T) error {
		return tr.moveConstruct(dst, x)
	})
}

// Erase removes the element at index pos, shifting the following elements one
// slot to the left, and returns pos. The caller guarantees 0 <= pos < Len().
//
// Erase assumes moves do not fail; it panics if a FallibleMover reports an error.
func (v *Vector[T]) Erase(pos int) int {
	assert(pos >= 0 && pos < v.size, "position %d out of range [0,%d)", pos, v.size)
	tr := v.tr()
	live := v.live()
	for i := pos + 1; i < len(live); i++ {
		if err := tr.moveAssign(&live[i-1], &live[i]); err != nil {
			panic(errors.Wrapf(err, "vector: erase: move element %d", i))
		}
	}
	tr.destroy(&live[len(live)-1])
	v.size--
	return pos
}
