// SPDX-License-Identifier: Apache-2.0

package vector

// FromSlice returns a vector holding copies of the elements of s,
// with capacity len(s) or the WithCapacity reserve if that is larger.
func FromSlice[T any](s []T, opts ...Option) (*Vector[T], error) {
	v := newVector[T](opts)
	if err := v.Reserve(max(len(s), v.opts.capacity)); err != nil {
		return nil, err
	}
	if err := v.Append(s...); err != nil {
		v.Release()
		return nil, err
	}
	return v, nil
}

// Append appends copies of values, growing the storage at most once.
// Either all values are appended or, if a copy fails, none are.
// values may alias the vector's own elements.
func (v *Vector[T]) Append(values ...T) error {
	if len(values) == 0 {
		return nil
	}
	tr := v.tr()
	if tr.moveOnly {
		return ErrNotCopyable
	}

	newLen := v.size + len(values)
	if newLen <= v.Cap() {
		if err := tr.copyAll(v.arena.Slots()[v.size:newLen], values); err != nil {
			return err
		}
		v.size = newLen
		return nil
	}

	// The copies are made before the old elements migrate, so values that
	// point into the old block are still intact when they are read.
	fill := func(dst []T) error {
		return tr.copyAll(dst, values)
	}
	if err := v.relocate(growCap(v.Cap(), newLen), v.size, len(values), fill); err != nil {
		return err
	}
	v.size = newLen
	return nil
}

// growCap doubles capacity until it holds newLen elements. Empty storage grows
// straight to newLen.
func growCap(capacity, newLen int) int {
	if capacity == 0 {
		return newLen
	}
	for newLen > capacity {
		capacity *= 2
	}
	return capacity
}
