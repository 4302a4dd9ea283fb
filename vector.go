// SPDX-License-Identifier: Apache-2.0

package vector

import (
	"fmt"
	"iter"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Vector is a contiguous, growable sequence of T backed by an Arena.
//
// Slots [0, Len()) of the arena hold live values; the remaining slots are raw
// storage. Every operation keeps this split intact on all exit paths, and
// operations that construct several values either finish or leave the vector
// as it was, unless the element type's moves can fail (see FallibleMover).
//
// The zero value is an empty vector ready to use. A Vector must not be copied;
// use Clone, Move or the assignment methods instead. Vectors are not safe for
// concurrent mutation.
type Vector[T any] struct {
	_      noCopy
	arena  Arena[T]
	size   int
	traits *traits[T]
	opts   options
}

// New returns an empty vector. It has no storage unless WithCapacity is given.
func New[T any](opts ...Option) *Vector[T] {
	v := newVector[T](opts)
	if err := v.Reserve(v.opts.capacity); err != nil {
		level.Warn(v.opts.logger).Log("msg", "vector initial reserve failed", "vector", v.opts.name, "cap", v.opts.capacity, "err", err)
	}
	return v
}

func newVector[T any](opts []Option) *Vector[T] {
	return &Vector[T]{
		traits: traitsFor[T](),
		opts:   newOptions(opts),
	}
}

// NewSized returns a vector of n value-constructed elements and capacity n,
// or the WithCapacity reserve if that is larger.
// If constructing an element fails, the elements constructed so far are
// destroyed and the error is returned.
func NewSized[T any](n int, opts ...Option) (*Vector[T], error) {
	v := newVector[T](opts)
	if n < 0 {
		return nil, errors.Wrapf(ErrOutOfMemory, "negative size %d", n)
	}
	a, err := NewArena[T](max(n, v.opts.capacity))
	if err != nil {
		return nil, err
	}
	if err := v.traits.constructAll(a.Slots()[:n]); err != nil {
		a.Release()
		return nil, err
	}
	v.arena.MoveFrom(a)
	v.size = n
	return v, nil
}

func (v *Vector[T]) tr() *traits[T] {
	if v.traits == nil {
		v.traits = traitsFor[T]()
	}
	return v.traits
}

func (v *Vector[T]) logger() log.Logger {
	if v.opts.logger == nil {
		v.opts = newOptions(nil)
	}
	return v.opts.logger
}

// empty returns a vector sharing v's configuration but none of its contents.
func (v *Vector[T]) empty() *Vector[T] {
	v.logger()
	return &Vector[T]{traits: v.tr(), opts: v.opts}
}

func (v *Vector[T]) live() []T {
	return v.arena.Slots()[:v.size]
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of elements the vector can hold without reallocating.
func (v *Vector[T]) Cap() int {
	return v.arena.Cap()
}

// At returns a pointer to element i. The caller guarantees i < Len().
// The pointer is invalidated by any operation that reallocates or shifts elements.
func (v *Vector[T]) At(i int) *T {
	assert(i >= 0 && i < v.size, "index %d out of range [0,%d)", i, v.size)
	return v.arena.At(i)
}

// Slice returns the live elements. It aliases the vector's storage and is only
// valid until the next mutation.
func (v *Vector[T]) Slice() []T {
	return v.live()
}

// All returns an iterator over the indices and values of the live elements.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.arena.Slots()[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the live elements.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(v.arena.Slots()[i]) {
				return
			}
		}
	}
}

func (v *Vector[T]) String() string {
	return fmt.Sprint(v.live())
}

// Clone returns a vector holding copies of v's elements, with capacity Len().
// If a copy fails, the copies made so far are destroyed and v is unchanged.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	tr := v.tr()
	if tr.moveOnly {
		return nil, ErrNotCopyable
	}
	c := v.empty()
	a, err := NewArena[T](v.size)
	if err != nil {
		return nil, err
	}
	if err := tr.copyAll(a.Slots(), v.live()); err != nil {
		a.Release()
		return nil, err
	}
	c.arena.MoveFrom(a)
	c.size = v.size
	return c, nil
}

// Move returns a vector that has taken over v's storage and elements.
// v is left empty with no storage and remains usable.
func (v *Vector[T]) Move() *Vector[T] {
	m := v.empty()
	m.arena.MoveFrom(&v.arena)
	m.size, v.size = v.size, 0
	return m
}

// MoveAssign destroys v's elements, releases its storage and takes over rhs's
// storage and elements. rhs is left empty with no storage.
func (v *Vector[T]) MoveAssign(rhs *Vector[T]) {
	if v == rhs {
		return
	}
	v.tr().destroyAll(v.live())
	v.arena.MoveFrom(&rhs.arena)
	v.size, rhs.size = rhs.size, 0
}

// CopyAssign replaces v's elements with copies of rhs's elements.
//
// When rhs does not fit into v's storage, a full copy is built first and
// swapped in, so a failure leaves v unchanged. Otherwise elements are assigned
// in place; a failure then leaves v valid with some elements already replaced.
func (v *Vector[T]) CopyAssign(rhs *Vector[T]) error {
	if v == rhs {
		return nil
	}
	tr := v.tr()
	if tr.moveOnly {
		return ErrNotCopyable
	}

	switch {
	case rhs.size > v.Cap():
		c, err := rhs.Clone()
		if err != nil {
			return err
		}
		v.Swap(c)
		c.Release()
	case rhs.size < v.size:
		dst, src := v.live(), rhs.live()
		for i := range src {
			if err := tr.copyAssign(&dst[i], &src[i]); err != nil {
				return errors.Wrapf(err, "assign element %d", i)
			}
		}
		tr.destroyAll(dst[rhs.size:])
		v.size = rhs.size
	default:
		dst, src := v.live(), rhs.live()
		for i := range dst {
			if err := tr.copyAssign(&dst[i], &src[i]); err != nil {
				return errors.Wrapf(err, "assign element %d", i)
			}
		}
		if err := tr.copyAll(v.arena.Slots()[v.size:rhs.size], src[v.size:]); err != nil {
			return err
		}
		v.size = rhs.size
	}
	return nil
}

// Swap exchanges the contents of two vectors without allocating.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.arena.Swap(&other.arena)
	v.size, other.size = other.size, v.size
}

// Reserve grows the storage to hold at least n elements. It does nothing when
// n <= Cap(). Elements are migrated by move when moving cannot fail and by
// copy otherwise; a failed copy leaves the vector unchanged.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.Cap() {
		return nil
	}
	return v.relocate(n, v.size, 0, nil)
}

// Resize destroys the elements past n, or grows the vector to n elements by
// value-constructing the new tail.
func (v *Vector[T]) Resize(n int) error {
	assert(n >= 0, "negative size %d", n)
	if n <= v.size {
		v.truncate(n)
		return nil
	}
	if err := v.Reserve(n); err != nil {
		return err
	}
	if err := v.tr().constructAll(v.arena.Slots()[v.size:n]); err != nil {
		return err
	}
	v.size = n
	return nil
}

// truncate destroys the elements past n. The caller guarantees n <= Len().
func (v *Vector[T]) truncate(n int) {
	v.tr().destroyAll(v.live()[n:])
	v.size = n
}

// PushBack appends a copy of x.
func (v *Vector[T]) PushBack(x T) error {
	tr := v.tr()
	if tr.moveOnly {
		return ErrNotCopyable
	}
	if v.size == v.Cap() {
		_, err := v.Insert(v.size, x)
		return err
	}
	if err := tr.copyConstruct(v.arena.At(v.size), &x); err != nil {
		return err
	}
	v.size++
	return nil
}

// PushBackMove appends a value moved out of x.
func (v *Vector[T]) PushBackMove(x *T) error {
	if v.size == v.Cap() {
		_, err := v.InsertMove(v.size, x)
		return err
	}
	if err := v.tr().moveConstruct(v.arena.At(v.size), x); err != nil {
		return err
	}
	v.size++
	return nil
}

// EmplaceBack appends an element constructed in place by init and returns it.
// A nil init value-constructs the element.
func (v *Vector[T]) EmplaceBack(init func(*T) error) (*T, error) {
	if v.size == v.Cap() {
		i, err := v.Emplace(v.size, init)
		if err != nil {
			return nil, err
		}
		return v.arena.At(i), nil
	}
	p := v.arena.At(v.size)
	if err := v.build(p, init); err != nil {
		return nil, err
	}
	v.size++
	return p, nil
}

// PopBack destroys the last element. It does nothing on an empty vector.
func (v *Vector[T]) PopBack() {
	if v.size == 0 {
		return
	}
	v.tr().destroy(v.arena.At(v.size - 1))
	v.size--
}

// Release destroys all elements and returns the storage to the allocator.
// The vector is empty afterwards and may be reused.
func (v *Vector[T]) Release() {
	v.tr().destroyAll(v.live())
	v.size = 0
	v.arena.Release()
}

// build constructs a raw slot with init, or value-constructs it when init is nil.
func (v *Vector[T]) build(dst *T, init func(*T) error) error {
	if init == nil {
		return v.tr().construct(dst)
	}
	var zero T
	*dst = zero
	if err := init(dst); err != nil {
		*dst = zero
		return err
	}
	return nil
}

// relocate moves the vector into a new arena of newCap slots, leaving a gap of
// k slots at pos that fill constructs. Live elements before pos keep their
// index; the ones from pos on shift by k. On failure everything constructed in
// the new arena is destroyed and the new arena is released, so with copy
// migration the vector is left exactly as it was.
func (v *Vector[T]) relocate(newCap, pos, k int, fill func(dst []T) error) (err error) {
	tr := v.tr()
	a, err := NewArena[T](newCap)
	if err != nil {
		return err
	}
	// After the swap below a holds the old block.
	defer a.Release()

	slots, live := a.Slots(), v.live()
	done := 0
	defer func() {
		switch done {
		case 1:
			tr.destroyAll(slots[pos : pos+k])
		case 2:
			tr.destroyAll(slots[:pos+k])
		}
		if done < 3 {
			level.Debug(v.logger()).Log("msg", "vector growth rolled back", "vector", v.opts.name, "size", v.size, "cap", v.Cap(), "new_cap", newCap, "err", err)
		}
	}()

	if fill != nil {
		if err := fill(slots[pos : pos+k]); err != nil {
			return err
		}
	}
	done = 1
	if err := tr.migrateAll(slots[:pos], live[:pos]); err != nil {
		return err
	}
	done = 2
	if err := tr.migrateAll(slots[pos+k:v.size+k], live[pos:]); err != nil {
		return err
	}
	done = 3

	tr.destroyAll(live)
	level.Debug(v.logger()).Log("msg", "vector reallocated", "vector", v.opts.name, "size", v.size, "old_cap", v.Cap(), "new_cap", newCap)
	v.arena.Swap(a)
	return nil
}
