// SPDX-License-Identifier: Apache-2.0

package vector

import (
	"github.com/pkg/errors"
)

// Element types take part in the vector's lifecycle by implementing any of the
// interfaces below on their pointer type. A type implementing none of them is
// handled as a plain Go value: it is constructed as its zero value, copied and
// moved by assignment, and needs no destruction.
//
// Values are always relocatable: the vector may transfer a fully constructed
// value between slots by assignment without calling any hook.

// Initializer is implemented by *T when value construction needs work or can fail.
type Initializer interface {
	Init() error
}

// Copier is implemented by *T when copy construction needs work or can fail.
// The receiver is a zero value when CopyFrom is called.
type Copier[T any] interface {
	CopyFrom(src *T) error
}

// Mover is implemented by *T to declare a move that never fails.
// src must be left in a state that Destroy accepts.
type Mover[T any] interface {
	MoveFrom(src *T)
}

// FallibleMover is implemented by *T when moving a value can fail.
// Vectors of such types migrate by copy during growth so that a failure
// leaves the original storage intact.
type FallibleMover[T any] interface {
	TryMoveFrom(src *T) error
}

// Destroyer is implemented by *T when values own resources that must be released.
// Destroy is also called on moved-from values. Without a Mover or FallibleMover
// a moved-from value is the zero value of T, so Destroy must treat the zero
// value as owning nothing.
type Destroyer interface {
	Destroy()
}

// MoveOnly marks element types that cannot be copied.
// Copy operations on vectors of such types fail with ErrNotCopyable.
type MoveOnly interface {
	MoveOnly()
}

// traits is the capability set of an element type, resolved once per vector.
type traits[T any] struct {
	initer    bool
	copier    bool
	mover     bool
	tryMover  bool
	destroyer bool
	moveOnly  bool

	// migrateByMove selects move over copy when elements migrate to a new
	// arena: the move never fails, or the type cannot be copied at all.
	migrateByMove bool
}

func traitsFor[T any]() *traits[T] {
	var p any = (*T)(nil)
	tr := &traits[T]{}
	_, tr.initer = p.(Initializer)
	_, tr.copier = p.(Copier[T])
	_, tr.mover = p.(Mover[T])
	_, tr.tryMover = p.(FallibleMover[T])
	_, tr.destroyer = p.(Destroyer)
	_, tr.moveOnly = p.(MoveOnly)
	tr.migrateByMove = tr.mover || !tr.tryMover || tr.moveOnly
	return tr
}

// construct value-constructs a raw slot.
func (tr *traits[T]) construct(dst *T) error {
	var zero T
	*dst = zero
	if !tr.initer {
		return nil
	}
	if err := any(dst).(Initializer).Init(); err != nil {
		*dst = zero
		return err
	}
	return nil
}

// copyConstruct copy-constructs a raw slot from src.
func (tr *traits[T]) copyConstruct(dst, src *T) error {
	var zero T
	switch {
	case tr.moveOnly:
		return ErrNotCopyable
	case tr.copier:
		*dst = zero
		if err := any(dst).(Copier[T]).CopyFrom(src); err != nil {
			*dst = zero
			return err
		}
	default:
		*dst = *src
	}
	return nil
}

// moveConstruct move-constructs a raw slot from src. src stays live.
func (tr *traits[T]) moveConstruct(dst, src *T) error {
	var zero T
	switch {
	case tr.mover:
		*dst = zero
		any(dst).(Mover[T]).MoveFrom(src)
	case tr.tryMover:
		*dst = zero
		if err := any(dst).(FallibleMover[T]).TryMoveFrom(src); err != nil {
			*dst = zero
			return err
		}
	default:
		*dst, *src = *src, zero
	}
	return nil
}

// copyAssign replaces the live value in dst with a copy of src.
// dst is left untouched when the copy fails.
func (tr *traits[T]) copyAssign(dst, src *T) error {
	if dst == src {
		return nil
	}
	var tmp T
	if err := tr.copyConstruct(&tmp, src); err != nil {
		return err
	}
	tr.destroy(dst)
	*dst = tmp
	return nil
}

// moveAssign replaces the live value in dst with a move of src.
// dst is left untouched when the move fails.
func (tr *traits[T]) moveAssign(dst, src *T) error {
	if dst == src {
		return nil
	}
	var tmp T
	if err := tr.moveConstruct(&tmp, src); err != nil {
		return err
	}
	tr.destroy(dst)
	*dst = tmp
	return nil
}

// destroy ends the lifetime of a live slot and clears it.
func (tr *traits[T]) destroy(p *T) {
	if tr.destroyer {
		any(p).(Destroyer).Destroy()
	}
	var zero T
	*p = zero
}

func (tr *traits[T]) destroyAll(s []T) {
	for i := range s {
		tr.destroy(&s[i])
	}
}

// constructAll value-constructs every raw slot of dst. On failure the slots
// constructed so far are destroyed before returning.
func (tr *traits[T]) constructAll(dst []T) (err error) {
	n := 0
	defer func() {
		if n != len(dst) {
			tr.unwind(dst, n)
		}
	}()
	for ; n < len(dst); n++ {
		if err = tr.construct(&dst[n]); err != nil {
			return errors.Wrapf(err, "construct element %d", n)
		}
	}
	return nil
}

// copyAll copy-constructs the raw slots of dst from src, with the same
// rollback as constructAll.
func (tr *traits[T]) copyAll(dst, src []T) error {
	return tr.transferAll(dst, src, tr.copyConstruct, "copy")
}

// migrateAll migrates src into the raw slots of dst, with the same rollback
// as constructAll. On the move path the sources of completed moves stay in
// their moved-from state.
func (tr *traits[T]) migrateAll(dst, src []T) error {
	if tr.migrateByMove {
		return tr.transferAll(dst, src, tr.moveConstruct, "move")
	}
	return tr.transferAll(dst, src, tr.copyConstruct, "copy")
}

func (tr *traits[T]) transferAll(dst, src []T, op func(dst, src *T) error, what string) (err error) {
	n := 0
	defer func() {
		if n != len(src) {
			tr.unwind(dst, n)
		}
	}()
	for ; n < len(src); n++ {
		if err = op(&dst[n], &src[n]); err != nil {
			return errors.Wrapf(err, "%s element %d", what, n)
		}
	}
	return nil
}

// unwind destroys the first n constructed slots of dst and clears slot n,
// which may have been left half-written by a panicking hook.
func (tr *traits[T]) unwind(dst []T, n int) {
	tr.destroyAll(dst[:n])
	if n < len(dst) {
		var zero T
		dst[n] = zero
	}
}
