package matrix

import (
	"errors"
	"fmt"
	"iter"
)

var errForeignIterator = errors.New("matrix: iterators belong to different sequences")

// cursor is a bounds-checked position over a matrix buffer.
//
// Logical positions run from 0 to Len(); Len() is the end position and
// cannot be read. In reverse mode logical position p maps to storage index
// Len()-1-p. Moves that would leave [0, Len()] fail and keep the position.
type cursor[T Float] struct {
	data    []T
	pos     int
	reverse bool
}

// Len returns the number of elements in the sequence.
func (c *cursor[T]) Len() int {
	return len(c.data)
}

// Pos returns the current logical position.
func (c *cursor[T]) Pos() int {
	return c.pos
}

// Done reports whether the cursor is at the end position.
func (c *cursor[T]) Done() bool {
	return c.pos >= len(c.data)
}

// Reversed reports whether the cursor walks storage order backwards.
func (c *cursor[T]) Reversed() bool {
	return c.reverse
}

func (c *cursor[T]) index(p int) int {
	if c.reverse {
		return len(c.data) - 1 - p
	}
	return p
}

func (c *cursor[T]) readable(p int) error {
	if p < 0 || p >= len(c.data) {
		return fmt.Errorf("%w: position %d of %d", ErrIndexOutOfRange, p, len(c.data))
	}
	return nil
}

// Value returns the element at the current position.
func (c *cursor[T]) Value() (T, error) {
	return c.At(0)
}

// At returns the element n positions away from the current one.
func (c *cursor[T]) At(n int) (T, error) {
	p := c.pos + n
	if err := c.readable(p); err != nil {
		return 0, err
	}
	return c.data[c.index(p)], nil
}

// Advance moves the cursor by n positions (n may be negative).
func (c *cursor[T]) Advance(n int) error {
	return c.Seek(c.pos + n)
}

// Next moves one position forward.
func (c *cursor[T]) Next() error {
	return c.Advance(1)
}

// Prev moves one position backward.
func (c *cursor[T]) Prev() error {
	return c.Advance(-1)
}

// Seek moves to logical position p, which may be the end position.
func (c *cursor[T]) Seek(p int) error {
	if p < 0 || p > len(c.data) {
		return fmt.Errorf("%w: seek to %d of %d", ErrIndexOutOfRange, p, len(c.data))
	}
	c.pos = p
	return nil
}

// Reset moves back to the first position.
func (c *cursor[T]) Reset() {
	c.pos = 0
}

func (c *cursor[T]) distance(o *cursor[T]) (int, error) {
	if c.reverse != o.reverse || !sameBuffer(c.data, o.data) {
		return 0, errForeignIterator
	}
	return c.pos - o.pos, nil
}

func sameBuffer[T Float](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// Iterator is a mutable random-access cursor over a matrix in row-major
// storage order. It is invalidated by operations that reallocate the
// matrix (MulInPlace, rectangular Transpose, Move).
type Iterator[T Float] struct {
	cursor[T]
}

// Set writes v at the current position.
func (it *Iterator[T]) Set(v T) error {
	if err := it.readable(it.pos); err != nil {
		return err
	}
	it.data[it.index(it.pos)] = v
	return nil
}

// Clone returns an independent cursor at the same position.
func (it *Iterator[T]) Clone() *Iterator[T] {
	c := *it
	return &c
}

// Distance returns it.Pos() - o.Pos() for iterators over the same
// sequence in the same direction.
func (it *Iterator[T]) Distance(o *Iterator[T]) (int, error) {
	return it.distance(&o.cursor)
}

// ConstIterator is the read-only counterpart of Iterator.
type ConstIterator[T Float] struct {
	cursor[T]
}

// Clone returns an independent cursor at the same position.
func (it *ConstIterator[T]) Clone() *ConstIterator[T] {
	c := *it
	return &c
}

// Distance returns it.Pos() - o.Pos() for iterators over the same
// sequence in the same direction.
func (it *ConstIterator[T]) Distance(o *ConstIterator[T]) (int, error) {
	return it.distance(&o.cursor)
}

// Iter returns a mutable forward iterator.
func (m *Dense[T]) Iter() *Iterator[T] {
	return &Iterator[T]{cursor[T]{data: m.data}}
}

// ReverseIter returns a mutable iterator walking storage order backwards.
func (m *Dense[T]) ReverseIter() *Iterator[T] {
	return &Iterator[T]{cursor[T]{data: m.data, reverse: true}}
}

// ConstIter returns a read-only forward iterator.
func (m *Dense[T]) ConstIter() *ConstIterator[T] {
	return &ConstIterator[T]{cursor[T]{data: m.data}}
}

// ConstReverseIter returns a read-only reverse iterator.
func (m *Dense[T]) ConstReverseIter() *ConstIterator[T] {
	return &ConstIterator[T]{cursor[T]{data: m.data, reverse: true}}
}

// All yields (storage index, value) pairs in row-major order.
func (m *Dense[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range m.data {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Backward yields (storage index, value) pairs from the last element to
// the first.
func (m *Dense[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := len(m.data) - 1; i >= 0; i-- {
			if !yield(i, m.data[i]) {
				return
			}
		}
	}
}
