package rowvec

import "iter"

// Iterator walks a Vec by index from either end, resolving every position
// through the row mapping. The Vec must not be mutated while iterating.
type Iterator[T any] struct {
	v           *Vec[T]
	front, back int // remaining indices are [front, back)
}

// Iter creates a new iterator over all elements.
func (v *Vec[T]) Iter() *Iterator[T] { return &Iterator[T]{v: v, back: v.Len()} }

// Next returns the next element from the front. ok=false when exhausted.
func (it *Iterator[T]) Next() (T, bool) {
	if it.front >= it.back {
		var zero T
		return zero, false
	}
	x, ok := it.v.Get(it.front)
	it.front++
	return x, ok
}

// NextBack returns the next element from the back. ok=false when exhausted.
func (it *Iterator[T]) NextBack() (T, bool) {
	if it.front >= it.back {
		var zero T
		return zero, false
	}
	it.back--
	return it.v.Get(it.back)
}

// Len returns the number of elements not yet returned.
func (it *Iterator[T]) Len() int { return it.back - it.front }

// All returns an iterator over index/value pairs in order.
func (v *Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < len(v.buf); i++ {
			if !yield(i, v.buf[v.physical(i)]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (v *Vec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < len(v.buf); i++ {
			if !yield(v.buf[v.physical(i)]) {
				return
			}
		}
	}
}

// Backward returns an iterator over index/value pairs from last to first.
func (v *Vec[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := len(v.buf) - 1; i >= 0; i-- {
			if !yield(i, v.buf[v.physical(i)]) {
				return
			}
		}
	}
}

// Pointers returns an iterator over index/pointer pairs for in-place updates.
// Each step re-resolves its index through GetPtr; elements may be written
// through the pointers but the Vec must not change length while iterating.
func (v *Vec[T]) Pointers() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(i, v.GetPtr(i)) {
				return
			}
		}
	}
}
