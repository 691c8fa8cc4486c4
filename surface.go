package rowvec

import (
	"cmp"
	"iter"
	"slices"

	rverrors "github.com/orizon-lang/rowvec/internal/errors"
)

// ExtendBack appends xs in order.
func (v *Vec[T]) ExtendBack(xs ...T) {
	for _, x := range xs {
		v.PushBack(x)
	}
}

// ExtendBackSeq appends every value produced by seq.
func (v *Vec[T]) ExtendBackSeq(seq iter.Seq[T]) {
	for x := range seq {
		v.PushBack(x)
	}
}

// ExtendFront pushes xs to the front one at a time, so the last of xs ends up
// first.
func (v *Vec[T]) ExtendFront(xs ...T) {
	for _, x := range xs {
		v.PushFront(x)
	}
}

// Drain removes the elements in [from, to) and returns them in order.
// Panics, without modifying v, if the range is malformed.
func (v *Vec[T]) Drain(from, to int) []T {
	n := len(v.buf)
	if from < 0 || to < from || to > n {
		panic(rverrors.InvalidRange("Drain", from, to, n))
	}
	out := make([]T, to-from)
	// removing from the high end keeps the lower indices stable
	for i := to - 1; i >= from; i-- {
		out[i-from], _ = v.Remove(i)
	}
	return out
}

// Truncate keeps the first n elements. It is a no-op if n >= Len().
// Panics if n is negative.
func (v *Vec[T]) Truncate(n int) {
	if n < 0 {
		panic(rverrors.IndexOutOfBounds("Truncate", n, len(v.buf)))
	}
	for len(v.buf) > n {
		v.PopBack()
	}
}

// Resize grows v to n elements by appending x, or truncates it to n.
func (v *Vec[T]) Resize(n int, x T) {
	v.ResizeWith(n, func() T { return x })
}

// ResizeWith grows v to n elements with values from fill, or truncates it to n.
func (v *Vec[T]) ResizeWith(n int, fill func() T) {
	if n < 0 {
		panic(rverrors.IndexOutOfBounds("Resize", n, len(v.buf)))
	}
	v.Truncate(n)
	for len(v.buf) < n {
		v.PushBack(fill())
	}
}

// Retain keeps only the elements for which keep returns true, preserving order.
func (v *Vec[T]) Retain(keep func(T) bool) {
	buf := v.MakeContiguous()
	v.buf = slices.DeleteFunc(buf, func(x T) bool { return !keep(x) })
	v.relayout()
}

// SplitOff moves the elements in [at, Len()) into a new Vec with the same
// width and returns it. Panics if at is outside [0, Len()].
func (v *Vec[T]) SplitOff(at int) *Vec[T] {
	n := len(v.buf)
	if at < 0 || at > n {
		panic(rverrors.IndexOutOfBounds("SplitOff", at, n))
	}
	buf := v.MakeContiguous()
	tail := make([]T, n-at)
	copy(tail, buf[at:])
	clear(buf[at:])
	v.buf = buf[:at]
	v.relayout()
	return FromSliceWidth(tail, v.width)
}

// Append moves every element of other to the back of v, leaving other empty.
func (v *Vec[T]) Append(other *Vec[T]) {
	v.ExtendBack(other.Drain(0, other.Len())...)
}

// Sort sorts v in ascending order.
func Sort[T cmp.Ordered](v *Vec[T]) {
	slices.Sort(v.MakeContiguous())
	v.relayout()
}

// SortFunc sorts v in ascending order as determined by cmp.
func SortFunc[T any](v *Vec[T], cmp func(a, b T) int) {
	slices.SortFunc(v.MakeContiguous(), cmp)
	v.relayout()
}

// SortStableFunc sorts v keeping the original order of equal elements.
func SortStableFunc[T any](v *Vec[T], cmp func(a, b T) int) {
	slices.SortStableFunc(v.MakeContiguous(), cmp)
	v.relayout()
}
