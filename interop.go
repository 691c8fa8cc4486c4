package rowvec

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"hash/maphash"

	rverrors "github.com/orizon-lang/rowvec/internal/errors"
)

// FromSlice builds a Vec that takes ownership of s with width WidthFor(len(s)),
// or DefaultWidth when s is empty. No elements are copied; s must not be used
// afterwards.
func FromSlice[T any](s []T) *Vec[T] {
	if len(s) == 0 {
		return FromSliceWidth(s, DefaultWidth[T]())
	}
	return FromSliceWidth(s, WidthFor(len(s)))
}

// FromSliceWidth is FromSlice with an explicit row width. Panics if w <= 0.
func FromSliceWidth[T any](s []T, w int) *Vec[T] {
	if w <= 0 {
		panic(rverrors.InvalidWidth(w))
	}
	return &Vec[T]{buf: s, width: w, splits: make([]int, len(s)/w+1)}
}

// Of constructs a Vec from values.
func Of[T any](xs ...T) *Vec[T] {
	buf := make([]T, len(xs))
	copy(buf, xs)
	return FromSlice(buf)
}

// ToSlice returns the elements in order as a new slice. v is not modified.
func (v *Vec[T]) ToSlice() []T {
	out := make([]T, 0, len(v.buf))
	for x := range v.Values() {
		out = append(out, x)
	}
	return out
}

// IntoSlice left-aligns every row and hands the backing slice to the caller,
// leaving v empty. No elements are copied.
func (v *Vec[T]) IntoSlice() []T {
	out := v.MakeContiguous()
	v.buf = nil
	v.splits = v.splits[:1]
	v.splits[0] = 0
	return out
}

// Clone returns a copy of v with the same width and layout.
func (v *Vec[T]) Clone() *Vec[T] {
	buf := make([]T, len(v.buf), cap(v.buf))
	copy(buf, v.buf)
	splits := make([]int, len(v.splits))
	copy(splits, v.splits)
	return &Vec[T]{buf: buf, width: v.width, splits: splits}
}

// Equal reports whether a and b hold the same elements in the same order.
// Width and physical layout are ignored.
func Equal[T comparable](a, b *Vec[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is Equal with a custom element comparison.
func EqualFunc[T, U any](a *Vec[T], b *Vec[U], eq func(T, U) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !eq(a.At(i), b.At(i)) {
			return false
		}
	}
	return true
}

// Compare compares a and b lexicographically by element.
func Compare[T cmp.Ordered](a, b *Vec[T]) int {
	return CompareFunc(a, b, cmp.Compare[T])
}

// CompareFunc is Compare with a custom element comparison.
func CompareFunc[T, U any](a *Vec[T], b *Vec[U], cmp func(T, U) int) int {
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		if c := cmp(a.At(i), b.At(i)); c != 0 {
			return c
		}
	}
	switch {
	case a.Len() < b.Len():
		return -1
	case a.Len() > b.Len():
		return 1
	}
	return 0
}

// HashFunc hashes the logical sequence of v. write feeds one element into h.
// Vecs that are Equal hash equally under the same seed.
func HashFunc[T any](seed maphash.Seed, v *Vec[T], write func(h *maphash.Hash, x T)) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(v.Len()))
	_, _ = h.Write(n[:])
	for x := range v.Values() {
		write(&h, x)
	}
	return h.Sum64()
}

// String formats the elements like a slice.
func (v *Vec[T]) String() string {
	return fmt.Sprint(v.ToSlice())
}

// GoString describes the row layout, for debugging.
func (v *Vec[T]) GoString() string {
	return fmt.Sprintf("rowvec.Vec{width: %d, len: %d, splits: %v, buf: %v}", v.width, len(v.buf), v.splits, v.buf)
}

// Push is an alias of PushBack.
func (v *Vec[T]) Push(x T) { v.PushBack(x) }

// Pop is an alias of PopBack.
func (v *Vec[T]) Pop() (T, bool) { return v.PopBack() }

// First is an alias of Front.
func (v *Vec[T]) First() (T, bool) { return v.Front() }

// Last is an alias of Back.
func (v *Vec[T]) Last() (T, bool) { return v.Back() }
