// Package rowmath holds the index arithmetic shared by the row-segmented
// sequence: splitting an index into row and column, wrapping offsets inside a
// fixed-width ring, and rotating a ring-shaped row back into a left-aligned one.
package rowmath

import "slices"

// DivRem returns index/w and index%w.
func DivRem(index, w int) (row, col int) {
	return index / w, index % w
}

// Wrap returns (split+delta) mod w, always in [0, w).
// delta may be negative; w must be positive.
func Wrap(w, split, delta int) int {
	off := (split + delta) % w
	if off < 0 {
		off += w
	}
	return off
}

// Linearize rotates row so that the element at physical offset split moves to
// offset 0. The shorter of the two rotations is used:
//
//	         S
//	[7 8 9 0 1 2 3 4 5 6]  head (3) shorter: rotate left by 3
//	[0 1 2 3 4 5 6 7 8 9]
//
//	               S
//	[4 5 6 7 8 9 0 1 2 3]  tail (4) shorter: rotate right by 4
//	[0 1 2 3 4 5 6 7 8 9]
//
// split must be in (0, len(row)); a zero split is already linear and callers
// filter it out.
func Linearize[T any](row []T, split int) {
	if split <= 0 || split >= len(row) {
		panic("rowmath: Linearize called with split outside (0, len)")
	}
	head := split
	tail := len(row) - split
	if tail <= head {
		RotateRight(row, tail)
	} else {
		RotateLeft(row, head)
	}
}

// RotateLeft rotates s in place so that s[k] becomes s[0].
func RotateLeft[T any](s []T, k int) {
	n := len(s)
	if n < 2 {
		return
	}
	k %= n
	if k < 0 {
		k += n
	}
	switch k {
	case 0:
		return
	case 1:
		first := s[0]
		copy(s, s[1:])
		s[n-1] = first
		return
	case n - 1:
		RotateRight(s, 1)
		return
	}
	slices.Reverse(s[:k])
	slices.Reverse(s[k:])
	slices.Reverse(s)
}

// RotateRight rotates s in place so that s[len(s)-k] becomes s[0].
func RotateRight[T any](s []T, k int) {
	n := len(s)
	if n < 2 {
		return
	}
	k %= n
	if k < 0 {
		k += n
	}
	switch k {
	case 0:
		return
	case 1:
		last := s[n-1]
		copy(s[1:], s[:n-1])
		s[0] = last
		return
	}
	RotateLeft(s, n-k)
}
