// Package rowvec provides Vec, a random-access sequence that sits between a
// slice and a linked list: O(1) indexed access, amortized O(1) push and pop at
// both ends, and O(sqrt(N)) insertion and removal anywhere.
//
// All elements live in one backing slice that is viewed as consecutive rows
// of Width elements. Every row is a small ring: its split marker is the
// physical offset of its first logical element. Inserting or removing in the
// middle rotates one row and then moves a single element across each later
// row by bumping that row's split, so no row is ever shifted wholesale. The
// last row always keeps split 0, which is what makes the back end a plain
// append/truncate.
//
// Width should be close to sqrt(N) for the expected size N; any positive
// width is correct, a poor one only costs time.
package rowvec

import (
	"slices"

	rverrors "github.com/orizon-lang/rowvec/internal/errors"
	"github.com/orizon-lang/rowvec/internal/rowmath"
)

// Vec is a row-segmented sequence. Zero value is not ready; use New,
// WithWidth, WithCapacity or FromSlice.
//
// A Vec performs no synchronization. Concurrent readers are fine; any
// mutation needs exclusive access.
type Vec[T any] struct {
	buf    []T
	width  int
	splits []int // one per row, len(buf)/width+1 entries; the last is always 0
}

// New creates an empty Vec with DefaultWidth.
func New[T any]() *Vec[T] {
	return WithCapacity[T](DefaultWidth[T](), 0)
}

// WithWidth creates an empty Vec whose rows hold w elements. Panics if w <= 0.
func WithWidth[T any](w int) *Vec[T] {
	return WithCapacity[T](w, 0)
}

// WithCapacity creates an empty Vec with row width w and room for capacity
// elements before the backing slice grows. Panics if w <= 0.
func WithCapacity[T any](w, capacity int) *Vec[T] {
	if w <= 0 {
		panic(rverrors.InvalidWidth(w))
	}
	if capacity < 0 {
		capacity = 0
	}
	splits := make([]int, 1, capacity/w+1)
	return &Vec[T]{buf: make([]T, 0, capacity), width: w, splits: splits}
}

// Width returns the row width.
func (v *Vec[T]) Width() int { return v.width }

// Len returns the number of elements.
func (v *Vec[T]) Len() int { return len(v.buf) }

// Cap returns the capacity of the backing slice.
func (v *Vec[T]) Cap() int { return cap(v.buf) }

// IsEmpty reports whether the Vec has no elements.
func (v *Vec[T]) IsEmpty() bool { return len(v.buf) == 0 }

// Rows returns the number of rows, including the trailing partial row.
func (v *Vec[T]) Rows() int { return len(v.splits) }

// Splits returns a copy of the per-row split markers.
func (v *Vec[T]) Splits() []int { return slices.Clone(v.splits) }

// physical maps a logical index in [0, Len) to its position in buf.
func (v *Vec[T]) physical(i int) int {
	row, col := rowmath.DivRem(i, v.width)
	return row*v.width + rowmath.Wrap(v.width, v.splits[row], col)
}

// row returns the backing slice of the full row r.
func (v *Vec[T]) row(r int) []T {
	base := r * v.width
	return v.buf[base : base+v.width]
}

// Get returns the element at index i. Returns false if out of range.
func (v *Vec[T]) Get(i int) (T, bool) {
	if i < 0 || i >= len(v.buf) {
		var zero T
		return zero, false
	}
	return v.buf[v.physical(i)], true
}

// GetPtr returns a pointer to the element at index i, or nil if out of range.
// The pointer is invalidated by any mutation of the Vec.
func (v *Vec[T]) GetPtr(i int) *T {
	if i < 0 || i >= len(v.buf) {
		return nil
	}
	return &v.buf[v.physical(i)]
}

// At returns the element at index i and panics if out of range. Prefer Get
// for speculative reads.
func (v *Vec[T]) At(i int) T {
	if i < 0 || i >= len(v.buf) {
		panic(rverrors.IndexOutOfBounds("At", i, len(v.buf)))
	}
	return v.buf[v.physical(i)]
}

// Set replaces the element at index i and panics if out of range.
func (v *Vec[T]) Set(i int, x T) {
	if i < 0 || i >= len(v.buf) {
		panic(rverrors.IndexOutOfBounds("Set", i, len(v.buf)))
	}
	v.buf[v.physical(i)] = x
}

// Swap exchanges the elements at i and j and panics if either is out of range.
func (v *Vec[T]) Swap(i, j int) {
	n := len(v.buf)
	if i < 0 || i >= n {
		panic(rverrors.IndexOutOfBounds("Swap", i, n))
	}
	if j < 0 || j >= n {
		panic(rverrors.IndexOutOfBounds("Swap", j, n))
	}
	pi, pj := v.physical(i), v.physical(j)
	v.buf[pi], v.buf[pj] = v.buf[pj], v.buf[pi]
}

// Front returns the first element. ok=false when empty.
func (v *Vec[T]) Front() (T, bool) { return v.Get(0) }

// Back returns the last element. ok=false when empty.
func (v *Vec[T]) Back() (T, bool) { return v.Get(len(v.buf) - 1) }

// PushBack appends x. The trailing row is contiguous, so this is a plain append.
func (v *Vec[T]) PushBack(x T) {
	v.buf = append(v.buf, x)
	v.renormalize()
}

// PopBack removes and returns the last element. ok=false when empty.
func (v *Vec[T]) PopBack() (T, bool) {
	n := len(v.buf)
	if n == 0 {
		var zero T
		return zero, false
	}
	// When the trailing row is empty the last element sits in a full row that
	// is about to become the trailing row; it must be left-aligned first.
	v.linearizeRow((n - 1) / v.width)
	x := v.buf[n-1]
	var zero T
	v.buf[n-1] = zero
	v.buf = v.buf[:n-1]
	v.renormalize()
	return x, true
}

// PushFront inserts x before the first element.
func (v *Vec[T]) PushFront(x T) {
	v.carryForward(0, x)
	v.renormalize()
}

// PopFront removes and returns the first element. ok=false when empty.
func (v *Vec[T]) PopFront() (T, bool) {
	if len(v.buf) == 0 {
		var zero T
		return zero, false
	}
	x := v.carryBackward(0)
	v.renormalize()
	return x, true
}

// Insert places x at index i, shifting later elements up by one.
// i == Len() appends. Panics if i is outside [0, Len()].
func (v *Vec[T]) Insert(i int, x T) {
	n := len(v.buf)
	if i < 0 || i > n {
		panic(rverrors.IndexOutOfBounds("Insert", i, n))
	}
	row, col := rowmath.DivRem(i, v.width)
	if row == n/v.width {
		v.buf = slices.Insert(v.buf, i, x)
		v.renormalize()
		return
	}
	carry := v.insertInRow(row, col, x)
	v.carryForward(row+1, carry)
	v.renormalize()
}

// Remove deletes and returns the element at index i, shifting later elements
// down by one. ok=false if i is out of range.
func (v *Vec[T]) Remove(i int) (T, bool) {
	n := len(v.buf)
	if i < 0 || i >= n {
		var zero T
		return zero, false
	}
	row, col := rowmath.DivRem(i, v.width)
	if tail := (n - 1) / v.width; row == tail {
		v.linearizeRow(tail)
		x := v.buf[i]
		v.buf = slices.Delete(v.buf, i, i+1)
		v.renormalize()
		return x, true
	}
	carry := v.carryBackward(row + 1)
	x := v.removeInRow(row, col, carry)
	v.renormalize()
	return x, true
}

// MakeContiguous left-aligns every row and returns the backing slice, which
// then holds the elements in logical order. The slice aliases the Vec and is
// only valid until the next mutation.
func (v *Vec[T]) MakeContiguous() []T {
	for r := range v.splits {
		v.linearizeRow(r)
	}
	return v.buf
}

// Clear removes all elements, keeping capacity.
func (v *Vec[T]) Clear() {
	clear(v.buf)
	v.buf = v.buf[:0]
	v.splits = v.splits[:1]
	v.splits[0] = 0
}

// carryForward walks carry through the full rows starting at from: each row
// takes carry as its new first element by stepping its split back one slot,
// and hands its old last element on. The final carry is inserted at the start
// of the contiguous trailing row.
func (v *Vec[T]) carryForward(from int, carry T) {
	full := len(v.buf) / v.width
	for r := from; r < full; r++ {
		base := r * v.width
		s := rowmath.Wrap(v.width, v.splits[r], -1)
		carry, v.buf[base+s] = v.buf[base+s], carry
		v.splits[r] = s
	}
	v.buf = slices.Insert(v.buf, full*v.width, carry)
}

// carryBackward is the mirror of carryForward. It removes the first element of
// the last non-empty row, then walks it backward through the full rows down to
// row stop: each row takes carry as its new last element by stepping its split
// forward one slot, and hands its old first element on. It returns the
// element handed out by row stop.
func (v *Vec[T]) carryBackward(stop int) T {
	tail := (len(v.buf) - 1) / v.width
	v.linearizeRow(tail)
	base := tail * v.width
	carry := v.buf[base]
	v.buf = slices.Delete(v.buf, base, base+1)
	for r := tail - 1; r >= stop; r-- {
		rb := r * v.width
		s := v.splits[r]
		carry, v.buf[rb+s] = v.buf[rb+s], carry
		v.splits[r] = rowmath.Wrap(v.width, s, 1)
	}
	return carry
}

// insertInRow places x at logical column col of the full row r and returns
// the element pushed out of the row's last column.
func (v *Vec[T]) insertInRow(r, col int, x T) T {
	w := v.width
	data := v.row(r)
	s := v.splits[r]
	last := rowmath.Wrap(w, s, -1)
	carry := data[last]
	data[last] = x
	if col == 0 {
		v.splits[r] = last
		return carry
	}
	at := rowmath.Wrap(w, s, col)
	if at <= last {
		// columns col..w-1 are physically in order: shift them right by one
		rowmath.RotateRight(data[at:last+1], 1)
		return carry
	}
	// columns 0..col-1 occupy [s, at): shift them left into the freed slot
	rowmath.RotateLeft(data[last:at], 1)
	v.splits[r] = last
	return carry
}

// removeInRow takes the element at logical column col out of the full row r
// and appends carry as the row's new last column.
func (v *Vec[T]) removeInRow(r, col int, carry T) T {
	w := v.width
	data := v.row(r)
	s := v.splits[r]
	at := rowmath.Wrap(w, s, col)
	x := data[at]
	data[at] = carry
	if last := rowmath.Wrap(w, s, -1); col != 0 && at <= last {
		// columns col+1..w-1 follow in order: shift them left over the hole
		rowmath.RotateLeft(data[at:last+1], 1)
		return x
	}
	// columns 0..col-1 occupy [s, at): shift them right over the hole
	rowmath.RotateRight(data[s:at+1], 1)
	v.splits[r] = rowmath.Wrap(w, s, 1)
	return x
}

// linearizeRow left-aligns row r if its split is not already 0.
func (v *Vec[T]) linearizeRow(r int) {
	if s := v.splits[r]; s != 0 {
		rowmath.Linearize(v.row(r), s)
		v.splits[r] = 0
	}
}

// relayout re-derives the bookkeeping after the backing slice was used as a
// flat slice: every row is left-aligned again.
func (v *Vec[T]) relayout() {
	clear(v.splits)
	v.renormalize()
}

// renormalize matches the split markers to the buffer length. Every
// size-changing operation ends here.
func (v *Vec[T]) renormalize() {
	want := len(v.buf)/v.width + 1
	for len(v.splits) < want {
		v.splits = append(v.splits, 0)
	}
	for len(v.splits) > want {
		last := len(v.splits) - 1
		if v.splits[last] != 0 {
			panic(rverrors.InvariantViolation("dropped row has a non-zero split",
				map[string]interface{}{"row": last, "split": v.splits[last]}))
		}
		v.splits = v.splits[:last]
	}
	if tail := want - 1; v.splits[tail] != 0 {
		// An empty trailing row has no layout to fix; a partial one cannot be
		// rotated back without losing track of its elements.
		if len(v.buf)%v.width != 0 {
			panic(rverrors.InvariantViolation("trailing row is not contiguous",
				map[string]interface{}{"row": tail, "split": v.splits[tail]}))
		}
		v.splits[tail] = 0
	}
	if debugChecks {
		if err := v.Validate(); err != nil {
			panic(err)
		}
	}
}

// Validate checks the row bookkeeping and returns an INVARIANT error for the
// first violation found: marker count, trailing split, split range, and that
// index resolution is a bijection onto the backing slice.
func (v *Vec[T]) Validate() error {
	if v.width <= 0 {
		return rverrors.InvalidWidth(v.width)
	}
	n := len(v.buf)
	if want := n/v.width + 1; len(v.splits) != want {
		return rverrors.InvariantViolation("split marker count does not match row count",
			map[string]interface{}{"len": n, "width": v.width, "markers": len(v.splits), "rows": want})
	}
	if s := v.splits[len(v.splits)-1]; s != 0 {
		return rverrors.InvariantViolation("trailing row is not contiguous",
			map[string]interface{}{"row": len(v.splits) - 1, "split": s})
	}
	for r, s := range v.splits {
		if s < 0 || s >= v.width {
			return rverrors.InvariantViolation("split out of range",
				map[string]interface{}{"row": r, "split": s, "width": v.width})
		}
	}
	seen := make([]bool, n)
	for i := 0; i < n; i++ {
		p := v.physical(i)
		if p < 0 || p >= n || seen[p] {
			return rverrors.InvariantViolation("index resolution is not a bijection",
				map[string]interface{}{"index": i, "physical": p})
		}
		seen[p] = true
	}
	return nil
}
