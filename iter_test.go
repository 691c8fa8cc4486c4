package rowvec

import (
	"slices"
	"testing"
)

func TestIteratorBothEnds(t *testing.T) {
	v := rotated(3, 10)
	it := v.Iter()
	if it.Len() != 10 {
		t.Fatalf("len=%d", it.Len())
	}
	var front, back []int
	for it.Len() > 0 {
		x, ok := it.Next()
		if !ok {
			t.Fatalf("Next exhausted early")
		}
		front = append(front, x)
		if y, ok := it.NextBack(); ok {
			back = append(back, y)
		}
	}
	if !slices.Equal(front, []int{0, 1, 2, 3, 4}) || !slices.Equal(back, []int{9, 8, 7, 6, 5}) {
		t.Fatalf("front=%v back=%v", front, back)
	}
	if _, ok := it.Next(); ok {
		t.Fatalf("Next after exhaustion")
	}
	if _, ok := it.NextBack(); ok {
		t.Fatalf("NextBack after exhaustion")
	}
}

func TestRangeIterators(t *testing.T) {
	v := rotated(4, 11)
	for i, x := range v.All() {
		if i != x {
			t.Fatalf("All: index %d value %d", i, x)
		}
	}
	if got := slices.Collect(v.Values()); !slices.Equal(got, seq(0, 11)) {
		t.Fatalf("Values=%v", got)
	}
	prev := v.Len()
	for i, x := range v.Backward() {
		if i != prev-1 || x != i {
			t.Fatalf("Backward: index %d value %d after %d", i, x, prev)
		}
		prev = i
	}

	count := 0
	for range v.All() {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Fatalf("early break not honored")
	}
}

func TestPointersUpdateInPlace(t *testing.T) {
	v := rotated(3, 10)
	for _, p := range v.Pointers() {
		*p *= 2
	}
	want := make([]int, 10)
	for i := range want {
		want[i] = 2 * i
	}
	if got := v.ToSlice(); !slices.Equal(got, want) {
		t.Fatalf("got %v", got)
	}
}
