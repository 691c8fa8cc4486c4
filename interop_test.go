package rowvec

import (
	"hash/maphash"
	"slices"
	"strings"
	"testing"
)

func writeInt(h *maphash.Hash, x int) {
	var b [8]byte
	for i := range b {
		b[i] = byte(x >> (8 * i))
	}
	_, _ = h.Write(b[:])
}

func TestFromSliceTakesOwnership(t *testing.T) {
	s := seq(0, 20)
	v := FromSlice(s)
	if v.Width() != 4 {
		t.Fatalf("width=%d want floor(sqrt(20))=4", v.Width())
	}
	if v.Rows() != 6 {
		t.Fatalf("rows=%d", v.Rows())
	}
	mustValidate(t, v)
	s[0] = -1
	if x, _ := v.Get(0); x != -1 {
		t.Fatalf("FromSlice should not copy")
	}

	e := FromSlice[int](nil)
	if e.Width() != DefaultWidth[int]() || !e.IsEmpty() {
		t.Fatalf("empty FromSlice width=%d len=%d", e.Width(), e.Len())
	}
	e.PushFront(1)
	mustValidate(t, e)
}

func TestEmptyConstructionUsesDefaultWidth(t *testing.T) {
	for _, v := range []*Vec[int]{Of[int](), FromSlice([]int{})} {
		if v.Width() != DefaultWidth[int]() {
			t.Fatalf("width=%d want %d", v.Width(), DefaultWidth[int]())
		}
		for i := range 100 {
			v.PushFront(i)
		}
		if v.Rows() != 100/v.Width()+1 {
			t.Fatalf("rows=%d for width %d", v.Rows(), v.Width())
		}
		mustValidate(t, v)
	}
}

func TestOfCopies(t *testing.T) {
	xs := []int{1, 2, 3}
	v := Of(xs...)
	xs[0] = 9
	if x, _ := v.Get(0); x != 1 {
		t.Fatalf("Of should copy its arguments")
	}
}

func TestToSliceDoesNotMutate(t *testing.T) {
	v := rotated(4, 13)
	splits := v.Splits()
	if got := v.ToSlice(); !slices.Equal(got, seq(0, 13)) {
		t.Fatalf("got %v", got)
	}
	if !slices.Equal(splits, v.Splits()) {
		t.Fatalf("ToSlice changed the layout")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	v := rotated(3, 10)
	c := v.Clone()
	c.Set(0, 42)
	c.PushFront(-1)
	if x, _ := v.Get(0); x != 0 {
		t.Fatalf("clone shares storage")
	}
	if !slices.Equal(v.ToSlice(), seq(0, 10)) {
		t.Fatalf("original changed: %v", v)
	}
	mustValidate(t, c)
}

func TestEqualityIgnoresLayout(t *testing.T) {
	a := rotated(3, 14)
	b := FromSliceWidth(seq(0, 14), 7)
	if !Equal(a, b) {
		t.Fatalf("a=%v b=%v", a, b)
	}
	if Compare(a, b) != 0 {
		t.Fatalf("Compare=%d", Compare(a, b))
	}
	seed := maphash.MakeSeed()
	if HashFunc(seed, a, writeInt) != HashFunc(seed, b, writeInt) {
		t.Fatalf("equal vecs hash differently")
	}

	b.Set(13, 100)
	if Equal(a, b) || Compare(a, b) >= 0 || Compare(b, a) <= 0 {
		t.Fatalf("ordering after change wrong")
	}
	if Compare(Of(1, 2), Of(1, 2, 3)) >= 0 {
		t.Fatalf("shorter prefix should sort first")
	}
	if Equal(Of(1, 2), Of(1, 2, 3)) {
		t.Fatalf("different lengths equal")
	}
	if !EqualFunc(Of(1, 2), Of("1", "2"), func(x int, s string) bool { return s == string(rune('0'+x)) }) {
		t.Fatalf("EqualFunc across types failed")
	}
}

func TestFormatting(t *testing.T) {
	v := rotated(2, 5)
	if got := v.String(); got != "[0 1 2 3 4]" {
		t.Fatalf("String=%q", got)
	}
	if g := v.GoString(); !strings.Contains(g, "width: 2") || !strings.Contains(g, "splits:") {
		t.Fatalf("GoString=%q", g)
	}
}

func TestAliases(t *testing.T) {
	v := WithWidth[int](2)
	v.Push(1)
	v.Push(2)
	v.PushFront(0)
	if x, _ := v.First(); x != 0 {
		t.Fatalf("First=%d", x)
	}
	if x, _ := v.Last(); x != 2 {
		t.Fatalf("Last=%d", x)
	}
	if x, ok := v.Pop(); !ok || x != 2 {
		t.Fatalf("Pop=%d,%v", x, ok)
	}
}

func TestWidthFor(t *testing.T) {
	tests := []struct{ n, w int }{
		{0, 1}, {1, 1}, {3, 1}, {4, 2}, {15, 3}, {16, 4}, {20, 4}, {1 << 20, 1 << 10}, {1<<20 - 1, 1<<10 - 1},
	}
	for _, tt := range tests {
		if got := WidthFor(tt.n); got != tt.w {
			t.Fatalf("WidthFor(%d)=%d want %d", tt.n, got, tt.w)
		}
	}
	if w := DefaultWidth[byte](); w < 16 {
		t.Fatalf("DefaultWidth[byte]=%d", w)
	}
	if w := DefaultWidth[[256]byte](); w != minDefaultWidth {
		t.Fatalf("DefaultWidth for large elements=%d", w)
	}
	if w := DefaultWidth[struct{}](); w != minDefaultWidth {
		t.Fatalf("DefaultWidth for zero-size elements=%d", w)
	}
}
