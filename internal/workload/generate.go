package workload

import (
	"math/rand"
)

// weights biases generation toward the operations that move split markers.
var weights = []struct {
	kind Kind
	w    int
}{
	{KindPushBack, 14},
	{KindPushFront, 18},
	{KindPopBack, 8},
	{KindPopFront, 10},
	{KindInsert, 14},
	{KindRemove, 12},
	{KindGet, 6},
	{KindSet, 4},
	{KindSwap, 4},
	{KindTruncate, 1},
	{KindDrain, 2},
	{KindMakeContiguous, 1},
}

var totalWeight = func() int {
	t := 0
	for _, w := range weights {
		t += w.w
	}
	return t
}()

func pickKind(r *rand.Rand) Kind {
	n := r.Intn(totalWeight)
	for _, w := range weights {
		if n < w.w {
			return w.kind
		}
		n -= w.w
	}
	return KindPushBack
}

// index returns a position in [0, bound), or occasionally one just outside
// it so rejected operations are exercised too.
func index(r *rand.Rand, bound int) int {
	switch r.Intn(16) {
	case 0:
		return bound
	case 1:
		return -1
	}
	if bound <= 0 {
		return 0
	}
	return r.Intn(bound)
}

// Generate returns a random script of up to 8*size operations on a width in
// [1, size/2+1].
func Generate(r *rand.Rand, size int) *Script {
	if size <= 0 {
		size = 30
	}
	s := &Script{Version: FormatVersion, Width: 1 + r.Intn(size/2+1)}
	steps := r.Intn(8*size + 1)
	n := 0
	next := 0
	for range steps {
		op := Op{Kind: pickKind(r)}
		switch op.Kind {
		case KindPushBack, KindPushFront:
			op.A = next
			next++
			n++
		case KindPopBack, KindPopFront:
			if n > 0 {
				n--
			}
		case KindInsert:
			op.A, op.B = index(r, n+1), next
			next++
			if op.A >= 0 && op.A <= n {
				n++
			}
		case KindRemove:
			op.A = index(r, n)
			if op.A >= 0 && op.A < n {
				n--
			}
		case KindGet:
			op.A = index(r, n)
		case KindSet:
			op.A, op.B = index(r, n), next
			next++
		case KindSwap:
			op.A, op.B = index(r, n), index(r, n)
		case KindTruncate:
			op.A = index(r, n+1)
			if op.A >= 0 {
				n = min(n, op.A)
			}
		case KindDrain:
			op.A = index(r, n+1)
			op.B = op.A + r.Intn(4)
			if op.A >= 0 && op.B <= n {
				n -= op.B - op.A
			}
		}
		s.Ops = append(s.Ops, op)
	}
	return s
}

// Shrink proposes smaller scripts: halves first, then single-op deletions for
// short scripts, then narrower widths.
func Shrink(s *Script) []*Script {
	var out []*Script
	with := func(ops []Op, width int) *Script {
		c := &Script{Version: s.Version, Width: width, Ops: ops}
		return c
	}
	if k := len(s.Ops); k > 0 {
		mid := k / 2
		out = append(out, with(append([]Op(nil), s.Ops[:mid]...), s.Width))
		if mid > 0 {
			out = append(out, with(append([]Op(nil), s.Ops[mid:]...), s.Width))
		}
		if k <= 32 {
			for i := range s.Ops {
				ops := make([]Op, 0, k-1)
				ops = append(ops, s.Ops[:i]...)
				ops = append(ops, s.Ops[i+1:]...)
				out = append(out, with(ops, s.Width))
			}
		}
	}
	if s.Width > 1 {
		out = append(out, with(append([]Op(nil), s.Ops...), s.Width/2))
		out = append(out, with(append([]Op(nil), s.Ops...), s.Width-1))
	}
	return out
}
