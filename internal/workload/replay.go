package workload

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/lists/doublylinkedlist"

	"github.com/orizon-lang/rowvec"
	rverrors "github.com/orizon-lang/rowvec/internal/errors"
)

// Report summarizes a clean replay.
type Report struct {
	Steps    int
	MaxLen   int
	FinalLen int
	// Rejected counts operations both sides refused as out of range.
	Rejected int
}

// Divergence is returned when the Vec and the reference list disagree, or
// when the Vec fails Validate.
type Divergence struct {
	Step   int
	Op     Op
	Reason string
}

func (d *Divergence) Error() string {
	return fmt.Sprintf("step %d (%s): %s", d.Step, d.Op, d.Reason)
}

// Replay runs the script against a fresh Vec[int] and a gods doubly linked
// list, comparing results after every operation. It never panics: panics
// from the Vec are recovered and judged against the reference.
func Replay(s *Script) (*Report, error) {
	w := s.Width
	if w <= 0 {
		w = rowvec.DefaultWidth[int]()
	}
	r := &replayer{vec: rowvec.WithWidth[int](w), ref: doublylinkedlist.New()}
	rep := &Report{}
	for step, op := range s.Ops {
		reason := r.apply(op, rep)
		if reason == "" {
			reason = r.compare()
		}
		if reason != "" {
			rep.FinalLen = r.vec.Len()
			return rep, &Divergence{Step: step, Op: op, Reason: reason}
		}
		rep.Steps++
		rep.MaxLen = max(rep.MaxLen, r.vec.Len())
	}
	rep.FinalLen = r.vec.Len()
	return rep, nil
}

type replayer struct {
	vec *rowvec.Vec[int]
	ref *doublylinkedlist.List
}

// catch runs fn and converts a panic into an error.
func catch(fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	fn()
	return nil
}

func isPrecondition(err error) bool {
	return errors.Is(err, rverrors.ErrIndexOutOfBounds) || errors.Is(err, rverrors.ErrInvalidRange)
}

// guarded runs a panicking mutator. valid says whether the reference accepts
// the operation; ref is applied only when it does.
func (r *replayer) guarded(rep *Report, valid bool, fn func(), ref func()) string {
	err := catch(fn)
	switch {
	case err == nil && valid:
		ref()
		return ""
	case err == nil:
		return "accepted an out-of-range operation"
	case !valid && isPrecondition(err):
		rep.Rejected++
		return ""
	default:
		return fmt.Sprintf("unexpected panic: %v", err)
	}
}

// absent compares an (x, ok) result against the reference.
func absent(got int, ok bool, want interface{}, wantOK bool) string {
	if ok != wantOK {
		return fmt.Sprintf("ok=%v, reference ok=%v", ok, wantOK)
	}
	if ok && got != want.(int) {
		return fmt.Sprintf("got %d, reference %v", got, want)
	}
	return ""
}

func (r *replayer) apply(op Op, rep *Report) (reason string) {
	n := r.ref.Size()
	inRange := func(i int) bool { return i >= 0 && i < n }

	if err := catch(func() { reason = r.step(op, rep, n, inRange) }); err != nil {
		return fmt.Sprintf("unexpected panic: %v", err)
	}
	return reason
}

func (r *replayer) step(op Op, rep *Report, n int, inRange func(int) bool) string {
	switch op.Kind {
	case KindPushBack:
		r.vec.PushBack(op.A)
		r.ref.Add(op.A)
	case KindPushFront:
		r.vec.PushFront(op.A)
		r.ref.Prepend(op.A)
	case KindPopBack:
		x, ok := r.vec.PopBack()
		want, wantOK := r.ref.Get(n - 1)
		if wantOK {
			r.ref.Remove(n - 1)
		}
		return absent(x, ok, want, wantOK)
	case KindPopFront:
		x, ok := r.vec.PopFront()
		want, wantOK := r.ref.Get(0)
		if wantOK {
			r.ref.Remove(0)
		}
		return absent(x, ok, want, wantOK)
	case KindRemove:
		x, ok := r.vec.Remove(op.A)
		want, wantOK := r.ref.Get(op.A)
		if wantOK {
			r.ref.Remove(op.A)
		}
		return absent(x, ok, want, wantOK)
	case KindGet:
		x, ok := r.vec.Get(op.A)
		want, wantOK := r.ref.Get(op.A)
		return absent(x, ok, want, wantOK)
	case KindInsert:
		return r.guarded(rep, op.A >= 0 && op.A <= n,
			func() { r.vec.Insert(op.A, op.B) },
			func() {
				if op.A == n {
					r.ref.Add(op.B)
				} else {
					r.ref.Insert(op.A, op.B)
				}
			})
	case KindSet:
		return r.guarded(rep, inRange(op.A),
			func() { r.vec.Set(op.A, op.B) },
			func() { r.setRef(op.A, op.B) })
	case KindSwap:
		return r.guarded(rep, inRange(op.A) && inRange(op.B),
			func() { r.vec.Swap(op.A, op.B) },
			func() { r.ref.Swap(op.A, op.B) })
	case KindTruncate:
		return r.guarded(rep, op.A >= 0,
			func() { r.vec.Truncate(op.A) },
			func() {
				for r.ref.Size() > op.A {
					r.ref.Remove(r.ref.Size() - 1)
				}
			})
	case KindDrain:
		var got []int
		reason := r.guarded(rep, op.A >= 0 && op.B >= op.A && op.B <= n,
			func() { got = r.vec.Drain(op.A, op.B) },
			func() {})
		if reason != "" || got == nil {
			return reason
		}
		for i := op.B - 1; i >= op.A; i-- {
			want, _ := r.ref.Get(i)
			if got[i-op.A] != want.(int) {
				return fmt.Sprintf("drained[%d]=%d, reference %v", i-op.A, got[i-op.A], want)
			}
			r.ref.Remove(i)
		}
	case KindMakeContiguous:
		s := r.vec.MakeContiguous()
		if len(s) != n {
			return fmt.Sprintf("contiguous view has %d elements, want %d", len(s), n)
		}
		for i, want := range r.ref.Values() {
			if s[i] != want.(int) {
				return fmt.Sprintf("contiguous[%d]=%d, reference %v", i, s[i], want)
			}
		}
		for i, sp := range r.vec.Splits() {
			if sp != 0 {
				return fmt.Sprintf("row %d split %d after make_contiguous", i, sp)
			}
		}
	default:
		return fmt.Sprintf("unknown operation kind %d", op.Kind)
	}
	return ""
}

// setRef replaces the reference element at i. doublylinkedlist.Set writes
// to stdout when it walks from the tail, so it is not used.
func (r *replayer) setRef(i, x int) {
	r.ref.Remove(i)
	if i == r.ref.Size() {
		r.ref.Add(x)
		return
	}
	r.ref.Insert(i, x)
}

// compare checks length, contents and the layout invariants.
func (r *replayer) compare() string {
	if err := r.vec.Validate(); err != nil {
		return err.Error()
	}
	if got, want := r.vec.Len(), r.ref.Size(); got != want {
		return fmt.Sprintf("len=%d, reference len=%d", got, want)
	}
	it := r.ref.Iterator()
	for it.Next() {
		got, _ := r.vec.Get(it.Index())
		if got != it.Value().(int) {
			return fmt.Sprintf("element %d is %d, reference %v", it.Index(), got, it.Value())
		}
	}
	return ""
}
