package rowvec_test

import (
	"context"
	"testing"
	"time"

	"github.com/orizon-lang/rowvec/internal/workload"
)

func TestDifferentialRandomScripts(t *testing.T) {
	trials := 300
	if testing.Short() {
		trials = 50
	}
	for _, size := range []int{4, 16, 64} {
		res := workload.Check(context.Background(), workload.Options{
			Trials:        trials,
			Seed:          int64(size),
			Size:          size,
			MaxShrinkTime: 5 * time.Second,
		})
		if res.Failed {
			t.Fatalf("size %d: seed=%d %v\nshrunk trace:\n%s", size, res.Seed, res.Err, res.Shrunk)
		}
	}
}

// decodeOps turns fuzzer bytes into a script: the first byte picks the width,
// then every three bytes are one operation.
func decodeOps(data []byte) *workload.Script {
	if len(data) == 0 {
		return &workload.Script{Width: 1}
	}
	s := &workload.Script{Width: int(data[0]%12) + 1}
	data = data[1:]
	for i := 0; i+2 < len(data); i += 3 {
		kind := workload.Kind(data[i]%12) + workload.KindPushBack
		s.Ops = append(s.Ops, workload.Op{Kind: kind, A: int(int8(data[i+1])), B: int(int8(data[i+2]))})
	}
	return s
}

func FuzzOps(f *testing.F) {
	f.Add([]byte{3, 1, 0, 0, 1, 1, 0, 1, 2, 0, 4, 1, 9, 5, 0, 0, 11, 0, 0})
	f.Add([]byte{1, 1, 7, 0, 1, 8, 0, 3, 0, 0, 2, 0, 0})
	f.Add([]byte{5})
	f.Fuzz(func(t *testing.T, data []byte) {
		s := decodeOps(data)
		if _, err := workload.Replay(s); err != nil {
			t.Fatalf("%v\ntrace:\n%s", err, s)
		}
	})
}
