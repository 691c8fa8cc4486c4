package workload

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"runtime"
	"time"
)

// Options control a randomized check.
type Options struct {
	Trials          int           // number of scripts; <=0 means 200
	Seed            int64         // base seed; 0 means time.Now().UnixNano()
	Size            int           // size hint for Generate
	Width           int           // fixed width for every script; 0 lets Generate choose
	Parallelism     int           // workers; <=0 means GOMAXPROCS
	MaxShrinkRounds int           // limit for shrinking attempts
	MaxShrinkTime   time.Duration // wall time limit for shrinking; 0 to disable
}

// Result is the outcome of Check.
type Result struct {
	PassedTrials int
	Failed       bool
	Failing      *Script
	Shrunk       *Script
	// Err is the divergence reported for Shrunk, or ctx.Err() on cancellation.
	Err          error
	Seed         int64
	Duration     time.Duration
	ShrinkRounds int
}

// Check replays randomly generated scripts until one diverges or
// opts.Trials pass. A failing script is shrunk before returning.
func Check(ctx context.Context, opts Options) Result {
	start := time.Now()
	if opts.Trials <= 0 {
		opts.Trials = 200
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Size <= 0 {
		opts.Size = 30
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = max(1, runtime.GOMAXPROCS(0))
	}
	if opts.MaxShrinkRounds <= 0 {
		opts.MaxShrinkRounds = 200
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	type outcome struct {
		s   *Script
		err error
	}
	tasks := make(chan int)
	outs := make(chan outcome)

	for range opts.Parallelism {
		go func() {
			for idx := range tasks {
				r := rand.New(rand.NewSource(deriveSeed(opts.Seed, idx)))
				s := Generate(r, opts.Size)
				if opts.Width > 0 {
					s.Width = opts.Width
				}
				_, err := Replay(s)
				select {
				case outs <- outcome{s: s, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for i := 0; i < opts.Trials; i++ {
			select {
			case tasks <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	res := Result{Seed: opts.Seed}
	for completed := 0; completed < opts.Trials; completed++ {
		var o outcome
		select {
		case o = <-outs:
		case <-ctx.Done():
			res.Err = ctx.Err()
			res.Duration = time.Since(start)
			return res
		}
		if o.err == nil {
			res.PassedTrials++
			continue
		}
		res.Failed = true
		res.Failing = o.s
		cancel()
		res.Shrunk, res.Err, res.ShrinkRounds = shrink(o.s, o.err, opts)
		break
	}
	res.Duration = time.Since(start)
	return res
}

// shrink greedily replaces best with the first failing candidate until no
// candidate fails or a limit is hit.
func shrink(best *Script, bestErr error, opts Options) (*Script, error, int) {
	var deadline time.Time
	if opts.MaxShrinkTime > 0 {
		deadline = time.Now().Add(opts.MaxShrinkTime)
	}
	rounds := 0
	for rounds < opts.MaxShrinkRounds {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		progressed := false
		for _, c := range Shrink(best) {
			if _, err := Replay(c); err != nil {
				best, bestErr = c, err
				progressed = true
				break
			}
		}
		rounds++
		if !progressed {
			break
		}
	}
	return best, bestErr, rounds
}

// deriveSeed deterministically mixes base seed with trial index via SHA-256.
func deriveSeed(base int64, idx int) int64 {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], uint64(base))
	binary.LittleEndian.PutUint64(b[8:16], uint64(idx))
	h := sha256.Sum256(b[:])
	return int64(binary.LittleEndian.Uint64(h[0:8]))
}
