package workload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// FileResult is the replay outcome for one trace file.
type FileResult struct {
	Path   string
	Report *Report
	// Err is the divergence, or nil when the trace replayed cleanly.
	Err error
}

// LoadFile parses the trace at path.
func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// SaveFile writes s to path.
func SaveFile(path string, s *Script) error {
	return os.WriteFile(path, []byte(s.String()), 0o644)
}

// ReplayFiles loads and replays traces concurrently. Results are in path
// order. Divergences are reported per file; an unreadable or malformed trace
// aborts the whole run.
func ReplayFiles(ctx context.Context, paths []string, concurrency int) ([]FileResult, error) {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	out := make([]FileResult, len(paths))
	sem := make(chan struct{}, concurrency)
	g, gctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			s, err := LoadFile(path)
			if err != nil {
				return err
			}
			rep, err := Replay(s)
			var d *Divergence
			if err != nil && !errors.As(err, &d) {
				return fmt.Errorf("%s: %w", path, err)
			}
			out[i] = FileResult{Path: path, Report: rep, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
