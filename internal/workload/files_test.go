package workload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	rverrors "github.com/orizon-lang/rowvec/internal/errors"
)

func writeTrace(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestReplayFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeTrace(t, dir, "good.trace", sampleTrace)
	saved := writeTrace(t, dir, "generated.trace", "")
	s := &Script{Width: 2, Ops: []Op{{Kind: KindPushBack, A: 5}, {Kind: KindPopFront}}}
	if err := SaveFile(saved, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	results, err := ReplayFiles(context.Background(), []string{good, saved}, 2)
	if err != nil {
		t.Fatalf("ReplayFiles: %v", err)
	}
	if len(results) != 2 || results[0].Path != good || results[1].Path != saved {
		t.Fatalf("results out of order: %+v", results)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Path, r.Err)
		}
	}
	if results[1].Report.Steps != 2 {
		t.Fatalf("saved trace replayed %d steps", results[1].Report.Steps)
	}
}

func TestReplayFilesMalformedAborts(t *testing.T) {
	dir := t.TempDir()
	good := writeTrace(t, dir, "good.trace", sampleTrace)
	bad := writeTrace(t, dir, "bad.trace", "version 1.0.0\nfrobnicate\n")
	_, err := ReplayFiles(context.Background(), []string{good, bad}, 1)
	if !errors.Is(err, rverrors.ErrMalformedTrace) {
		t.Fatalf("err=%v", err)
	}

	_, err = ReplayFiles(context.Background(), []string{filepath.Join(dir, "missing.trace")}, 0)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file err=%v", err)
	}
}
