package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/orizon-lang/rowvec/internal/cli"
	"github.com/orizon-lang/rowvec/internal/workload"
)

func quietLogger() *cli.Logger {
	l := cli.NewLogger(false, false)
	l.Out = io.Discard
	return l
}

func TestExpandDirectories(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.trace", "a.trace", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("version 1.0.0\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	single := filepath.Join(dir, "notes.txt")
	got, err := expand([]string{dir, single})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.trace"), filepath.Join(dir, "b.trace"), single}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if _, err := expand([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatalf("missing path accepted")
	}
}

func TestRunFilesExitCodes(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.trace")
	s := &workload.Script{Width: 3, Ops: []workload.Op{{Kind: workload.KindPushFront, A: 1}, {Kind: workload.KindPopBack}}}
	if err := workload.SaveFile(good, s); err != nil {
		t.Fatal(err)
	}
	if code := runFiles(context.Background(), quietLogger(), []string{good}, 1); code != 0 {
		t.Fatalf("clean trace exit %d", code)
	}

	bad := filepath.Join(dir, "bad.trace")
	if err := os.WriteFile(bad, []byte("version 3.0.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code := runFiles(context.Background(), quietLogger(), []string{good, bad}, 1); code != 2 {
		t.Fatalf("unsupported trace exit %d", code)
	}
}

func TestRunCheckPasses(t *testing.T) {
	opts := options{seed: 11, trials: 20, size: 16, width: 3}
	if code := runCheck(context.Background(), quietLogger(), opts); code != 0 {
		t.Fatalf("exit %d", code)
	}
}

func TestVersionJSONFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"--json"}, true},
		{[]string{"-json"}, true},
		{[]string{"-j"}, false},
		{[]string{"-j", "4"}, false},
	}
	for _, tt := range tests {
		if got := wantJSON(tt.args); got != tt.want {
			t.Fatalf("wantJSON(%q)=%v want %v", tt.args, got, tt.want)
		}
	}
}
