package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf, "rowvec-replay", "1.0.0", false)
	out := buf.String()
	if !strings.HasPrefix(out, "rowvec-replay v"+Version+"\n") || !strings.Contains(out, "Trace Format: 1.0.0") {
		t.Fatalf("plain output %q", out)
	}

	buf.Reset()
	PrintVersion(&buf, "rowvec-replay", "1.0.0", true)
	var doc struct {
		Tool string      `json:"tool"`
		Info VersionInfo `json:"version_info"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("json output %q: %v", buf.String(), err)
	}
	if doc.Tool != "rowvec-replay" || doc.Info.Version != Version || doc.Info.TraceVersion != "1.0.0" {
		t.Fatalf("decoded %+v", doc)
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(false, false)
	l.Out = &buf
	l.Info("hidden")
	l.Debug("hidden")
	l.Warn("shown %d", 1)
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "[WARN]") {
		t.Fatalf("quiet logger wrote %q", buf.String())
	}

	buf.Reset()
	l.Verbose, l.DebugMode = true, true
	l.Info("a")
	l.Debug("b")
	l.Error("c")
	for _, want := range []string{"[INFO]", "[DEBUG]", "[ERROR]"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("missing %s in %q", want, buf.String())
		}
	}
}

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	missing, err := LoadConfig(filepath.Join(dir, "none.json"))
	if err != nil || *missing != (Config{}) {
		t.Fatalf("missing file: %+v %v", missing, err)
	}

	p := filepath.Join(dir, "replay.json")
	want := Config{Trials: 500, Width: 7, Verbose: true, OutDir: "failures"}
	if err := want.SaveConfig(p); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if *got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}
