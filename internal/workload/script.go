// Package workload describes operation traces for rowvec: a small text format,
// random generation and shrinking, and differential replay against a
// reference list.
package workload

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	semver "github.com/Masterminds/semver/v3"

	rverrors "github.com/orizon-lang/rowvec/internal/errors"
)

const (
	// FormatVersion is written by WriteTo.
	FormatVersion = "1.0.0"
	// TraceConstraint is the range of trace versions Parse accepts.
	TraceConstraint = "^1.0.0"
)

// Kind identifies a trace operation.
type Kind uint8

const (
	KindPushBack Kind = iota + 1
	KindPushFront
	KindPopBack
	KindPopFront
	KindInsert
	KindRemove
	KindGet
	KindSet
	KindSwap
	KindTruncate
	KindDrain
	KindMakeContiguous
)

var kindNames = map[Kind]string{
	KindPushBack:       "push_back",
	KindPushFront:      "push_front",
	KindPopBack:        "pop_back",
	KindPopFront:       "pop_front",
	KindInsert:         "insert",
	KindRemove:         "remove",
	KindGet:            "get",
	KindSet:            "set",
	KindSwap:           "swap",
	KindTruncate:       "truncate",
	KindDrain:          "drain",
	KindMakeContiguous: "make_contiguous",
}

// arity is the number of integer operands each kind takes.
var arity = map[Kind]int{
	KindPushBack:       1,
	KindPushFront:      1,
	KindPopBack:        0,
	KindPopFront:       0,
	KindInsert:         2,
	KindRemove:         1,
	KindGet:            1,
	KindSet:            2,
	KindSwap:           2,
	KindTruncate:       1,
	KindDrain:          2,
	KindMakeContiguous: 0,
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Op is one trace step. A and B hold the operands in the order they are
// written: value for pushes, index then value for insert/set, index pairs for
// swap/drain.
type Op struct {
	Kind Kind
	A, B int
}

func (o Op) String() string {
	switch arity[o.Kind] {
	case 1:
		return fmt.Sprintf("%s %d", o.Kind, o.A)
	case 2:
		return fmt.Sprintf("%s %d %d", o.Kind, o.A, o.B)
	}
	return o.Kind.String()
}

// Script is a parsed trace. Width 0 means rowvec.DefaultWidth.
type Script struct {
	Version string
	Width   int
	Ops     []Op
}

// CheckVersion reports whether a trace version is readable by this package.
func CheckVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("trace version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(TraceConstraint)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return rverrors.UnsupportedVersion(v.String(), TraceConstraint)
	}
	return nil
}

// Parse reads a trace. The first directive must be "version"; an optional
// "width" may follow before the first operation.
func Parse(r io.Reader) (*Script, error) {
	sc := bufio.NewScanner(r)
	s := &Script{}
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		if name != "version" && s.Version == "" {
			return nil, rverrors.MalformedTrace(line, "trace must start with a version line")
		}
		if name == "version" {
			if s.Version != "" {
				return nil, rverrors.MalformedTrace(line, "duplicate version")
			}
			if len(fields) != 2 {
				return nil, rverrors.MalformedTrace(line, "version takes one argument")
			}
			if err := CheckVersion(fields[1]); err != nil {
				return nil, err
			}
			s.Version = fields[1]
			continue
		}

		args, err := atois(fields[1:])
		if err != nil {
			return nil, rverrors.MalformedTrace(line, err.Error())
		}
		switch {
		case name == "width":
			if len(s.Ops) > 0 || s.Width != 0 {
				return nil, rverrors.MalformedTrace(line, "width must appear once, before any operation")
			}
			if len(args) != 1 || args[0] <= 0 {
				return nil, rverrors.MalformedTrace(line, "width takes one positive argument")
			}
			s.Width = args[0]
		default:
			kind, ok := kindByName[name]
			if !ok {
				return nil, rverrors.MalformedTrace(line, fmt.Sprintf("unknown operation %q", name))
			}
			if len(args) != arity[kind] {
				return nil, rverrors.MalformedTrace(line, fmt.Sprintf("%s takes %d arguments, got %d", name, arity[kind], len(args)))
			}
			op := Op{Kind: kind}
			if len(args) > 0 {
				op.A = args[0]
			}
			if len(args) > 1 {
				op.B = args[1]
			}
			s.Ops = append(s.Ops, op)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if s.Version == "" {
		return nil, rverrors.MalformedTrace(line, "missing version line")
	}
	return s, nil
}

func atois(fields []string) ([]int, error) {
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad integer %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}

// WriteTo writes the trace in the text format Parse reads.
func (s *Script) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	version := s.Version
	if version == "" {
		version = FormatVersion
	}
	fmt.Fprintf(&sb, "version %s\n", version)
	if s.Width > 0 {
		fmt.Fprintf(&sb, "width %d\n", s.Width)
	}
	for _, op := range s.Ops {
		sb.WriteString(op.String())
		sb.WriteByte('\n')
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// String renders the trace text.
func (s *Script) String() string {
	var sb strings.Builder
	_, _ = s.WriteTo(&sb)
	return sb.String()
}

// Clone returns a deep copy.
func (s *Script) Clone() *Script {
	c := *s
	c.Ops = append([]Op(nil), s.Ops...)
	return &c
}
