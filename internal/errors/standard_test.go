package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestConstructorsMatchCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *StandardError
		target *StandardError
	}{
		{"bounds", IndexOutOfBounds("Insert", 7, 3), ErrIndexOutOfBounds},
		{"range", InvalidRange("Drain", 4, 2, 9), ErrInvalidRange},
		{"width", InvalidWidth(0), ErrInvalidWidth},
		{"invariant", InvariantViolation("split not zero", nil), ErrInvariant},
		{"version", UnsupportedVersion("2.0.0", "^1.0.0"), ErrUnsupportedVersion},
		{"trace", MalformedTrace(3, "unknown op"), ErrMalformedTrace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !stderrors.Is(wrapped, tt.target) {
				t.Fatalf("errors.Is(%v, %s) = false", wrapped, tt.target.Code)
			}
			if stderrors.Is(wrapped, ErrMalformedTrace) && tt.target != ErrMalformedTrace {
				t.Fatalf("unexpected match with MALFORMED_TRACE")
			}
		})
	}
}

func TestErrorRecordsDetectingCaller(t *testing.T) {
	err := IndexOutOfBounds("At", 5, 2)
	if !strings.Contains(err.Caller, "TestErrorRecordsDetectingCaller") {
		t.Fatalf("caller=%q", err.Caller)
	}
	if !strings.Contains(err.Error(), "index 5 out of bounds for length 2") {
		t.Fatalf("message=%q", err.Error())
	}
	if err.Context["index"] != 5 {
		t.Fatalf("context=%v", err.Context)
	}
}
