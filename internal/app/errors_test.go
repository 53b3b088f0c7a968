package app

import (
	"errors"
	"strings"
	"testing"
)

func TestInitError(t *testing.T) {
	cause := errors.New("boom")
	err := &InitError{Component: "backend", Err: cause}

	if got, want := err.Error(), "failed to initialize backend: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestRecoveredPanicError(t *testing.T) {
	err := &RecoveredPanicError{Value: "bad index"}
	if got := err.Error(); got != "panic: bad index" {
		t.Errorf("Error() = %q", got)
	}

	err.Stack = "goroutine 1"
	if got := err.Error(); !strings.HasSuffix(got, "\ngoroutine 1") {
		t.Errorf("Error() = %q, want stack suffix", got)
	}
}
