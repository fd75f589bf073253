package validation

import (
	"errors"
	"testing"
)

type mode string

const (
	modeAll      mode = "all"
	modeSolved   mode = "solved"
	modeUnsolved mode = "unsolved"
)

func TestFormatValidValues(t *testing.T) {
	got := FormatValidValues([]mode{modeAll, modeSolved, modeUnsolved})
	want := "all, solved, unsolved"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatInvalidValueError(t *testing.T) {
	base := errors.New("invalid mode")
	err := FormatInvalidValueError(base, mode("some"), []mode{modeAll, modeSolved})
	if !errors.Is(err, base) {
		t.Fatalf("expected error to wrap %v", base)
	}

	want := "invalid mode: \"some\" (valid: all, solved)"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
