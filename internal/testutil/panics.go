package testutil

import (
	"errors"
	"testing"
)

// RequirePanicsWith fails t unless fn panics with an error matching target.
func RequirePanicsWith(t testing.TB, target error, fn func()) {
	t.Helper()

	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v, got none", target)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %#v is not an error, want %v", r, target)
		}
		if !errors.Is(err, target) {
			t.Fatalf("panic %v does not match %v", err, target)
		}
	}()

	fn()
}
