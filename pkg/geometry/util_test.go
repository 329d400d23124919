package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// must fails the test on a non-nil error, so frame factories can be used
// inline: must(t)(NewFrame(o, x, y)).
func must(t *testing.T) func(Frame, error) Frame {
	return func(f Frame, err error) Frame {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return f
	}
}
