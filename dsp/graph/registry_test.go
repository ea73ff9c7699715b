package graph

import (
	"errors"
	"slices"
	"testing"
)

func scaleFactory(_ Context, p Params) (RealNode, error) {
	return &scaleNode{gain: p.GetNum("gain", 1)}, nil
}

func failingFactory(_ Context, _ Params) (RealNode, error) {
	return nil, errors.New("bad parameters")
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	t.Run("registers and looks up factory", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		if err := r.Register("scale", scaleFactory); err != nil {
			t.Fatalf("Register returned unexpected error: %v", err)
		}
		if r.Lookup("scale") == nil {
			t.Fatal("Lookup returned nil for registered kind")
		}
		if r.Lookup("missing") != nil {
			t.Fatal("Lookup returned factory for unregistered kind")
		}
	})

	t.Run("rejects empty kind", func(t *testing.T) {
		t.Parallel()

		if err := NewRegistry().Register("", scaleFactory); err == nil {
			t.Fatal("expected error for empty kind")
		}
	})

	t.Run("rejects nil factory", func(t *testing.T) {
		t.Parallel()

		if err := NewRegistry().Register("scale", nil); err == nil {
			t.Fatal("expected error for nil factory")
		}
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		_ = r.Register("scale", scaleFactory)

		err := r.Register("scale", scaleFactory)
		if !errors.Is(err, errDuplicateNode) {
			t.Fatalf("Register duplicate error = %v, want errDuplicateNode", err)
		}
	})

	t.Run("MustRegister panics on duplicate", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		r.MustRegister("scale", scaleFactory)

		defer func() {
			if recover() == nil {
				t.Fatal("MustRegister should panic on duplicate")
			}
		}()
		r.MustRegister("scale", scaleFactory)
	})
}

func TestRegistryKinds(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustRegister("b", scaleFactory)
	r.MustRegister("a", scaleFactory)

	if got := r.Kinds(); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("Kinds() = %v, want [a b]", got)
	}
}

func TestRegistryBuild(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustRegister("scale", scaleFactory)
	r.MustRegister("broken", failingFactory)

	node, err := r.Build(Context{SampleRate: 48000}, Params{Kind: "scale", Num: map[string]float64{"gain": 4}})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g := node.(*scaleNode).gain; g != 4 {
		t.Fatalf("gain = %v, want 4", g)
	}

	if _, err := r.Build(Context{}, Params{Kind: "nope"}); !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("Build(unknown) error = %v, want ErrUnknownNode", err)
	}
	if _, err := r.Build(Context{}, Params{Kind: "broken"}); err == nil {
		t.Fatal("Build(broken) should fail")
	}
}
