package effect

import (
	"testing"
)

func TestCompose(t *testing.T) {
	cases := []struct {
		name string
		in   []Effect
		want int // flattened length
	}{
		{"empty", nil, 0},
		{"all_none", []Effect{None{}, None{}}, 0},
		{"single", []Effect{Sound(1, "activate")}, 1},
		{"mixed", []Effect{None{}, Sound(1, "a"), Sound(1, "b")}, 2},
		{"nested", []Effect{Multiple{Effects: []Effect{Sound(1, "a"), Multiple{Effects: []Effect{Sound(1, "b"), None{}}}}}, Sound(2, "c")}, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Compose(c.in...)
			flat := Flatten(got)
			if len(flat) != c.want {
				t.Fatalf("expected %d flattened effects, got %d (%v)", c.want, len(flat), flat)
			}
			switch c.want {
			case 0:
				if _, ok := got.(None); !ok {
					t.Fatalf("expected None, got %T", got)
				}
			case 1:
				if _, ok := got.(Multiple); ok {
					t.Fatalf("single child should not be wrapped in Multiple")
				}
			default:
				if _, ok := got.(Multiple); !ok {
					t.Fatalf("expected Multiple, got %T", got)
				}
			}
		})
	}
}

func TestFlattenPreservesOrder(t *testing.T) {
	e := Compose(
		Sound(1, "first"),
		Multiple{Effects: []Effect{Sound(1, "second"), Sound(1, "third")}},
	)
	flat := Flatten(e)
	want := []string{"first", "second", "third"}
	if len(flat) != len(want) {
		t.Fatalf("expected %d effects, got %d", len(want), len(flat))
	}
	for i, w := range want {
		s, ok := flat[i].(PlayPositionalSound)
		if !ok {
			t.Fatalf("effect %d: expected PlayPositionalSound, got %T", i, flat[i])
		}
		if s.Tags[0].Value != w {
			t.Fatalf("effect %d: expected event %q, got %q", i, w, s.Tags[0].Value)
		}
	}
}
