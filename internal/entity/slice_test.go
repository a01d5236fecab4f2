package entity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSlice(t *testing.T) {
	tests := []struct {
		name string
		in   []Entity
		want []Entity
	}{
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
		{
			name: "degenerate dropped",
			in:   []Entity{New(TypeBold, 2, 0)},
			want: nil,
		},
		{
			name: "nested untouched",
			in:   []Entity{New(TypeItalic, 2, 3), New(TypeBold, 0, 10)},
			want: []Entity{New(TypeBold, 0, 10), New(TypeItalic, 2, 3)},
		},
		{
			name: "crossing split at outer end",
			in:   []Entity{New(TypeBold, 0, 16), New(TypeItalic, 5, 18)},
			want: []Entity{New(TypeBold, 0, 16), New(TypeItalic, 5, 11), New(TypeItalic, 16, 7)},
		},
		{
			name: "fragment keeps attributes",
			in:   []Entity{New(TypeBold, 0, 4), NewTextURL(2, 4, "https://a.org")},
			want: []Entity{
				New(TypeBold, 0, 4),
				NewTextURL(2, 2, "https://a.org"),
				NewTextURL(4, 2, "https://a.org"),
			},
		},
		{
			name: "chain of crossings",
			in:   []Entity{New(TypeBold, 0, 4), New(TypeItalic, 2, 4), New(TypeStrike, 5, 3)},
			want: []Entity{
				New(TypeBold, 0, 4),
				New(TypeItalic, 2, 2),
				New(TypeItalic, 4, 2),
				New(TypeStrike, 5, 1),
				New(TypeStrike, 6, 2),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slice(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Slice mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(got, Slice(got)); diff != "" {
				t.Errorf("Slice is not idempotent (-once +twice):\n%s", diff)
			}
			assertNonCrossing(t, got)
			if diff := cmp.Diff(coverage(tt.in), coverage(got)); diff != "" {
				t.Errorf("covered offsets changed (-in +out):\n%s", diff)
			}
		})
	}
}

func TestSliceDoesNotModifyInput(t *testing.T) {
	in := []Entity{New(TypeBold, 0, 4), New(TypeItalic, 2, 4)}
	Slice(in)
	if in[1].Length != 4 {
		t.Errorf("input entity modified: %v", in[1])
	}
}

func assertNonCrossing(t *testing.T, entities []Entity) {
	t.Helper()
	for i, a := range entities {
		for _, b := range entities[i+1:] {
			disjoint := a.End() <= b.Offset || b.End() <= a.Offset
			nested := (a.Offset <= b.Offset && b.End() <= a.End()) ||
				(b.Offset <= a.Offset && a.End() <= b.End())
			if !disjoint && !nested {
				t.Errorf("%v and %v cross", a, b)
			}
		}
	}
}

// coverage maps each type to the set of offsets it formats.
func coverage(entities []Entity) map[Type]map[int]bool {
	out := make(map[Type]map[int]bool)
	for _, e := range entities {
		for o := e.Offset; o < e.End(); o++ {
			if out[e.Type] == nil {
				out[e.Type] = make(map[int]bool)
			}
			out[e.Type][o] = true
		}
	}
	return out
}

func TestUnify(t *testing.T) {
	tests := []struct {
		name string
		in   []Entity
		want []Entity
	}{
		{
			name: "contiguous merged",
			in:   []Entity{New(TypeBold, 3, 2), New(TypeBold, 0, 3)},
			want: []Entity{New(TypeBold, 0, 5)},
		},
		{
			name: "gap kept",
			in:   []Entity{New(TypeBold, 0, 3), New(TypeBold, 4, 2)},
			want: []Entity{New(TypeBold, 0, 3), New(TypeBold, 4, 2)},
		},
		{
			name: "different urls kept",
			in:   []Entity{NewTextURL(0, 3, "https://a.org"), NewTextURL(3, 3, "https://b.org")},
			want: []Entity{NewTextURL(0, 3, "https://a.org"), NewTextURL(3, 3, "https://b.org")},
		},
		{
			name: "undoes slicing",
			in:   Slice([]Entity{New(TypeBold, 0, 16), New(TypeItalic, 5, 18)}),
			want: []Entity{New(TypeBold, 0, 16), New(TypeItalic, 5, 18)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Unify(tt.in)); diff != "" {
				t.Errorf("Unify mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
