package entity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const twenty = "0123456789abcdefghij"

func TestToggle(t *testing.T) {
	const a, b = "https://a.org", "https://b.org"
	tests := []struct {
		name     string
		entities []Entity
		req      Entity
		add      bool
		want     []Entity
	}{
		{
			name: "add to empty",
			req:  New(TypeBold, 2, 5),
			add:  true,
			want: []Entity{New(TypeBold, 2, 5)},
		},
		{
			name:     "add same range twice",
			entities: []Entity{New(TypeBold, 2, 5)},
			req:      New(TypeBold, 2, 5),
			add:      true,
			want:     []Entity{New(TypeBold, 2, 5)},
		},
		{
			name:     "add overlapping extends",
			entities: []Entity{New(TypeBold, 0, 5)},
			req:      New(TypeBold, 3, 5),
			add:      true,
			want:     []Entity{New(TypeBold, 0, 8)},
		},
		{
			name:     "add touching merges",
			entities: []Entity{New(TypeBold, 0, 3)},
			req:      New(TypeBold, 3, 2),
			add:      true,
			want:     []Entity{New(TypeBold, 0, 5)},
		},
		{
			name:     "add bridges two runs",
			entities: []Entity{New(TypeBold, 0, 3), New(TypeBold, 6, 3)},
			req:      New(TypeBold, 2, 5),
			add:      true,
			want:     []Entity{New(TypeBold, 0, 9)},
		},
		{
			name:     "add ignores other types",
			entities: []Entity{New(TypeItalic, 0, 5)},
			req:      New(TypeBold, 3, 5),
			add:      true,
			want:     []Entity{New(TypeItalic, 0, 5), New(TypeBold, 3, 5)},
		},
		{
			name:     "add unifies fragments first",
			entities: []Entity{New(TypeBold, 0, 3), New(TypeBold, 3, 3)},
			req:      New(TypeBold, 10, 2),
			add:      true,
			want:     []Entity{New(TypeBold, 0, 6), New(TypeBold, 10, 2)},
		},
		{
			name:     "remove middle splits",
			entities: []Entity{New(TypeBold, 0, 10)},
			req:      New(TypeBold, 3, 4),
			want:     []Entity{New(TypeBold, 0, 3), New(TypeBold, 7, 3)},
		},
		{
			name:     "remove prefix",
			entities: []Entity{New(TypeBold, 2, 8)},
			req:      New(TypeBold, 0, 5),
			want:     []Entity{New(TypeBold, 5, 5)},
		},
		{
			name:     "remove whole",
			entities: []Entity{New(TypeBold, 2, 8)},
			req:      New(TypeBold, 2, 8),
			want:     nil,
		},
		{
			name:     "remove touching is a no-op",
			entities: []Entity{New(TypeBold, 0, 3)},
			req:      New(TypeBold, 3, 2),
			want:     []Entity{New(TypeBold, 0, 3)},
		},
		{
			name:     "remove without match",
			entities: []Entity{New(TypeItalic, 0, 3)},
			req:      New(TypeBold, 0, 3),
			want:     []Entity{New(TypeItalic, 0, 3)},
		},
		{
			name:     "remove only the last overlapping entity",
			entities: []Entity{New(TypeBold, 0, 3), New(TypeBold, 5, 3)},
			req:      New(TypeBold, 0, 10),
			want:     []Entity{New(TypeBold, 0, 3)},
		},
		{
			name:     "remove link",
			entities: []Entity{NewTextURL(0, 10, a)},
			req:      New(TypeTextURL, 0, 10),
			want:     nil,
		},
		{
			name:     "replace link with same url",
			entities: []Entity{NewTextURL(0, 10, a)},
			req:      NewTextURL(3, 4, a),
			want:     []Entity{NewTextURL(0, 10, a)},
		},
		{
			name:     "replace part of a link",
			entities: []Entity{NewTextURL(0, 10, a)},
			req:      NewTextURL(3, 4, b),
			want:     []Entity{NewTextURL(0, 3, a), NewTextURL(3, 4, b), NewTextURL(7, 3, a)},
		},
		{
			name:     "add link over another link",
			entities: []Entity{NewTextURL(0, 10, a)},
			req:      NewTextURL(5, 10, b),
			add:      true,
			want:     []Entity{NewTextURL(0, 5, a), NewTextURL(5, 10, b)},
		},
		{
			name:     "add link touching another link",
			entities: []Entity{NewTextURL(0, 5, a)},
			req:      NewTextURL(5, 5, b),
			add:      true,
			want:     []Entity{NewTextURL(0, 5, a), NewTextURL(5, 5, b)},
		},
		{
			name:     "add pre with another language",
			entities: []Entity{NewPre(0, 10, "go")},
			req:      NewPre(2, 3, "python"),
			add:      true,
			want:     []Entity{NewPre(0, 2, "go"), NewPre(2, 3, "python"), NewPre(5, 5, "go")},
		},
		{
			name:     "zero length ignored",
			entities: []Entity{New(TypeBold, 0, 3)},
			req:      New(TypeBold, 5, 0),
			add:      true,
			want:     []Entity{New(TypeBold, 0, 3)},
		},
		{
			name:     "out of range ignored",
			entities: []Entity{New(TypeBold, 0, 3)},
			req:      New(TypeBold, 15, 10),
			add:      true,
			want:     []Entity{New(TypeBold, 0, 3)},
		},
		{
			name: "invalid link ignored",
			req:  New(TypeTextURL, 0, 3),
			add:  true,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := FormattedText{Text: twenty, Entities: tt.entities}
			ft.Toggle(tt.req, tt.add)
			if diff := cmp.Diff(tt.want, ft.Entities); diff != "" {
				t.Errorf("Toggle mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToggleAddIsIdempotent(t *testing.T) {
	ft := Plain(twenty)
	req := New(TypeUnderline, 4, 6)
	ft.Toggle(req, true)
	once := ft.Clone()
	ft.Toggle(req, true)
	if diff := cmp.Diff(once, ft); diff != "" {
		t.Errorf("second add changed the text (-once +twice):\n%s", diff)
	}
	if len(ft.Entities) != 1 {
		t.Errorf("got %d entities, want 1", len(ft.Entities))
	}
}

func TestActiveTypes(t *testing.T) {
	ft := FormattedText{
		Text:     twenty,
		Entities: []Entity{New(TypeBold, 0, 5), New(TypeItalic, 2, 2)},
	}
	tests := []struct {
		name           string
		offset, length int
		want           []Entity
	}{
		{"inside both", 2, 2, []Entity{New(TypeBold, 0, 5), New(TypeItalic, 2, 2)}},
		{"wider than italic", 1, 3, []Entity{New(TypeBold, 0, 5)}},
		{"caret at end", 5, 0, []Entity{New(TypeBold, 0, 5)}},
		{"outside", 6, 2, nil},
		{"spanning past bold", 3, 4, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ft.ActiveTypes(tt.offset, tt.length)); diff != "" {
				t.Errorf("ActiveTypes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTypesAt(t *testing.T) {
	ft := FormattedText{
		Text:     twenty,
		Entities: []Entity{New(TypeBold, 0, 5), New(TypeItalic, 5, 2)},
	}
	got := ft.TypesAt(5)
	want := []Entity{New(TypeBold, 0, 5), New(TypeItalic, 5, 2)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TypesAt mismatch (-want +got):\n%s", diff)
	}
	if got := ft.TypesAt(8); got != nil {
		t.Errorf("TypesAt(8) = %v, want none", got)
	}
}

func TestApplyEdit(t *testing.T) {
	const url = "https://a.org"
	tests := []struct {
		name                      string
		in                        []Entity
		offset, removed, inserted int
		want                      []Entity
	}{
		{
			name:     "insert before shifts",
			in:       []Entity{New(TypeBold, 5, 3)},
			offset:   2,
			inserted: 4,
			want:     []Entity{New(TypeBold, 9, 3)},
		},
		{
			name:     "insert at start shifts",
			in:       []Entity{New(TypeBold, 5, 3)},
			offset:   5,
			inserted: 1,
			want:     []Entity{New(TypeBold, 6, 3)},
		},
		{
			name:     "insert inside extends",
			in:       []Entity{New(TypeBold, 5, 3)},
			offset:   6,
			inserted: 2,
			want:     []Entity{New(TypeBold, 5, 5)},
		},
		{
			name:     "insert at end extends bold",
			in:       []Entity{New(TypeBold, 5, 3)},
			offset:   8,
			inserted: 2,
			want:     []Entity{New(TypeBold, 5, 5)},
		},
		{
			name:     "insert at end leaves link",
			in:       []Entity{NewTextURL(5, 3, url)},
			offset:   8,
			inserted: 2,
			want:     []Entity{NewTextURL(5, 3, url)},
		},
		{
			name:    "delete inside shrinks",
			in:      []Entity{New(TypeBold, 2, 6)},
			offset:  3,
			removed: 2,
			want:    []Entity{New(TypeBold, 2, 4)},
		},
		{
			name:    "delete across start",
			in:      []Entity{New(TypeBold, 4, 6)},
			offset:  2,
			removed: 4,
			want:    []Entity{New(TypeBold, 2, 4)},
		},
		{
			name:    "delete covering drops",
			in:      []Entity{New(TypeBold, 4, 2), New(TypeItalic, 0, 10)},
			offset:  3,
			removed: 4,
			want:    []Entity{New(TypeItalic, 0, 6)},
		},
		{
			name:     "replace inside keeps formatting",
			in:       []Entity{New(TypeBold, 0, 5)},
			offset:   0,
			removed:  2,
			inserted: 1,
			want:     []Entity{New(TypeBold, 0, 4)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyEdit(tt.in, tt.offset, tt.removed, tt.inserted)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ApplyEdit mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSub(t *testing.T) {
	ft := FormattedText{
		Text:     "bold and 👍 link",
		Entities: []Entity{New(TypeBold, 0, 4), NewTextURL(12, 4, "https://a.org"), New(TypeItalic, 2, 10)},
	}
	tests := []struct {
		name           string
		offset, length int
		want           FormattedText
	}{
		{"whole", 0, ft.Len(), FormattedText{Text: ft.Text, Entities: Sort(append([]Entity(nil), ft.Entities...))}},
		{"clips both sides", 2, 8, FormattedText{Text: "ld and 👍", Entities: []Entity{New(TypeItalic, 0, 8), New(TypeBold, 0, 2)}}},
		{"inside italic only", 4, 1, FormattedText{Text: " ", Entities: []Entity{New(TypeItalic, 0, 1)}}},
		{"past the end", 14, 10, FormattedText{Text: "nk", Entities: []Entity{NewTextURL(0, 2, "https://a.org")}}},
		{"empty", 3, 0, FormattedText{Text: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ft.Sub(tt.offset, tt.length)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Sub(%d, %d) mismatch (-want +got):\n%s", tt.offset, tt.length, diff)
			}
		})
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name            string
		ft              FormattedText
		offset, removed int
		ins             FormattedText
		want            FormattedText
	}{
		{
			name:   "plain into plain",
			ft:     Plain("hello world"),
			offset: 5,
			ins:    Plain(","),
			want:   Plain("hello, world"),
		},
		{
			name:   "bold into plain",
			ft:     Plain("a c"),
			offset: 2,
			ins:    FormattedText{Text: "b ", Entities: []Entity{New(TypeBold, 0, 1)}},
			want:   FormattedText{Text: "a b c", Entities: []Entity{New(TypeBold, 2, 1)}},
		},
		{
			name:   "bold merges with surrounding bold",
			ft:     FormattedText{Text: "abcd", Entities: []Entity{New(TypeBold, 0, 4)}},
			offset: 2,
			ins:    FormattedText{Text: "xy", Entities: []Entity{New(TypeBold, 0, 2)}},
			want:   FormattedText{Text: "abxycd", Entities: []Entity{New(TypeBold, 0, 6)}},
		},
		{
			name:    "replaces selection",
			ft:      FormattedText{Text: "one two", Entities: []Entity{New(TypeItalic, 4, 3)}},
			offset:  0,
			removed: 3,
			ins:     FormattedText{Text: "1", Entities: []Entity{New(TypeCode, 0, 1)}},
			want:    FormattedText{Text: "1 two", Entities: []Entity{New(TypeCode, 0, 1), New(TypeItalic, 2, 3)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ft.Insert(tt.offset, tt.removed, tt.ins)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Insert mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
