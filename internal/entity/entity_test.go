package entity

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTypeText(t *testing.T) {
	for _, typ := range Types() {
		b, err := typ.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", typ, err)
		}
		var got Type
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if got != typ {
			t.Errorf("text round trip of %s gave %s", typ, got)
		}
	}
	if _, err := ParseType("blink"); err == nil {
		t.Error("ParseType(blink) should fail")
	}
}

func TestEntityJSON(t *testing.T) {
	ft := FormattedText{
		Text: "hello world",
		Entities: []Entity{
			New(TypeBold, 0, 5),
			NewTextURL(6, 5, "https://example.com"),
		},
	}
	b, err := json.Marshal(ft)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"text":"hello world","entities":[{"type":"bold","offset":0,"length":5},{"type":"text_url","offset":6,"length":5,"url":"https://example.com"}]}`
	if string(b) != want {
		t.Errorf("json = %s\nwant %s", b, want)
	}

	var back FormattedText
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ft, back); diff != "" {
		t.Errorf("json round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		e    Entity
		want error
	}{
		{"ok", New(TypeBold, 0, 3), nil},
		{"unknown type", Entity{Type: TypeUnknown, Length: 1}, ErrUnknownType},
		{"past end", New(TypeBold, 2, 5), ErrBadRange},
		{"negative offset", New(TypeItalic, -1, 2), ErrBadRange},
		{"url on bold", Entity{Type: TypeBold, Length: 1, URL: "https://x.org"}, ErrStrayVariant},
		{"collapse on pre", Entity{Type: TypePre, Length: 1, CanCollapse: true}, ErrStrayVariant},
		{"link without url", New(TypeTextURL, 0, 2), ErrMissingField},
		{"mention without user", New(TypeMentionName, 0, 2), ErrMissingField},
		{"pre without language", NewPre(0, 4, ""), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.e.Validate(5)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSort(t *testing.T) {
	got := Sort([]Entity{
		New(TypeItalic, 4, 2),
		New(TypeBold, 0, 3),
		New(TypeStrike, 0, 8),
		New(TypeUnderline, 4, 2),
	})
	want := []Entity{
		New(TypeStrike, 0, 8),
		New(TypeBold, 0, 3),
		New(TypeItalic, 4, 2),
		New(TypeUnderline, 4, 2),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sort mismatch (-want +got):\n%s", diff)
	}
}
