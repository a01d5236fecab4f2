package entity

import (
	"fmt"

	"github.com/bethropolis/quill/internal/utils"
)

// FormattedText is plain text plus the entities formatting it. Entities are
// kept sorted (see Sort) and never hold degenerate ranges; a value without
// formatting has a nil Entities slice.
type FormattedText struct {
	Text     string   `json:"text"`
	Entities []Entity `json:"entities,omitempty"`
}

// Plain returns text without formatting.
func Plain(text string) FormattedText {
	return FormattedText{Text: text}
}

// Len returns the text length in UTF-16 code units.
func (ft FormattedText) Len() int {
	return utils.Len(ft.Text)
}

// Clone returns a copy that shares no entity storage with ft.
func (ft FormattedText) Clone() FormattedText {
	out := FormattedText{Text: ft.Text}
	if len(ft.Entities) > 0 {
		out.Entities = append([]Entity(nil), ft.Entities...)
	}
	return out
}

// Sliced returns the display layout of ft's entities.
func (ft FormattedText) Sliced() []Entity {
	return Slice(ft.Entities)
}

// Validate checks every entity against the text.
func (ft FormattedText) Validate() error {
	n := ft.Len()
	for i, e := range ft.Entities {
		if err := e.Validate(n); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
	}
	return nil
}

// ActiveTypes returns the entities whose range contains
// [offset, offset+length). A collapsed query at an entity's end still counts,
// so the caret right after bold text reports bold.
func (ft FormattedText) ActiveTypes(offset, length int) []Entity {
	end := offset + length
	var out []Entity
	for _, e := range ft.Entities {
		if offset >= e.Offset && end <= e.End() {
			out = append(out, e)
		}
	}
	return out
}

// TypesAt returns the entities touching offset, ends included.
func (ft FormattedText) TypesAt(offset int) []Entity {
	var out []Entity
	for _, e := range ft.Entities {
		if e.Offset <= offset && offset <= e.End() {
			out = append(out, e)
		}
	}
	return out
}

// Equal reports whether ft and o hold the same text and the same entities in
// the same order.
func (ft FormattedText) Equal(o FormattedText) bool {
	if ft.Text != o.Text || len(ft.Entities) != len(o.Entities) {
		return false
	}
	for i := range ft.Entities {
		if ft.Entities[i] != o.Entities[i] {
			return false
		}
	}
	return true
}

// Sub returns the part of ft inside [offset, offset+length), with entities
// clipped to the range and rebased to zero.
func (ft FormattedText) Sub(offset, length int) FormattedText {
	n := ft.Len()
	start := min(max(offset, 0), n)
	end := min(max(offset+length, start), n)
	out := FormattedText{Text: utils.Slice(ft.Text, start, end)}
	var entities []Entity
	for _, e := range ft.Entities {
		lo, hi := max(e.Offset, start), min(e.End(), end)
		if lo < hi {
			entities = append(entities, e.WithRange(lo-start, hi-lo))
		}
	}
	out.Entities = normalize(entities)
	return out
}

// Insert replaces [offset, offset+removed) with ins, keeping ins's own
// formatting. Surrounding entities follow the edit as in ApplyEdit, and the
// inserted entities are added with Toggle so they merge with matching
// formatting around them.
func (ft FormattedText) Insert(offset, removed int, ins FormattedText) FormattedText {
	out := FormattedText{
		Text:     utils.Splice(ft.Text, offset, removed, ins.Text),
		Entities: ApplyEdit(ft.Entities, offset, removed, ins.Len()),
	}
	for _, e := range ins.Entities {
		out.Toggle(e.WithRange(e.Offset+offset, e.Length), true)
	}
	return out
}
