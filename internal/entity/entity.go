// Package entity models formatted text: a plain string plus typed,
// offset-addressed formatting ranges, and the algorithms that merge, split,
// toggle and slice those ranges.
//
// Offsets and lengths are UTF-16 code units.
package entity

import (
	"errors"
	"fmt"
)

// Type identifies the kind of formatting an entity applies.
type Type int

const (
	TypeUnknown Type = iota
	TypeBold
	TypeItalic
	TypeUnderline
	TypeStrike
	TypeSpoiler
	TypeCode
	TypePre
	TypeBlockquote
	TypeTextURL
	TypeCustomEmoji
	TypeMentionName
)

var typeNames = map[Type]string{
	TypeBold:        "bold",
	TypeItalic:      "italic",
	TypeUnderline:   "underline",
	TypeStrike:      "strike",
	TypeSpoiler:     "spoiler",
	TypeCode:        "code",
	TypePre:         "pre",
	TypeBlockquote:  "blockquote",
	TypeTextURL:     "text_url",
	TypeCustomEmoji: "custom_emoji",
	TypeMentionName: "mention_name",
}

// Types lists every known entity type in declaration order.
func Types() []Type {
	return []Type{
		TypeBold, TypeItalic, TypeUnderline, TypeStrike, TypeSpoiler, TypeCode,
		TypePre, TypeBlockquote, TypeTextURL, TypeCustomEmoji, TypeMentionName,
	}
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseType maps a wire name back to its Type.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return TypeUnknown, fmt.Errorf("unknown entity type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if _, ok := typeNames[t]; !ok {
		return nil, fmt.Errorf("cannot marshal entity type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Entity is one formatting range. The variant fields are only meaningful for
// the type that owns them: Language for Pre, URL for TextURL, DocumentID for
// CustomEmoji, UserID for MentionName and CanCollapse for Blockquote.
// Entity is comparable; two entities are equal when every field is.
type Entity struct {
	Type   Type `json:"type"`
	Offset int  `json:"offset"`
	Length int  `json:"length"`

	Language    string `json:"language,omitempty"`
	URL         string `json:"url,omitempty"`
	DocumentID  string `json:"document_id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	CanCollapse bool   `json:"can_collapse,omitempty"`
}

// New returns an entity of a kind that carries no variant fields.
func New(t Type, offset, length int) Entity {
	return Entity{Type: t, Offset: offset, Length: length}
}

// NewPre returns a preformatted block entity.
func NewPre(offset, length int, language string) Entity {
	return Entity{Type: TypePre, Offset: offset, Length: length, Language: language}
}

// NewTextURL returns a link entity.
func NewTextURL(offset, length int, url string) Entity {
	return Entity{Type: TypeTextURL, Offset: offset, Length: length, URL: url}
}

// NewCustomEmoji returns a custom emoji entity.
func NewCustomEmoji(offset, length int, documentID string) Entity {
	return Entity{Type: TypeCustomEmoji, Offset: offset, Length: length, DocumentID: documentID}
}

// NewMentionName returns a user mention entity.
func NewMentionName(offset, length int, userID string) Entity {
	return Entity{Type: TypeMentionName, Offset: offset, Length: length, UserID: userID}
}

// NewBlockquote returns a block quotation entity.
func NewBlockquote(offset, length int, canCollapse bool) Entity {
	return Entity{Type: TypeBlockquote, Offset: offset, Length: length, CanCollapse: canCollapse}
}

// End returns the exclusive end offset.
func (e Entity) End() int {
	return e.Offset + e.Length
}

// SameAttributes reports whether e and o carry identical variant fields.
func (e Entity) SameAttributes(o Entity) bool {
	return e.Language == o.Language &&
		e.URL == o.URL &&
		e.DocumentID == o.DocumentID &&
		e.UserID == o.UserID &&
		e.CanCollapse == o.CanCollapse
}

// WithRange returns a copy of e moved to [offset, offset+length).
func (e Entity) WithRange(offset, length int) Entity {
	e.Offset = offset
	e.Length = length
	return e
}

// Errors returned by Validate.
var (
	ErrUnknownType  = errors.New("unknown entity type")
	ErrBadRange     = errors.New("entity range out of bounds")
	ErrStrayVariant = errors.New("variant field set on the wrong entity type")
	ErrMissingField = errors.New("required variant field missing")
)

// Validate checks the tag/variant consistency of e and, when textLen is not
// negative, that it lies inside a text of that many code units.
func (e Entity) Validate(textLen int) error {
	if _, ok := typeNames[e.Type]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownType, int(e.Type))
	}
	if e.Offset < 0 || e.Length < 0 || (textLen >= 0 && e.End() > textLen) {
		return fmt.Errorf("%w: %s [%d, %d) in text of length %d", ErrBadRange, e.Type, e.Offset, e.End(), textLen)
	}
	if e.Language != "" && e.Type != TypePre ||
		e.URL != "" && e.Type != TypeTextURL ||
		e.DocumentID != "" && e.Type != TypeCustomEmoji ||
		e.UserID != "" && e.Type != TypeMentionName ||
		e.CanCollapse && e.Type != TypeBlockquote {
		return fmt.Errorf("%w: %s", ErrStrayVariant, e.Type)
	}
	switch {
	case e.Type == TypeTextURL && e.URL == "":
		return fmt.Errorf("%w: %s needs a url", ErrMissingField, e.Type)
	case e.Type == TypeCustomEmoji && e.DocumentID == "":
		return fmt.Errorf("%w: %s needs a document id", ErrMissingField, e.Type)
	case e.Type == TypeMentionName && e.UserID == "":
		return fmt.Errorf("%w: %s needs a user id", ErrMissingField, e.Type)
	}
	return nil
}

func (e Entity) String() string {
	s := fmt.Sprintf("%s[%d,%d)", e.Type, e.Offset, e.End())
	switch e.Type {
	case TypePre:
		if e.Language != "" {
			s += " lang=" + e.Language
		}
	case TypeTextURL:
		s += " url=" + e.URL
	case TypeCustomEmoji:
		s += " doc=" + e.DocumentID
	case TypeMentionName:
		s += " user=" + e.UserID
	case TypeBlockquote:
		if e.CanCollapse {
			s += " collapsible"
		}
	}
	return s
}
