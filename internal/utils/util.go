package utils

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Offsets throughout quill are UTF-16 code units, the way the composer's
// host counts string positions. These helpers convert between Go strings and
// that indexing.

// Encode converts s to UTF-16 code units. Invalid UTF-8 becomes U+FFFD.
func Encode(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// Decode converts UTF-16 code units back to a string.
func Decode(units []uint16) string {
	return string(utf16.Decode(units))
}

// Len returns the length of s in UTF-16 code units.
func Len(s string) int {
	n := 0
	for _, r := range s {
		n += runeLen(r)
	}
	return n
}

// Slice returns the substring of s between the UTF-16 offsets [from, to).
// Offsets are clamped to the string.
func Slice(s string, from, to int) string {
	u := Encode(s)
	from = clamp(from, 0, len(u))
	to = clamp(to, from, len(u))
	return Decode(u[from:to])
}

// Splice replaces the UTF-16 range [offset, offset+removed) of s with insert.
func Splice(s string, offset, removed int, insert string) string {
	u := Encode(s)
	offset = clamp(offset, 0, len(u))
	end := clamp(offset+removed, offset, len(u))
	out := make([]uint16, 0, len(u)-(end-offset)+Len(insert))
	out = append(out, u[:offset]...)
	out = append(out, Encode(insert)...)
	out = append(out, u[end:]...)
	return Decode(out)
}

// IsHighSurrogate reports whether u opens a surrogate pair.
func IsHighSurrogate(u uint16) bool {
	return u >= 0xD800 && u < 0xDC00
}

// IsLowSurrogate reports whether u closes a surrogate pair.
func IsLowSurrogate(u uint16) bool {
	return u >= 0xDC00 && u < 0xE000
}

// ByteToUTF16Table builds a table mapping every byte offset of s (and len(s))
// to the UTF-16 offset of the rune starting there. Bytes inside a multi-byte
// rune map to the offset of that rune.
func ByteToUTF16Table(s string) []int {
	table := make([]int, len(s)+1)
	cum := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		for k := 0; k < size; k++ {
			table[i+k] = cum
		}
		cum += runeLen(r)
		i += size
	}
	table[len(s)] = cum
	return table
}

// runeLen is the UTF-16 width of r; invalid runes count as one unit since
// they decode to U+FFFD.
func runeLen(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
