package utils

import "github.com/rivo/uniseg"

// SnapToGraphemes widens the UTF-16 interval [offset, offset+length) so that
// neither edge falls inside a grapheme cluster. Formatting a selection that
// ends halfway through an emoji sequence would otherwise split it.
func SnapToGraphemes(text string, offset, length int) (int, int) {
	start, end := offset, offset+length
	pos := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		next := pos + Len(gr.Str())
		if pos < start && start < next {
			start = pos
		}
		if pos < end && end < next {
			end = next
		}
		if next >= end && pos >= start {
			break
		}
		pos = next
	}
	return start, end - start
}

// GraphemeCount returns the number of user-perceived characters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// StringWidth returns the monospace cell width of s.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}
