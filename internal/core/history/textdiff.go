package history

import "github.com/bethropolis/quill/internal/utils"

// TextDelta is a single-region text change: at Offset, Previous was replaced
// by Next. Offsets and lengths are UTF-16 code units.
type TextDelta struct {
	Previous string `json:"previous"`
	Next     string `json:"next"`
	Offset   int    `json:"offset"`
}

// DiffText trims the longest common prefix and then the longest common
// suffix of the remainders, leaving the single region that changed. This is
// not a minimal edit script: two separate edits become one region spanning
// both. Boundaries never split a surrogate pair.
func DiffText(previous, next string) TextDelta {
	if previous == next {
		return TextDelta{}
	}
	p, n := utils.Encode(previous), utils.Encode(next)

	i := 0
	for i < len(p) && i < len(n) && p[i] == n[i] {
		i++
	}
	if i > 0 && utils.IsHighSurrogate(p[i-1]) {
		i--
	}

	j := 0
	for j < len(p)-i && j < len(n)-i && p[len(p)-1-j] == n[len(n)-1-j] {
		j++
	}
	if j > 0 && utils.IsLowSurrogate(p[len(p)-j]) {
		j--
	}

	return TextDelta{
		Previous: utils.Decode(p[i : len(p)-j]),
		Next:     utils.Decode(n[i : len(n)-j]),
		Offset:   i,
	}
}

// IsEmpty reports whether d changes nothing.
func (d TextDelta) IsEmpty() bool {
	return d.Previous == "" && d.Next == ""
}

// IsInsertion reports whether d only adds text.
func (d TextDelta) IsInsertion() bool {
	return d.Previous == "" && d.Next != ""
}

// ApplyPrevious reverts d on current.
func (d TextDelta) ApplyPrevious(current string) string {
	return utils.Splice(current, d.Offset, utils.Len(d.Next), d.Previous)
}

// ApplyNext replays d on current.
func (d TextDelta) ApplyNext(current string) string {
	return utils.Splice(current, d.Offset, utils.Len(d.Previous), d.Next)
}
