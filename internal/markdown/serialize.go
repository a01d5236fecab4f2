package markdown

import (
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/utils"
)

// Serialize renders ft as markdown that Parse turns back into ft.
//
// Fragments are unified first: a closing and an opening marker of the same
// kind at one offset would read back as a different marker ("_" + "_" is
// underline, "||" + "||" can end a quote). Parse slices them again.
func Serialize(ft entity.FormattedText) string {
	text := utils.Encode(ft.Text)
	entities := quotesOutermost(entity.Unify(ft.Entities))
	b := newBuckets(len(text))

	for _, e := range entities {
		if e.Length <= 0 || e.End() > len(text) {
			continue
		}
		b.open(e.Offset, openMarker(e))
		b.close(e.End(), closeMarker(e))
	}
	for _, e := range entities {
		if e.Type != entity.TypeBlockquote || e.Length <= 0 || e.End() > len(text) {
			continue
		}
		// Every line of a quote after the first starts with '>', ahead of
		// any marker there, including an empty last line.
		for k := e.Offset; k < e.End(); k++ {
			if text[k] == '\n' {
				b.close(k+1, ">")
			}
		}
	}
	separateQuotes(b, text, entities)

	code := codeMask(len(text), entities)
	for k, c := range text {
		if needsEscape(c, code[k]) || c == '!' && !code[k] && b.startsWith(k+1, "[") {
			b.open(k, `\`)
		}
	}

	var sb strings.Builder
	for k := 0; k < len(text); k++ {
		b.write(&sb, k)
		c := rune(text[k])
		if utils.IsHighSurrogate(text[k]) && k+1 < len(text) && utils.IsLowSurrogate(text[k+1]) {
			// Markers inside a surrogate pair cannot be placed; emit them
			// before the character.
			b.write(&sb, k+1)
			c = utf16.DecodeRune(c, rune(text[k+1]))
			k++
		}
		sb.WriteRune(c)
	}
	b.write(&sb, len(text))
	return sb.String()
}

// quotesOutermost orders a quote before the other entities covering the
// same range so its '>' opens first and its "||" closes last.
func quotesOutermost(entities []entity.Entity) []entity.Entity {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		if a.Offset != b.Offset {
			return a.Offset < b.Offset
		}
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		if aq, bq := a.Type == entity.TypeBlockquote, b.Type == entity.TypeBlockquote; aq != bq {
			return aq
		}
		return a.Type < b.Type
	})
	return entities
}

func openMarker(e entity.Entity) string {
	switch e.Type {
	case entity.TypeBold:
		return "*"
	case entity.TypeItalic:
		return "_"
	case entity.TypeUnderline:
		return "__"
	case entity.TypeStrike:
		return "~"
	case entity.TypeSpoiler:
		return "||"
	case entity.TypeCode:
		return "`"
	case entity.TypePre:
		return "```" + e.Language + "\n"
	case entity.TypeBlockquote:
		return ">"
	case entity.TypeTextURL, entity.TypeMentionName:
		return "["
	case entity.TypeCustomEmoji:
		return "!["
	}
	return ""
}

func closeMarker(e entity.Entity) string {
	switch e.Type {
	case entity.TypePre:
		return "\n```"
	case entity.TypeBlockquote:
		if e.CanCollapse {
			return "||"
		}
		return ""
	case entity.TypeTextURL:
		return "](" + escapeURL(e.URL) + ")"
	case entity.TypeCustomEmoji:
		return "](" + emojiPrefix + e.DocumentID + ")"
	case entity.TypeMentionName:
		return "](" + userPrefix + e.UserID + ")"
	}
	return openMarker(e)
}

var urlEscaper = strings.NewReplacer(`\`, `\\`, `)`, `\)`)

func escapeURL(u string) string {
	return urlEscaper.Replace(u)
}

func needsEscape(c uint16, inCode bool) bool {
	switch c {
	case '`', '\\':
		return true
	case '*', '_', '~', '|', '[', ']', '>':
		return !inCode
	}
	return false
}

// codeMask reports for each code unit whether it lies inside code or pre.
func codeMask(n int, entities []entity.Entity) []bool {
	mask := make([]bool, n)
	for _, e := range entities {
		if e.Type != entity.TypeCode && e.Type != entity.TypePre {
			continue
		}
		for k := e.Offset; k < e.End() && k < n; k++ {
			mask[k] = true
		}
	}
	return mask
}

// separateQuotes puts an empty bold pair between two plain quotes that are
// only one newline apart; without it they would parse as a single quote.
func separateQuotes(b *buckets, text []uint16, entities []entity.Entity) {
	var prev *entity.Entity
	for i := range entities {
		e := &entities[i]
		if e.Type != entity.TypeBlockquote {
			continue
		}
		if prev != nil && !prev.CanCollapse && prev.End()+1 == e.Offset && text[prev.End()] == '\n' {
			b.close(e.Offset, "**")
		}
		prev = e
	}
}

// buckets collects the markers emitted before each code unit. Opening
// markers are appended and closing ones prepended, so entities sharing an
// offset nest properly.
type buckets struct {
	at [][]string
}

func newBuckets(n int) *buckets {
	return &buckets{at: make([][]string, n+1)}
}

func (b *buckets) open(offset int, marker string) {
	if marker == "" {
		return
	}
	b.at[offset] = append(b.at[offset], marker)
}

func (b *buckets) close(offset int, marker string) {
	if marker == "" {
		return
	}
	b.at[offset] = append([]string{marker}, b.at[offset]...)
}

func (b *buckets) startsWith(offset int, prefix string) bool {
	if offset >= len(b.at) {
		return false
	}
	return strings.HasPrefix(strings.Join(b.at[offset], ""), prefix)
}

func (b *buckets) write(sb *strings.Builder, offset int) {
	for _, m := range b.at[offset] {
		sb.WriteString(m)
	}
}
