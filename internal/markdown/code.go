package markdown

import (
	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/utils"
)

// code handles '`' and "```". Block contents are scanned by their own bounded
// loop where only escapes, fences and (for pre blocks) the language line
// mean anything.
func (s *scanner) code() error {
	if s.anyOpen() {
		return s.errorf("code block opened inside another entity")
	}
	pre := s.peek(1) == '`' && s.peek(2) == '`'
	fence := 1
	if pre {
		fence = 3
	}
	s.pos += fence

	start := len(s.out)
	language := ""
	languageDone := !pre
	escaped := false
	for steps := 0; ; steps++ {
		if s.pos >= len(s.in) {
			return s.errorf("unclosed code block")
		}
		if steps >= s.limits.MaxCodeSteps {
			return s.errorf("code block exceeds %d scan steps", s.limits.MaxCodeSteps)
		}
		switch s.in[s.pos] {
		case '\\':
			escaped = true
			s.escape()
		case '\n':
			if languageDone {
				s.copy()
				continue
			}
			languageDone = true
			if escaped {
				// An escaped first line is content, not a language tag.
				s.copy()
				continue
			}
			language = utils.Decode(s.out[start:])
			s.out = s.out[:start]
			s.pos++
		case '`':
			if !pre {
				s.pos++
				s.addCode(entity.New(entity.TypeCode, start, len(s.out)-start))
				return nil
			}
			if s.peek(1) != '`' || s.peek(2) != '`' {
				return s.errorf("single backtick inside a pre block")
			}
			s.pos += 3
			if n := len(s.out); n > start && s.out[n-1] == '\n' {
				s.out = s.out[:n-1]
			}
			s.addCode(entity.NewPre(start, len(s.out)-start, language))
			return nil
		default:
			s.copy()
		}
	}
}

func (s *scanner) addCode(e entity.Entity) {
	s.entities = append(s.entities, e)
}
