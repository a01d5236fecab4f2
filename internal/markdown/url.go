package markdown

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/utils"
)

const (
	emojiPrefix = "tg://emoji?id="
	userPrefix  = "tg://user?id="
)

var idPattern = regexp.MustCompile(`^\d+$`)

// readURL consumes a link target up to the closing ')'.
func (s *scanner) readURL() (string, error) {
	var raw []uint16
	for steps := 0; ; steps++ {
		if s.pos >= len(s.in) {
			return "", s.errorf("unclosed link target")
		}
		if steps >= s.limits.MaxURLSteps {
			return "", s.errorf("link target exceeds %d scan steps", s.limits.MaxURLSteps)
		}
		switch c := s.in[s.pos]; c {
		case ')':
			s.pos++
			return utils.Decode(raw), nil
		case '\\':
			s.pos++
			if s.pos < len(s.in) {
				raw = append(raw, s.in[s.pos])
				s.pos++
			}
		default:
			raw = append(raw, c)
			s.pos++
		}
	}
}

// linkEntity classifies a link target. Custom emoji need an emoji target;
// user targets turn a link into a mention; anything else must be an absolute
// URL.
func linkEntity(t entity.Type, offset, length int, raw string) (entity.Entity, error) {
	if raw == "" {
		return entity.Entity{}, syntaxErrorf(0, "empty link target")
	}
	if t == entity.TypeCustomEmoji {
		id, ok := strings.CutPrefix(raw, emojiPrefix)
		if !ok {
			return entity.Entity{}, syntaxErrorf(0, "custom emoji needs a %q target", emojiPrefix)
		}
		if !idPattern.MatchString(id) {
			return entity.Entity{}, syntaxErrorf(0, "invalid custom emoji id %q", id)
		}
		return entity.NewCustomEmoji(offset, length, id), nil
	}
	if id, ok := strings.CutPrefix(raw, userPrefix); ok {
		if !idPattern.MatchString(id) {
			return entity.Entity{}, syntaxErrorf(0, "invalid user id %q", id)
		}
		return entity.NewMentionName(offset, length, id), nil
	}
	if !isAbsoluteURL(raw) {
		return entity.Entity{}, syntaxErrorf(0, "invalid url %q", raw)
	}
	return entity.NewTextURL(offset, length, raw), nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp", "ws", "wss":
		return u.Host != ""
	}
	return u.Opaque != "" || u.Host != "" || u.Path != ""
}
