// Package markdown converts between formatted text and the composer's
// markdown dialect:
//
//	*bold* _italic_ __underline__ ~strike~ ||spoiler|| `code`
//	```lang
//	pre
//	```
//	>quote  >collapsible quote||  [text](url)  ![👍](tg://emoji?id=1)
//	[name](tg://user?id=1)
//
// A backslash makes the next character literal.
package markdown

import (
	"errors"

	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/utils"
)

// Limits bound the work a parse may do. A step is one iteration of the
// respective scanner; exceeding a bound is a syntax error.
type Limits struct {
	MaxSteps     int
	MaxCodeSteps int
	MaxURLSteps  int
}

// DefaultLimits returns the bounds used by Parse.
func DefaultLimits() Limits {
	return Limits{MaxSteps: 10000, MaxCodeSteps: 1000, MaxURLSteps: 100}
}

// Parser parses markdown under fixed limits. The zero value is not usable;
// create one with NewParser.
type Parser struct {
	limits Limits
}

// NewParser returns a parser; non-positive limits fall back to the defaults.
func NewParser(limits Limits) *Parser {
	def := DefaultLimits()
	if limits.MaxSteps <= 0 {
		limits.MaxSteps = def.MaxSteps
	}
	if limits.MaxCodeSteps <= 0 {
		limits.MaxCodeSteps = def.MaxCodeSteps
	}
	if limits.MaxURLSteps <= 0 {
		limits.MaxURLSteps = def.MaxURLSteps
	}
	return &Parser{limits: limits}
}

// Limits returns the bounds p enforces.
func (p *Parser) Limits() Limits {
	return p.limits
}

var defaultParser = NewParser(DefaultLimits())

// Parse parses md with the default limits. See Parser.Parse.
func Parse(md string) entity.FormattedText {
	return defaultParser.Parse(md)
}

// ParseStrict parses md with the default limits. See Parser.ParseStrict.
func ParseStrict(md string) (entity.FormattedText, error) {
	return defaultParser.ParseStrict(md)
}

// Parse converts md to formatted text. It never fails: input that is not
// valid markdown comes back unchanged as plain text, with no formatting at
// all.
func (p *Parser) Parse(md string) entity.FormattedText {
	ft, err := p.ParseStrict(md)
	if err != nil {
		logger.DebugTagf("markdown", "Parse: falling back to plain text: %v", err)
		return entity.Plain(md)
	}
	return ft
}

// ParseStrict converts md to formatted text, reporting malformed input as a
// *SyntaxError. Entities in the result are unified, then sliced for display.
func (p *Parser) ParseStrict(md string) (entity.FormattedText, error) {
	s := &scanner{in: utils.Encode(md), limits: p.limits}
	if err := s.run(); err != nil {
		return entity.Plain(md), err
	}
	// Touching runs of one kind ("*a**b*") come back as a single entity.
	entities := entity.Slice(entity.Unify(s.entities))
	if entities == nil && len(s.out) == 0 {
		return entity.Plain(md), nil
	}
	return entity.FormattedText{Text: utils.Decode(s.out), Entities: entities}, nil
}

// marker is a formatting construct that can be open while scanning.
type marker int

const (
	markBold marker = iota
	markItalic
	markUnderline
	markStrike
	markSpoiler
	markQuote
	markLink
	numMarkers
)

var markerTypes = [numMarkers]entity.Type{
	markBold:      entity.TypeBold,
	markItalic:    entity.TypeItalic,
	markUnderline: entity.TypeUnderline,
	markStrike:    entity.TypeStrike,
	markSpoiler:   entity.TypeSpoiler,
	markQuote:     entity.TypeBlockquote,
	markLink:      entity.TypeTextURL,
}

// scanner walks the input once, copying literal text to out. Entity offsets
// are positions in out, so removed markers never shift them.
type scanner struct {
	in     []uint16
	pos    int
	out    []uint16
	limits Limits

	open     [numMarkers]bool
	openAt   [numMarkers]int
	linkType entity.Type
	entities []entity.Entity

	// bang is set when the previous step copied a literal '!', which turns
	// a following '[' into a custom emoji.
	bang bool
}

func (s *scanner) run() error {
	for steps := 0; s.pos < len(s.in); steps++ {
		if steps >= s.limits.MaxSteps {
			return s.errorf("input exceeds %d scan steps", s.limits.MaxSteps)
		}
		bang := s.bang
		s.bang = false

		var err error
		switch c := s.in[s.pos]; c {
		case '*':
			s.toggle(markBold, 1)
		case '~':
			s.toggle(markStrike, 1)
		case '_':
			if s.peek(1) == '_' {
				s.toggle(markUnderline, 2)
			} else {
				s.toggle(markItalic, 1)
			}
		case '|':
			err = s.pipe()
		case '\\':
			s.escape()
		case '`':
			err = s.code()
		case '>':
			s.quote()
		case '\n':
			s.newline()
		case '[':
			err = s.openLink(bang)
		case ']':
			err = s.closeLink()
		default:
			s.bang = c == '!'
			s.copy()
		}
		if err != nil {
			return err
		}
	}

	if s.open[markQuote] {
		s.close(markQuote, false)
	}
	for m, open := range s.open {
		if open {
			return s.errorf("unclosed %s", markerTypes[m])
		}
	}
	return nil
}

func (s *scanner) peek(shift int) uint16 {
	if i := s.pos + shift; i < len(s.in) {
		return s.in[i]
	}
	return 0
}

func (s *scanner) copy() {
	s.out = append(s.out, s.in[s.pos])
	s.pos++
}

func (s *scanner) escape() {
	s.pos++
	if s.pos < len(s.in) {
		s.copy()
	}
}

// toggle consumes a marker of width units and opens or closes m.
func (s *scanner) toggle(m marker, width int) {
	s.pos += width
	if s.open[m] {
		s.close(m, false)
		return
	}
	s.start(m)
}

func (s *scanner) start(m marker) {
	s.open[m] = true
	s.openAt[m] = len(s.out)
}

func (s *scanner) close(m marker, collapse bool) {
	offset := s.openAt[m]
	e := entity.New(markerTypes[m], offset, len(s.out)-offset)
	if m == markQuote {
		e.CanCollapse = collapse
	}
	s.entities = append(s.entities, e)
	s.open[m] = false
}

// pipe handles "||", which is a spoiler toggle unless it ends a line inside a
// quote with no spoiler open, where it marks the quote collapsible.
func (s *scanner) pipe() error {
	if s.peek(1) != '|' {
		return s.errorf("single '|', spoilers use \"||\"")
	}
	if s.open[markQuote] && !s.open[markSpoiler] {
		if after := s.pos + 2; after == len(s.in) || s.in[after] == '\n' {
			s.close(markQuote, true)
			s.pos += 2
			return nil
		}
	}
	s.toggle(markSpoiler, 2)
	return nil
}

// quote handles '>' which opens or continues a quote at the start of a line
// and is literal anywhere else.
func (s *scanner) quote() {
	if n := len(s.out); n > 0 && s.out[n-1] != '\n' {
		s.copy()
		return
	}
	s.pos++
	if !s.open[markQuote] {
		s.start(markQuote)
	}
}

// newline ends an open quote unless the next line continues it.
func (s *scanner) newline() {
	if s.open[markQuote] && s.peek(1) != '>' {
		s.close(markQuote, false)
	}
	s.copy()
}

func (s *scanner) anyOpen() bool {
	for _, open := range s.open {
		if open {
			return true
		}
	}
	return false
}

func (s *scanner) openLink(bang bool) error {
	if s.open[markLink] {
		return s.errorf("link opened before the previous one was closed")
	}
	s.pos++
	s.linkType = entity.TypeTextURL
	if bang {
		s.out = s.out[:len(s.out)-1]
		s.linkType = entity.TypeCustomEmoji
	}
	s.start(markLink)
	return nil
}

func (s *scanner) closeLink() error {
	if !s.open[markLink] || s.peek(1) != '(' {
		return s.errorf("']' must close a link and be followed by '('")
	}
	s.pos += 2
	raw, err := s.readURL()
	if err != nil {
		return err
	}
	offset := s.openAt[markLink]
	e, err := linkEntity(s.linkType, offset, len(s.out)-offset, raw)
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			se.Offset = s.pos
		}
		return err
	}
	s.entities = append(s.entities, e)
	s.open[markLink] = false
	return nil
}

func (s *scanner) errorf(format string, args ...interface{}) error {
	return syntaxErrorf(s.pos, format, args...)
}
