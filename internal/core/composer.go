// Package core ties the formatting pieces into an editing session: a
// Composer owns the current formatted text, its undo history, a markdown
// parser and a clipboard, and announces every change on an event bus.
package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bethropolis/quill/internal/core/clipboard"
	"github.com/bethropolis/quill/internal/core/history"
	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/markdown"
	"github.com/bethropolis/quill/internal/utils"
)

var (
	// ErrOutOfRange is returned for selections outside the text.
	ErrOutOfRange = errors.New("selection out of range")
	// ErrInvalidEntity is returned for malformed entities.
	ErrInvalidEntity = errors.New("invalid entity")
)

// Cursor is a selection in UTF-16 code units; Length 0 is a caret.
type Cursor struct {
	Offset int
	Length int
}

// Composer is one editing session. It is not safe for concurrent use.
type Composer struct {
	id    string
	state entity.FormattedText

	history   *history.Manager
	events    *event.Manager
	parser    *markdown.Parser
	clipboard *clipboard.Manager

	snapGraphemes bool
}

// New creates an empty session.
func New(opts Options) *Composer {
	events := opts.Events
	if events == nil {
		events = event.NewManager()
	}
	parser := markdown.NewParser(opts.Limits)
	c := &Composer{
		id:            uuid.NewString(),
		history:       history.NewManager(opts.MaxHistory),
		events:        events,
		parser:        parser,
		clipboard:     clipboard.NewManager(opts.SystemClipboard, parser),
		snapGraphemes: opts.SnapGraphemes,
	}
	logger.DebugTagf("composer", "Composer %s: created", c.id)
	return c
}

// ID returns the session identifier carried by every event.
func (c *Composer) ID() string { return c.id }

// Events returns the bus the session dispatches on.
func (c *Composer) Events() *event.Manager { return c.events }

// Text returns a copy of the current formatted text.
func (c *Composer) Text() entity.FormattedText {
	return c.state.Clone()
}

// Display returns the current text with entities sliced for rendering.
func (c *Composer) Display() entity.FormattedText {
	return entity.FormattedText{Text: c.state.Text, Entities: c.state.Sliced()}
}

// Markdown serializes the current text.
func (c *Composer) Markdown() string {
	return markdown.Serialize(c.state)
}

// SetMarkdown replaces the session text with parsed md. Malformed markdown
// is taken literally and reported through a ParseFailed event.
func (c *Composer) SetMarkdown(md string) {
	next, err := c.parser.ParseStrict(md)
	if err != nil {
		data := event.ParseFailedData{SessionID: c.id, Message: err.Error(), Offset: -1}
		var syntaxErr *markdown.SyntaxError
		if errors.As(err, &syntaxErr) {
			data.Message, data.Offset = syntaxErr.Message, syntaxErr.Offset
		}
		logger.DebugTagf("composer", "Composer %s: markdown taken literally: %v", c.id, err)
		c.events.Dispatch(event.TypeParseFailed, data)
	}
	c.commit(next, 0, c.state.Len(), next.Len())
}

// SetText replaces the session text wholesale.
func (c *Composer) SetText(ft entity.FormattedText) error {
	if err := ft.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}
	next := entity.FormattedText{Text: ft.Text, Entities: entity.Unify(ft.Entities)}
	c.commit(next, 0, c.state.Len(), next.Len())
	return nil
}

// Replace substitutes insert for [offset, offset+length) of the plain text.
// Formatting follows the edit: see entity.ApplyEdit.
func (c *Composer) Replace(offset, length int, insert string) error {
	if err := c.checkRange(offset, length); err != nil {
		return err
	}
	inserted := utils.Len(insert)
	next := entity.FormattedText{
		Text:     utils.Splice(c.state.Text, offset, length, insert),
		Entities: entity.ApplyEdit(c.state.Entities, offset, length, inserted),
	}
	c.commit(next, offset, length, inserted)
	return nil
}

// Toggle adds or removes the formatting req describes. It reports whether
// the text changed.
func (c *Composer) Toggle(req entity.Entity, add bool) (bool, error) {
	if c.snapGraphemes && req.Length > 0 {
		req.Offset, req.Length = utils.SnapToGraphemes(c.state.Text, req.Offset, req.Length)
	}
	if err := c.checkRange(req.Offset, req.Length); err != nil {
		return false, err
	}
	if add {
		if err := req.Validate(c.state.Len()); err != nil {
			return false, fmt.Errorf("%w: %w", ErrInvalidEntity, err)
		}
	}

	next := c.state.Clone()
	next.Toggle(req, add)
	if !c.commit(next, req.Offset, 0, 0) {
		return false, nil
	}
	c.events.Dispatch(event.TypeFormatToggled, event.FormatToggledData{
		SessionID: c.id,
		Kind:      req.Type.String(),
		Offset:    req.Offset,
		Length:    req.Length,
		Added:     add,
	})
	return true, nil
}

// ToggleLink applies what a link dialog returns for the selection: an empty
// URL removes any link, otherwise the URL is normalised and either wraps the
// selection or replaces the link already there.
func (c *Composer) ToggleLink(offset, length int, rawURL string) (bool, error) {
	url := markdown.EnsureProtocol(rawURL)
	if url == "" {
		return c.Toggle(entity.New(entity.TypeTextURL, offset, length), false)
	}
	_, linked := c.ActiveFormats(offset, length)[entity.TypeTextURL]
	return c.Toggle(entity.NewTextURL(offset, length, url), !linked)
}

// ActiveFormats returns, per type, the entity covering the whole selection.
// A toolbar shows these as pressed.
func (c *Composer) ActiveFormats(offset, length int) map[entity.Type]entity.Entity {
	active := make(map[entity.Type]entity.Entity)
	for _, e := range entity.Unify(c.state.Entities) {
		if offset >= e.Offset && offset+length <= e.End() {
			if _, ok := active[e.Type]; !ok {
				active[e.Type] = e
			}
		}
	}
	return active
}

// Undo reverts the last change and returns the selection to restore.
func (c *Composer) Undo() (Cursor, bool) {
	return c.step(false)
}

// Redo reapplies the last undone change.
func (c *Composer) Redo() (Cursor, bool) {
	return c.step(true)
}

// CanUndo reports whether Undo would do anything.
func (c *Composer) CanUndo() bool { return c.history.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (c *Composer) CanRedo() bool { return c.history.CanRedo() }

func (c *Composer) step(redo bool) (Cursor, bool) {
	var (
		s  history.Step
		ok bool
	)
	if redo {
		s, ok = c.history.Redo(c.state)
	} else {
		s, ok = c.history.Undo(c.state)
	}
	if !ok {
		return Cursor{}, false
	}
	c.state = s.Text
	cursor := Cursor{Offset: s.Offset, Length: s.Length}
	c.events.Dispatch(event.TypeHistoryApplied, event.HistoryAppliedData{
		SessionID: c.id,
		Redo:      redo,
		Offset:    cursor.Offset,
		Length:    cursor.Length,
	})
	return cursor, true
}

// Copy puts the selection on the clipboard and returns it as markdown.
func (c *Composer) Copy(offset, length int) (string, error) {
	if err := c.checkRange(offset, length); err != nil {
		return "", err
	}
	return c.clipboard.Copy(c.state.Sub(offset, length))
}

// Cut copies the selection and deletes it.
func (c *Composer) Cut(offset, length int) (string, error) {
	md, err := c.Copy(offset, length)
	if err != nil && md == "" {
		return "", err
	}
	if rerr := c.Replace(offset, length, ""); rerr != nil {
		return md, rerr
	}
	return md, err
}

// Paste replaces the selection with the clipboard contents, formatting
// included. It reports whether anything was pasted.
func (c *Composer) Paste(offset, length int) (bool, error) {
	if err := c.checkRange(offset, length); err != nil {
		return false, err
	}
	ins, ok := c.clipboard.Content()
	if !ok {
		return false, nil
	}
	next := c.state.Insert(offset, length, ins)
	return c.commit(next, offset, length, ins.Len()), nil
}

// Reset clears the text and the history.
func (c *Composer) Reset() {
	removed := c.state.Len()
	c.state = entity.FormattedText{}
	c.history.Clear()
	logger.DebugTagf("composer", "Composer %s: reset", c.id)
	c.events.Dispatch(event.TypeTextChanged, event.TextChangedData{SessionID: c.id, Removed: removed})
}

// commit records the move to next and announces it. It returns false when
// next does not differ from the current state.
func (c *Composer) commit(next entity.FormattedText, offset, removed, inserted int) bool {
	if !c.history.Record(next, c.state) {
		return false
	}
	c.state = next
	c.events.Dispatch(event.TypeTextChanged, event.TextChangedData{
		SessionID: c.id,
		Offset:    offset,
		Removed:   removed,
		Inserted:  inserted,
	})
	return true
}

func (c *Composer) checkRange(offset, length int) error {
	if n := c.state.Len(); offset < 0 || length < 0 || offset+length > n {
		return fmt.Errorf("%w: [%d, %d) in text of length %d", ErrOutOfRange, offset, offset+length, n)
	}
	return nil
}
