// Package history provides undo/redo over formatted text. Each change is
// stored as a text delta plus an entity delta rather than a snapshot.
package history

import (
	"strings"

	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/utils"
)

// Change is one undoable step.
type Change struct {
	Text     TextDelta   `json:"text"`
	Entities EntityDelta `json:"entities"`
}

// NewChange computes the change that turns previous into next.
func NewChange(next, previous entity.FormattedText) Change {
	return Change{
		Text:     DiffText(previous.Text, next.Text),
		Entities: DiffEntities(previous.Entities, next.Entities),
	}
}

// IsEmpty reports whether c changes nothing.
func (c Change) IsEmpty() bool {
	return c.Text.IsEmpty() && c.Entities.IsEmpty()
}

// continues reports whether next is more typing right after c and can be
// folded into it. Typing a space or a newline starts a new step.
func (c Change) continues(next Change) bool {
	if !next.Text.IsInsertion() || !c.Text.IsInsertion() {
		return false
	}
	if c.Text.Offset+utils.Len(c.Text.Next) != next.Text.Offset {
		return false
	}
	if !isNotBreak(c.Text.Next, next.Text.Next, " ") || !isNotBreak(c.Text.Next, next.Text.Next, "\n") {
		return false
	}
	return sameSet(next.Entities.Previous, c.Entities.Next)
}

// absorb folds next into c; continues(next) must hold.
func (c *Change) absorb(next Change) {
	c.Text.Next += next.Text.Next
	c.Entities.Next = next.Entities.Next
}

func isNotBreak(previous, next, symbol string) bool {
	return !(strings.HasPrefix(next, symbol) || strings.HasSuffix(previous, symbol) && previous != symbol)
}
