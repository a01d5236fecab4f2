package history

import (
	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/utils"
)

const DefaultMaxHistory = 100

// Step is the state produced by Undo or Redo together with the selection
// the caller should restore.
type Step struct {
	Text   entity.FormattedText
	Offset int
	Length int
}

// Manager handles the undo/redo stack. It is not safe for concurrent use;
// the owning session serialises edits.
type Manager struct {
	changes      []Change
	currentIndex int // Index of the *next* change to potentially Redo
	maxHistory   int
}

// NewManager creates a history manager keeping at most maxHistory changes.
func NewManager(maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		changes:    make([]Change, 0, min(maxHistory, 16)),
		maxHistory: maxHistory,
	}
}

// Record stores the change from previous to next, clearing any redo history.
// Consecutive typing is merged into the last change. It returns false when
// there was nothing to record.
func (m *Manager) Record(next, previous entity.FormattedText) bool {
	change := NewChange(next, previous)
	if change.IsEmpty() {
		return false
	}

	// If current index isn't at the end, truncate the redo history
	if m.currentIndex < len(m.changes) {
		m.changes = m.changes[:m.currentIndex]
	}

	if n := len(m.changes); n > 0 && m.changes[n-1].continues(change) {
		m.changes[n-1].absorb(change)
		logger.DebugTagf("history", "History: Extended change %d with %q", n-1, change.Text.Next)
	} else {
		m.changes = append(m.changes, change)
		if len(m.changes) > m.maxHistory {
			// Remove the oldest change (simple FIFO eviction)
			m.changes = m.changes[len(m.changes)-m.maxHistory:]
		}
		logger.DebugTagf("history", "History: Recorded change at offset %d (-%q +%q). Count: %d",
			change.Text.Offset, change.Text.Previous, change.Text.Next, len(m.changes))
	}
	m.currentIndex = len(m.changes)
	return true
}

// Undo reverts the last applied change on current.
func (m *Manager) Undo(current entity.FormattedText) (Step, bool) {
	if m.currentIndex <= 0 {
		logger.DebugTagf("history", "History: Nothing to undo.")
		return Step{}, false
	}
	m.currentIndex--
	c := m.changes[m.currentIndex]
	logger.DebugTagf("history", "History: Undoing change %d", m.currentIndex)

	step := Step{
		Text: entity.FormattedText{
			Text:     c.Text.ApplyPrevious(current.Text),
			Entities: c.Entities.ReconstructPrevious(current.Entities),
		},
	}
	step.Offset, step.Length = cursorHint(c, c.Text.Offset+utils.Len(c.Text.Previous))
	return step, true
}

// Redo reapplies the last undone change on current.
func (m *Manager) Redo(current entity.FormattedText) (Step, bool) {
	if m.currentIndex >= len(m.changes) {
		logger.DebugTagf("history", "History: Nothing to redo. currentIndex=%d, len(changes)=%d", m.currentIndex, len(m.changes))
		return Step{}, false
	}
	c := m.changes[m.currentIndex]
	m.currentIndex++
	logger.DebugTagf("history", "History: Redid change %d", m.currentIndex-1)

	step := Step{
		Text: entity.FormattedText{
			Text:     c.Text.ApplyNext(current.Text),
			Entities: c.Entities.ReconstructNext(current.Entities),
		},
	}
	step.Offset, step.Length = cursorHint(c, c.Text.Offset+utils.Len(c.Text.Next))
	return step, true
}

// cursorHint places the caret after the restored text, or selects the first
// affected entity when only formatting changed.
func cursorHint(c Change, offset int) (int, int) {
	if !c.Text.IsEmpty() {
		return offset, 0
	}
	switch {
	case len(c.Entities.Next) > 0:
		return c.Entities.Next[0].Offset, c.Entities.Next[0].Length
	case len(c.Entities.Previous) > 0:
		return c.Entities.Previous[0].Offset, c.Entities.Previous[0].Length
	}
	return 0, 0
}

// Clear resets the history stack.
func (m *Manager) Clear() {
	m.changes = m.changes[:0] // Clear slice while keeping allocated capacity
	m.currentIndex = 0
	logger.DebugTagf("history", "History: Cleared.")
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	return m.currentIndex > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	return m.currentIndex < len(m.changes)
}

// Len returns the number of stored changes.
func (m *Manager) Len() int {
	return len(m.changes)
}

// Changes returns a copy of the stored changes, oldest first.
func (m *Manager) Changes() []Change {
	return append([]Change(nil), m.changes...)
}
