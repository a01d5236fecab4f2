// Package clipboard holds copied formatted text. Fragments are kept in an
// internal register and, when enabled, mirrored to the system clipboard as
// markdown so formatting survives a trip through other applications.
package clipboard

import (
	"fmt"

	sysclip "github.com/atotto/clipboard"

	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/markdown"
)

// Manager handles clipboard operations
type Manager struct {
	register entity.FormattedText
	filled   bool

	system bool
	parser *markdown.Parser

	// System clipboard access; replaced in tests.
	readAll  func() (string, error)
	writeAll func(string) error
}

// NewManager creates a clipboard manager. With system set, copies are also
// written to the OS clipboard and pastes read from it first. The parser
// decodes markdown coming back from the system clipboard.
func NewManager(system bool, parser *markdown.Parser) *Manager {
	if parser == nil {
		parser = markdown.NewParser(markdown.DefaultLimits())
	}
	if system && sysclip.Unsupported {
		logger.Warnf("ClipboardManager: system clipboard unsupported on this platform, using internal register")
		system = false
	}
	return &Manager{
		system:   system,
		parser:   parser,
		readAll:  sysclip.ReadAll,
		writeAll: sysclip.WriteAll,
	}
}

// Copy stores ft and returns its markdown form. A system clipboard failure is
// returned but the internal register is still updated.
func (m *Manager) Copy(ft entity.FormattedText) (string, error) {
	m.register = ft.Clone()
	m.filled = true
	md := markdown.Serialize(ft)
	logger.Debugf("ClipboardManager: Copied %d code units with %d entities", ft.Len(), len(ft.Entities))

	if m.system {
		if err := m.writeAll(md); err != nil {
			return md, fmt.Errorf("writing system clipboard: %w", err)
		}
	}
	return md, nil
}

// Content returns what a paste should insert. The system clipboard wins when
// enabled and readable; its text is parsed as markdown. Otherwise the
// internal register is used. ok is false when there is nothing to paste.
func (m *Manager) Content() (ft entity.FormattedText, ok bool) {
	if m.system {
		text, err := m.readAll()
		if err != nil {
			logger.Warnf("ClipboardManager: reading system clipboard: %v", err)
		} else if text != "" {
			// Our own copy round-trips through markdown; prefer the register
			// to skip a reparse.
			if m.filled && text == markdown.Serialize(m.register) {
				return m.register.Clone(), true
			}
			return m.parser.Parse(text), true
		}
	}
	if !m.filled {
		return entity.FormattedText{}, false
	}
	return m.register.Clone(), true
}

// Clear empties the internal register.
func (m *Manager) Clear() {
	m.register = entity.FormattedText{}
	m.filled = false
}
