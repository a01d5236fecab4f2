// Package stats reports counts about the text being composed.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/plugin"
	"github.com/bethropolis/quill/internal/utils"
)

// Ensure Stats implements plugin.Plugin
var _ plugin.Plugin = (*Stats)(nil)

// Counts summarizes a formatted text.
type Counts struct {
	Graphemes int            // user-perceived characters
	CodeUnits int            // UTF-16 length, the unit entity offsets use
	Words     int            // whitespace-separated words
	Lines     int            // 0 for empty text
	Entities  map[string]int // per entity type name
}

// Count computes the counts of ft. Contiguous fragments of one entity count
// once.
func Count(ft entity.FormattedText) Counts {
	c := Counts{
		Graphemes: utils.GraphemeCount(ft.Text),
		CodeUnits: ft.Len(),
		Words:     len(strings.Fields(ft.Text)),
		Entities:  make(map[string]int),
	}
	if ft.Text != "" {
		c.Lines = strings.Count(ft.Text, "\n") + 1
	}
	for _, e := range entity.Unify(ft.Entities) {
		c.Entities[e.Type.String()]++
	}
	return c
}

// String renders the counts on one line, entity types sorted by name.
func (c Counts) String() string {
	s := fmt.Sprintf("Graphemes: %d, Words: %d, Lines: %d", c.Graphemes, c.Words, c.Lines)
	names := make([]string, 0, len(c.Entities))
	for name := range c.Entities {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		sep := ", "
		if i == 0 {
			sep = "; "
		}
		s += fmt.Sprintf("%s%s: %d", sep, name, c.Entities[name])
	}
	return s
}

// Stats registers the "stats" command and counts undo/redo steps.
type Stats struct {
	api   plugin.ComposerAPI
	undos int
	redos int
}

// New creates a new instance of the Stats plugin.
func New() plugin.Plugin {
	return &Stats{}
}

// Name returns the unique name of the plugin.
func (p *Stats) Name() string {
	return "stats"
}

// Initialize registers the command and the history listener.
func (p *Stats) Initialize(api plugin.ComposerAPI) error {
	p.api = api
	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	api.SubscribeEvent(event.TypeHistoryApplied, p.onHistory)
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *Stats) Shutdown() error {
	return nil
}

// HistorySteps returns how many undo and redo steps the session applied.
func (p *Stats) HistorySteps() (undos, redos int) {
	return p.undos, p.redos
}

func (p *Stats) onHistory(e event.Event) bool {
	data, ok := e.Data.(event.HistoryAppliedData)
	if !ok || data.SessionID != p.api.SessionID() {
		return false
	}
	if data.Redo {
		p.redos++
	} else {
		p.undos++
	}
	return false
}

// executeStats reports the counts of the current text in the status line.
func (p *Stats) executeStats(args []string) error {
	if p.api == nil {
		return fmt.Errorf("stats plugin not initialized with API")
	}
	msg := Count(p.api.Text()).String()
	if p.undos+p.redos > 0 {
		msg += fmt.Sprintf("; Undo: %d, Redo: %d", p.undos, p.redos)
	}
	p.api.SetStatusMessage("%s", msg)
	return nil
}
