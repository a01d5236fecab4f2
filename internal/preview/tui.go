package preview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/logger"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
	input  *InputProcessor
	status StatusBar
}

// New creates and initializes a TUI on the controlling terminal.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s)
}

// NewWithScreen initializes s and wraps it; tests pass a simulation screen.
func NewWithScreen(s tcell.Screen) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	return &TUI{screen: s, input: NewInputProcessor()}, nil
}

// Close finalizes the tcell screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// Screen provides direct access to the underlying screen.
func (t *TUI) Screen() tcell.Screen {
	return t.screen
}

// StatusBar returns the bar drawn under the text.
func (t *TUI) StatusBar() *StatusBar {
	return &t.status
}

// Show draws ft and handles keys until a quit key is pressed. The text
// scrolls when it needs more rows than the screen has; a screen taller than
// one line keeps its last line for the status bar.
func (t *TUI) Show(r *Renderer, ft entity.FormattedText) {
	top := 0
	total := t.draw(r, ft, top)
	logger.Debugf("Preview: drew %d rows", total)

	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return // screen finalized
		case *tcell.EventResize:
			total = t.draw(r, ft, top)
			t.screen.Sync()
		case *tcell.EventKey:
			page := t.textRows()
			switch t.input.ProcessEvent(ev) {
			case ActionQuit:
				logger.Debugf("Preview: closed by key %s", ev.Name())
				return
			case ActionScrollUp:
				top--
			case ActionScrollDown:
				top++
			case ActionPageUp:
				top -= page
			case ActionPageDown:
				top += page
			case ActionTop:
				top = 0
			case ActionBottom:
				top = total
			default:
				continue
			}
			top = max(0, min(top, total-page))
			total = t.draw(r, ft, top)
		}
	}
}

// textRows is the number of screen lines available to the text.
func (t *TUI) textRows() int {
	_, height := t.screen.Size()
	if height > 1 {
		return height - 1
	}
	return height
}

func (t *TUI) draw(r *Renderer, ft entity.FormattedText, top int) int {
	_, height := t.screen.Size()
	rows := t.textRows()
	total := r.DrawView(t.screen, ft, top, rows)
	if rows < height {
		t.status.SetPosition(top, rows, total)
		t.status.Draw(t.screen, height-1, r.theme)
	}
	t.screen.Show()
	return total
}
