package preview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/quill/internal/theme"
)

// StatusBar is the last screen line of the preview: a message when one is
// set, otherwise the visible row range.
type StatusBar struct {
	message string

	top, rows, total int
}

// SetMessage shows msg instead of the position. An empty msg clears it.
func (sb *StatusBar) SetMessage(format string, args ...interface{}) {
	sb.message = fmt.Sprintf(format, args...)
}

// SetPosition records which rows of how many are on screen.
func (sb *StatusBar) SetPosition(top, rows, total int) {
	sb.top, sb.rows, sb.total = top, rows, total
}

// Text returns what the bar shows.
func (sb *StatusBar) Text() string {
	if sb.message != "" {
		return sb.message
	}
	last := min(sb.top+sb.rows, sb.total)
	return fmt.Sprintf("Rows %d-%d of %d -- q to quit", min(sb.top+1, last), last, sb.total)
}

// Draw renders the bar on line y, using the "statusbar" style of th, or
// "statusbar.message" while a message is set.
func (sb *StatusBar) Draw(screen tcell.Screen, y int, th *theme.Theme) {
	width, _ := screen.Size()
	style := th.GetStyle("statusbar")
	if sb.message != "" {
		style = th.GetStyle("statusbar.message")
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(sb.Text())
	x := 0
	for gr.Next() {
		w := gr.Width()
		if x+w > width {
			break // Stop if cluster doesn't fit
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
}
