// Package preview draws formatted text on a terminal screen.
package preview

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/highlighter"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/theme"
	"github.com/bethropolis/quill/internal/utils"
)

const defaultTabWidth = 4

// Renderer lays formatted text out on a screen, wrapping at its width.
type Renderer struct {
	theme       *theme.Theme
	highlighter *highlighter.Highlighter // nil disables code highlighting
	TabWidth    int
}

// NewRenderer returns a renderer drawing with th. A nil theme selects the
// built-in one.
func NewRenderer(th *theme.Theme, hl *highlighter.Highlighter) *Renderer {
	if th == nil {
		th = theme.Default()
	}
	return &Renderer{theme: th, highlighter: hl, TabWidth: defaultTabWidth}
}

// Draw clears the screen and draws ft from the top-left corner. It returns
// the number of rows the text needs, which may exceed the screen height.
func (r *Renderer) Draw(screen tcell.Screen, ft entity.FormattedText) int {
	_, height := screen.Size()
	return r.DrawView(screen, ft, 0, height)
}

// DrawView clears the screen and draws the wrapped rows [top, top+rows) of
// ft on the first rows screen lines. It returns the number of rows the whole
// text needs.
func (r *Renderer) DrawView(screen tcell.Screen, ft entity.FormattedText, top, rows int) int {
	width, _ := screen.Size()
	base := r.theme.GetStyle("Default")
	screen.SetStyle(base)
	screen.Clear()
	if width <= 0 {
		return 0
	}

	styles := r.styles(ft)
	x, y, pos := 0, 0, 0
	gr := uniseg.NewGraphemes(ft.Text)
	for gr.Next() {
		cluster := gr.Str()
		style := base
		if pos < len(styles) {
			style = styles[pos]
		}
		pos += utils.Len(cluster)

		runes := gr.Runes()
		if runes[0] == '\n' || runes[0] == '\r' {
			x, y = 0, y+1
			continue
		}

		w := gr.Width()
		if runes[0] == '\t' {
			w = r.tabWidth() - x%r.tabWidth()
		}
		if w == 0 {
			continue
		}
		if x+w > width && x > 0 {
			x, y = 0, y+1
		}
		if row := y - top; row >= 0 && row < rows {
			if runes[0] == '\t' {
				for i := 0; i < w && x+i < width; i++ {
					screen.SetContent(x+i, row, ' ', nil, style)
				}
			} else {
				screen.SetContent(x, row, runes[0], runes[1:], style)
				// Fill remaining cells of wide characters.
				for cw := 1; cw < w && x+cw < width; cw++ {
					screen.SetContent(x+cw, row, ' ', nil, style)
				}
			}
		}
		x += w
	}
	return y + 1
}

func (r *Renderer) tabWidth() int {
	if r.TabWidth <= 0 {
		return defaultTabWidth
	}
	return r.TabWidth
}

// styles computes the style of every UTF-16 code unit of ft.
func (r *Renderer) styles(ft entity.FormattedText) []tcell.Style {
	base := r.theme.GetStyle("Default")
	n := ft.Len()
	out := make([]tcell.Style, n)
	for i := range out {
		out[i] = base
	}

	for _, e := range ft.Sliced() {
		for k := max(e.Offset, 0); k < min(e.End(), n); k++ {
			out[k] = r.apply(out[k], e)
		}
	}

	if r.highlighter == nil {
		return out
	}
	for _, e := range entity.Unify(ft.Entities) {
		if e.Type != entity.TypePre || !r.highlighter.Supports(e.Language) {
			continue
		}
		code := utils.Slice(ft.Text, e.Offset, e.End())
		spans, err := r.highlighter.Highlight(context.Background(), code, e.Language)
		if err != nil {
			logger.Warnf("Preview: highlighting %s block at %d: %v", e.Language, e.Offset, err)
			continue
		}
		for _, s := range spans {
			style := r.theme.GetStyle(s.Style)
			for k := e.Offset + s.Start; k < min(e.Offset+s.End, n); k++ {
				out[k] = overlay(out[k], style)
			}
		}
	}
	return out
}

// apply adds the look of e to style.
func (r *Renderer) apply(style tcell.Style, e entity.Entity) tcell.Style {
	switch e.Type {
	case entity.TypeBold:
		return style.Bold(true)
	case entity.TypeItalic:
		return style.Italic(true)
	case entity.TypeUnderline:
		return style.Underline(true)
	case entity.TypeStrike:
		return style.StrikeThrough(true)
	case entity.TypeTextURL:
		style = style.Url(e.URL)
	}
	return overlay(style, r.theme.GetStyle("entity."+e.Type.String()))
}

// overlay paints the explicit colours of top over style and adds its
// attributes.
func overlay(style, top tcell.Style) tcell.Style {
	fg, bg, attrs := top.Decompose()
	_, _, have := style.Decompose()
	if fg != tcell.ColorDefault && fg != tcell.ColorReset {
		style = style.Foreground(fg)
	}
	if bg != tcell.ColorDefault && bg != tcell.ColorReset {
		style = style.Background(bg)
	}
	style = style.Attributes(have | attrs)
	if attrs&tcell.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	return style
}
