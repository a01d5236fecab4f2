// Package theme maps style names to terminal styles. Entity styles are named
// "entity.<type>" (for example "entity.code"); syntax styles use tree-sitter
// capture names such as "keyword" or "string.escape".
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/quill/internal/logger"
)

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name, falling back to its dotted parents
// ("string.escape" to "string") and finally to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	for key := name; ; {
		if style, ok := t.Styles[key]; ok {
			if key != name {
				logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using '%s'", t.Name, name, key)
			}
			return style
		}
		dot := strings.LastIndex(key, ".")
		if dot < 0 {
			break
		}
		key = key[:dot]
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		return defStyle
	}
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Has reports whether the theme defines name exactly.
func (t *Theme) Has(name string) bool {
	_, ok := t.Styles[name]
	return ok
}

// Default returns the built-in dark theme. Each call returns a fresh copy.
func Default() *Theme {
	background := tcell.NewHexColor(0x2a2f38)
	foreground := tcell.NewHexColor(0xc5cdd9)
	comment := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)
	magenta := tcell.NewHexColor(0xc678dd)

	// Terminal background, soft foreground.
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)

	return &Theme{
		Name:   "Quill Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default": base,

			// Formatting that has no terminal attribute of its own.
			"entity.code":         base.Foreground(green),
			"entity.pre":          base.Foreground(foreground).Background(background),
			"entity.text_url":     base.Foreground(blue).Underline(true),
			"entity.mention_name": base.Foreground(cyan).Bold(true),
			"entity.custom_emoji": base.Foreground(yellow),
			"entity.blockquote":   base.Foreground(comment).Italic(true),
			"entity.spoiler":      base.Reverse(true),

			"statusbar":         tcell.StyleDefault.Foreground(background).Background(blue),
			"statusbar.message": tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(blue).Bold(true),

			// Syntax inside code blocks.
			"keyword":     base.Foreground(blue).Bold(true),
			"string":      base.Foreground(green),
			"comment":     base.Foreground(comment).Italic(true),
			"number":      base.Foreground(orange),
			"constant":    base.Foreground(orange),
			"boolean":     base.Foreground(orange),
			"type":        base.Foreground(cyan),
			"function":    base.Foreground(yellow),
			"method":      base.Foreground(yellow),
			"constructor": base.Foreground(yellow).Bold(true),
			"variable":    base.Foreground(foreground),
			"operator":    base.Foreground(foreground),
			"namespace":   base.Foreground(cyan),
			"module":      base.Foreground(green),
			"attribute":   base.Foreground(magenta),
			"punctuation": base.Foreground(comment),

			"string.escape":      base.Foreground(magenta),
			"string.special":     base.Foreground(magenta),
			"type.builtin":       base.Foreground(cyan).Bold(true),
			"function.builtin":   base.Foreground(cyan).Italic(true),
			"variable.builtin":   base.Foreground(cyan),
			"variable.parameter": base.Foreground(foreground).Italic(true),
		},
	}
}
