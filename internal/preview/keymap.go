package preview

import (
	"github.com/gdamore/tcell/v2"
)

// Action is what a key press asks the preview to do.
type Action int

const (
	ActionUnknown Action = iota // Ignored
	ActionQuit
	ActionScrollUp
	ActionScrollDown
	ActionPageUp
	ActionPageDown
	ActionTop
	ActionBottom
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action

// RuneKeymap maps plain runes to actions.
type RuneKeymap map[rune]Action

// InputProcessor translates tcell key events into actions.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionScrollUp
	p.keymap[tcell.KeyDown] = ActionScrollDown
	p.keymap[tcell.KeyPgUp] = ActionPageUp
	p.keymap[tcell.KeyPgDn] = ActionPageDown
	p.keymap[tcell.KeyHome] = ActionTop
	p.keymap[tcell.KeyEnd] = ActionBottom
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyEnter] = ActionQuit
	p.keymap[tcell.KeyCtrlC] = ActionQuit

	// less-style runes
	p.runeKeymap['q'] = ActionQuit
	p.runeKeymap['k'] = ActionScrollUp
	p.runeKeymap['j'] = ActionScrollDown
	p.runeKeymap['b'] = ActionPageUp
	p.runeKeymap[' '] = ActionPageDown
	p.runeKeymap['g'] = ActionTop
	p.runeKeymap['G'] = ActionBottom
}

// ProcessEvent returns the action bound to ev.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) Action {
	key, mod := ev.Key(), ev.Modifiers()
	// Ctrl+letter keys already imply the modifier.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	if key == tcell.KeyRune {
		if mod&^tcell.ModShift != tcell.ModNone {
			return ActionUnknown
		}
		return p.runeKeymap[ev.Rune()]
	}
	if mod == tcell.ModNone || mod == tcell.ModShift {
		return p.keymap[key]
	}
	return ActionUnknown
}
