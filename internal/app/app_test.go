package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/plugin"
	"github.com/bethropolis/quill/internal/preview"
)

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func run(t *testing.T, a *App, line string) {
	t.Helper()
	fields := strings.Fields(line)
	if err := a.ExecuteCommand(fields[0], fields[1:]); err != nil {
		t.Fatalf("%s: %v", line, err)
	}
}

func TestCommandsRegistered(t *testing.T) {
	a := newTestApp(t, nil)
	want := []string{"clear", "format", "link", "markdown", "redo", "set", "stats", "theme", "undo"}
	if diff := cmp.Diff(want, a.Commands()); diff != "" {
		t.Errorf("Commands mismatch (-want +got):\n%s", diff)
	}
	for _, name := range []string{"stats", "draft"} {
		if _, ok := a.Plugin(name); !ok {
			t.Errorf("plugin %s not registered", name)
		}
	}
}

func TestEditingCommands(t *testing.T) {
	a := newTestApp(t, nil)

	run(t, a, "set *hi* there")
	run(t, a, "markdown")
	if got := a.StatusMessage(); got != "*hi* there" {
		t.Errorf("markdown status = %q", got)
	}

	run(t, a, "format italic 0 2")
	if _, ok := a.Composer().ActiveFormats(0, 2)[entity.TypeItalic]; !ok {
		t.Error("italic not applied")
	}
	if got := a.StatusMessage(); got != "Applied italic" {
		t.Errorf("status = %q", got)
	}
	run(t, a, "format italic 0 2")
	if _, ok := a.Composer().ActiveFormats(0, 2)[entity.TypeItalic]; ok {
		t.Error("italic not removed")
	}

	run(t, a, "link 3 5 example.com")
	if got := a.Composer().Markdown(); got != "*hi* [there](https://example.com)" {
		t.Errorf("after link Markdown() = %q", got)
	}

	run(t, a, "undo")
	if got := a.Composer().Markdown(); got != "*hi* there" {
		t.Errorf("after undo Markdown() = %q", got)
	}
	if !strings.HasPrefix(a.StatusMessage(), "Undo: selection") {
		t.Errorf("undo status = %q", a.StatusMessage())
	}
	run(t, a, "redo")
	if got := a.Composer().Markdown(); got != "*hi* [there](https://example.com)" {
		t.Errorf("after redo Markdown() = %q", got)
	}

	run(t, a, "stats")
	if got, want := a.StatusMessage(), "Graphemes: 8, Words: 2, Lines: 1; bold: 1, text_url: 1; Undo: 1, Redo: 1"; got != want {
		t.Errorf("stats status = %q, want %q", got, want)
	}

	run(t, a, "clear")
	run(t, a, "undo")
	if got := a.StatusMessage(); got != "Nothing to undo" {
		t.Errorf("status after clear = %q", got)
	}
}

func TestCommandErrors(t *testing.T) {
	a := newTestApp(t, nil)
	run(t, a, "set text")

	testCases := []struct {
		name string
		args []string
	}{
		{name: "nope"},
		{name: "format", args: []string{"bold"}},
		{name: "format", args: []string{"shiny", "0", "1"}},
		{name: "format", args: []string{"bold", "x", "1"}},
		{name: "format", args: []string{"bold", "2", "9"}},
		{name: "link", args: []string{"0"}},
		{name: "link", args: []string{"0", "y"}},
	}
	for _, tc := range testCases {
		t.Run(strings.Join(append([]string{tc.name}, tc.args...), " "), func(t *testing.T) {
			if err := a.ExecuteCommand(tc.name, tc.args); err == nil {
				t.Error("ExecuteCommand succeeded, want error")
			}
		})
	}
}

func TestParseFailureStatus(t *testing.T) {
	a := newTestApp(t, nil)
	run(t, a, "set a|b")
	if got := a.Composer().Text(); got.Text != "a|b" || got.Entities != nil {
		t.Errorf("Text() = %+v, want literal input", got)
	}
	msg := a.StatusMessage()
	if !strings.HasPrefix(msg, "Markdown taken literally: ") || !strings.HasSuffix(msg, " at 1") {
		t.Errorf("status = %q", msg)
	}
}

func TestDraftPluginFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.md")
	cfg := config.NewDefaultConfig()
	cfg.Plugins = map[string]map[string]interface{}{
		"draft": {"enabled": true, "interval": "1h", "path": path},
	}
	a, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	run(t, a, "set __draft__")
	a.Close()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading draft: %v", err)
	}
	if string(b) != "__draft__" {
		t.Errorf("draft = %q", b)
	}
}

func TestPreview(t *testing.T) {
	a := newTestApp(t, nil)
	run(t, a, "set *hi*")

	sim := tcell.NewSimulationScreen("UTF-8")
	ui, err := preview.NewWithScreen(sim)
	if err != nil {
		t.Fatalf("NewWithScreen: %v", err)
	}
	defer ui.Close()
	sim.SetSize(4, 1)
	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	a.Preview(ui)

	r, _, style, _ := sim.GetContent(0, 0)
	if r != 'h' {
		t.Errorf("first cell = %q", r)
	}
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrBold == 0 {
		t.Error("first cell is not bold")
	}
}

func TestRegisterCommandDuplicate(t *testing.T) {
	a := newTestApp(t, nil)
	err := a.composerAPI.RegisterCommand("undo", func([]string) error { return nil })
	if !errors.Is(err, plugin.ErrDuplicate) {
		t.Errorf("RegisterCommand error = %v, want ErrDuplicate", err)
	}
}
