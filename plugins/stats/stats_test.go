package stats

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bethropolis/quill/internal/core"
	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/plugin"
)

// fakeAPI exposes a real session through plugin.ComposerAPI.
type fakeAPI struct {
	c        *core.Composer
	commands map[string]plugin.CommandFunc
	status   string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{c: core.New(core.DefaultOptions()), commands: make(map[string]plugin.CommandFunc)}
}

func (f *fakeAPI) Text() entity.FormattedText { return f.c.Text() }
func (f *fakeAPI) Markdown() string           { return f.c.Markdown() }
func (f *fakeAPI) SessionID() string          { return f.c.ID() }

func (f *fakeAPI) SubscribeEvent(t event.Type, h event.Handler) { f.c.Events().Subscribe(t, h) }

func (f *fakeAPI) RegisterCommand(name string, fn plugin.CommandFunc) error {
	if _, ok := f.commands[name]; ok {
		return fmt.Errorf("command %q already registered", name)
	}
	f.commands[name] = fn
	return nil
}

func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.status = fmt.Sprintf(format, args...)
}

func (f *fakeAPI) GetPluginConfigValue(string, string) (interface{}, bool) { return nil, false }

func TestCount(t *testing.T) {
	testCases := []struct {
		name string
		ft   entity.FormattedText
		want Counts
	}{
		{
			name: "empty",
			ft:   entity.Plain(""),
			want: Counts{Entities: map[string]int{}},
		},
		{
			name: "emoji and lines",
			ft:   entity.Plain("hi 👋🏽\nthere"),
			want: Counts{Graphemes: 10, CodeUnits: 13, Words: 3, Lines: 2, Entities: map[string]int{}},
		},
		{
			name: "fragments count once",
			ft: entity.FormattedText{Text: "one two", Entities: []entity.Entity{
				entity.New(entity.TypeBold, 0, 3),
				entity.New(entity.TypeBold, 3, 4),
				entity.New(entity.TypeItalic, 0, 1),
				entity.New(entity.TypeItalic, 4, 3),
			}},
			want: Counts{Graphemes: 7, CodeUnits: 7, Words: 2, Lines: 1, Entities: map[string]int{"bold": 1, "italic": 2}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Count(tc.ft)); diff != "" {
				t.Errorf("Count mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCountsString(t *testing.T) {
	c := Counts{Graphemes: 7, Words: 2, Lines: 1, Entities: map[string]int{"italic": 2, "bold": 1}}
	want := "Graphemes: 7, Words: 2, Lines: 1; bold: 1, italic: 2"
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := (Counts{Entities: map[string]int{}}).String(); got != "Graphemes: 0, Words: 0, Lines: 0" {
		t.Errorf("String() of empty counts = %q", got)
	}
}

func TestStatsCommand(t *testing.T) {
	api := newFakeAPI()
	p := New()
	if err := p.Initialize(api); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	api.c.SetMarkdown("*hello* world")

	cmd, ok := api.commands["stats"]
	if !ok {
		t.Fatal("stats command not registered")
	}
	if err := cmd(nil); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if want := "Graphemes: 11, Words: 2, Lines: 1; bold: 1"; api.status != want {
		t.Errorf("status = %q, want %q", api.status, want)
	}

	api.c.Undo()
	api.c.Redo()
	api.c.Undo()
	if err := cmd(nil); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if want := "Graphemes: 0, Words: 0, Lines: 0; Undo: 2, Redo: 1"; api.status != want {
		t.Errorf("status = %q, want %q", api.status, want)
	}

	if err := p.Initialize(api); err == nil {
		t.Error("second Initialize succeeded, want duplicate command error")
	}
}

func TestHistoryStepsIgnoreOtherSessions(t *testing.T) {
	api := newFakeAPI()
	p := New().(*Stats)
	if err := p.Initialize(api); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	api.c.Events().Dispatch(event.TypeHistoryApplied, event.HistoryAppliedData{SessionID: "other"})
	api.c.Events().Dispatch(event.TypeHistoryApplied, event.HistoryAppliedData{SessionID: api.c.ID(), Redo: true})
	undos, redos := p.HistorySteps()
	if undos != 0 || redos != 1 {
		t.Errorf("HistorySteps() = %d, %d, want 0, 1", undos, redos)
	}
}

func TestStatsWithoutAPI(t *testing.T) {
	p := &Stats{}
	if err := p.executeStats(nil); err == nil {
		t.Error("executeStats without API succeeded")
	}
}
