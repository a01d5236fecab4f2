package plugin

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakePlugin struct {
	name    string
	initErr error
	calls   *[]string
}

func (p *fakePlugin) Name() string { return p.name }

func (p *fakePlugin) Initialize(ComposerAPI) error {
	*p.calls = append(*p.calls, "init "+p.name)
	return p.initErr
}

func (p *fakePlugin) Shutdown() error {
	*p.calls = append(*p.calls, "shutdown "+p.name)
	return nil
}

func TestManagerLifecycle(t *testing.T) {
	var calls []string
	m := NewManager()
	for _, p := range []*fakePlugin{
		{name: "a", calls: &calls},
		{name: "b", calls: &calls, initErr: errors.New("boom")},
		{name: "c", calls: &calls},
	} {
		if err := m.Register(p); err != nil {
			t.Fatalf("Register(%s): %v", p.name, err)
		}
	}

	err := m.InitializePlugins(nil)
	if err == nil {
		t.Errorf("InitializePlugins error = nil, want b's failure")
	}
	m.ShutdownPlugins()

	want := []string{"init a", "init b", "init c", "shutdown c", "shutdown b", "shutdown a"}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}

	if p, ok := m.GetPlugin("b"); !ok || p.Name() != "b" {
		t.Errorf("GetPlugin(b) = %v, %v", p, ok)
	}
}

func TestRegisterRejects(t *testing.T) {
	var calls []string
	m := NewManager()
	if err := m.Register(&fakePlugin{calls: &calls}); err == nil {
		t.Errorf("Register with empty name succeeded")
	}
	if err := m.Register(&fakePlugin{name: "x", calls: &calls}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := m.Register(&fakePlugin{name: "x", calls: &calls}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate Register error = %v, want ErrDuplicate", err)
	}
}
