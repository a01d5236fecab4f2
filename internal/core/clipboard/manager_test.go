package clipboard

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bethropolis/quill/internal/entity"
)

// fakeSystem replaces the OS clipboard with a string.
func fakeSystem(m *Manager) *string {
	var data string
	m.system = true
	m.readAll = func() (string, error) { return data, nil }
	m.writeAll = func(s string) error {
		data = s
		return nil
	}
	return &data
}

func TestRegister(t *testing.T) {
	m := NewManager(false, nil)
	if _, ok := m.Content(); ok {
		t.Fatalf("Content on empty manager reported ok")
	}

	ft := entity.FormattedText{Text: "bold", Entities: []entity.Entity{entity.New(entity.TypeBold, 0, 4)}}
	md, err := m.Copy(ft)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if md != "*bold*" {
		t.Errorf("Copy markdown = %q, want %q", md, "*bold*")
	}

	got, ok := m.Content()
	if !ok {
		t.Fatalf("Content after Copy reported !ok")
	}
	if diff := cmp.Diff(ft, got); diff != "" {
		t.Errorf("Content mismatch (-want +got):\n%s", diff)
	}

	m.Clear()
	if _, ok := m.Content(); ok {
		t.Errorf("Content after Clear reported ok")
	}
}

func TestSystemClipboard(t *testing.T) {
	m := NewManager(false, nil)
	data := fakeSystem(m)

	ft := entity.FormattedText{Text: "x", Entities: []entity.Entity{entity.New(entity.TypeItalic, 0, 1)}}
	if _, err := m.Copy(ft); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if *data != "_x_" {
		t.Errorf("system clipboard = %q, want %q", *data, "_x_")
	}

	// Another application replaced the clipboard contents.
	*data = "~gone~ text"
	got, ok := m.Content()
	if !ok {
		t.Fatalf("Content reported !ok")
	}
	want := entity.FormattedText{Text: "gone text", Entities: []entity.Entity{entity.New(entity.TypeStrike, 0, 4)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Content mismatch (-want +got):\n%s", diff)
	}
}

func TestSystemClipboardErrors(t *testing.T) {
	m := NewManager(false, nil)
	m.system = true
	m.writeAll = func(string) error { return errors.New("no display") }
	m.readAll = func() (string, error) { return "", errors.New("no display") }

	ft := entity.Plain("kept")
	if _, err := m.Copy(ft); err == nil {
		t.Errorf("Copy error = nil, want failure")
	}
	got, ok := m.Content()
	if !ok {
		t.Fatalf("Content reported !ok")
	}
	if diff := cmp.Diff(ft, got); diff != "" {
		t.Errorf("Content should fall back to the register (-want +got):\n%s", diff)
	}
}
