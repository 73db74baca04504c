package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/brim/internal/catalog"
	"github.com/san-kum/brim/internal/config"
	"github.com/san-kum/brim/internal/viz"
)

func newRollingDiscBrowser(t *testing.T) *Browser {
	t.Helper()
	a, err := config.Build(config.GetPreset("rolling_disc"), catalog.NewRegistry())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if err := a.DefineAll(); err != nil {
		t.Fatalf("define failed: %v", err)
	}
	b, err := NewBrowser(a, viz.ThemeMinimal)
	if err != nil {
		t.Fatalf("browser failed: %v", err)
	}
	return b
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, b *Browser, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var m tea.Model
		m, cmd = b.Update(key(k))
		if m != b {
			t.Fatalf("expected the same browser after %q", k)
		}
	}
	return cmd
}

func TestBrowserComponents(t *testing.T) {
	b := newRollingDiscBrowser(t)

	if len(b.comps) != 4 {
		t.Fatalf("expected 4 components, got %d", len(b.comps))
	}
	view := b.View()
	for _, name := range []string{"rolling_disc", "ground", "disc", "tire", "connection"} {
		if !strings.Contains(view, name) {
			t.Errorf("expected %q in component list", name)
		}
	}

	press(t, b, "up")
	if b.cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", b.cursor)
	}
	press(t, b, "down", "down", "down", "down", "down")
	if b.cursor != len(b.comps)-1 {
		t.Errorf("expected cursor at %d, got %d", len(b.comps)-1, b.cursor)
	}
}

func TestBrowserDetail(t *testing.T) {
	b := newRollingDiscBrowser(t)

	idx := -1
	for i, c := range b.comps {
		if c.name == "rolling_disc" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("expected rolling_disc among the components")
	}
	for range idx {
		press(t, b, "j")
	}
	press(t, b, "enter")
	if b.state != stateDetail {
		t.Fatalf("expected detail state, got %d", b.state)
	}

	view := b.View()
	for _, want := range []string{"→ ground", "→ disc", "→ tire", "rolling_disc_q1"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in detail view", want)
		}
	}

	press(t, b, "esc")
	if b.state != stateComponents {
		t.Errorf("expected components state, got %d", b.state)
	}
}

func TestBrowserSymbols(t *testing.T) {
	b := newRollingDiscBrowser(t)
	b.Update(tea.WindowSizeMsg{Width: 80, Height: 8})

	press(t, b, "tab")
	if b.state != stateSymbols {
		t.Fatalf("expected symbols state, got %d", b.state)
	}
	if !strings.Contains(b.View(), b.entries[0].Symbol.Name()) {
		t.Errorf("expected first symbol %s in view", b.entries[0].Symbol.Name())
	}

	press(t, b, "down")
	if b.offset != 1 {
		t.Errorf("expected offset 1, got %d", b.offset)
	}
	for range len(b.entries) {
		press(t, b, "down")
	}
	if b.offset != len(b.entries)-b.rows() {
		t.Errorf("expected offset %d, got %d", len(b.entries)-b.rows(), b.offset)
	}

	press(t, b, "tab")
	if b.state != stateComponents {
		t.Errorf("expected components state, got %d", b.state)
	}
}

func TestBrowserQuit(t *testing.T) {
	b := newRollingDiscBrowser(t)
	cmd := press(t, b, "q")
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
