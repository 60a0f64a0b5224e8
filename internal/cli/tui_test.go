package cli

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/stratum/pkg/layers"
)

func testModel(t *testing.T) StackModel {
	t.Helper()
	g := layers.New()
	content, _ := g.AddLayer("content")
	header, _ := g.AddStaticLayer("header", 100)
	modal, _ := g.AddLayer("modal")
	modal.IsAbove(content)
	modal.IsAbove(header)

	sol, err := g.Solve()
	if err != nil {
		t.Fatal(err)
	}
	return NewStackModel(g, sol)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewStackModel(t *testing.T) {
	m := testModel(t)

	var names []string
	for _, e := range m.Entries {
		names = append(names, e.Name)
	}
	if want := []string{"modal", "header", "content"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("entries = %v, want %v", names, want)
	}
	if !m.Entries[1].Static || m.Entries[1].Index != 100 {
		t.Errorf("header entry = %+v, want static 100", m.Entries[1])
	}
	if want := []string{"content", "header"}; !reflect.DeepEqual(m.Entries[0].Covers, want) {
		t.Errorf("modal covers = %v, want %v", m.Entries[0].Covers, want)
	}
	if want := []string{"modal"}; !reflect.DeepEqual(m.Entries[2].Under, want) {
		t.Errorf("content under = %v, want %v", m.Entries[2].Under, want)
	}
}

func TestStackModelNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"down", []string{"down"}, 1},
		{"clamped at bottom", []string{"j", "j", "j", "j"}, 2},
		{"clamped at top", []string{"up", "k"}, 0},
		{"end", []string{"G"}, 2},
		{"home", []string{"G", "g"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var model tea.Model = testModel(t)
			for _, k := range tt.keys {
				model, _ = model.Update(key(k))
			}
			if got := model.(StackModel).Cursor; got != tt.want {
				t.Errorf("Cursor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStackModelScrolls(t *testing.T) {
	m := testModel(t)
	m.Height = 1

	var model tea.Model = m
	model, _ = model.Update(key("down"))
	model, _ = model.Update(key("down"))
	if got := model.(StackModel).Offset; got != 2 {
		t.Errorf("Offset = %d, want 2", got)
	}
}

func TestStackModelQuit(t *testing.T) {
	_, cmd := testModel(t).Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestStackModelView(t *testing.T) {
	view := testModel(t).View()
	for _, want := range []string{"Layer Stack", "modal", "101", "static", "content, header", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestStackModelEmpty(t *testing.T) {
	m := NewStackModel(layers.New(), layers.Solution{})
	if !strings.Contains(m.View(), "no layers") {
		t.Error("empty view should say no layers")
	}
	model, _ := m.Update(key("down"))
	if model.(StackModel).Cursor != 0 {
		t.Error("cursor should stay at 0 on empty model")
	}
}
