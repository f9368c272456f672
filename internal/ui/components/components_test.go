package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMenuNavigation(t *testing.T) {
	var chosen string
	item := func(label string) MenuItem {
		return MenuItem{Label: label, Action: func() tea.Cmd { chosen = label; return nil }}
	}
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		item("a"),
		item("b"),
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item 1", m.Selected)
	}

	m, _ = m.Update(key("up"))
	if m.Selected != 1 {
		t.Errorf("up onto disabled item: Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("enter"))
	if chosen != "b" {
		t.Errorf("chosen = %q, want b", chosen)
	}

	m, _ = m.Update(key("2"))
	if chosen != "a" || m.Selected != 1 {
		t.Errorf("number key: chosen = %q, Selected = %d", chosen, m.Selected)
	}
}

func TestProgressBarFraction(t *testing.T) {
	tests := []struct {
		value, max, want float64
	}{
		{5, 10, 0.5},
		{-1, 10, 0},
		{12, 10, 1},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := NewProgressBar("x", tt.value, tt.max, 40).Fraction(); got != tt.want {
			t.Errorf("Fraction(%v/%v) = %v, want %v", tt.value, tt.max, got, tt.want)
		}
	}
}

func TestPromptRecall(t *testing.T) {
	p := NewPrompt("$ ", "")
	p.Model.SetValue("  ls -la ")
	if got := p.Submit(); got != "ls -la" {
		t.Fatalf("Submit() = %q, want %q", got, "ls -la")
	}
	p.Model.SetValue("pwd")
	p.Submit()
	p.Submit() // blank lines are not remembered

	p, _ = p.Update(key("up"))
	if p.Value() != "pwd" {
		t.Errorf("after up: %q, want pwd", p.Value())
	}
	p, _ = p.Update(key("up"))
	p, _ = p.Update(key("up"))
	if p.Value() != "ls -la" {
		t.Errorf("after up x3: %q, want ls -la", p.Value())
	}
	p, _ = p.Update(key("down"))
	p, _ = p.Update(key("down"))
	if p.Value() != "" {
		t.Errorf("after returning down: %q, want empty", p.Value())
	}
}
