package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/NoamFav/bitvoyager/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Detail   string // dim text after the label
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu. Items can also be chosen by their
// 1-based number.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{Items: items, Selected: selected}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		return m, m.activate(m.Selected)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Items) {
			m.Selected = n - 1
			return m, m.activate(m.Selected)
		}
	}
	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Action == nil || item.Disabled {
		return nil
	}
	return item.Action()
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		num := strconv.Itoa(i+1) + ". "
		switch {
		case item.Disabled:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + num + item.Label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ❯ " + num + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + num + item.Label))
		}
		if item.Detail != "" {
			b.WriteString("  " + theme.Hint.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
