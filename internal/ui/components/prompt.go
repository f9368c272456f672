package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// Prompt is a single-line shell prompt with up/down recall of the lines
// entered in this session.
type Prompt struct {
	Model   textinput.Model
	history []string
	cursor  int // index into history while recalling; len(history) when not
}

// NewPrompt creates a focused prompt showing symbol before the cursor.
func NewPrompt(symbol, placeholder string) Prompt {
	ti := textinput.New()
	ti.Prompt = symbol
	ti.Placeholder = placeholder
	ti.Focus()
	return Prompt{Model: ti}
}

// Init returns the initial command.
func (p Prompt) Init() tea.Cmd {
	return p.Model.Focus()
}

// Update handles recall keys and forwards the rest to the text input.
func (p Prompt) Update(msg tea.Msg) (Prompt, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up":
			if p.cursor > 0 {
				p.cursor--
				p.Model.SetValue(p.history[p.cursor])
				p.Model.CursorEnd()
			}
			return p, nil
		case "down":
			if p.cursor < len(p.history) {
				p.cursor++
			}
			if p.cursor == len(p.history) {
				p.Model.SetValue("")
			} else {
				p.Model.SetValue(p.history[p.cursor])
			}
			p.Model.CursorEnd()
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.Model, cmd = p.Model.Update(msg)
	return p, cmd
}

// Submit returns the trimmed line, clears the input and remembers
// non-empty lines for recall.
func (p *Prompt) Submit() string {
	line := strings.TrimSpace(p.Model.Value())
	p.Model.SetValue("")
	if line != "" {
		p.history = append(p.history, line)
	}
	p.cursor = len(p.history)
	return line
}

// Value returns the current input.
func (p Prompt) Value() string {
	return p.Model.Value()
}

// View renders the prompt.
func (p Prompt) View() string {
	return p.Model.View()
}
