// Package router keeps the TUI's screen stack. Screens navigate by
// returning the messages below as commands.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/NoamFav/bitvoyager/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen, so popping
// returns to the screen below both.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router is a stack of screens. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

// New returns a router showing root. Init on root is the caller's job.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen. A screen uncovered by the pop that
// implements screen.Resumer gets its Resume command run.
func (r *Router) Pop() tea.Cmd {
	if r.top() < 1 {
		return nil
	}
	r.stack[r.top()] = nil
	r.stack = r.stack[:r.top()]
	if res, ok := r.Active().(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

// Replace puts s in place of the top screen and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if r.top() < 0 {
		return r.Push(s)
	}
	r.stack[r.top()] = s
	return s.Init()
}

// Active returns the screen on top, or nil for an empty stack.
func (r *Router) Active() screen.Screen {
	if r.top() < 0 {
		return nil
	}
	return r.stack[r.top()]
}

// Depth is the number of open screens.
func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	if r.top() < 0 {
		return nil
	}
	next, cmd := r.stack[r.top()].Update(msg)
	r.stack[r.top()] = next
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
