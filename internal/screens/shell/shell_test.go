package shell

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/NoamFav/bitvoyager/internal/session"
	"github.com/NoamFav/bitvoyager/internal/session/sessiontest"
)

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func ctrl(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl} }

func press(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

func readyScreen(t *testing.T) (*ShellScreen, *session.Engine) {
	t.Helper()
	e := sessiontest.NewEngine(t)
	s := New(e)
	s.Update(sessionReadyMsg{Session: e.ShellSession(context.Background())})
	return s, e
}

func typeLine(s *ShellScreen, line string) {
	s.prompt.Model.SetValue(line)
	s.Update(enter())
}

func TestShellScreen_Loading(t *testing.T) {
	s := New(sessiontest.NewEngine(t))
	if view := s.View(80, 24); !strings.Contains(view, "Loading") {
		t.Errorf("expected loading view, got %q", view)
	}
	if s.Status() != nil {
		t.Error("expected no status before the session is ready")
	}
}

func TestShellScreen_ShowsCurrentTask(t *testing.T) {
	s, _ := readyScreen(t)
	task, ok := s.session.Current()
	if !ok {
		t.Fatal("expected a task at level 1")
	}
	if view := s.View(100, 30); !strings.Contains(view, task.Title) {
		t.Errorf("view missing task title %q", task.Title)
	}
	if got := s.Status(); len(got) != 2 || got[0] != "Lv 1" {
		t.Errorf("Status = %v", got)
	}
}

func TestShellScreen_EnterCompletesTask(t *testing.T) {
	ctx := context.Background()
	s, e := readyScreen(t)
	task, _ := s.session.Current()

	for _, cmd := range task.Commands {
		typeLine(s, cmd)
	}

	if !s.session.Excluded(task.ID) {
		t.Errorf("task %s not excluded after entering all commands", task.ID)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Task complete: "+task.Title) {
		t.Errorf("view missing completion line: %q", view)
	}

	history, err := e.TaskHistory(ctx)
	if err != nil {
		t.Fatalf("TaskHistory: %v", err)
	}
	if len(history) != 1 || history[0].TaskID != task.ID || history[0].Skipped {
		t.Errorf("history = %+v", history)
	}
}

func TestShellScreen_BlankLineIgnored(t *testing.T) {
	s, _ := readyScreen(t)
	typeLine(s, "   ")
	if len(s.log) != 0 {
		t.Errorf("log = %v, want empty", s.log)
	}
}

func TestShellScreen_SkipTask(t *testing.T) {
	s, _ := readyScreen(t)
	task, _ := s.session.Current()

	s.Update(ctrl('s'))

	if !s.session.Excluded(task.ID) {
		t.Error("skipped task not excluded")
	}
	var skipped bool
	for _, l := range s.log {
		skipped = skipped || (l.kind == logSkip && strings.Contains(l.text, task.Title))
	}
	if !skipped {
		t.Errorf("log missing skip line: %+v", s.log)
	}
}

func TestShellScreen_LevelKeysOnlyOnEmptyPrompt(t *testing.T) {
	ctx := context.Background()
	s, e := readyScreen(t)

	s.Update(press('+'))
	if s.session.Level() != 2 {
		t.Fatalf("level = %d, want 2", s.session.Level())
	}
	if got := e.Level(ctx); got != 2 {
		t.Errorf("persisted level = %d, want 2", got)
	}

	s.prompt.Model.SetValue("ls")
	s.Update(press('-'))
	if s.session.Level() != 2 {
		t.Errorf("level changed while typing: %d", s.session.Level())
	}

	s.prompt.Model.SetValue("")
	s.Update(press('-'))
	s.Update(press('-'))
	if s.session.Level() != 1 {
		t.Errorf("level = %d, want floor of 1", s.session.Level())
	}
}

func TestShellScreen_Hint(t *testing.T) {
	s, _ := readyScreen(t)
	task, _ := s.session.Current()

	_, cmd := s.Update(ctrl('h'))
	if cmd == nil || !s.hinting {
		t.Fatal("expected a hint request")
	}
	s.Update(cmd())

	if s.hinting || s.hint == "" {
		t.Fatalf("hint not applied: hinting=%v hint=%q", s.hinting, s.hint)
	}
	program := strings.Fields(task.Commands[0])[0]
	if !strings.Contains(s.hint, program) {
		t.Errorf("hint %q does not name %q", s.hint, program)
	}
}

func TestShellScreen_StaleHintIgnored(t *testing.T) {
	s, _ := readyScreen(t)
	s.hinting = true
	s.Update(hintMsg{TaskID: "other"})
	if !s.hinting || s.hint != "" {
		t.Error("hint for another task should be ignored")
	}
}

func TestShellScreen_IdleTickReschedules(t *testing.T) {
	s, _ := readyScreen(t)

	_, cmd := s.Update(idleTickMsg(sessiontest.Now.Add(time.Second)))
	if cmd == nil {
		t.Error("expected the idle tick to be rescheduled")
	}
	if len(s.log) != 0 {
		t.Errorf("unexpected log before the idle timeout: %v", s.log)
	}

	s.Update(idleTickMsg(sessiontest.Now.Add(time.Hour)))
	if len(s.log) != 1 || s.log[0].kind != logInfo {
		t.Errorf("log = %v, want one info line", s.log)
	}
}

func TestShellScreen_LogIsBounded(t *testing.T) {
	s, _ := readyScreen(t)
	for range logSize + 5 {
		typeLine(s, "echo hi")
	}
	if len(s.log) != logSize {
		t.Errorf("log length = %d, want %d", len(s.log), logSize)
	}
}
