package hints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NoamFav/bitvoyager/internal/catalog"
	"github.com/NoamFav/bitvoyager/internal/llm"
)

// Service produces hints, asking the LLM when a provider is configured and
// falling back to offline hints otherwise.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

// NewService creates a hint service. provider may be nil.
func NewService(provider llm.Provider, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger}
}

// Online reports whether hints are generated by a model.
func (s *Service) Online() bool {
	return s.provider != nil
}

// ForTask returns a hint for the next unsatisfied command of task. It only
// fails when ctx is done.
func (s *Service) ForTask(ctx context.Context, task catalog.ShellTask, satisfied []string) (Hint, error) {
	offline := taskHint(task, satisfied)
	if s.provider == nil || offline.Command == "" {
		return offline, nil
	}
	return s.generate(ctx, taskSystemPrompt, buildTaskPrompt(task, satisfied), offline, "task_id", task.ID)
}

// ForExercise returns a hint for ex pitched at the learner's skill. It only
// fails when ctx is done.
func (s *Service) ForExercise(ctx context.Context, ex catalog.Exercise, skill float64) (Hint, error) {
	offline := exerciseHint(ex)
	if s.provider == nil {
		return offline, nil
	}
	return s.generate(ctx, exerciseSystemPrompt, buildExercisePrompt(ex, skill), offline, "item_id", ex.ID)
}

type hintOutput struct {
	Hint    string `json:"hint"`
	Command string `json:"command"`
}

func (s *Service) generate(ctx context.Context, system, prompt string, fallback Hint, idKey, id string) (Hint, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeHint)

	req := llm.UserPrompt(system, prompt, HintSchema, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err == nil {
		var out hintOutput
		if err = json.Unmarshal(resp.Content, &out); err == nil && strings.TrimSpace(out.Hint) != "" {
			return Hint{Text: out.Hint, Command: out.Command, Source: SourceLLM}, nil
		}
		if err == nil {
			err = errors.New("empty hint")
		}
	}

	if ctx.Err() != nil {
		return Hint{}, ctx.Err()
	}
	s.logger.Warn("hint generation failed, using offline hint", idKey, id, "err", err)
	return fallback, nil
}

// taskHint names the program of the first command not yet entered.
func taskHint(task catalog.ShellTask, satisfied []string) Hint {
	done := make(map[string]bool, len(satisfied))
	for _, c := range satisfied {
		done[c] = true
	}
	for _, cmd := range task.Commands {
		if done[cmd] {
			continue
		}
		program, _, _ := strings.Cut(strings.TrimSpace(cmd), " ")
		return Hint{
			Text:    fmt.Sprintf("Try the %s command.", program),
			Command: program,
			Source:  SourceOffline,
		}
	}
	return Hint{Text: "Every command for this task is done.", Source: SourceOffline}
}

// exerciseHint points at the function to complete and its first example.
func exerciseHint(ex catalog.Exercise) Hint {
	text := fmt.Sprintf("Complete %s.", ex.Function)
	if ex.Function == "" {
		text = "Read the prompt again and fill in the blank lines."
	}
	if len(ex.TestCases) > 0 && ex.Function != "" {
		text = fmt.Sprintf("Complete %s so that %s.", ex.Function, ex.FormatCase(ex.TestCases[0]))
	}
	return Hint{Text: text, Source: SourceOffline}
}
