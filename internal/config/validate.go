package config

import (
	"fmt"
	"slices"

	"github.com/NoamFav/bitvoyager/internal/recommend"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate checks enumerated values and durations. Load calls it
// automatically.
func (c *Config) Validate() error {
	if c.Learner.ID == "" {
		return fmt.Errorf("learner.id must not be empty")
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}
	if err := c.Practice.validate(); err != nil {
		return fmt.Errorf("practice: %w", err)
	}
	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

func (p *PracticeConfig) validate() error {
	if _, err := recommend.ParseMode(p.Mode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	if p.IdleTimeout <= 0 {
		return fmt.Errorf("idle_timeout must be > 0 (got %s)", p.IdleTimeout)
	}
	if p.Retention <= 0 {
		return fmt.Errorf("retention must be > 0 (got %s)", p.Retention)
	}
	return nil
}

func (l *LLMConfig) validate() error {
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", l.Timeout)
	}
	if l.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1 (got %d)", l.MaxAttempts)
	}
	if l.Provider == "" {
		return nil
	}
	return l.Resolve().Validate()
}
