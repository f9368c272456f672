package config

import (
	"os"
	"time"

	"github.com/NoamFav/bitvoyager/internal/catalog"
	"github.com/NoamFav/bitvoyager/internal/llm"
)

// Config is the root application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Learner  LearnerConfig  `yaml:"learner"`
	Log      LogConfig      `yaml:"log"`
	Practice PracticeConfig `yaml:"practice"`
	LLM      LLMConfig      `yaml:"llm"`
}

// StoreConfig selects the database. An empty DSN uses the default sqlite
// file; a postgres:// DSN selects PostgreSQL.
type StoreConfig struct {
	DSN string `yaml:"dsn" env:"BITVOYAGER_DB"`
}

// LearnerConfig identifies whose profile and history are used.
type LearnerConfig struct {
	ID string `yaml:"id" env:"BITVOYAGER_LEARNER" env-default:"default"`
}

// LogConfig holds logging settings. An empty File discards output in the
// TUI and writes to stderr from plain commands.
type LogConfig struct {
	Level  string `yaml:"level"  env:"BITVOYAGER_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"BITVOYAGER_LOG_FORMAT" env-default:"text"`
	File   string `yaml:"file"   env:"BITVOYAGER_LOG_FILE"`
}

// PracticeConfig holds the practice engine settings.
type PracticeConfig struct {
	Mode        string        `yaml:"mode"         env:"BITVOYAGER_MODE"         env-default:"learning"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"BITVOYAGER_IDLE_TIMEOUT" env-default:"5m"`
	Retention   time.Duration `yaml:"retention"    env:"BITVOYAGER_RETENTION"    env-default:"720h"`
	Exercises   string        `yaml:"exercises"    env:"BITVOYAGER_EXERCISES"`
	Tasks       string        `yaml:"tasks"        env:"BITVOYAGER_TASKS"`
}

// LLMConfig selects the hint provider. An empty provider is discovered
// from well-known API key variables; "none" disables it.
type LLMConfig struct {
	Provider    string        `yaml:"provider"     env:"BITVOYAGER_LLM_PROVIDER"`
	Model       string        `yaml:"model"        env:"BITVOYAGER_LLM_MODEL"`
	APIKey      string        `yaml:"api_key"      env:"BITVOYAGER_LLM_API_KEY"`
	BaseURL     string        `yaml:"base_url"     env:"BITVOYAGER_LLM_BASE_URL"`
	Timeout     time.Duration `yaml:"timeout"      env:"BITVOYAGER_LLM_TIMEOUT"      env-default:"30s"`
	MaxAttempts int           `yaml:"max_attempts" env:"BITVOYAGER_LLM_MAX_ATTEMPTS" env-default:"3"`
}

// Resolve converts the section into an llm.Config. A named provider
// without an API key takes it from the provider's well-known variable.
func (c LLMConfig) Resolve() llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Model = c.Model
	cfg.APIKey = c.APIKey
	cfg.BaseURL = c.BaseURL
	cfg.Timeout = c.Timeout
	cfg.Retry.MaxAttempts = c.MaxAttempts

	if c.Provider == "" {
		if found, ok := llm.Discover(cfg); ok {
			return found
		}
		return cfg
	}
	cfg.Provider = c.Provider
	if cfg.APIKey == "" {
		for _, p := range llm.Providers() {
			if p.Name == c.Provider {
				cfg.APIKey = os.Getenv(p.KeyEnv)
			}
		}
	}
	return cfg
}

// LoadExercises loads the exercise catalog from the configured file, or the
// built-in catalog when none is set.
func (c PracticeConfig) LoadExercises() (*catalog.Exercises, error) {
	if c.Exercises == "" {
		return catalog.DefaultExercises()
	}
	return catalog.LoadExercises(c.Exercises)
}

// LoadTasks loads the shell task catalog from the configured file, or the
// built-in catalog when none is set.
func (c PracticeConfig) LoadTasks() (*catalog.Tasks, error) {
	if c.Tasks == "" {
		return catalog.DefaultTasks()
	}
	return catalog.LoadTasks(c.Tasks)
}
