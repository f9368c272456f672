package llm

import (
	"fmt"
	"os"
	"slices"
	"time"
)

// Provider names.
const (
	ProviderNone       = "none"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures one provider.
type Config struct {
	Provider string
	Model    string // friendly name or provider model ID; empty uses the default
	APIKey   string
	BaseURL  string // OpenAI-compatible endpoints only
	Timeout  time.Duration
	Retry    RetryConfig
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// ProviderInfo describes a supported provider.
type ProviderInfo struct {
	Name         string
	DefaultModel string
	KeyEnv       string // well-known API key variable
}

var providers = []ProviderInfo{
	{Name: ProviderGemini, DefaultModel: "gemini-flash", KeyEnv: "GEMINI_API_KEY"},
	{Name: ProviderOpenAI, DefaultModel: "gpt-4o-mini", KeyEnv: "OPENAI_API_KEY"},
	{Name: ProviderAnthropic, DefaultModel: "claude-haiku", KeyEnv: "ANTHROPIC_API_KEY"},
	{Name: ProviderOpenRouter, DefaultModel: "google/gemini-2.0-flash-exp", KeyEnv: "OPENROUTER_API_KEY"},
}

// Providers lists the remote providers in discovery order.
func Providers() []ProviderInfo {
	return slices.Clone(providers)
}

// DefaultConfig has no provider; hints stay offline until one is set.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderNone,
		Timeout:  30 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

// ResolvedModel returns the configured model or the provider default.
func (c Config) ResolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	for _, p := range providers {
		if p.Name == c.Provider {
			return p.DefaultModel
		}
	}
	return ""
}

// Discover fills in a provider from the first well-known API key variable
// that is set. It returns false when none is.
func Discover(base Config) (Config, bool) {
	for _, p := range providers {
		if k := os.Getenv(p.KeyEnv); k != "" {
			base.Provider = p.Name
			base.APIKey = k
			return base, true
		}
	}
	return base, false
}

// Validate checks the provider name and that remote providers have a key.
func (c Config) Validate() error {
	switch c.Provider {
	case "", ProviderNone, ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.APIKey == "" {
			return fmt.Errorf("an API key is required for the %s provider", c.Provider)
		}
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be >= 1 (got %d)", c.Retry.MaxAttempts)
	}
	return nil
}
