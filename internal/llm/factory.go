package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NoamFav/bitvoyager/internal/store"
)

// NewProvider creates the configured provider wrapped with retry and
// logging middleware. It returns nil without error when no provider is
// selected.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg)
	case ProviderOpenAI, ProviderOpenRouter:
		base, err = NewOpenAIProvider(cfg)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, events, logger)
	return WithRetry(logged, cfg.Retry), nil
}
