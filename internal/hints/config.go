package hints

// Config holds hint generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns short, low-temperature hints.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.3,
	}
}
