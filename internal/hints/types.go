package hints

// Source identifies where a hint came from.
type Source string

const (
	SourceLLM     Source = "llm"
	SourceOffline Source = "offline"
)

// Hint is a nudge toward the next step of a task or exercise.
type Hint struct {
	Text    string
	Command string // suggested command line, if any
	Source  Source
}
