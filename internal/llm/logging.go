package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NoamFav/bitvoyager/internal/store"
)

// LoggingProvider records every request as an LLM event.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	logger   *slog.Logger
}

// WithLogging wraps p so each call is appended to events. provider names
// the backend in the event log.
func WithLogging(p Provider, provider string, events store.EventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, provider: provider, events: events, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		// Keep the partial output of truncated or malformed replies.
		var e *Error
		if errors.As(err, &e) && len(e.Content) > 0 {
			data.ResponseBody = string(e.Content)
		}
		kind, _ := KindOf(err)
		l.logger.Warn("llm request failed", "provider", l.provider, "purpose", data.Purpose, "kind", kind, "err", err)
	}

	if logErr := l.events.AppendLLMRequest(ctx, data); logErr != nil {
		l.logger.Warn("record llm event", "err", logErr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// describeRequest renders req as readable text for the event log.
func describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
