package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gradeline/gradeline/internal/store"
)

// LoggingProvider is a decorator that records every oracle call as a
// store event and emits a debug log line.
type LoggingProvider struct {
	inner     Provider
	name      string
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with call logging. name is the backend
// name ("openai", "anthropic", ...) recorded alongside the model ID.
func WithLogging(p Provider, name string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, name: name, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)

	data := store.LLMCallData{
		RunID:     RunFrom(ctx),
		Provider:  l.name,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	log.Debug().
		Str("purpose", data.Purpose).
		Str("model", data.Model).
		Int("input_tokens", data.InputTokens).
		Int("output_tokens", data.OutputTokens).
		Dur("latency", latency).
		Bool("success", data.Success).
		Msg("oracle call")

	// Record the event but never fail the grading call over bookkeeping.
	if logErr := l.eventRepo.AppendLLMCall(ctx, data); logErr != nil {
		log.Warn().Err(logErr).Msg("failed to record LLM call event")
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
