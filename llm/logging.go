package llm

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Event describes one vendor call.
type Event struct {
	UserID       string
	Purpose      string
	Model        string
	LatencyMs    int64
	InputTokens  int
	OutputTokens int
	Success      bool
	ErrorMessage string
}

// EventSink persists generation events.
type EventSink interface {
	RecordGeneration(ctx context.Context, ev Event) error
}

// LoggingProvider reports every call to a sink. Sink failures are logged
// and never fail the call.
type LoggingProvider struct {
	inner Provider
	sink  EventSink
}

func WithLogging(p Provider, sink EventSink) Provider {
	return &LoggingProvider{inner: p, sink: sink}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := Event{
		UserID:    UserFrom(ctx),
		Purpose:   PurposeFrom(ctx),
		Model:     l.inner.ModelID(),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	entry := log.WithFields(log.Fields{
		"purpose":    ev.Purpose,
		"model":      ev.Model,
		"latency_ms": ev.LatencyMs,
		"success":    ev.Success,
	})
	if err != nil {
		entry.WithError(err).Warn("LLM generation failed")
	} else {
		entry.Debug("LLM generation finished")
	}

	if l.sink != nil {
		if sinkErr := l.sink.RecordGeneration(ctx, ev); sinkErr != nil {
			log.WithError(sinkErr).Warn("Failed to record LLM generation")
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }
