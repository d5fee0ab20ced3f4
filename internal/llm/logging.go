package llm

import (
	"context"
	"log"
	"time"
)

// LoggingProvider is a decorator that logs every completion call.
type LoggingProvider struct {
	inner  Provider
	logger *log.Logger
}

// WithLogging wraps a Provider with request logging. A nil logger uses the
// standard logger.
func WithLogging(p Provider, logger *log.Logger) Provider {
	if logger == nil {
		logger = log.Default()
	}
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Complete(ctx, req)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		l.logger.Printf("llm %s: failed after %dms: %v", l.inner.ModelID(), latency, err)
		return nil, err
	}
	l.logger.Printf("llm %s: %dms, %d in / %d out tokens, stop=%s",
		resp.Model, latency, resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.StopReason)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
