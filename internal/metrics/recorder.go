package metrics

import (
	"context"
	"time"
)

// Recorder fans every measurement out to Sentry, CloudWatch and the in-process stats.
// A nil *Recorder records nothing.
type Recorder struct {
	sentry     *SentryMetrics
	cloudwatch *Client
	stats      *Stats
}

// NewRecorder builds a recorder; cloudwatch may be nil outside production
func NewRecorder(sentry *SentryMetrics, cloudwatch *Client) *Recorder {
	return &Recorder{
		sentry:     sentry,
		cloudwatch: cloudwatch,
		stats:      NewStats(),
	}
}

func (r *Recorder) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if r == nil {
		return
	}
	r.stats.addRequest(statusCode)
	if r.sentry != nil {
		r.sentry.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	}
	r.cloudwatch.RecordAPIRequest(endpoint, statusCode, duration)
}

// RecordSynthesis matches the offline synthesizer's observer signature
func (r *Recorder) RecordSynthesis(kind string, attempts int, duration time.Duration) {
	if r == nil {
		return
	}
	r.stats.addSynthesis(kind, attempts)
	if r.sentry != nil {
		r.sentry.RecordSynthesis(kind, attempts, duration)
	}
	r.cloudwatch.RecordNoveltyRetries(kind, attempts-1)
}

func (r *Recorder) RecordGeneration(ctx context.Context, strategy, operation string, duration time.Duration, success bool) {
	if r == nil {
		return
	}
	r.stats.addGeneration(operation, success)
	if r.sentry != nil {
		r.sentry.RecordGenerationDuration(ctx, strategy, operation, duration, success)
	}
	r.cloudwatch.RecordGenerationDuration(strategy, duration, success)
}

func (r *Recorder) RecordTokenUsage(ctx context.Context, model string, inputTokens, outputTokens, totalTokens int64) {
	if r == nil {
		return
	}
	if r.sentry != nil {
		r.sentry.RecordTokenUsage(ctx, model, inputTokens, outputTokens, totalTokens)
	}
	r.cloudwatch.RecordTokenUsage(model, inputTokens, outputTokens, totalTokens)
}

// RecordFallback counts a request answered offline after the primary strategy failed
func (r *Recorder) RecordFallback() {
	if r == nil {
		return
	}
	r.stats.addFallback()
}

// Snapshot returns the in-process counters
func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return NewStats().Snapshot()
	}
	return r.stats.Snapshot()
}
