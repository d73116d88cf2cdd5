package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncSubmission is a no-op.
func (n *NoopRecorder) IncSubmission(status string) {}

// IncEmail is a no-op.
func (n *NoopRecorder) IncEmail(kind, status string) {}

// IncQuote is a no-op.
func (n *NoopRecorder) IncQuote(source string) {}

// ObserveStepDuration is a no-op.
func (n *NoopRecorder) ObserveStepDuration(step string, duration time.Duration) {}
