package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncWebhookReceived is a no-op.
func (n *NoopRecorder) IncWebhookReceived() {}

// IncWebhookRejected is a no-op.
func (n *NoopRecorder) IncWebhookRejected(reason string) {}

// IncEventForwarded is a no-op.
func (n *NoopRecorder) IncEventForwarded(sentTo string, collectorStatus int) {}

// IncForwardFailed is a no-op.
func (n *NoopRecorder) IncForwardFailed() {}

// ObserveForwardDuration is a no-op.
func (n *NoopRecorder) ObserveForwardDuration(duration time.Duration) {}
