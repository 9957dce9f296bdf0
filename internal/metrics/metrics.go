// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Webhook intake metrics
	IncWebhookReceived()
	IncWebhookRejected(reason string) // reason: "signature", "parse"

	// Forwarding metrics
	IncEventForwarded(sentTo string, collectorStatus int)
	IncForwardFailed()
	ObserveForwardDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
