package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	WebhooksReceived       uint64
	RejectedSignature      uint64
	RejectedParse          uint64
	EventsForwarded        uint64
	CollectorNon2xx        uint64
	ForwardsFailed         uint64
	ForwardDurationCount   uint64
	ForwardDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory. Counters are atomic so
// concurrent webhook deliveries need no further coordination.
type InMemoryRecorder struct {
	webhooksReceived       uint64
	rejectedSignature      uint64
	rejectedParse          uint64
	eventsForwarded        uint64
	collectorNon2xx        uint64
	forwardsFailed         uint64
	forwardDurationCount   uint64
	forwardDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		WebhooksReceived:       atomic.LoadUint64(&m.webhooksReceived),
		RejectedSignature:      atomic.LoadUint64(&m.rejectedSignature),
		RejectedParse:          atomic.LoadUint64(&m.rejectedParse),
		EventsForwarded:        atomic.LoadUint64(&m.eventsForwarded),
		CollectorNon2xx:        atomic.LoadUint64(&m.collectorNon2xx),
		ForwardsFailed:         atomic.LoadUint64(&m.forwardsFailed),
		ForwardDurationCount:   atomic.LoadUint64(&m.forwardDurationCount),
		ForwardDurationTotalNs: atomic.LoadInt64(&m.forwardDurationTotalNs),
	}
}

// IncWebhookReceived increments the intake counter.
func (m *InMemoryRecorder) IncWebhookReceived() {
	atomic.AddUint64(&m.webhooksReceived, 1)
}

// IncWebhookRejected increments the rejection counter for the reason.
func (m *InMemoryRecorder) IncWebhookRejected(reason string) {
	switch reason {
	case "signature":
		atomic.AddUint64(&m.rejectedSignature, 1)
	case "parse":
		atomic.AddUint64(&m.rejectedParse, 1)
	}
}

// IncEventForwarded counts a completed forward; non-2xx collector
// statuses are tracked separately.
func (m *InMemoryRecorder) IncEventForwarded(sentTo string, collectorStatus int) {
	atomic.AddUint64(&m.eventsForwarded, 1)
	if collectorStatus < 200 || collectorStatus >= 300 {
		atomic.AddUint64(&m.collectorNon2xx, 1)
	}
}

// IncForwardFailed counts a transport-level forward failure.
func (m *InMemoryRecorder) IncForwardFailed() {
	atomic.AddUint64(&m.forwardsFailed, 1)
}

// ObserveForwardDuration records the collector round-trip time.
func (m *InMemoryRecorder) ObserveForwardDuration(duration time.Duration) {
	atomic.AddUint64(&m.forwardDurationCount, 1)
	atomic.AddInt64(&m.forwardDurationTotalNs, duration.Nanoseconds())
}
