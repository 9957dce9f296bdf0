package handler

import (
	"net/http"

	"github.com/papai4576-cyber/shopify-ga4-mp/internal/metrics"
)

// MetricsHandler exposes in-memory counters for operational checks.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a MetricsHandler.
func NewMetricsHandler(s metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: s}
}

// MetricsResponse is the JSON shape of the metrics snapshot.
type MetricsResponse struct {
	WebhooksReceived  uint64  `json:"webhooks_received"`
	RejectedSignature uint64  `json:"rejected_signature"`
	RejectedParse     uint64  `json:"rejected_parse"`
	EventsForwarded   uint64  `json:"events_forwarded"`
	CollectorNon2xx   uint64  `json:"collector_non_2xx"`
	ForwardsFailed    uint64  `json:"forwards_failed"`
	AvgForwardMs      float64 `json:"avg_forward_ms"`
}

// Get handles GET /metrics.
func (h *MetricsHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshotter.Snapshot()

	var avgMs float64
	if snap.ForwardDurationCount > 0 {
		avgMs = float64(snap.ForwardDurationTotalNs) / float64(snap.ForwardDurationCount) / 1e6
	}

	writeJSON(w, http.StatusOK, MetricsResponse{
		WebhooksReceived:  snap.WebhooksReceived,
		RejectedSignature: snap.RejectedSignature,
		RejectedParse:     snap.RejectedParse,
		EventsForwarded:   snap.EventsForwarded,
		CollectorNon2xx:   snap.CollectorNon2xx,
		ForwardsFailed:    snap.ForwardsFailed,
		AvgForwardMs:      avgMs,
	})
}
