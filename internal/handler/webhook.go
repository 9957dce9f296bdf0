package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/papai4576-cyber/shopify-ga4-mp/internal/ga4"
	"github.com/papai4576-cyber/shopify-ga4-mp/internal/handler/dto"
	"github.com/papai4576-cyber/shopify-ga4-mp/internal/metrics"
	"github.com/papai4576-cyber/shopify-ga4-mp/internal/shopify"
)

// Forwarder delivers an assembled event to the analytics collector.
type Forwarder interface {
	Send(ctx context.Context, payload *ga4.Payload) (*ga4.SendResult, error)
}

// WebhookHandler receives Shopify order webhooks, verifies them, and
// forwards the mapped purchase event to GA4. Each request is handled
// in isolation; the handler holds no mutable state.
type WebhookHandler struct {
	verifier  *shopify.Verifier
	forwarder Forwarder
	logger    *slog.Logger
	metrics   metrics.Recorder
	maxBody   int64
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(verifier *shopify.Verifier, forwarder Forwarder, maxBody int64, logger *slog.Logger, recorder metrics.Recorder) *WebhookHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &WebhookHandler{
		verifier:  verifier,
		forwarder: forwarder,
		logger:    logger.With("component", "handler.webhook"),
		metrics:   recorder,
		maxBody:   maxBody,
	}
}

// HandleOrder handles POST /webhook/orders.
//
// The body is buffered in full before anything else: verification runs
// over the exact raw bytes, so no middleware or decoder may touch the
// body first. Parse, transport, and unexpected failures all collapse
// into a generic 500; detail goes to the log only.
func (h *WebhookHandler) HandleOrder(w http.ResponseWriter, r *http.Request) {
	h.metrics.IncWebhookReceived()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		h.logger.Error("failed to read request body", "error", err)
		h.writeInternalError(w)
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get(shopify.HeaderHMAC)
	if !h.verifier.Verify(body, signature) {
		h.metrics.IncWebhookRejected("signature")
		h.logger.Warn("rejected webhook with invalid signature",
			"signature_present", signature != "",
		)
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid HMAC signature"})
		return
	}

	var order shopify.Order
	if err := json.Unmarshal(body, &order); err != nil {
		h.metrics.IncWebhookRejected("parse")
		h.logger.Error("failed to parse order payload", "error", err)
		h.writeInternalError(w)
		return
	}

	payload := ga4.BuildPurchaseEvent(&order)

	result, err := h.forwarder.Send(r.Context(), payload)
	if err != nil {
		h.logger.Error("failed to forward event",
			"order_id", order.ID.String(),
			"error", err,
		)
		h.writeInternalError(w)
		return
	}

	h.logger.Info("order forwarded",
		"order_id", order.ID.String(),
		"client_id", payload.ClientID,
		"sent_to", result.SentTo,
		"collector_status", result.StatusCode,
	)

	writeJSON(w, http.StatusOK, dto.ForwardResponse{
		Status:     "ok",
		SentTo:     result.SentTo,
		GAResponse: result.Body,
	})
}

func (h *WebhookHandler) writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal error"})
}
