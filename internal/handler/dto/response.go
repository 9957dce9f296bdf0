// Package dto defines the JSON bodies exchanged with webhook callers.
package dto

// ErrorResponse is the single-object error body returned for every
// failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ForwardResponse reports a successful forward to the webhook sender.
// GAResponse carries the collector's response text verbatim.
type ForwardResponse struct {
	Status     string `json:"status"`
	SentTo     string `json:"sent_to"`
	GAResponse string `json:"ga_response"`
}
