package ga4

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/papai4576-cyber/shopify-ga4-mp/internal/metrics"
)

func TestClient_SendLiveEndpoint(t *testing.T) {
	var gotPath, gotQuery, gotContentType string
	var gotPayload Payload

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode forwarded payload: %v", err)
		}
		w.Write([]byte("collector says hi"))
	}))
	defer ts.Close()

	c := NewClient(ClientConfig{
		MeasurementID: "G-TEST",
		APISecret:     "s3cret",
		BaseURL:       ts.URL,
	})

	payload := &Payload{
		ClientID: "77",
		Events:   []Event{{Name: "purchase", Params: PurchaseParams{TransactionID: "1001"}}},
	}

	result, err := c.Send(context.Background(), payload)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotPath != "/mp/collect" {
		t.Errorf("path = %q, want /mp/collect", gotPath)
	}
	if gotQuery != "api_secret=s3cret&measurement_id=G-TEST" {
		t.Errorf("query = %q", gotQuery)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	if gotPayload.ClientID != "77" {
		t.Errorf("forwarded client_id = %q", gotPayload.ClientID)
	}

	if result.SentTo != EndpointLive {
		t.Errorf("SentTo = %q, want %q", result.SentTo, EndpointLive)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", result.StatusCode)
	}
	if result.Body != "collector says hi" {
		t.Errorf("Body = %q", result.Body)
	}
}

func TestClient_SendDebugEndpoint(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"validationMessages":[]}`))
	}))
	defer ts.Close()

	c := NewClient(ClientConfig{
		MeasurementID: "G-TEST",
		APISecret:     "s3cret",
		Debug:         true,
		BaseURL:       ts.URL,
	})

	result, err := c.Send(context.Background(), &Payload{ClientID: "1"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotPath != "/debug/mp/collect" {
		t.Errorf("path = %q, want /debug/mp/collect", gotPath)
	}
	if result.SentTo != EndpointDebug {
		t.Errorf("SentTo = %q, want %q", result.SentTo, EndpointDebug)
	}
}

func TestClient_SendNon2xxIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("denied"))
	}))
	defer ts.Close()

	recorder := metrics.NewInMemory()
	c := NewClient(ClientConfig{BaseURL: ts.URL, Metrics: recorder})

	result, err := c.Send(context.Background(), &Payload{ClientID: "1"})
	if err != nil {
		t.Fatalf("non-2xx must not be an error, got %v", err)
	}
	if result.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d", result.StatusCode)
	}
	if result.Body != "denied" {
		t.Errorf("Body = %q, want verbatim collector body", result.Body)
	}

	snap := recorder.Snapshot()
	if snap.EventsForwarded != 1 || snap.CollectorNon2xx != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestClient_SendTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // refuse connections

	recorder := metrics.NewInMemory()
	c := NewClient(ClientConfig{BaseURL: ts.URL, Metrics: recorder})

	if _, err := c.Send(context.Background(), &Payload{ClientID: "1"}); err == nil {
		t.Fatal("expected transport error")
	}

	if snap := recorder.Snapshot(); snap.ForwardsFailed != 1 {
		t.Errorf("ForwardsFailed = %d, want 1", snap.ForwardsFailed)
	}
}
