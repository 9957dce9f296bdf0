package ga4

import (
	"encoding/json"
	"testing"

	"github.com/papai4576-cyber/shopify-ga4-mp/internal/shopify"
)

func orderFromJSON(t *testing.T, raw string) *shopify.Order {
	t.Helper()
	var o shopify.Order
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	return &o
}

func TestBuildPurchaseEvent_ClientIDPriority(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "client_id attribute wins over customer",
			json: `{"id":1001,"customer":{"id":555},"note_attributes":[{"name":"client_id","value":"abc"}]}`,
			want: "abc",
		},
		{
			name: "_ga_cid attribute is second",
			json: `{"id":1001,"customer":{"id":555},"note_attributes":[{"name":"_ga_cid","value":"cid.9"}]}`,
			want: "cid.9",
		},
		{
			name: "customer id when no attributes",
			json: `{"id":1001,"customer":{"id":555}}`,
			want: "555",
		},
		{
			name: "order id as last resort",
			json: `{"id":1001}`,
			want: "1001",
		},
		{
			name: "empty attribute value is skipped",
			json: `{"id":1001,"customer":{"id":555},"note_attributes":[{"name":"client_id","value":""}]}`,
			want: "555",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPurchaseEvent(orderFromJSON(t, tt.json))
			if p.ClientID != tt.want {
				t.Errorf("ClientID = %q, want %q", p.ClientID, tt.want)
			}
		})
	}
}

func TestBuildPurchaseEvent_UserID(t *testing.T) {
	withEmail := BuildPurchaseEvent(orderFromJSON(t, `{"id":1,"customer":{"id":7,"email":"a@b.com"}}`))
	if withEmail.UserID != "a@b.com" {
		t.Errorf("UserID = %q, want a@b.com", withEmail.UserID)
	}

	// Omitted, not empty-string-emitted: check the serialized form.
	noCustomer := BuildPurchaseEvent(orderFromJSON(t, `{"id":1}`))
	keys := topLevelKeys(t, noCustomer)
	if _, ok := keys["user_id"]; ok {
		t.Error("user_id key must be absent when no customer email exists")
	}
}

func TestBuildPurchaseEvent_AttributionOmission(t *testing.T) {
	// No tracking attributes at all: none of the attribution keys may
	// appear in the serialized params, not even as null.
	p := BuildPurchaseEvent(orderFromJSON(t, `{"id":1,"total_price":"10"}`))
	params := paramKeys(t, p)

	for _, key := range []string{"gclid", "gbraid", "wbraid", "utm_source", "utm_medium", "utm_campaign", "utm_content", "utm_term", "coupon"} {
		if _, ok := params[key]; ok {
			t.Errorf("key %q must be absent from serialized params", key)
		}
	}

	// Always-present fields stay present even at zero.
	for _, key := range []string{"transaction_id", "value", "currency", "tax", "shipping", "items"} {
		if _, ok := params[key]; !ok {
			t.Errorf("key %q must always be present", key)
		}
	}
}

func TestBuildPurchaseEvent_AttributionExtraction(t *testing.T) {
	raw := `{"id":1,"note_attributes":[
		{"name":"GCLID","value":"g-1"},
		{"name":"wbraid","value":"w-1"},
		{"name":"UTM_Source","value":"google"},
		{"name":"utm_term","value":"shoes"}
	]}`
	p := BuildPurchaseEvent(orderFromJSON(t, raw))
	params := p.Events[0].Params

	if params.Gclid != "g-1" {
		t.Errorf("Gclid = %q", params.Gclid)
	}
	if params.Wbraid != "w-1" {
		t.Errorf("Wbraid = %q", params.Wbraid)
	}
	if params.UTMSource != "google" {
		t.Errorf("UTMSource = %q", params.UTMSource)
	}
	if params.UTMTerm != "shoes" {
		t.Errorf("UTMTerm = %q", params.UTMTerm)
	}
	if params.Gbraid != "" {
		t.Errorf("Gbraid = %q, want empty", params.Gbraid)
	}
}

func TestBuildPurchaseEvent_Items(t *testing.T) {
	raw := `{"id":1,"line_items":[
		{"product_id":9,"title":"Widget","quantity":2,"price":"50","variant_title":"Blue"},
		{"sku":"SKU-2","name":"Gadget","quantity":0,"price":"not-a-number"}
	]}`
	p := BuildPurchaseEvent(orderFromJSON(t, raw))
	items := p.Events[0].Params.Items

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.ItemID != "9" || first.ItemName != "Widget" || first.Quantity != 2 || first.Price != 50 {
		t.Errorf("first item = %+v", first)
	}
	if first.ItemVariant != "Blue" {
		t.Errorf("ItemVariant = %q, want Blue", first.ItemVariant)
	}

	second := items[1]
	if second.ItemID != "SKU-2" || second.Quantity != 1 || second.Price != 0 {
		t.Errorf("second item = %+v", second)
	}

	// Line items carry no vendor field upstream; brand never appears.
	for i, item := range items {
		if item.ItemBrand != "" {
			t.Errorf("item %d has brand %q, want absent", i, item.ItemBrand)
		}
	}
}

func TestBuildPurchaseEvent_TotalsAndCoupon(t *testing.T) {
	raw := `{
		"id": 1001,
		"total_price": "199.50",
		"total_tax": "18.50",
		"total_shipping_price_set": {"shop_money": {"amount": "4.99"}},
		"discount_codes": [{"code": "WELCOME10"}, {"code": "IGNORED"}]
	}`
	p := BuildPurchaseEvent(orderFromJSON(t, raw))
	params := p.Events[0].Params

	if params.TransactionID != "1001" {
		t.Errorf("TransactionID = %q", params.TransactionID)
	}
	if params.Value != 199.5 {
		t.Errorf("Value = %v", params.Value)
	}
	if params.Tax != 18.5 {
		t.Errorf("Tax = %v", params.Tax)
	}
	if params.Shipping != 4.99 {
		t.Errorf("Shipping = %v", params.Shipping)
	}
	if params.Coupon != "WELCOME10" {
		t.Errorf("Coupon = %q", params.Coupon)
	}
	if params.Currency != shopify.DefaultCurrency {
		t.Errorf("Currency = %q, want default %q", params.Currency, shopify.DefaultCurrency)
	}
}

func TestBuildPurchaseEvent_SingleEvent(t *testing.T) {
	p := BuildPurchaseEvent(orderFromJSON(t, `{"id":1}`))

	if len(p.Events) != 1 {
		t.Fatalf("got %d events, want exactly 1", len(p.Events))
	}
	if p.Events[0].Name != "purchase" {
		t.Errorf("event name = %q, want purchase", p.Events[0].Name)
	}
}

// topLevelKeys serializes the payload and returns its top-level keys.
func topLevelKeys(t *testing.T, p *Payload) map[string]json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	keys := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &keys); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	return keys
}

// paramKeys serializes the payload and returns the purchase params keys.
func paramKeys(t *testing.T, p *Payload) map[string]json.RawMessage {
	t.Helper()
	var envelope struct {
		Events []struct {
			Params map[string]json.RawMessage `json:"params"`
		} `json:"events"`
	}
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(envelope.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(envelope.Events))
	}
	return envelope.Events[0].Params
}
