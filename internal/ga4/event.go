// Package ga4 builds and delivers Google Analytics 4 Measurement
// Protocol events from Shopify orders.
package ga4

// Payload is the Measurement Protocol envelope. Exactly one purchase
// event is sent per order.
type Payload struct {
	ClientID           string  `json:"client_id"`
	UserID             string  `json:"user_id,omitempty"`
	NonPersonalizedAds bool    `json:"non_personalized_ads"`
	Events             []Event `json:"events"`
}

// Event is a single named MP event.
type Event struct {
	Name   string         `json:"name"`
	Params PurchaseParams `json:"params"`
}

// PurchaseParams carries the purchase event parameters. Attribution
// fields use omitempty: GA4 treats an explicit null differently from an
// absent key, so optional fields must disappear from the JSON entirely
// when the order carries no value for them.
type PurchaseParams struct {
	TransactionID string  `json:"transaction_id"`
	Value         float64 `json:"value"`
	Currency      string  `json:"currency"`
	Tax           float64 `json:"tax"`
	Shipping      float64 `json:"shipping"`
	Coupon        string  `json:"coupon,omitempty"`
	Items         []Item  `json:"items"`

	Gclid       string `json:"gclid,omitempty"`
	Gbraid      string `json:"gbraid,omitempty"`
	Wbraid      string `json:"wbraid,omitempty"`
	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
	UTMContent  string `json:"utm_content,omitempty"`
	UTMTerm     string `json:"utm_term,omitempty"`
}

// Item is one purchased item in GA4's ecommerce item schema.
type Item struct {
	ItemID      string  `json:"item_id"`
	ItemName    string  `json:"item_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	ItemBrand   string  `json:"item_brand,omitempty"`
	ItemVariant string  `json:"item_variant,omitempty"`
}
