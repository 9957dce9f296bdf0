package ga4

import (
	"github.com/papai4576-cyber/shopify-ga4-mp/internal/shopify"
)

// Tracking-attribute keys looked up in the order's note attributes.
// Lookups are case-insensitive; the attribute table is lowercased.
const (
	attrClientID = "client_id"
	attrGACid    = "_ga_cid"
)

// BuildPurchaseEvent maps a Shopify order to a single MP purchase
// payload. The mapping is pure: it reads the order and produces a fresh
// value, no I/O, no shared state.
func BuildPurchaseEvent(o *shopify.Order) *Payload {
	attrs := o.Attrs()

	params := PurchaseParams{
		TransactionID: o.ID.String(),
		Value:         o.TotalValue(),
		Currency:      o.CurrencyCode(),
		Tax:           o.Tax(),
		Shipping:      o.Shipping(),
		Coupon:        o.Coupon(),
		Items:         buildItems(o.LineItems),

		Gclid:       attrs["gclid"],
		Gbraid:      attrs["gbraid"],
		Wbraid:      attrs["wbraid"],
		UTMSource:   attrs["utm_source"],
		UTMMedium:   attrs["utm_medium"],
		UTMCampaign: attrs["utm_campaign"],
		UTMContent:  attrs["utm_content"],
		UTMTerm:     attrs["utm_term"],
	}

	return &Payload{
		ClientID: resolveClientID(o, attrs),
		UserID:   resolveUserID(o),
		Events: []Event{
			{Name: "purchase", Params: params},
		},
	}
}

// resolveClientID picks the GA client identifier in strict priority:
// client_id attribute, _ga_cid attribute, customer id, order id. The
// last resort guarantees a non-empty value for any order with an id.
func resolveClientID(o *shopify.Order, attrs map[string]string) string {
	if v := attrs[attrClientID]; v != "" {
		return v
	}
	if v := attrs[attrGACid]; v != "" {
		return v
	}
	if o.Customer != nil && o.Customer.ID != "" {
		return o.Customer.ID.String()
	}
	return o.ID.String()
}

// resolveUserID returns the customer email, or "" when the order has no
// identifiable customer. The empty value omits user_id from the JSON.
func resolveUserID(o *shopify.Order) string {
	if o.Customer == nil {
		return ""
	}
	return o.Customer.Email
}

func buildItems(lines []shopify.LineItem) []Item {
	items := make([]Item, 0, len(lines))
	for i := range lines {
		li := &lines[i]
		items = append(items, Item{
			ItemID:   li.ItemID(),
			ItemName: li.ItemName(),
			Quantity: li.UnitQuantity(),
			Price:    li.UnitPrice(),
			// ItemBrand stays empty: order line items carry no vendor
			// field, so brand is absent from the upstream data.
			ItemVariant: li.VariantTitle,
		})
	}
	return items
}
