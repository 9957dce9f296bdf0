// Package shopify models the inbound Shopify order webhook payload and its
// HMAC verification. The payload is partially trusted: fields may be missing,
// null, or carry numbers as strings, so the JSON types here absorb every shape
// Shopify is known to emit instead of failing the decode.
package shopify

import (
	"bytes"
	"strconv"
	"strings"
)

// DefaultCurrency is used when an order carries no currency at all.
const DefaultCurrency = "INR"

// FlexString decodes a JSON string, number, or null into a plain string.
// Shopify serializes identifiers inconsistently across webhook topics.
type FlexString string

// UnmarshalJSON never fails: unrecognized shapes decode to "".
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			*s = ""
			return nil
		}
		*s = FlexString(unquoted)
		return nil
	}
	// Bare token: number, true/false. Keep the literal text.
	*s = FlexString(data)
	return nil
}

func (s FlexString) String() string { return string(s) }

// Amount decodes a JSON number, a quoted numeric string, or null.
// Anything non-numeric degrades to 0 rather than aborting the parse;
// the order source is untrusted and monetary fields must never make
// the whole payload undecodable.
type Amount float64

// UnmarshalJSON never fails.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			*a = 0
			return nil
		}
		raw = strings.TrimSpace(unquoted)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

func (a Amount) Float() float64 { return float64(a) }

// Money is the inner object of Shopify's *_set money fields.
type Money struct {
	Amount       Amount `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

// MoneySet is Shopify's dual-currency money container. Only the shop
// currency side is consumed here.
type MoneySet struct {
	ShopMoney        *Money `json:"shop_money"`
	PresentmentMoney *Money `json:"presentment_money"`
}

// ShopAmount returns the shop-currency amount, or (0, false) when the
// nested shape is absent.
func (m *MoneySet) ShopAmount() (float64, bool) {
	if m == nil || m.ShopMoney == nil {
		return 0, false
	}
	return m.ShopMoney.Amount.Float(), true
}

// NoteAttribute is one entry of the ad-hoc name/value sidecar Shopify
// exposes for checkout metadata. Tracking parameters (client_id, gclid,
// utm_*) arrive through it.
type NoteAttribute struct {
	Name  string     `json:"name"`
	Value FlexString `json:"value"`
}

// DiscountCode is one applied discount; only the code is used.
type DiscountCode struct {
	Code string `json:"code"`
}

// Customer is the optional customer block on an order.
type Customer struct {
	ID    FlexString `json:"id"`
	Email string     `json:"email"`
}

// LineItem is a single purchased line on the order.
type LineItem struct {
	ID           FlexString `json:"id"`
	ProductID    FlexString `json:"product_id"`
	VariantID    FlexString `json:"variant_id"`
	SKU          FlexString `json:"sku"`
	Title        string     `json:"title"`
	Name         string     `json:"name"`
	VariantTitle string     `json:"variant_title"`
	Quantity     Amount     `json:"quantity"`
	Price        *Amount    `json:"price"`
	PriceSet     *MoneySet  `json:"price_set"`
}

// ItemID resolves the analytics item identifier: first non-empty of
// product id, SKU, variant id, then the line id itself.
func (li *LineItem) ItemID() string {
	for _, candidate := range []string{
		li.ProductID.String(),
		li.SKU.String(),
		li.VariantID.String(),
		li.ID.String(),
	} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// ItemName resolves the display name: title, falling back to name.
func (li *LineItem) ItemName() string {
	if li.Title != "" {
		return li.Title
	}
	return li.Name
}

// UnitQuantity applies the falsy-quantity rule: anything below 1
// (missing, null, zero) counts as a single unit.
func (li *LineItem) UnitQuantity() int {
	q := int(li.Quantity.Float())
	if q < 1 {
		return 1
	}
	return q
}

// UnitPrice resolves the line price: flat price field first, then the
// shop-currency amount of price_set, then 0.
func (li *LineItem) UnitPrice() float64 {
	if li.Price != nil {
		return li.Price.Float()
	}
	if v, ok := li.PriceSet.ShopAmount(); ok {
		return v
	}
	return 0
}

// Order is the webhook payload for a completed order. Every field is
// optional at the wire level; downstream resolution supplies defaults.
type Order struct {
	ID                    FlexString      `json:"id"`
	Customer              *Customer       `json:"customer"`
	Currency              string          `json:"currency"`
	PresentmentCurrency   string          `json:"presentment_currency"`
	TotalPrice            *Amount         `json:"total_price"`
	CurrentTotalPrice     *Amount         `json:"current_total_price"`
	CurrentTotalPriceSet  *MoneySet       `json:"current_total_price_set"`
	TotalTax              *Amount         `json:"total_tax"`
	TotalShippingPriceSet *MoneySet       `json:"total_shipping_price_set"`
	DiscountCodes         []DiscountCode  `json:"discount_codes"`
	NoteAttributes        []NoteAttribute `json:"note_attributes"`
	LineItems             []LineItem      `json:"line_items"`
}

// Attrs builds the tracking-parameter table from note_attributes:
// keys lowercased, first occurrence wins on duplicates. Built once per
// request; all attribute lookups go through it.
func (o *Order) Attrs() map[string]string {
	attrs := make(map[string]string, len(o.NoteAttributes))
	for _, na := range o.NoteAttributes {
		key := strings.ToLower(na.Name)
		if key == "" {
			continue
		}
		if _, exists := attrs[key]; exists {
			continue
		}
		attrs[key] = na.Value.String()
	}
	return attrs
}

// TotalValue resolves the order total: total_price, then
// current_total_price, then the shop-currency current total set, then 0.
func (o *Order) TotalValue() float64 {
	if o.TotalPrice != nil {
		return o.TotalPrice.Float()
	}
	if o.CurrentTotalPrice != nil {
		return o.CurrentTotalPrice.Float()
	}
	if v, ok := o.CurrentTotalPriceSet.ShopAmount(); ok {
		return v
	}
	return 0
}

// Tax resolves total_tax, defaulting to 0.
func (o *Order) Tax() float64 {
	if o.TotalTax != nil {
		return o.TotalTax.Float()
	}
	return 0
}

// Shipping resolves the shipping amount. Shopify exposes shipping only
// through the nested money set; there is no flat fallback.
func (o *Order) Shipping() float64 {
	if v, ok := o.TotalShippingPriceSet.ShopAmount(); ok {
		return v
	}
	return 0
}

// CurrencyCode resolves currency, then presentment_currency, then the
// store default.
func (o *Order) CurrencyCode() string {
	if o.Currency != "" {
		return o.Currency
	}
	if o.PresentmentCurrency != "" {
		return o.PresentmentCurrency
	}
	return DefaultCurrency
}

// Coupon returns the first discount code, or "" when none applied.
func (o *Order) Coupon() string {
	if len(o.DiscountCodes) == 0 {
		return ""
	}
	return o.DiscountCodes[0].Code
}
