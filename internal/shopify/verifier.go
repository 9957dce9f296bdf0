package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// HeaderHMAC is the request header Shopify signs webhook deliveries with.
const HeaderHMAC = "X-Shopify-Hmac-Sha256"

// Verifier authenticates raw webhook bodies against the app's shared
// secret. The secret is read from configuration once at startup; an
// empty secret disables verification entirely (fail-open by explicit
// configuration, for stores that have not provisioned a secret yet).
type Verifier struct {
	secret string
}

// NewVerifier creates a Verifier for the given shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Enabled reports whether a secret is configured.
func (v *Verifier) Enabled() bool {
	return v.secret != ""
}

// Verify checks the signature header against HMAC-SHA256 of the raw
// body. The body must be the exact bytes as received: any re-encoding
// breaks the digest. Comparison is constant time.
func (v *Verifier) Verify(body []byte, signature string) bool {
	if v.secret == "" {
		return true
	}
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the signature Shopify would send for the given body.
// Used by tests and local tooling to fabricate valid deliveries.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
